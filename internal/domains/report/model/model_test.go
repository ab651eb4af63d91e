package model_test

import (
	"testing"

	"guesthouse/internal/domains/report/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoomStat_CancellationRate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		cancelled int
		want      string
	}{
		{name: "never booked", total: 0, cancelled: 0, want: "0"},
		{name: "none cancelled", total: 4, cancelled: 0, want: "0"},
		{name: "one of three", total: 3, cancelled: 1, want: "33.33"},
		{name: "all cancelled", total: 2, cancelled: 2, want: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stat := model.RoomStat{TotalBookings: tt.total, CancelledBookings: tt.cancelled}

			assert.True(t, stat.CancellationRate().Equal(decimal.RequireFromString(tt.want)), stat.CancellationRate().String())
		})
	}
}

func TestMonthlyRoomStat_OccupancyRate(t *testing.T) {
	stat := model.MonthlyRoomStat{OccupiedNights: 14}

	assert.True(t, stat.OccupancyRate(28).Equal(decimal.NewFromInt(50)))
	assert.True(t, stat.OccupancyRate(31).Equal(decimal.RequireFromString("45.16")))
	assert.True(t, stat.OccupancyRate(0).IsZero())
}

func TestOfferRoom_DiscountedPrice(t *testing.T) {
	room := model.OfferRoom{
		PricePerNight:      decimal.NewFromInt(2500),
		DiscountPercentage: decimal.NewFromInt(15),
	}

	assert.True(t, room.DiscountedPrice().Equal(decimal.NewFromInt(2125)))
}

func TestRecentBooking_GuestName(t *testing.T) {
	booking := model.RecentBooking{GuestFirstName: "Anna", GuestLastName: "Petrova"}

	assert.Equal(t, "Anna Petrova", booking.GuestName())
}
