package model_test

import (
	"testing"
	"time"

	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared/timezone"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestNightsAndTotalPrice(t *testing.T) {
	checkIn, checkOut := day(2025, 7, 30), day(2025, 8, 2)

	assert.Equal(t, 3, model.Nights(checkIn, checkOut))
	assert.True(t, model.TotalPrice(decimal.RequireFromString("1500.50"), checkIn, checkOut).
		Equal(decimal.RequireFromString("4501.50")))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name    string
		bIn     time.Time
		bOut    time.Time
		overlap bool
	}{
		{name: "same stay", bIn: day(2025, 7, 10), bOut: day(2025, 7, 13), overlap: true},
		{name: "inside", bIn: day(2025, 7, 11), bOut: day(2025, 7, 12), overlap: true},
		{name: "straddles start", bIn: day(2025, 7, 8), bOut: day(2025, 7, 11), overlap: true},
		{name: "checks in on check out day", bIn: day(2025, 7, 13), bOut: day(2025, 7, 15), overlap: false},
		{name: "checks out on check in day", bIn: day(2025, 7, 7), bOut: day(2025, 7, 10), overlap: false},
		{name: "far apart", bIn: day(2025, 8, 1), bOut: day(2025, 8, 3), overlap: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, model.Overlaps(day(2025, 7, 10), day(2025, 7, 13), tt.bIn, tt.bOut))
		})
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	b := model.Booking{CheckIn: day(2025, 7, 10)}
	checkInAt := timezone.DateOf(b.CheckIn)
	window := 24 * time.Hour

	assert.True(t, b.CanBeCancelled(checkInAt.Add(-25*time.Hour), window))
	assert.False(t, b.CanBeCancelled(checkInAt.Add(-24*time.Hour), window))
	assert.False(t, b.CanBeCancelled(checkInAt.Add(-time.Hour), window))
	assert.False(t, b.CanBeCancelled(checkInAt.Add(time.Hour), window))
}

func TestBooking_IsActiveAndUpcoming(t *testing.T) {
	today := day(2025, 7, 11)

	tests := []struct {
		name     string
		booking  model.Booking
		active   bool
		upcoming bool
	}{
		{
			name:    "staying now",
			booking: model.Booking{Status: model.StatusConfirmed, CheckIn: day(2025, 7, 10), CheckOut: day(2025, 7, 12)},
			active:  true,
		},
		{
			name:    "checking out today",
			booking: model.Booking{Status: model.StatusConfirmed, CheckIn: day(2025, 7, 9), CheckOut: today},
			active:  true,
		},
		{
			name:     "arrives tomorrow",
			booking:  model.Booking{Status: model.StatusConfirmed, CheckIn: day(2025, 7, 12), CheckOut: day(2025, 7, 14)},
			upcoming: true,
		},
		{
			name:    "pending stay is neither",
			booking: model.Booking{Status: model.StatusPending, CheckIn: day(2025, 7, 10), CheckOut: day(2025, 7, 12)},
		},
		{
			name:    "already left",
			booking: model.Booking{Status: model.StatusConfirmed, CheckIn: day(2025, 7, 1), CheckOut: day(2025, 7, 5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.booking.IsActive(today))
			assert.Equal(t, tt.upcoming, tt.booking.IsUpcoming(today))
		})
	}
}

func TestBooking_IsModifiable(t *testing.T) {
	assert.True(t, model.Booking{Status: model.StatusPending}.IsModifiable())
	assert.True(t, model.Booking{Status: model.StatusConfirmed}.IsModifiable())
	assert.False(t, model.Booking{Status: model.StatusCancelled}.IsModifiable())
}

func TestNewEvent(t *testing.T) {
	b := model.Booking{ID: "b1", RoomID: "r1", GuestID: "g1", Status: model.StatusCancelled}

	event := model.NewEvent(model.EventCancelled, b)

	assert.Equal(t, model.EventCancelled, event.Type)
	assert.Equal(t, "b1", event.BookingID)
	assert.Equal(t, model.StatusCancelled, event.Status)
	assert.False(t, event.OccurredAt.IsZero())
}
