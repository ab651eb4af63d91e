package model_test

import (
	"testing"
	"time"

	"guesthouse/internal/domains/roomoffer/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, _ := time.Parse(time.DateOnly, value)

	return t
}

func offer(id, start, end, pct string, active bool) model.RoomSpecialOffer {
	return model.RoomSpecialOffer{
		ID:                 id,
		StartDate:          date(start),
		EndDate:            date(end),
		DiscountPercentage: decimal.RequireFromString(pct),
		IsActive:           active,
	}
}

func TestRoomSpecialOffer_AppliesOn(t *testing.T) {
	o := offer("a", "2025-06-01", "2025-06-30", "10", true)

	tests := []struct {
		name string
		day  string
		want bool
	}{
		{name: "first day", day: "2025-06-01", want: true},
		{name: "last day", day: "2025-06-30", want: true},
		{name: "day before", day: "2025-05-31", want: false},
		{name: "day after", day: "2025-07-01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, o.AppliesOn(date(tt.day)))
		})
	}

	inactive := offer("b", "2025-06-01", "2025-06-30", "10", false)
	assert.False(t, inactive.AppliesOn(date("2025-06-15")))
}

func TestBestOffer(t *testing.T) {
	offers := []model.RoomSpecialOffer{
		offer("small", "2025-06-01", "2025-06-30", "10", true),
		offer("big-expired", "2025-05-01", "2025-05-31", "50", true),
		offer("big-inactive", "2025-06-01", "2025-06-30", "40", false),
		offer("medium", "2025-06-10", "2025-06-20", "25", true),
		offer("medium-tie", "2025-06-10", "2025-06-20", "25", true),
	}

	tests := []struct {
		name    string
		day     string
		wantID  string
		wantHit bool
	}{
		{name: "highest applicable wins", day: "2025-06-15", wantID: "medium", wantHit: true},
		{name: "only one in window", day: "2025-06-25", wantID: "small", wantHit: true},
		{name: "expired window still honoured on its own days", day: "2025-05-15", wantID: "big-expired", wantHit: true},
		{name: "nothing applies", day: "2025-08-01", wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, found := model.BestOffer(offers, date(tt.day))

			assert.Equal(t, tt.wantHit, found)
			assert.Equal(t, tt.wantID, best.ID)
		})
	}

	_, found := model.BestOffer(nil, date("2025-06-15"))
	assert.False(t, found)
}

func TestInForce(t *testing.T) {
	offers := []model.RoomSpecialOffer{
		offer("a", "2025-06-01", "2025-06-30", "10", true),
		offer("b", "2025-07-01", "2025-07-31", "20", true),
	}

	got := model.InForce(offers, date("2025-06-30"))

	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Empty(t, model.InForce(offers, date("2025-08-01")))
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		price string
		pct   string
		want  string
	}{
		{price: "5000", pct: "20", want: "4000"},
		{price: "2999.99", pct: "15", want: "2549.99"},
		{price: "1000", pct: "0", want: "1000"},
		{price: "1000", pct: "100", want: "0"},
		{price: "1234.50", pct: "12.5", want: "1080.19"},
	}

	for _, tt := range tests {
		t.Run(tt.price+"-"+tt.pct, func(t *testing.T) {
			got := model.DiscountedPrice(decimal.RequireFromString(tt.price), decimal.RequireFromString(tt.pct))

			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}
