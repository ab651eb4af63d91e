package repository_test

import (
	"testing"
	"time"

	"guesthouse/internal/domains/room/repository"
	gDto "guesthouse/shared/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFreeBetween(t *testing.T) {
	checkIn := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)

	group := gDto.NewFilterGroup(repository.Available(), repository.FreeBetween(checkIn, checkOut))
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "rooms.is_available = :is_available")
	assert.Contains(t, where, "bookings.check_in < :free_check_out AND bookings.check_out > :free_check_in")
	assert.Contains(t, where, "bookings.status = 'confirmed'")
	assert.Equal(t, "2025-07-01", args["free_check_in"])
	assert.Equal(t, "2025-07-05", args["free_check_out"])
}

func TestHasAllAmenities(t *testing.T) {
	filter := repository.HasAllAmenities([]string{" Wi-Fi", "wi-fi", "Balcony", ""})
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "IN (:amenity_name_0, :amenity_name_1)")
	assert.Equal(t, "wi-fi", args["amenity_name_0"])
	assert.Equal(t, "balcony", args["amenity_name_1"])
	assert.Equal(t, 2, args["amenity_count"])

	empty := gDto.NewFilterGroup(repository.HasAllAmenities(nil))
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestPriceRange(t *testing.T) {
	group := gDto.NewFilterGroup(
		repository.PriceAtLeast(decimal.NewFromInt(2000)),
		repository.PriceAtMost(decimal.NewFromInt(5000)),
	)
	where, args := group.GetWhereClause()

	assert.Equal(t, "(rooms.price_per_night >= :min_price AND rooms.price_per_night <= :max_price)", where)
	assert.Len(t, args, 2)
}

func TestDiscountBetween(t *testing.T) {
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	filter := repository.DiscountBetween(decimal.NewFromInt(10), decimal.NewFromInt(30), day)
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "discount_percentage BETWEEN :min_discount AND :max_discount")
	assert.Equal(t, "2025-06-15", args["discount_day"])
}

func TestSubqueryScopes(t *testing.T) {
	tests := []struct {
		name    string
		filter  gDto.Filter
		snippet string
		arg     string
	}{
		{name: "popular", filter: repository.BookedAtLeast(5), snippet: ">= :min_bookings", arg: "min_bookings"},
		{name: "top rated", filter: repository.RatedAtLeast(decimal.NewFromFloat(4.5)), snippet: "AVG(reviews.rating)", arg: "min_rating"},
		{name: "long stay", filter: repository.HadStayOf(7), snippet: "bookings.check_out - bookings.check_in >= :min_nights", arg: "min_nights"},
		{name: "amenity like", filter: repository.AmenityLike("sauna"), snippet: "LIKE LOWER(:amenity_like)", arg: "amenity_like"},
		{name: "with offers", filter: repository.OfferOn(time.Now()), snippet: "room_special_offers.is_active", arg: "offer_day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Contains(t, where, tt.snippet)
			assert.Contains(t, args, tt.arg)
		})
	}

	unreviewed := repository.WithoutReviews()
	where, args := unreviewed.GetWhereClause()
	assert.Contains(t, where, "NOT EXISTS")
	assert.Empty(t, args)
}
