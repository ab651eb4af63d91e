package repository

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"guesthouse/internal/domains/room/model"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"

	"github.com/shopspring/decimal"
)

// Scopes are correlated sub-queries over rooms, usable in any room filter group.

func plain(query string, args map[string]any) gDto.Filter {
	return gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    query,
		Args:     args,
	}
}

func dateArg(day time.Time) string {
	return day.Format(constant.DateOnlyFormat)
}

// FreeBetween keeps rooms without a confirmed booking overlapping [checkIn, checkOut).
func FreeBetween(checkIn, checkOut time.Time) gDto.Filter {
	return plain(`NOT EXISTS (SELECT 1 FROM bookings
		WHERE bookings.room_id = rooms.id AND bookings.status = 'confirmed'
		AND bookings.check_in < :free_check_out AND bookings.check_out > :free_check_in)`,
		map[string]any{"free_check_in": dateArg(checkIn), "free_check_out": dateArg(checkOut)})
}

func Available() gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldIsAvailable,
		Operator: gDto.FilterOperatorEq,
		Value:    true,
		Table:    model.TableName,
	}
}

func PriceAtLeast(price decimal.Decimal) gDto.Filter {
	return gDto.Filter{
		ArgName:  "min_price",
		Field:    model.FieldPricePerNight,
		Operator: gDto.FilterOperatorGreaterEq,
		Value:    price,
		Table:    model.TableName,
	}
}

func PriceAtMost(price decimal.Decimal) gDto.Filter {
	return gDto.Filter{
		ArgName:  "max_price",
		Field:    model.FieldPricePerNight,
		Operator: gDto.FilterOperatorLessEq,
		Value:    price,
		Table:    model.TableName,
	}
}

// BookedAtLeast counts bookings of every status.
func BookedAtLeast(bookings int) gDto.Filter {
	return plain(`(SELECT COUNT(*) FROM bookings WHERE bookings.room_id = rooms.id) >= :min_bookings`,
		map[string]any{"min_bookings": bookings})
}

// RatedAtLeast keeps rooms whose average review rating reaches rating. Unreviewed rooms never match.
func RatedAtLeast(rating decimal.Decimal) gDto.Filter {
	return plain(`(SELECT AVG(reviews.rating) FROM reviews WHERE reviews.room_id = rooms.id) >= :min_rating`,
		map[string]any{"min_rating": rating})
}

// HadStayOf keeps rooms with at least one booking of nights nights or longer.
func HadStayOf(nights int) gDto.Filter {
	return plain(`EXISTS (SELECT 1 FROM bookings
		WHERE bookings.room_id = rooms.id AND bookings.check_out - bookings.check_in >= :min_nights)`,
		map[string]any{"min_nights": nights})
}

func WithoutReviews() gDto.Filter {
	return plain(`NOT EXISTS (SELECT 1 FROM reviews WHERE reviews.room_id = rooms.id)`, nil)
}

// AmenityLike keeps rooms having an amenity whose name contains name.
func AmenityLike(name string) gDto.Filter {
	return plain(`EXISTS (SELECT 1 FROM room_amenities
		INNER JOIN amenities ON amenities.id = room_amenities.amenity_id
		WHERE room_amenities.room_id = rooms.id AND LOWER(amenities.name) LIKE LOWER(:amenity_like))`,
		map[string]any{"amenity_like": "%" + name + "%"})
}

// HasAllAmenities keeps rooms having every named amenity. Names match case-insensitively.
func HasAllAmenities(names []string) gDto.Filter {
	unique := []string{}

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" && !slices.Contains(unique, name) {
			unique = append(unique, name)
		}
	}

	if len(unique) == 0 {
		return gDto.Filter{}
	}

	args := map[string]any{"amenity_count": len(unique)}
	placeholders := make([]string, len(unique))

	for i, name := range unique {
		key := fmt.Sprintf("amenity_name_%d", i)
		args[key] = name
		placeholders[i] = ":" + key
	}

	return plain(fmt.Sprintf(`(SELECT COUNT(DISTINCT amenities.id) FROM room_amenities
		INNER JOIN amenities ON amenities.id = room_amenities.amenity_id
		WHERE room_amenities.room_id = rooms.id AND LOWER(amenities.name) IN (%s)) = :amenity_count`,
		strings.Join(placeholders, ", ")), args)
}

// OfferOn keeps rooms with an active special offer in force on day.
func OfferOn(day time.Time) gDto.Filter {
	return plain(`EXISTS (SELECT 1 FROM room_special_offers
		WHERE room_special_offers.room_id = rooms.id AND room_special_offers.is_active
		AND room_special_offers.start_date <= :offer_day AND room_special_offers.end_date >= :offer_day)`,
		map[string]any{"offer_day": dateArg(day)})
}

// DiscountBetween keeps rooms with an offer in force on day whose discount lies in [minPct, maxPct].
func DiscountBetween(minPct, maxPct decimal.Decimal, day time.Time) gDto.Filter {
	return plain(`EXISTS (SELECT 1 FROM room_special_offers
		WHERE room_special_offers.room_id = rooms.id AND room_special_offers.is_active
		AND room_special_offers.start_date <= :discount_day AND room_special_offers.end_date >= :discount_day
		AND room_special_offers.discount_percentage BETWEEN :min_discount AND :max_discount)`,
		map[string]any{"discount_day": dateArg(day), "min_discount": minPct, "max_discount": maxPct})
}
