package model

import (
	"time"

	"guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "room_special_offers"
	EntityName = "room_special_offer"

	FieldID                 = "id"
	FieldRoomID             = "room_id"
	FieldSpecialOfferID     = "special_offer_id"
	FieldStartDate          = "start_date"
	FieldEndDate            = "end_date"
	FieldDiscountPercentage = "discount_percentage"
	FieldIsActive           = "is_active"
)

var (
	hundred = decimal.NewFromInt(100)

	// MaxDiscount bounds discount_percentage from above; zero bounds it from below.
	MaxDiscount = hundred
)

// RoomSpecialOffer is a special offer applied to one room for a date window.
type RoomSpecialOffer struct {
	ID                 string          `db:"id"`
	RoomID             string          `db:"room_id"`
	SpecialOfferID     string          `db:"special_offer_id"`
	StartDate          time.Time       `db:"start_date"`
	EndDate            time.Time       `db:"end_date"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage"`
	IsActive           bool            `db:"is_active"`
	OfferTitle         string          `db:"offer_title"         table:"special_offers" column:"title"`
	RoomNumber         string          `db:"room_number"         table:"rooms"          column:"room_number"`
	model.Metadata
}

func (RoomSpecialOffer) GetJoinQuery() string {
	return "INNER JOIN special_offers ON special_offers.id = room_special_offers.special_offer_id " +
		"INNER JOIN rooms ON rooms.id = room_special_offers.room_id"
}

// AppliesOn reports whether the offer is in force on the calendar day of day. Both window ends are inclusive.
func (o RoomSpecialOffer) AppliesOn(day time.Time) bool {
	return o.IsActive &&
		timezone.DaysBetween(o.StartDate, day) >= 0 &&
		timezone.DaysBetween(day, o.EndDate) >= 0
}

// BestOffer returns the offer in force on day with the highest discount.
// On equal discounts the first one in offers wins.
func BestOffer(offers []RoomSpecialOffer, day time.Time) (best RoomSpecialOffer, found bool) {
	for _, offer := range offers {
		if !offer.AppliesOn(day) {
			continue
		}

		if !found || offer.DiscountPercentage.GreaterThan(best.DiscountPercentage) {
			best, found = offer, true
		}
	}

	return best, found
}

// InForce keeps the offers applying on day, in their original order.
func InForce(offers []RoomSpecialOffer, day time.Time) []RoomSpecialOffer {
	res := []RoomSpecialOffer{}

	for _, offer := range offers {
		if offer.AppliesOn(day) {
			res = append(res, offer)
		}
	}

	return res
}

// DiscountedPrice takes pct percent off price, rounded to cents.
func DiscountedPrice(price, pct decimal.Decimal) decimal.Decimal {
	return price.Sub(price.Mul(pct).Div(hundred)).Round(2)
}
