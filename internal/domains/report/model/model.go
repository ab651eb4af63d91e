package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EntityName = "report"
	TableName  = "rooms"

	KindRooms    = "rooms"
	KindMonthly  = "monthly"
	KindBookings = "bookings"
	KindOffers   = "offers"

	// ArchiveDirectory is the S3 directory archived report PDFs are stored under.
	ArchiveDirectory = "reports"

	RecentBookingsLimit = 20
)

var percent = decimal.NewFromInt(100)

// RoomStat aggregates the whole history of one room.
type RoomStat struct {
	RoomID            string          `db:"room_id"`
	RoomNumber        string          `db:"room_number"`
	RoomType          string          `db:"room_type"`
	PricePerNight     decimal.Decimal `db:"price_per_night"`
	AvgRating         decimal.Decimal `db:"avg_rating"`
	ReviewsCount      int             `db:"reviews_count"`
	TotalBookings     int             `db:"total_bookings"`
	CancelledBookings int             `db:"cancelled_bookings"`
	ConfirmedBookings int             `db:"confirmed_bookings"`
	TotalRevenue      decimal.Decimal `db:"total_revenue"`
	AvgStayNights     decimal.Decimal `db:"avg_stay_nights"`
}

// CancellationRate is the share of cancelled bookings in percent, zero for a room never booked.
func (s RoomStat) CancellationRate() decimal.Decimal {
	if s.TotalBookings == 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(int64(s.CancelledBookings)).
		Mul(percent).
		Div(decimal.NewFromInt(int64(s.TotalBookings))).
		Round(2)
}

type RoomTypeStat struct {
	RoomType      string          `db:"room_type"`
	RoomsCount    int             `db:"rooms_count"`
	BookingsCount int             `db:"bookings_count"`
	AvgPrice      decimal.Decimal `db:"avg_price"`
	AvgRating     decimal.Decimal `db:"avg_rating"`
	TotalRevenue  decimal.Decimal `db:"total_revenue"`
}

// MonthlyRoomStat covers one room within a calendar month.
type MonthlyRoomStat struct {
	RoomID         string          `db:"room_id"`
	RoomNumber     string          `db:"room_number"`
	RoomType       string          `db:"room_type"`
	BookingsCount  int             `db:"bookings_count"`
	Revenue        decimal.Decimal `db:"revenue"`
	OccupiedNights int             `db:"occupied_nights"`
	ReviewsCount   int             `db:"reviews_count"`
	AvgRating      decimal.Decimal `db:"avg_rating"`
}

// OccupancyRate relates occupied nights to the days of the month, in percent.
func (s MonthlyRoomStat) OccupancyRate(daysInMonth int) decimal.Decimal {
	if daysInMonth <= 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(int64(s.OccupiedNights)).
		Mul(percent).
		Div(decimal.NewFromInt(int64(daysInMonth))).
		Round(2)
}

type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

type RecentBooking struct {
	ID             string          `db:"id"`
	GuestFirstName string          `db:"guest_first_name"`
	GuestLastName  string          `db:"guest_last_name"`
	RoomNumber     string          `db:"room_number"`
	CheckIn        time.Time       `db:"check_in"`
	CheckOut       time.Time       `db:"check_out"`
	Status         string          `db:"status"`
	TotalPrice     decimal.Decimal `db:"total_price"`
	CreatedAt      time.Time       `db:"created_at"`
}

func (b RecentBooking) GuestName() string {
	return b.GuestFirstName + " " + b.GuestLastName
}

// OfferStat counts the room applications of a special offer.
type OfferStat struct {
	OfferID            string `db:"offer_id"`
	Title              string `db:"title"`
	IsActive           bool   `db:"is_active"`
	TotalApplications  int    `db:"total_applications"`
	ActiveApplications int    `db:"active_applications"`
}

// OfferRoom is a room under an offer application that is in force on the report day.
type OfferRoom struct {
	OfferID            string          `db:"offer_id"`
	OfferTitle         string          `db:"offer_title"`
	RoomNumber         string          `db:"room_number"`
	RoomType           string          `db:"room_type"`
	PricePerNight      decimal.Decimal `db:"price_per_night"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage"`
}

func (r OfferRoom) DiscountedPrice() decimal.Decimal {
	return r.PricePerNight.Sub(r.PricePerNight.Mul(r.DiscountPercentage).Div(percent)).Round(2)
}
