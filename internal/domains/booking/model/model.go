package model

import (
	"time"

	"guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldGuestID     = "guest_id"
	FieldRoomID      = "room_id"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldStatus      = "status"
	FieldGuestsCount = "guests_count"
	FieldTotalPrice  = "total_price"
	FieldCreatedAt   = "created_at"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	EventCreated   = "booking.created"
	EventModified  = "booking.modified"
	EventConfirmed = "booking.confirmed"
	EventCancelled = "booking.cancelled"
	EventDeleted   = "booking.deleted"
)

type Booking struct {
	ID          string          `db:"id"`
	GuestID     string          `db:"guest_id"`
	RoomID      string          `db:"room_id"`
	CheckIn     time.Time       `db:"check_in"`
	CheckOut    time.Time       `db:"check_out"`
	Status      string          `db:"status"`
	GuestsCount int             `db:"guests_count"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	RoomNumber  string          `db:"room_number"  table:"rooms" column:"room_number"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "INNER JOIN rooms ON rooms.id = bookings.room_id"
}

// Event is published for every change of a booking's lifecycle.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	GuestID    string    `json:"guest_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, b Booking) Event {
	return Event{
		Type:       eventType,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		GuestID:    b.GuestID,
		Status:     b.Status,
		OccurredAt: timezone.Now(),
	}
}

// Nights is the number of nights between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return timezone.DaysBetween(checkIn, checkOut)
}

// TotalPrice charges nightlyRate for every night of the stay.
func TotalPrice(nightlyRate decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	return nightlyRate.Mul(decimal.NewFromInt(int64(Nights(checkIn, checkOut)))).Round(2)
}

// Overlaps reports whether the half-open stays [aIn, aOut) and [bIn, bOut) share a night.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return timezone.DaysBetween(aIn, bOut) > 0 && timezone.DaysBetween(bIn, aOut) > 0
}

func (b Booking) Nights() int {
	return Nights(b.CheckIn, b.CheckOut)
}

// CanBeCancelled holds while now is more than window before midnight of the check-in day.
func (b Booking) CanBeCancelled(now time.Time, window time.Duration) bool {
	return timezone.DateOf(b.CheckIn).Sub(now) > window
}

// IsActive reports whether a confirmed stay covers today.
func (b Booking) IsActive(today time.Time) bool {
	return b.Status == StatusConfirmed &&
		timezone.DaysBetween(b.CheckIn, today) >= 0 &&
		timezone.DaysBetween(today, b.CheckOut) >= 0
}

func (b Booking) IsUpcoming(today time.Time) bool {
	return b.Status == StatusConfirmed && timezone.DaysBetween(today, b.CheckIn) > 0
}

// IsModifiable reports whether dates and guests may still change.
func (b Booking) IsModifiable() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
