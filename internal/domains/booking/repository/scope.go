package repository

import (
	"time"

	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
)

func onBookings(argName, field, operator string, value any) gDto.Filter {
	return gDto.Filter{
		ArgName:  argName,
		Field:    field,
		Operator: operator,
		Value:    value,
		Table:    model.TableName,
	}
}

func dateArg(day time.Time) string {
	return day.Format(constant.DateOnlyFormat)
}

func WithStatus(status string) gDto.Filter {
	return onBookings("status", model.FieldStatus, gDto.FilterOperatorEq, status)
}

func OfGuest(guestID string) gDto.Filter {
	return onBookings("guest_id", model.FieldGuestID, gDto.FilterOperatorEq, guestID)
}

func OfRoom(roomID string) gDto.Filter {
	return onBookings("room_id", model.FieldRoomID, gDto.FilterOperatorEq, roomID)
}

func NotCancelled() gDto.Filter {
	return onBookings("not_status", model.FieldStatus, gDto.FilterOperatorNotEq, model.StatusCancelled)
}

// StayingOn keeps bookings whose stay covers day, check-out day included.
func StayingOn(day time.Time) []any {
	return []any{
		onBookings("staying_from", model.FieldCheckIn, gDto.FilterOperatorLessEq, dateArg(day)),
		onBookings("staying_to", model.FieldCheckOut, gDto.FilterOperatorGreaterEq, dateArg(day)),
	}
}

func ArrivingAfter(day time.Time) gDto.Filter {
	return onBookings("arriving_after", model.FieldCheckIn, gDto.FilterOperatorGreater, dateArg(day))
}

func ArrivingFrom(day time.Time) gDto.Filter {
	return onBookings("arriving_from", model.FieldCheckIn, gDto.FilterOperatorGreaterEq, dateArg(day))
}

func LeftBefore(day time.Time) gDto.Filter {
	return onBookings("left_before", model.FieldCheckOut, gDto.FilterOperatorLess, dateArg(day))
}

func CreatedSince(at time.Time) gDto.Filter {
	return onBookings("created_since", model.FieldCreatedAt, gDto.FilterOperatorGreaterEq, at)
}

func GuestsAtLeast(count int) gDto.Filter {
	return onBookings("min_guests", model.FieldGuestsCount, gDto.FilterOperatorGreaterEq, count)
}

// NightsAtLeast keeps stays of at least nights nights. DATE minus DATE is a day count in PostgreSQL.
func NightsAtLeast(nights int) gDto.Filter {
	return gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    "bookings.check_out - bookings.check_in >= :min_nights",
		Args:     map[string]any{"min_nights": nights},
	}
}
