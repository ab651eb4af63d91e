// Package timezone pins every date computation to the guesthouse's local timezone (APP_TIMEZONE).
//
// Booking dates are calendar days stored in DATE columns. They scan back as UTC midnight, so callers
// compare days through DateOf, Today and DaysBetween instead of raw instants:
//
//	nights := timezone.DaysBetween(checkIn, checkOut)
//	upcoming := timezone.DateOf(checkIn).After(timezone.Today())
//
// The cancellation cut-off is measured from check-in midnight in the same location, and monthly
// reports size their months with DaysIn.
//
// Only IANA names are accepted ("UTC", "Europe/Moscow"). An unknown name falls back to UTC and is logged.
package timezone
