package timezone

import (
	"sync"
	"time"

	"guesthouse/config"

	"github.com/rs/zerolog/log"
)

const (
	hoursPerDay     = 24
	defaultLocation = "UTC"
)

// location is resolved from APP_TIMEZONE on first use and never changes afterwards.
var location = sync.OnceValue(func() *time.Location {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("no timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).
			Msg("unknown timezone, falling back to " + defaultLocation + "; use IANA names such as Europe/Moscow")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("application timezone loaded")

	return loc
})

// GetLocation returns the application timezone.
func GetLocation() *time.Location {
	return location()
}

func Now() time.Time {
	return time.Now().In(location())
}

// Parse reads value as a wall clock time of the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(location()).Format(layout)
}

// DateOf keeps the calendar day of t and returns its midnight in the application timezone.
// DATE columns scan as UTC midnight, so the day is read from t itself rather than after conversion.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, location())
}

func Today() time.Time {
	return DateOf(Now())
}

// DaysBetween counts calendar days from a to b, negative when b is before a.
func DaysBetween(a, b time.Time) int {
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / hoursPerDay)
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
