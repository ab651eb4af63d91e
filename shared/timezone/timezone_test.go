package timezone_test

import (
	"testing"
	"time"

	"guesthouse/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestFormatAndParse(t *testing.T) {
	formatted := timezone.Format(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "2006-01-02 15:04:05 MST")
	assert.NotEmpty(t, formatted)

	parsed, err := timezone.Parse(time.DateOnly, "2024-01-01")
	assert.NoError(t, err)
	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, 1, parsed.Day())
}

func TestDateOf(t *testing.T) {
	// a DATE column as scanned by the driver
	scanned := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	date := timezone.DateOf(scanned)

	assert.Equal(t, 31, date.Day())
	assert.Equal(t, time.March, date.Month())
	assert.Equal(t, 0, date.Hour())
	assert.Equal(t, timezone.GetLocation(), date.Location())

	today := timezone.Today()
	assert.Equal(t, timezone.Now().Day(), today.Day())
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{name: "same day", from: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), to: time.Date(2025, 7, 1, 23, 0, 0, 0, time.UTC), want: 0},
		{name: "week", from: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), to: time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), want: 7},
		{name: "across month", from: time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), to: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), want: 3},
		{name: "backwards", from: time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), to: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), want: -7},
		{
			name: "mixed locations keep calendar days",
			from: time.Date(2025, 3, 29, 0, 0, 0, 0, time.FixedZone("MSK", 3*60*60)),
			to:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.DaysBetween(tt.from, tt.to))
		})
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, timezone.DaysIn(2025, time.January))
	assert.Equal(t, 28, timezone.DaysIn(2025, time.February))
	assert.Equal(t, 29, timezone.DaysIn(2024, time.February))
	assert.Equal(t, 31, timezone.DaysIn(2025, time.December))
}
