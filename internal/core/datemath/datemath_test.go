package datemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplanner/internal/core/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestISOFormat(t *testing.T) {
	assert.Equal(t, "2026-03-07", ISOFormat(date(2026, time.March, 7)))
	assert.Equal(t, "0099-01-01", ISOFormat(date(99, time.January, 1)))
}

func TestParseISORoundTrip(t *testing.T) {
	parsed, err := ParseISO("2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", ISOFormat(parsed))

	_, err = ParseISO("30/08/2026")
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday stays", date(2026, time.August, 24), date(2026, time.August, 24)},
		{"wednesday", date(2026, time.August, 26), date(2026, time.August, 24)},
		{"sunday goes back six days", date(2026, time.August, 30), date(2026, time.August, 24)},
		{"saturday", date(2026, time.August, 29), date(2026, time.August, 24)},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, StartOfWeek(testCase.in))
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		name       string
		in         time.Time
		recurrence model.Recurrence
		want       time.Time
	}{
		{"daily", date(2026, time.August, 30), model.RecurrenceDaily, date(2026, time.August, 31)},
		{"daily across month end", date(2026, time.January, 31), model.RecurrenceDaily, date(2026, time.February, 1)},
		{"weekly", date(2026, time.August, 30), model.RecurrenceWeekly, date(2026, time.September, 6)},
		{"monthly plain", date(2026, time.April, 10), model.RecurrenceMonthly, date(2026, time.May, 10)},
		{"monthly clamps to february", date(2026, time.January, 31), model.RecurrenceMonthly, date(2026, time.February, 28)},
		{"monthly clamps to leap february", date(2028, time.January, 31), model.RecurrenceMonthly, date(2028, time.February, 29)},
		{"monthly clamps 31st to 30 day month", date(2026, time.March, 31), model.RecurrenceMonthly, date(2026, time.April, 30)},
		{"monthly across year end", date(2026, time.December, 15), model.RecurrenceMonthly, date(2027, time.January, 15)},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := NextOccurrence(testCase.in, testCase.recurrence)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.True(t, got.After(testCase.in), "next occurrence must strictly advance")
		})
	}
}

func TestNextOccurrenceRejectsNone(t *testing.T) {
	_, err := NextOccurrence(date(2026, time.August, 30), model.RecurrenceNone)
	require.ErrorIs(t, err, model.ErrInvalidRecurrence)

	_, err = NextOccurrence(date(2026, time.August, 30), model.Recurrence("fortnightly"))
	require.ErrorIs(t, err, model.ErrInvalidRecurrence)
}
