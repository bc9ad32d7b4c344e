// Package datemath holds the pure calendar arithmetic the planner is
// built on: ISO date formatting, week-start computation and the next
// occurrence of a recurring task.
package datemath

import (
	"fmt"
	"time"

	"studyplanner/internal/core/model"
)

const isoLayout = "2006-01-02"

// ISOFormat renders a canonical zero-padded YYYY-MM-DD string.
func ISOFormat(date time.Time) string {
	return date.Format(isoLayout)
}

// ParseISO parses a canonical YYYY-MM-DD string.
func ParseISO(value string) (time.Time, error) {
	date, err := time.Parse(isoLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, model.ErrValidation)
	}
	return date, nil
}

// StartOfWeek returns the Monday on or before the given date,
// independent of the host locale's week-start convention.
func StartOfWeek(date time.Time) time.Time {
	shift := (int(date.Weekday()) + 6) % 7
	monday := date.AddDate(0, 0, -shift)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// NextOccurrence advances a due date by one recurrence step.
// Monthly keeps the day-of-month and clamps to the last valid day of
// the target month, so Jan 31 advances to Feb 28 (29 in leap years)
// rather than rolling into March. RecurrenceNone has no next
// occurrence and is rejected.
func NextOccurrence(date time.Time, recurrence model.Recurrence) (time.Time, error) {
	switch recurrence {
	case model.RecurrenceDaily:
		return date.AddDate(0, 0, 1), nil
	case model.RecurrenceWeekly:
		return date.AddDate(0, 0, 7), nil
	case model.RecurrenceMonthly:
		return addMonthClamped(date), nil
	}
	return time.Time{}, fmt.Errorf("recurrence %q: %w", recurrence, model.ErrInvalidRecurrence)
}

func addMonthClamped(date time.Time) time.Time {
	year, month, day := date.Date()
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, date.Location())
	if last := daysIn(firstOfNext.Year(), firstOfNext.Month(), date.Location()); day > last {
		day = last
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, 0, 0, 0, 0, date.Location())
}

func daysIn(year int, month time.Month, location *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, location).Day()
}
