// Package ledger aggregates completed pomodoro sessions into per-day
// minute totals and credits attributed minutes onto tasks.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"studyplanner/internal/core/datemath"
	"studyplanner/internal/core/model"
)

// TaskCrediter is the single cross-component write the ledger
// performs: study minutes always go through the task store's API,
// never by direct field mutation.
type TaskCrediter interface {
	CreditStudyMinutes(id string, minutes int) error
}

// Config contains runtime options for the Ledger. Now exists for
// tests; the zero value uses the clock.
type Config struct {
	Now func() time.Time
}

// Ledger owns the session records. Raw records are kept append-only;
// per-day merging is a derived view, so merging twice yields the same
// totals as merging once.
type Ledger struct {
	mu       sync.Mutex
	sessions []model.Session
	tasks    TaskCrediter
	now      func() time.Time
}

// DailyTotal is one day's aggregated study minutes.
type DailyTotal struct {
	Date    string
	Minutes int
}

// New creates an empty ledger crediting tasks through the given
// store.
func New(tasks TaskCrediter, config Config) *Ledger {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Ledger{tasks: tasks, now: config.Now}
}

// Record appends a session stamped with today's date. A resolvable
// taskID also credits the task; an unresolvable one is ignored so
// sessions never block on task existence.
func (ledger *Ledger) Record(minutes int, taskID string) error {
	if minutes < 1 {
		return fmt.Errorf("record %d minutes: %w", minutes, model.ErrInvalidAmount)
	}

	ledger.mu.Lock()
	ledger.sessions = append(ledger.sessions, model.Session{
		Date:    datemath.ISOFormat(ledger.now()),
		Minutes: minutes,
		TaskID:  taskID,
	})
	ledger.mu.Unlock()

	if taskID != "" && ledger.tasks != nil {
		if err := ledger.tasks.CreditStudyMinutes(taskID, minutes); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("credit task %s: %w", taskID, err)
		}
	}
	return nil
}

// MinutesOn sums the recorded minutes for one calendar date.
func (ledger *Ledger) MinutesOn(date time.Time) int {
	iso := datemath.ISOFormat(date)
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	total := 0
	for _, session := range ledger.sessions {
		if session.Date == iso {
			total += session.Minutes
		}
	}
	return total
}

// TrailingDailyTotals returns exactly days entries for the
// consecutive calendar days ending at endingOn inclusive, oldest
// first, zero-filled for days without sessions.
func (ledger *Ledger) TrailingDailyTotals(days int, endingOn time.Time) []DailyTotal {
	if days < 1 {
		return nil
	}

	totals := make([]DailyTotal, days)
	for offset := 0; offset < days; offset++ {
		day := endingOn.AddDate(0, 0, offset-days+1)
		totals[offset] = DailyTotal{
			Date:    datemath.ISOFormat(day),
			Minutes: ledger.MinutesOn(day),
		}
	}
	return totals
}

// MergedByDate returns one session per date with summed minutes,
// date-ordered. Task attribution does not survive the merge; this is
// the persisted representation.
func (ledger *Ledger) MergedByDate() []model.Session {
	ledger.mu.Lock()
	totals := make(map[string]int, len(ledger.sessions))
	for _, session := range ledger.sessions {
		totals[session.Date] += session.Minutes
	}
	ledger.mu.Unlock()

	merged := make([]model.Session, 0, len(totals))
	for date, minutes := range totals {
		merged = append(merged, model.Session{Date: date, Minutes: minutes})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })
	return merged
}

// Snapshot returns a copy of the raw session records.
func (ledger *Ledger) Snapshot() []model.Session {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return append([]model.Session(nil), ledger.sessions...)
}

// Replace swaps the whole collection, used by import.
func (ledger *Ledger) Replace(sessions []model.Session) {
	ledger.mu.Lock()
	ledger.sessions = append([]model.Session(nil), sessions...)
	ledger.mu.Unlock()
}

// Clear removes every session.
func (ledger *Ledger) Clear() {
	ledger.Replace(nil)
}
