// Package analytics derives chart-ready series from task and session
// snapshots. It never caches; the data volumes are tiny.
package analytics

import (
	"time"

	"studyplanner/internal/core/datemath"
	"studyplanner/internal/core/model"
)

// TaskSource provides a read-only snapshot of the tasks.
type TaskSource interface {
	Tasks() []model.Task
}

// SessionSource provides per-day study minute totals.
type SessionSource interface {
	MinutesOn(date time.Time) int
}

// DayPoint is one day of the weekly series. CompletedTasks counts
// tasks whose due date equals the day and which are completed; the
// accounting is due-date based, not completion-date based.
type DayPoint struct {
	Date           string
	Weekday        string
	CompletedTasks int
	StudyMinutes   int
}

// CompletionStats summarizes overall task completion for the header
// counters and progress bar.
type CompletionStats struct {
	Total     int
	Completed int
	Rate      float64
}

// Aggregator reads task and session snapshots and produces derived
// views for rendering.
type Aggregator struct {
	tasks    TaskSource
	sessions SessionSource
}

// New creates an aggregator over the given sources.
func New(tasks TaskSource, sessions SessionSource) *Aggregator {
	return &Aggregator{tasks: tasks, sessions: sessions}
}

// WeeklySeries returns one point per day for the 7 days ending at
// today inclusive, oldest first.
func (aggregator *Aggregator) WeeklySeries(today time.Time) []DayPoint {
	tasks := aggregator.tasks.Tasks()
	completedByDate := make(map[string]int, len(tasks))
	for _, task := range tasks {
		if task.Completed {
			completedByDate[task.DueDate]++
		}
	}

	points := make([]DayPoint, 7)
	for offset := 0; offset < 7; offset++ {
		day := today.AddDate(0, 0, offset-6)
		iso := datemath.ISOFormat(day)
		points[offset] = DayPoint{
			Date:           iso,
			Weekday:        day.Weekday().String()[:3],
			CompletedTasks: completedByDate[iso],
			StudyMinutes:   aggregator.sessions.MinutesOn(day),
		}
	}
	return points
}

// Stats returns overall completion counters.
func (aggregator *Aggregator) Stats() CompletionStats {
	tasks := aggregator.tasks.Tasks()
	stats := CompletionStats{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.Rate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats
}
