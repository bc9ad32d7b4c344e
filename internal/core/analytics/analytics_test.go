package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplanner/internal/core/datemath"
	"studyplanner/internal/core/model"
)

type fakeTasks []model.Task

func (tasks fakeTasks) Tasks() []model.Task { return tasks }

type fakeSessions map[string]int

func (sessions fakeSessions) MinutesOn(date time.Time) int {
	return sessions[datemath.ISOFormat(date)]
}

var today = time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

func TestWeeklySeries(t *testing.T) {
	tasks := fakeTasks{
		{ID: "1", DueDate: "2026-08-30", Completed: true},
		{ID: "2", DueDate: "2026-08-30", Completed: true},
		{ID: "3", DueDate: "2026-08-30", Completed: false},
		{ID: "4", DueDate: "2026-08-27", Completed: true},
		// completed but outside the window
		{ID: "5", DueDate: "2026-08-20", Completed: true},
	}
	sessions := fakeSessions{"2026-08-30": 50, "2026-08-24": 15}

	aggregator := New(tasks, sessions)
	points := aggregator.WeeklySeries(today)

	require.Len(t, points, 7)
	assert.Equal(t, "2026-08-24", points[0].Date)
	assert.Equal(t, "Mon", points[0].Weekday)
	assert.Equal(t, 15, points[0].StudyMinutes)
	assert.Zero(t, points[0].CompletedTasks)

	assert.Equal(t, "2026-08-27", points[3].Date)
	assert.Equal(t, 1, points[3].CompletedTasks)

	last := points[6]
	assert.Equal(t, "2026-08-30", last.Date)
	assert.Equal(t, "Sun", last.Weekday)
	assert.Equal(t, 2, last.CompletedTasks, "incomplete tasks due today must not count")
	assert.Equal(t, 50, last.StudyMinutes)
}

func TestWeeklySeriesEmptySources(t *testing.T) {
	aggregator := New(fakeTasks{}, fakeSessions{})
	points := aggregator.WeeklySeries(today)
	require.Len(t, points, 7)
	for _, point := range points {
		assert.Zero(t, point.CompletedTasks)
		assert.Zero(t, point.StudyMinutes)
	}
}

func TestStats(t *testing.T) {
	aggregator := New(fakeTasks{
		{ID: "1", Completed: true},
		{ID: "2", Completed: false},
		{ID: "3", Completed: true},
		{ID: "4", Completed: true},
	}, fakeSessions{})

	stats := aggregator.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Completed)
	assert.InDelta(t, 0.75, stats.Rate, 1e-9)

	empty := New(fakeTasks{}, fakeSessions{}).Stats()
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.Rate)
}
