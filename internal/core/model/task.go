package model

import "time"

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank returns the sort weight of a priority. High sorts first,
// unknown values last.
func (priority Priority) Rank() int {
	switch priority {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 9
}

// Valid reports whether the priority is one of the known values.
func (priority Priority) Valid() bool {
	return priority == PriorityHigh || priority == PriorityMedium || priority == PriorityLow
}

// Recurrence is the rule for spawning the next occurrence of a task
// after it is completed.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Valid reports whether the recurrence is one of the known values.
func (recurrence Recurrence) Valid() bool {
	switch recurrence {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Task is a single planner entry. DueDate is an ISO calendar date
// (YYYY-MM-DD) with no time component. StudyMinutes accumulates
// pomodoro minutes attributed to this task and is only ever written
// through the store's crediting API.
type Task struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	DueDate      string     `json:"date"`
	Priority     Priority   `json:"priority"`
	Recurrence   Recurrence `json:"repeat"`
	Completed    bool       `json:"completed"`
	CreatedAt    time.Time  `json:"createdAt"`
	StudyMinutes int        `json:"studyMinutes,omitempty"`
}
