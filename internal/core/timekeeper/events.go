package timekeeper

import "time"

// Mode represents the current interval kind.
type Mode string

const (
	ModeWork  Mode = "work"
	ModeBreak Mode = "break"
)

// Opposite returns the other mode.
func (mode Mode) Opposite() Mode {
	if mode == ModeWork {
		return ModeBreak
	}
	return ModeWork
}

// Label returns the display name of the mode.
func (mode Mode) Label() string {
	if mode == ModeWork {
		return "Work"
	}
	return "Break"
}

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange      EventType = "state_change"
	EventProgress         EventType = "progress"
	EventSessionCompleted EventType = "session_completed"
)

// Event represents an engine update for observers. Minutes is only
// set on EventSessionCompleted and carries the credited duration of
// the interval that just finished; Mode is then the finished mode.
type Event struct {
	Type      EventType
	Mode      Mode
	Remaining time.Duration
	Running   bool
	Minutes   int
	At        time.Time
}
