// Package timekeeper implements the pomodoro work/break state
// machine. The engine owns the countdown and the recurring tick and
// reports everything else through observer channels; attributing the
// finished minutes to the ledger is the caller's concern.
package timekeeper

import (
	"fmt"
	"sync"
	"time"

	"studyplanner/internal/core/model"
)

// Config contains runtime options for the Engine.
type Config struct {
	TickInterval time.Duration
}

// Engine is the work/break countdown state machine. An exhausted
// interval emits exactly one EventSessionCompleted, flips the mode,
// reseeds the countdown and stops; the engine never auto-chains into
// the next interval.
type Engine struct {
	mu            sync.Mutex
	options       Config
	mode          Mode
	remaining     time.Duration
	workDuration  time.Duration
	breakDuration time.Duration
	running       bool
	events        []chan Event
	stopCh        chan struct{}
}

// State is a read-only snapshot for display.
type State struct {
	Mode      Mode
	Remaining time.Duration
	Running   bool
}

// New creates an Engine seeded with the given durations, stopped, in
// work mode. Non-positive durations fall back to 25/5 minutes.
func New(workMinutes, breakMinutes int, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if workMinutes <= 0 {
		workMinutes = 25
	}
	if breakMinutes <= 0 {
		breakMinutes = 5
	}

	engine := &Engine{
		options:       options,
		mode:          ModeWork,
		workDuration:  time.Duration(workMinutes) * time.Minute,
		breakDuration: time.Duration(breakMinutes) * time.Minute,
	}
	engine.remaining = engine.workDuration
	return engine
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Start begins ticking with the given durations. Starting a running
// engine is a no-op and never creates a second ticker. A countdown
// that was exhausted for the current mode is reseeded from the
// matching duration.
func (engine *Engine) Start(workMinutes, breakMinutes int) error {
	if workMinutes < 1 || breakMinutes < 1 {
		return fmt.Errorf("work %d min, break %d min: %w", workMinutes, breakMinutes, model.ErrInvalidConfig)
	}

	engine.mu.Lock()
	if engine.running {
		engine.mu.Unlock()
		return nil
	}
	engine.workDuration = time.Duration(workMinutes) * time.Minute
	engine.breakDuration = time.Duration(breakMinutes) * time.Minute
	if engine.remaining <= 0 {
		engine.remaining = engine.durationForLocked(engine.mode)
	}
	engine.running = true
	engine.stopCh = make(chan struct{})
	stopCh := engine.stopCh
	engine.emitLocked(engine.stateEventLocked())
	engine.mu.Unlock()

	go engine.run(stopCh)
	return nil
}

// Pause stops ticking and preserves the countdown. Idempotent.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	if !engine.running {
		engine.mu.Unlock()
		return
	}
	engine.running = false
	close(engine.stopCh)
	engine.emitLocked(engine.stateEventLocked())
	engine.mu.Unlock()
}

// Reset stops ticking and forces work mode with a full countdown.
func (engine *Engine) Reset(workMinutes int) error {
	if workMinutes < 1 {
		return fmt.Errorf("work %d min: %w", workMinutes, model.ErrInvalidConfig)
	}

	engine.mu.Lock()
	if engine.running {
		engine.running = false
		close(engine.stopCh)
	}
	engine.mode = ModeWork
	engine.workDuration = time.Duration(workMinutes) * time.Minute
	engine.remaining = engine.workDuration
	engine.emitLocked(engine.stateEventLocked())
	engine.mu.Unlock()
	return nil
}

// Stop terminates ticking and closes all observer channels.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if engine.running {
		engine.running = false
		close(engine.stopCh)
	}
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// State returns a display snapshot.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return State{Mode: engine.mode, Remaining: engine.remaining, Running: engine.running}
}

func (engine *Engine) run(stopCh chan struct{}) {
	ticker := time.NewTicker(engine.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			engine.tick(tickTime)
		}
	}
}

func (engine *Engine) tick(tickTime time.Time) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.running {
		return
	}

	engine.remaining -= engine.options.TickInterval
	if engine.remaining > 0 {
		engine.emitLocked(Event{
			Type:      EventProgress,
			Mode:      engine.mode,
			Remaining: engine.remaining,
			Running:   true,
			At:        tickTime,
		})
		return
	}

	finished := engine.mode
	minutes := creditedMinutes(engine.durationForLocked(finished))

	engine.mode = finished.Opposite()
	engine.remaining = engine.durationForLocked(engine.mode)
	engine.running = false
	close(engine.stopCh)

	engine.emitLocked(Event{
		Type:    EventSessionCompleted,
		Mode:    finished,
		Minutes: minutes,
		At:      tickTime,
	})
	engine.emitLocked(engine.stateEventLocked())
}

func (engine *Engine) durationForLocked(mode Mode) time.Duration {
	if mode == ModeBreak {
		return engine.breakDuration
	}
	return engine.workDuration
}

func (engine *Engine) stateEventLocked() Event {
	return Event{
		Type:      EventStateChange,
		Mode:      engine.mode,
		Remaining: engine.remaining,
		Running:   engine.running,
		At:        time.Now(),
	}
}

func creditedMinutes(duration time.Duration) int {
	minutes := int((duration + time.Minute/2) / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
