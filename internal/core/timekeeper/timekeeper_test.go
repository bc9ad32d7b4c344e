package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplanner/internal/core/model"
)

// markRunning puts the engine into the ticking state without
// launching the background goroutine, so tests can drive tick
// deterministically.
func markRunning(engine *Engine) {
	engine.mu.Lock()
	engine.running = true
	engine.stopCh = make(chan struct{})
	engine.mu.Unlock()
}

func drain(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var collected []Event
	for {
		select {
		case event := <-events:
			collected = append(collected, event)
		default:
			return collected
		}
	}
}

func sessionEvents(events []Event) []Event {
	var completed []Event
	for _, event := range events {
		if event.Type == EventSessionCompleted {
			completed = append(completed, event)
		}
	}
	return completed
}

func TestNewSeedsWorkMode(t *testing.T) {
	engine := New(25, 5, Config{})
	state := engine.State()
	assert.Equal(t, ModeWork, state.Mode)
	assert.Equal(t, 25*time.Minute, state.Remaining)
	assert.False(t, state.Running)
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	engine := New(25, 5, Config{})
	require.ErrorIs(t, engine.Start(0, 5), model.ErrInvalidConfig)
	require.ErrorIs(t, engine.Start(25, 0), model.ErrInvalidConfig)
	require.ErrorIs(t, engine.Start(-1, -1), model.ErrInvalidConfig)
	assert.False(t, engine.State().Running)
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	engine := New(25, 5, Config{TickInterval: time.Hour})
	require.NoError(t, engine.Start(25, 5))
	defer engine.Stop()

	first := engine.stopCh
	require.NoError(t, engine.Start(10, 2))
	assert.True(t, first == engine.stopCh, "second start must not replace the ticker")
	// durations from the second call are ignored while running
	assert.Equal(t, 25*time.Minute, engine.State().Remaining)
}

func TestStartReseedsExhaustedCountdown(t *testing.T) {
	engine := New(25, 5, Config{TickInterval: time.Hour})
	engine.remaining = 0
	require.NoError(t, engine.Start(25, 5))
	defer engine.Stop()

	state := engine.State()
	assert.True(t, state.Running)
	assert.Equal(t, 25*time.Minute, state.Remaining)
}

func TestWorkExhaustionEmitsOneSessionAndFlipsToBreak(t *testing.T) {
	engine := New(25, 5, Config{})
	events := engine.Subscribe(16)
	markRunning(engine)
	engine.remaining = time.Second

	engine.tick(time.Now())

	completed := sessionEvents(drain(t, events))
	require.Len(t, completed, 1)
	assert.Equal(t, 25, completed[0].Minutes)
	assert.Equal(t, ModeWork, completed[0].Mode)

	state := engine.State()
	assert.Equal(t, ModeBreak, state.Mode)
	assert.Equal(t, 5*time.Minute, state.Remaining)
	assert.False(t, state.Running, "engine must not auto-chain into the break")

	// a tick on a stopped engine does nothing
	engine.tick(time.Now())
	assert.Empty(t, sessionEvents(drain(t, events)))
}

func TestBreakExhaustionCreditsBreakMinutes(t *testing.T) {
	engine := New(25, 5, Config{})
	events := engine.Subscribe(16)
	engine.mode = ModeBreak
	markRunning(engine)
	engine.remaining = time.Second

	engine.tick(time.Now())

	completed := sessionEvents(drain(t, events))
	require.Len(t, completed, 1)
	assert.Equal(t, 5, completed[0].Minutes)
	assert.Equal(t, ModeBreak, completed[0].Mode)
	assert.Equal(t, ModeWork, engine.State().Mode)
}

func TestTickMidIntervalEmitsProgressOnly(t *testing.T) {
	engine := New(25, 5, Config{})
	events := engine.Subscribe(16)
	markRunning(engine)

	engine.tick(time.Now())

	collected := drain(t, events)
	require.NotEmpty(t, collected)
	assert.Empty(t, sessionEvents(collected))
	assert.Equal(t, EventProgress, collected[0].Type)
	assert.Equal(t, 25*time.Minute-time.Second, collected[0].Remaining)
}

func TestPausePreservesRemaining(t *testing.T) {
	engine := New(25, 5, Config{})
	events := engine.Subscribe(16)
	markRunning(engine)
	engine.remaining = 10 * time.Minute

	engine.Pause()
	engine.Pause() // idempotent

	state := engine.State()
	assert.False(t, state.Running)
	assert.Equal(t, 10*time.Minute, state.Remaining)
	assert.Empty(t, sessionEvents(drain(t, events)), "pause must not complete a session")
}

func TestResetForcesWorkMode(t *testing.T) {
	engine := New(25, 5, Config{})
	events := engine.Subscribe(16)
	engine.mode = ModeBreak
	markRunning(engine)
	engine.remaining = 90 * time.Second

	require.NoError(t, engine.Reset(30))

	state := engine.State()
	assert.False(t, state.Running)
	assert.Equal(t, ModeWork, state.Mode)
	assert.Equal(t, 30*time.Minute, state.Remaining)
	assert.Empty(t, sessionEvents(drain(t, events)), "reset must not complete a session")

	require.ErrorIs(t, engine.Reset(0), model.ErrInvalidConfig)
}

func TestCreditedMinutesRoundsWithFloorOfOne(t *testing.T) {
	assert.Equal(t, 25, creditedMinutes(25*time.Minute))
	assert.Equal(t, 1, creditedMinutes(30*time.Second))
	assert.Equal(t, 1, creditedMinutes(10*time.Second))
	assert.Equal(t, 2, creditedMinutes(90*time.Second))
}
