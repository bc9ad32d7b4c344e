// Package pomodoro implements the timer tab: the countdown display,
// the transport buttons and the task attribution picker.
package pomodoro

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studyplanner/internal/core/model"
	"studyplanner/internal/core/taskstore"
	"studyplanner/internal/core/timekeeper"
)

const noTask = "(no task)"

// Callbacks defines the transport actions, wired by the shell.
type Callbacks struct {
	OnStart func()
	OnPause func()
	OnReset func()
}

// Panel is the pomodoro tab.
type Panel struct {
	store     *taskstore.Store
	callbacks Callbacks

	timeLabel   *canvas.Text
	modeLabel   *widget.Label
	todayLabel  *widget.Label
	startButton *widget.Button
	taskSelect  *widget.Select
	taskIDs     map[string]string
	root        fyne.CanvasObject
}

// New creates the pomodoro panel.
func New(store *taskstore.Store, callbacks Callbacks) *Panel {
	panel := &Panel{
		store:     store,
		callbacks: callbacks,
		taskIDs:   map[string]string{},
	}

	panel.timeLabel = canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	panel.timeLabel.Alignment = fyne.TextAlignCenter
	panel.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	panel.timeLabel.TextSize = 48

	panel.modeLabel = widget.NewLabelWithStyle("Work", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	panel.todayLabel = widget.NewLabel("Today: 0 min")
	panel.todayLabel.Alignment = fyne.TextAlignCenter

	panel.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if callbacks.OnStart != nil {
			callbacks.OnStart()
		}
	})
	pauseButton := widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		if callbacks.OnPause != nil {
			callbacks.OnPause()
		}
	})
	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if callbacks.OnReset != nil {
			callbacks.OnReset()
		}
	})

	panel.taskSelect = widget.NewSelect([]string{noTask}, nil)
	panel.taskSelect.SetSelected(noTask)

	panel.root = container.NewVBox(
		widget.NewLabelWithStyle("Pomodoro", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		panel.timeLabel,
		panel.modeLabel,
		container.NewHBox(panel.startButton, pauseButton, resetButton),
		widget.NewSeparator(),
		widget.NewLabel("Attribute session to:"),
		panel.taskSelect,
		panel.todayLabel,
	)

	panel.Refresh()
	return panel
}

// Object returns the renderable panel.
func (panel *Panel) Object() fyne.CanvasObject {
	return panel.root
}

// SetState updates the countdown display from an engine snapshot.
func (panel *Panel) SetState(state timekeeper.State) {
	panel.timeLabel.Text = formatRemaining(state.Remaining)
	panel.timeLabel.Refresh()
	panel.modeLabel.SetText(state.Mode.Label())
	if state.Running {
		panel.startButton.Disable()
	} else {
		panel.startButton.Enable()
	}
}

// SetTodayMinutes updates the study total for today.
func (panel *Panel) SetTodayMinutes(minutes int) {
	panel.todayLabel.SetText(fmt.Sprintf("Today: %d min", minutes))
}

// SelectedTaskID returns the id of the task chosen for attribution,
// or empty for none.
func (panel *Panel) SelectedTaskID() string {
	return panel.taskIDs[panel.taskSelect.Selected]
}

// Refresh rebuilds the attribution picker from the store.
func (panel *Panel) Refresh() {
	options := []string{noTask}
	panel.taskIDs = map[string]string{}
	for _, task := range panel.store.Tasks() {
		option := taskOption(task)
		for duplicate := 2; ; duplicate++ {
			if _, taken := panel.taskIDs[option]; !taken {
				break
			}
			option = fmt.Sprintf("%s (%d)", taskOption(task), duplicate)
		}
		panel.taskIDs[option] = task.ID
		options = append(options, option)
	}

	selected := panel.taskSelect.Selected
	panel.taskSelect.Options = options
	if _, known := panel.taskIDs[selected]; !known && selected != noTask {
		panel.taskSelect.Selected = noTask
	}
	panel.taskSelect.Refresh()
}

func taskOption(task model.Task) string {
	return fmt.Sprintf("%s — %s", task.Name, task.DueDate)
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
