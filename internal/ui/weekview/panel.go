// Package weekview implements the weekly calendar tab: seven
// Monday-start columns with the tasks due each day.
package weekview

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"studyplanner/internal/core/datemath"
	"studyplanner/internal/core/model"
	"studyplanner/internal/core/taskstore"
)

// Panel is the weekly calendar tab.
type Panel struct {
	store    *taskstore.Store
	window   fyne.Window
	onToggle func(task model.Task)
	now      func() time.Time
	grid     *fyne.Container
	root     fyne.CanvasObject
}

// New creates the week view. onToggle runs after the user confirms
// toggling a task from a day column.
func New(store *taskstore.Store, window fyne.Window, now func() time.Time, onToggle func(task model.Task)) *Panel {
	if now == nil {
		now = time.Now
	}
	panel := &Panel{
		store:    store,
		window:   window,
		onToggle: onToggle,
		now:      now,
	}
	panel.grid = container.NewGridWithColumns(7)
	panel.root = container.NewVScroll(panel.grid)
	panel.Refresh()
	return panel
}

// Object returns the renderable panel.
func (panel *Panel) Object() fyne.CanvasObject {
	return panel.root
}

// Refresh rebuilds the seven day columns for the current week.
func (panel *Panel) Refresh() {
	today := panel.now()
	monday := datemath.StartOfWeek(today)

	panel.grid.Objects = nil
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		panel.grid.Add(panel.buildColumn(day, datemath.ISOFormat(day) == datemath.ISOFormat(today)))
	}
	panel.grid.Refresh()
}

func (panel *Panel) buildColumn(day time.Time, isToday bool) fyne.CanvasObject {
	header := fmt.Sprintf("%s %d", day.Weekday().String()[:3], day.Day())
	if isToday {
		header += " •"
	}
	column := container.NewVBox(
		widget.NewLabelWithStyle(header, fyne.TextAlignCenter, fyne.TextStyle{Bold: isToday}),
		widget.NewSeparator(),
	)

	for _, task := range panel.store.DueOn(datemath.ISOFormat(day)) {
		column.Add(panel.buildEntry(task))
	}
	return column
}

func (panel *Panel) buildEntry(task model.Task) fyne.CanvasObject {
	label := fmt.Sprintf("%s (%s)", task.Name, task.Priority)
	if task.Completed {
		label = "✓ " + label
	}
	entry := widget.NewButton(label, func() {
		verb := "done"
		if task.Completed {
			verb = "not done"
		}
		dialog.ShowConfirm("Update task",
			fmt.Sprintf("Mark %q as %s?", task.Name, verb),
			func(confirmed bool) {
				if confirmed && panel.onToggle != nil {
					panel.onToggle(task)
				}
			}, panel.window)
	})
	entry.Importance = widget.LowImportance
	return entry
}
