// Package tasklist implements the list view tab: the add/edit form,
// filtering and sorting controls, the task cards and the completion
// summary.
package tasklist

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studyplanner/internal/core/analytics"
	"studyplanner/internal/core/model"
	"studyplanner/internal/core/taskstore"
)

const allCategories = "All categories"

var sortLabels = map[string]taskstore.SortKey{
	"Due date": taskstore.SortDueDate,
	"Priority": taskstore.SortPriority,
	"Name":     taskstore.SortName,
}

// Callbacks defines the panel's hooks into the application shell.
type Callbacks struct {
	OnChanged  func()
	OnExport   func()
	OnImport   func()
	OnClearAll func()
}

// Panel is the list view tab.
type Panel struct {
	store     *taskstore.Store
	stats     *analytics.Aggregator
	window    fyne.Window
	callbacks Callbacks

	nameEntry        *widget.Entry
	categoryEntry    *widget.Entry
	dateEntry        *widget.Entry
	prioritySelect   *widget.Select
	recurrenceSelect *widget.Select
	addButton        *widget.Button
	updateButton     *widget.Button
	cancelButton     *widget.Button
	editingID        string

	searchEntry    *widget.Entry
	categoryFilter *widget.Select
	sortSelect     *widget.Select

	cards        *fyne.Container
	summaryLabel *widget.Label
	progress     *widget.ProgressBar
	root         fyne.CanvasObject
}

// New creates the list view panel.
func New(store *taskstore.Store, stats *analytics.Aggregator, window fyne.Window, callbacks Callbacks) *Panel {
	panel := &Panel{
		store:     store,
		stats:     stats,
		window:    window,
		callbacks: callbacks,
	}

	panel.nameEntry = widget.NewEntry()
	panel.nameEntry.SetPlaceHolder("Task name")
	panel.categoryEntry = widget.NewEntry()
	panel.categoryEntry.SetPlaceHolder("Category (General)")
	panel.dateEntry = widget.NewEntry()
	panel.dateEntry.SetPlaceHolder("Due date YYYY-MM-DD")
	panel.prioritySelect = widget.NewSelect([]string{
		string(model.PriorityHigh), string(model.PriorityMedium), string(model.PriorityLow),
	}, nil)
	panel.prioritySelect.SetSelected(string(model.PriorityLow))
	panel.recurrenceSelect = widget.NewSelect([]string{
		string(model.RecurrenceNone), string(model.RecurrenceDaily),
		string(model.RecurrenceWeekly), string(model.RecurrenceMonthly),
	}, nil)
	panel.recurrenceSelect.SetSelected(string(model.RecurrenceNone))

	panel.addButton = widget.NewButtonWithIcon("Add task", theme.ContentAddIcon(), panel.handleAdd)
	panel.updateButton = widget.NewButton("Save changes", panel.handleUpdate)
	panel.cancelButton = widget.NewButton("Cancel", panel.cancelEdit)
	panel.updateButton.Hide()
	panel.cancelButton.Hide()

	panel.searchEntry = widget.NewEntry()
	panel.searchEntry.SetPlaceHolder("Search...")
	panel.categoryFilter = widget.NewSelect([]string{allCategories}, nil)
	panel.categoryFilter.SetSelected(allCategories)
	panel.sortSelect = widget.NewSelect([]string{"Due date", "Priority", "Name"}, nil)
	panel.sortSelect.SetSelected("Due date")

	panel.cards = container.NewVBox()
	panel.summaryLabel = widget.NewLabel("0 tasks")
	panel.progress = widget.NewProgressBar()

	form := container.NewVBox(
		panel.nameEntry,
		container.NewGridWithColumns(2, panel.categoryEntry, panel.dateEntry),
		container.NewGridWithColumns(2, panel.prioritySelect, panel.recurrenceSelect),
		container.NewHBox(panel.addButton, panel.updateButton, panel.cancelButton),
	)

	filters := container.NewGridWithColumns(3, panel.searchEntry, panel.categoryFilter, panel.sortSelect)

	tools := container.NewHBox(
		widget.NewButtonWithIcon("Export", theme.DownloadIcon(), func() {
			if callbacks.OnExport != nil {
				callbacks.OnExport()
			}
		}),
		widget.NewButtonWithIcon("Import", theme.UploadIcon(), func() {
			if callbacks.OnImport != nil {
				callbacks.OnImport()
			}
		}),
		widget.NewButtonWithIcon("Clear all", theme.DeleteIcon(), panel.handleClearAll),
	)

	summary := container.NewVBox(panel.summaryLabel, panel.progress, tools)

	panel.root = container.NewBorder(
		container.NewVBox(form, widget.NewSeparator(), filters),
		summary,
		nil, nil,
		container.NewVScroll(panel.cards),
	)

	// wired after construction so the initial SetSelected calls above
	// cannot refresh a half-built panel
	panel.searchEntry.OnChanged = func(string) { panel.Refresh() }
	panel.categoryFilter.OnChanged = func(string) { panel.Refresh() }
	panel.sortSelect.OnChanged = func(string) { panel.Refresh() }

	panel.Refresh()
	return panel
}

// Object returns the renderable panel.
func (panel *Panel) Object() fyne.CanvasObject {
	return panel.root
}

// Refresh rebuilds the cards, filter options and summary from the
// current store contents.
func (panel *Panel) Refresh() {
	panel.refreshCategoryOptions()

	visible := panel.store.Query(panel.currentFilter())
	panel.cards.Objects = nil
	if len(visible) == 0 {
		panel.cards.Add(widget.NewLabel("No tasks found — add one above."))
	}
	for index, task := range visible {
		panel.cards.Add(panel.buildCard(task, index, visible))
	}
	panel.cards.Refresh()

	stats := panel.stats.Stats()
	panel.summaryLabel.SetText(fmt.Sprintf("%d tasks, %d completed", stats.Total, stats.Completed))
	panel.progress.SetValue(stats.Rate)
}

func (panel *Panel) currentFilter() taskstore.Filter {
	category := panel.categoryFilter.Selected
	if category == allCategories {
		category = ""
	}
	return taskstore.Filter{
		Category: category,
		Search:   panel.searchEntry.Text,
		SortBy:   sortLabels[panel.sortSelect.Selected],
	}
}

func (panel *Panel) refreshCategoryOptions() {
	options := append([]string{allCategories}, panel.store.Categories()...)
	selected := panel.categoryFilter.Selected
	panel.categoryFilter.Options = options
	if !contains(options, selected) {
		panel.categoryFilter.Selected = allCategories
	}
	panel.categoryFilter.Refresh()
}

func (panel *Panel) buildCard(task model.Task, index int, visible []model.Task) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(task.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: !task.Completed, Italic: task.Completed})
	meta := fmt.Sprintf("%s • %s • %s", task.Category, task.DueDate, task.Priority)
	if task.Recurrence != model.RecurrenceNone {
		meta += fmt.Sprintf(" • repeats %s", task.Recurrence)
	}
	if task.StudyMinutes > 0 {
		meta += fmt.Sprintf(" • %d min studied", task.StudyMinutes)
	}
	metaLabel := widget.NewLabel(meta)

	toggleIcon := theme.ConfirmIcon()
	if task.Completed {
		toggleIcon = theme.ViewRefreshIcon()
	}
	toggle := widget.NewButtonWithIcon("", toggleIcon, func() {
		panel.handleToggle(task)
	})
	edit := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		panel.startEdit(task)
	})
	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		panel.handleDelete(task)
	})

	moveUp := widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() {
		panel.store.Reorder(task.ID, visible[index-1].ID)
		panel.changed()
	})
	if index == 0 {
		moveUp.Disable()
	}

	actions := container.NewHBox(moveUp, toggle, edit, remove)
	return container.NewBorder(nil, widget.NewSeparator(), nil, actions,
		container.NewVBox(title, metaLabel))
}

func (panel *Panel) formFields() taskstore.Fields {
	return taskstore.Fields{
		Name:       panel.nameEntry.Text,
		Category:   panel.categoryEntry.Text,
		DueDate:    panel.dateEntry.Text,
		Priority:   model.Priority(panel.prioritySelect.Selected),
		Recurrence: model.Recurrence(panel.recurrenceSelect.Selected),
	}
}

func (panel *Panel) handleAdd() {
	if _, err := panel.store.Add(panel.formFields()); err != nil {
		dialog.ShowError(err, panel.window)
		return
	}
	panel.clearForm()
	panel.changed()
}

func (panel *Panel) handleUpdate() {
	if panel.editingID == "" {
		return
	}
	if _, err := panel.store.Update(panel.editingID, panel.formFields()); err != nil {
		dialog.ShowError(err, panel.window)
		return
	}
	panel.cancelEdit()
	panel.changed()
}

func (panel *Panel) handleToggle(task model.Task) {
	if _, err := panel.store.SetCompleted(task.ID, !task.Completed); err != nil {
		dialog.ShowError(err, panel.window)
		return
	}
	panel.changed()
}

func (panel *Panel) handleDelete(task model.Task) {
	dialog.ShowConfirm("Delete task", fmt.Sprintf("Delete %q?", task.Name), func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := panel.store.Remove(task.ID); err != nil {
			dialog.ShowError(err, panel.window)
			return
		}
		if panel.editingID == task.ID {
			panel.cancelEdit()
		}
		panel.changed()
	}, panel.window)
}

func (panel *Panel) handleClearAll() {
	if panel.callbacks.OnClearAll == nil {
		return
	}
	dialog.ShowConfirm("Clear all", "Erase all tasks and sessions?", func(confirmed bool) {
		if confirmed {
			panel.callbacks.OnClearAll()
		}
	}, panel.window)
}

func (panel *Panel) startEdit(task model.Task) {
	panel.editingID = task.ID
	panel.nameEntry.SetText(task.Name)
	panel.categoryEntry.SetText(task.Category)
	panel.dateEntry.SetText(task.DueDate)
	panel.prioritySelect.SetSelected(string(task.Priority))
	panel.recurrenceSelect.SetSelected(string(task.Recurrence))
	panel.addButton.Hide()
	panel.updateButton.Show()
	panel.cancelButton.Show()
}

func (panel *Panel) cancelEdit() {
	panel.editingID = ""
	panel.clearForm()
	panel.addButton.Show()
	panel.updateButton.Hide()
	panel.cancelButton.Hide()
}

func (panel *Panel) clearForm() {
	panel.nameEntry.SetText("")
	panel.categoryEntry.SetText("")
	panel.dateEntry.SetText("")
	panel.prioritySelect.SetSelected(string(model.PriorityLow))
	panel.recurrenceSelect.SetSelected(string(model.RecurrenceNone))
}

func (panel *Panel) changed() {
	if panel.callbacks.OnChanged != nil {
		panel.callbacks.OnChanged()
	} else {
		panel.Refresh()
	}
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
