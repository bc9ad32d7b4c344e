package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	workMinutes   *widget.Entry
	breakMinutes  *widget.Entry
	theme         *widget.RadioGroup
	notifications *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("StudyPlanner Settings")

	workMinutes := widget.NewEntry()
	breakMinutes := widget.NewEntry()
	workMinutes.SetText(fmt.Sprintf("%d", settings.WorkMinutes))
	breakMinutes.SetText(fmt.Sprintf("%d", settings.BreakMinutes))

	theme := widget.NewRadioGroup([]string{ThemeDark, ThemeLight}, nil)
	theme.Horizontal = true
	theme.SetSelected(settings.Theme)

	notifications := widget.NewCheck("Desktop notifications", nil)
	notifications.SetChecked(settings.Notifications)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Pomodoro", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work interval"), workMinutes, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break interval"), breakMinutes, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		theme,
		notifications,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 300))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		workMinutes:   workMinutes,
		breakMinutes:  breakMinutes,
		theme:         theme,
		notifications: notifications,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workMinutes.SetText(fmt.Sprintf("%d", settings.WorkMinutes))
	prefs.breakMinutes.SetText(fmt.Sprintf("%d", settings.BreakMinutes))
	prefs.theme.SetSelected(settings.Theme)
	prefs.notifications.SetChecked(settings.Notifications)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workMinutes.Text); ok {
		settings.WorkMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.breakMinutes.Text); ok {
		settings.BreakMinutes = minutes
	}
	if ValidTheme(prefs.theme.Selected) {
		settings.Theme = prefs.theme.Selected
	}
	settings.Notifications = prefs.notifications.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 1 {
		return 0, false
	}
	return parsed, true
}
