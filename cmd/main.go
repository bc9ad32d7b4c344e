package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studyplanner/internal/core/analytics"
	"studyplanner/internal/core/datemath"
	"studyplanner/internal/core/ledger"
	"studyplanner/internal/core/model"
	"studyplanner/internal/core/taskstore"
	"studyplanner/internal/core/timekeeper"
	"studyplanner/internal/logging"
	"studyplanner/internal/platform"
	"studyplanner/internal/storage"
	"studyplanner/internal/ui/apptheme"
	"studyplanner/internal/ui/chart"
	"studyplanner/internal/ui/notify"
	"studyplanner/internal/ui/pomodoro"
	"studyplanner/internal/ui/preferences"
	"studyplanner/internal/ui/quotes"
	"studyplanner/internal/ui/tasklist"
	"studyplanner/internal/ui/tray"
	"studyplanner/internal/ui/weekview"
)

const appName = "StudyPlanner"

func main() {
	log := logging.New(appName)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.WithError(err).Error("single instance")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.studyplanner.app")

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.WithError(err).Warn("load settings, using defaults")
	}
	fyneApp.Settings().SetTheme(apptheme.ForName(settings.Theme))

	state, err := storage.LoadState(appName)
	if err != nil {
		log.WithError(err).Warn("load state, starting empty")
	}

	store := taskstore.New(taskstore.Config{})
	store.Replace(state.Tasks)
	sessionLedger := ledger.New(store, ledger.Config{})
	sessionLedger.Replace(state.Sessions)
	aggregator := analytics.New(store, sessionLedger)
	engine := timekeeper.New(settings.WorkMinutes, settings.BreakMinutes, timekeeper.Config{TickInterval: time.Second})
	notifier := notify.New(fyneApp, log, settings.Notifications)

	window := fyneApp.NewWindow(appName)
	window.Resize(fyne.NewSize(920, 660))

	saveState := func() {
		err := storage.SaveState(appName, storage.State{
			Tasks:    store.Tasks(),
			Sessions: sessionLedger.MergedByDate(),
		})
		if err != nil {
			log.WithError(err).Error("save state")
		}
	}

	var onChanged func()

	weeklyChart := chart.NewWeeklyBars(620, 280)
	statsLabel := widget.NewLabel("")
	analyticsTab := container.NewVBox(
		widget.NewLabelWithStyle("Last 7 days", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		weeklyChart.Object(),
		statsLabel,
	)

	pomPanel := pomodoro.New(store, pomodoro.Callbacks{
		OnStart: func() {
			if err := engine.Start(settings.WorkMinutes, settings.BreakMinutes); err != nil {
				dialog.ShowError(err, window)
			}
		},
		OnPause: engine.Pause,
		OnReset: func() {
			if err := engine.Reset(settings.WorkMinutes); err != nil {
				dialog.ShowError(err, window)
			}
		},
	})

	weekPanel := weekview.New(store, window, nil, func(task model.Task) {
		if _, err := store.SetCompleted(task.ID, !task.Completed); err != nil {
			dialog.ShowError(err, window)
			return
		}
		onChanged()
	})

	listPanel := tasklist.New(store, aggregator, window, tasklist.Callbacks{
		OnChanged: func() { onChanged() },
		OnExport: func() {
			saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
				if err != nil || writer == nil {
					return
				}
				defer writer.Close()
				document := storage.State{Tasks: store.Tasks(), Sessions: sessionLedger.MergedByDate()}
				if err := storage.Export(writer, document); err != nil {
					dialog.ShowError(err, window)
				}
			}, window)
			saveDialog.SetFileName(fmt.Sprintf("studyplanner-%s.json", datemath.ISOFormat(time.Now())))
			saveDialog.Show()
		},
		OnImport: func() {
			openDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil || reader == nil {
					return
				}
				defer reader.Close()
				imported, err := storage.Import(reader)
				if err != nil {
					// existing collections stay untouched
					dialog.ShowError(err, window)
					return
				}
				store.Replace(imported.Tasks)
				sessionLedger.Replace(imported.Sessions)
				onChanged()
			}, window)
			openDialog.SetFilter(fynestorage.NewExtensionFileFilter([]string{".json"}))
			openDialog.Show()
		},
		OnClearAll: func() {
			store.Clear()
			sessionLedger.Clear()
			onChanged()
		},
	})

	refreshAll := func() {
		listPanel.Refresh()
		weekPanel.Refresh()
		pomPanel.Refresh()
		pomPanel.SetTodayMinutes(sessionLedger.MinutesOn(time.Now()))
		weeklyChart.SetSeries(aggregator.WeeklySeries(time.Now()))
		stats := aggregator.Stats()
		statsLabel.SetText(fmt.Sprintf("%d of %d tasks completed (%.0f%%)", stats.Completed, stats.Total, stats.Rate*100))
	}
	onChanged = func() {
		saveState()
		refreshAll()
	}

	quoteLabel := widget.NewLabel(quotes.Random())
	footer := container.NewHBox(
		quoteLabel,
		widget.NewButton("New quote", func() {
			quoteLabel.SetText(quotes.Random())
		}),
		widget.NewButtonWithIcon("Theme", theme.ColorPaletteIcon(), func() {
			if settings.Theme == preferences.ThemeDark {
				settings.Theme = preferences.ThemeLight
			} else {
				settings.Theme = preferences.ThemeDark
			}
			fyneApp.Settings().SetTheme(apptheme.ForName(settings.Theme))
			if err := storage.SaveSettings(appName, settings); err != nil {
				log.WithError(err).Error("save settings")
			}
		}),
	)

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Tasks", theme.ListIcon(), listPanel.Object()),
		container.NewTabItemWithIcon("Week", theme.GridIcon(), weekPanel.Object()),
		container.NewTabItemWithIcon("Pomodoro", theme.MediaPlayIcon(), pomPanel.Object()),
		container.NewTabItemWithIcon("Analytics", theme.InfoIcon(), analyticsTab),
	)
	window.SetContent(container.NewBorder(nil, footer, nil, nil, tabs))

	var prefsWindow *preferences.Window
	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.WithError(err).Error("save settings")
		}
		notifier.SetEnabled(settings.Notifications)
		fyneApp.Settings().SetTheme(apptheme.ForName(settings.Theme))
		if !engine.State().Running {
			if err := engine.Reset(settings.WorkMinutes); err != nil {
				log.WithError(err).Warn("apply timer settings")
			}
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnOpen: func() {
				window.Show()
				window.RequestFocus()
			},
			OnToggleTimer: func() {
				if engine.State().Running {
					engine.Pause()
					return
				}
				if err := engine.Start(settings.WorkMinutes, settings.BreakMinutes); err != nil {
					log.WithError(err).Warn("start timer from tray")
				}
			},
			OnResetTimer: func() {
				if err := engine.Reset(settings.WorkMinutes); err != nil {
					log.WithError(err).Warn("reset timer from tray")
				}
			},
			OnPreferences: func() {
				prefsWindow.Show()
			},
			OnQuit: func() {
				engine.Stop()
				fyneApp.Quit()
			},
		})
		window.SetCloseIntercept(func() {
			window.Hide()
		})
	}

	applyTimerState := func(state timekeeper.State) {
		pomPanel.SetState(state)
		if trayManager != nil {
			trayManager.SetRunning(state.Running)
			trayManager.SetStatus(fmt.Sprintf("%s %s", state.Mode.Label(), formatRemaining(state.Remaining)))
		}
	}

	events := engine.Subscribe(8)
	go func() {
		for event := range events {
			event := event
			switch event.Type {
			case timekeeper.EventSessionCompleted:
				fyne.Do(func() {
					if err := sessionLedger.Record(event.Minutes, pomPanel.SelectedTaskID()); err != nil {
						log.WithError(err).Error("record session")
					}
					if event.Mode == timekeeper.ModeWork {
						notifier.Send("Pomodoro complete!", "Time for a break.")
					} else {
						notifier.Send("Break over!", "Back to work!")
					}
					onChanged()
					applyTimerState(engine.State())
				})
			case timekeeper.EventProgress, timekeeper.EventStateChange:
				fyne.Do(func() {
					applyTimerState(timekeeper.State{
						Mode:      event.Mode,
						Remaining: event.Remaining,
						Running:   event.Running,
					})
				})
			}
		}
	}()

	applyTimerState(engine.State())
	refreshAll()
	notifyDueToday(store, notifier)

	window.Show()
	fyneApp.Run()
}

func notifyDueToday(store *taskstore.Store, notifier *notify.Notifier) {
	today := datemath.ISOFormat(time.Now())
	pending := 0
	for _, task := range store.DueOn(today) {
		if !task.Completed {
			pending++
		}
	}
	if pending > 0 {
		notifier.Send("Tasks due today",
			fmt.Sprintf("%d tasks are due today.", pending))
	}
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
