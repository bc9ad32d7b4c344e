// Package notify wraps desktop notifications as a best-effort,
// fire-and-forget collaborator. A disabled or unsupported
// notification path degrades to a log line, never an error.
package notify

import (
	"sync"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"
)

// Notifier sends desktop notifications through the fyne app.
type Notifier struct {
	mu      sync.Mutex
	app     fyne.App
	log     *logrus.Logger
	enabled bool
}

// New creates a notifier. A nil app only logs.
func New(app fyne.App, log *logrus.Logger, enabled bool) *Notifier {
	return &Notifier{app: app, log: log, enabled: enabled}
}

// SetEnabled toggles delivery at runtime.
func (notifier *Notifier) SetEnabled(enabled bool) {
	notifier.mu.Lock()
	notifier.enabled = enabled
	notifier.mu.Unlock()
}

// Send emits a notification if enabled.
func (notifier *Notifier) Send(title, body string) {
	notifier.mu.Lock()
	enabled := notifier.enabled
	notifier.mu.Unlock()

	if !enabled || notifier.app == nil {
		notifier.log.WithFields(logrus.Fields{"title": title, "body": body}).
			Debug("notification suppressed")
		return
	}
	notifier.app.SendNotification(fyne.NewNotification(title, body))
	notifier.log.WithField("title", title).Debug("notification sent")
}
