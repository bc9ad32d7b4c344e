// Package logging configures the shared structured logger.
package logging

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a configured logger for the application. The level can
// be overridden with the LOG_LEVEL environment variable.
func New(appName string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	logger.SetLevel(logrus.InfoLevel)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(parsed)
		}
	}

	return logger.WithField("app", appName).Logger
}
