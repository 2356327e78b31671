// internal/logging/logging.go

package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the logger type carried through service constructors
type Logger = *logrus.Logger

// Fields represents structured logging fields
type Fields = logrus.Fields

// New creates a JSON logger with the level taken from LOG_LEVEL
// (debug|info|warn|error, default info)
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))
	return logger
}

// NewWithService creates a logger that tags every entry with a service name
func NewWithService(serviceName string) *logrus.Logger {
	logger := New()
	logger.AddHook(&serviceHook{name: serviceName})
	return logger
}

func parseLevel(s string) logrus.Level {
	switch strings.ToLower(s) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

type serviceHook struct {
	name string
}

func (h *serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *serviceHook) Fire(entry *logrus.Entry) error {
	entry.Data["service"] = h.name
	return nil
}
