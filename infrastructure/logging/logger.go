// Package logging holds the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the global logger instance
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetVerbosity maps the --verbose levels onto logrus: 0 keeps info, anything
// above enables debug entries (raw switch output is logged at debug too).
func SetVerbosity(level int) {
	if level > 0 {
		Logger.SetLevel(logrus.DebugLevel)
		return
	}
	Logger.SetLevel(logrus.InfoLevel)
}

// SetOutput sets the log output destination
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetJSONFormat enables JSON log format
func SetJSONFormat() {
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
}

// WithDevice returns a logger with device context
func WithDevice(target string) *logrus.Entry {
	return Logger.WithField("device", target)
}

// WithRun returns a logger with run and device context
func WithRun(runID, target string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"run":    runID,
		"device": target,
	})
}
