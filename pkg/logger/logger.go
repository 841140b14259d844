// Package logger wraps logrus with the service's defaults.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a logrus logger configured for the service.
type Logger struct {
	*logrus.Logger
}

// New builds a logger at level ("debug", "info", ...). Development uses the
// text formatter; everything else logs JSON.
func New(level, env string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if env == "development" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Logger{Logger: l}
}

// NewDefault returns an info-level JSON logger.
func NewDefault() *Logger {
	return New("info", "production")
}

// Discard returns a logger that drops everything, for tests.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}

// WithFields returns an entry carrying fields.
func (l *Logger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}

// ForMatch returns an entry tagged with the match ID.
func (l *Logger) ForMatch(matchID string) *logrus.Entry {
	return l.Logger.WithField("match_id", matchID)
}
