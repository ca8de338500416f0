// ABOUTME: Logger implementation backed by sirupsen/logrus
// ABOUTME: Maps the core's message plus fields calls onto logrus entries

package logrus

import (
	"fmt"
	"io"
	"os"
	"strings"

	lr "github.com/sirupsen/logrus"
)

// Formats accepted by New
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger implements the Logger interface using logrus
type Logger struct {
	entry *lr.Entry
}

// New creates a logger writing to out at the given level and format.
// A nil out writes to stderr.
func New(out io.Writer, level, format string) (*Logger, error) {
	if out == nil {
		out = os.Stderr
	}

	lvl, err := lr.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	base := lr.New()
	base.SetOutput(out)
	base.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", FormatText:
		base.SetFormatter(&lr.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		base.SetFormatter(&lr.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return Wrap(base), nil
}

// Wrap adapts an existing logrus logger
func Wrap(base *lr.Logger) *Logger {
	return &Logger{entry: lr.NewEntry(base)}
}

// With returns a logger that adds fields to every message
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(lr.Fields(fields))}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(lr.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(lr.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(lr.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(lr.Fields(fields)).Error(msg)
}
