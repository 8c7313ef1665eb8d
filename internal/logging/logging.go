// Package logging builds the leveled stderr logger used by the CLI.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "jtask"

// New returns a logger writing to w. Debug lines are only emitted when debug is set.
func New(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
