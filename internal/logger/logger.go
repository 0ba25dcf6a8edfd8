// Package logger builds the structured loggers used across the viewer.
package logger

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Prefix tags every line written by the viewer.
const Prefix = "gridview"

// New creates a logger writing to w at the named level ("debug", "info", "warn", "error").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           lvl,
		ReportTimestamp: true,
		ReportCaller:    true,
	}), nil
}

// Discard returns a logger that drops everything. Components fall back to it
// when no logger is configured.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
