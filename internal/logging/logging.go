// Package logging builds the console logger shared by commands and the
// task service.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

const prefix = "rptodo"

// New returns a text logger writing to w. Debug output is only shown when
// verbose is set; otherwise warnings and errors get through.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
