package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// NewLogger builds a console logger for the given level name ("debug", "info", ...).
// Unknown level names fall back to info.
func NewLogger(level string, color bool, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl := log.InfoLevel
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
		lvl = log.ParseLevel(strings.ToLower(level))
	}

	return &log.Logger{
		Level: lvl,
		Writer: &log.ConsoleWriter{
			ColorOutput:    color,
			EndWithMessage: true,
			Writer:         w,
		},
	}
}

// Discard returns a logger that drops every entry. Used by tests.
func Discard() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}
