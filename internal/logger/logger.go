// Package logger builds the zerolog logger used by wpsc commands.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to stderr. Warnings are shown by
// default; verbose enables debug output.
func New(verbose, noColor bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, verbose, noColor)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, verbose, noColor bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
