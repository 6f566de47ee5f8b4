// Package logging configures the process-wide slog logger. Every
// binary in this repo calls SetupJSON once at startup so request
// lines, migration output and shutdown messages share one JSON stream
// on stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// SetupJSON installs a JSON handler on slog's default logger,
// filtering records below level.
func SetupJSON(level slog.Level) {
	slog.SetDefault(NewJSON(os.Stdout, level))
}

// NewJSON builds a logger with a JSON handler writing to w. Split out
// from SetupJSON so tests can capture the stream.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
	)
}
