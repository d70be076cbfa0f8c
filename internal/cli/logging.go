package cli

import (
	"io"
	"log/slog"
)

// newLogger builds the text logger used by a command. Verbose forces
// debug level; otherwise the configured level applies.
func newLogger(w io.Writer, verbose bool, level slog.Level) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
