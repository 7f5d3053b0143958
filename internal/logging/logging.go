// Package logging builds the slog logger shared by every command.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Verbose lowers the level to debug,
// which surfaces per-specifier resolution failures and unreadable files.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Install makes the logger returned by New the process default and returns it.
func Install(w io.Writer, verbose bool) *slog.Logger {
	logger := New(w, verbose)
	slog.SetDefault(logger)
	return logger
}
