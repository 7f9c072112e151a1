package cmd

import (
	"io"
	"log/slog"

	"github.com/mouse-blink/undefender/internal/controller"
)

// newCommandLogger writes human-readable text when w is a terminal and JSON
// otherwise.
func newCommandLogger(w io.Writer, verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		options.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if controller.IsTTY(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}

	return slog.New(handler)
}
