// Package controller renders pipeline progress and results for the CLI.
package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mouse-blink/undefender/internal/adapter"
)

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea) drawing on stderr.
// When useTTY is false, it returns a SimpleUI (plain text tables).
func NewUI(cmd *cobra.Command, useTTY bool) adapter.UI {
	if useTTY {
		return NewTUI(cmd.ErrOrStderr())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is an interactive terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd())) //nolint:gosec // fd fits in int
}
