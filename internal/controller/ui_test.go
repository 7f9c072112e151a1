package controller

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewUI_TTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetErr(&bytes.Buffer{})

	ui := NewUI(cmd, true)

	if _, ok := ui.(*TUI); !ok {
		t.Errorf("NewUI(true) returned %T, want *TUI", ui)
	}
}

func TestNewUI_NonTTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, false)

	if _, ok := ui.(*SimpleUI); !ok {
		t.Errorf("NewUI(false) returned %T, want *SimpleUI", ui)
	}
}

func TestIsTTY_WithBuffer(t *testing.T) {
	var buf bytes.Buffer

	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) = true, want false")
	}
}

func TestIsTTY_WithRegularFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "undefender-tty")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}
	defer file.Close()

	if IsTTY(file) {
		t.Fatalf("IsTTY(regular file) = true, want false")
	}
}

func TestIsTTY_WithDevNull(t *testing.T) {
	file, err := os.Open(os.DevNull)
	if err != nil {
		t.Skip("null device not available")
	}
	defer file.Close()

	if IsTTY(file) {
		t.Fatalf("IsTTY(%s) = true, want false", os.DevNull)
	}
}

func TestTruncateAndAnimateScroll(t *testing.T) {
	if got := truncate("hello", 0); got != "" {
		t.Fatalf("truncate width 0 = %q", got)
	}
	if got := truncate("hello", 1); got != "…" {
		t.Fatalf("truncate width 1 = %q", got)
	}
	if got := truncate("hello", 10); got != "hello" {
		t.Fatalf("truncate no truncation = %q", got)
	}
	if got := truncate("hello", 3); got != "he…" {
		t.Fatalf("truncate width 3 = %q", got)
	}

	if got := animateScroll("abcdef", 3, 0); got != "ab…" {
		t.Fatalf("animateScroll pause = %q", got)
	}
	if got := animateScroll("abcdef", 3, 6); got != "bcd" {
		t.Fatalf("animateScroll scrolled = %q", got)
	}
	if got := animateScroll("abc", 3, 100); got != "abc" {
		t.Fatalf("animateScroll fitting text = %q", got)
	}
}
