package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	m "github.com/mouse-blink/undefender/internal/model"
)

// ArtifactSink receives the rewritten artifact.
type ArtifactSink interface {
	Write(ctx context.Context, text string) error
}

// NewArtifactSink writes to output when set, otherwise to stdout. Highlight
// only applies to stdout.
func NewArtifactSink(output m.Path, stdout io.Writer, highlight bool) ArtifactSink {
	if output == "" || output == StdinLocation {
		return NewWriterSink(stdout, highlight)
	}

	return NewFileSink(output)
}

// FileSink writes the artifact to a file, replacing it.
type FileSink struct {
	path m.Path
}

// NewFileSink constructs a FileSink.
func NewFileSink(path m.Path) *FileSink {
	return &FileSink{path: path}
}

// Write stores text at the sink's path.
func (s *FileSink) Write(_ context.Context, text string) error {
	if err := os.WriteFile(string(s.path), []byte(text), 0o644); err != nil { //nolint:gosec // output is meant to be readable
		return fmt.Errorf("%w: %w", m.ErrWriteFailure, err)
	}

	return nil
}

// WriterSink prints the artifact, optionally with terminal syntax highlighting.
type WriterSink struct {
	w         io.Writer
	highlight bool
}

// NewWriterSink constructs a WriterSink.
func NewWriterSink(w io.Writer, highlight bool) *WriterSink {
	return &WriterSink{w: w, highlight: highlight}
}

// Write prints text followed by a newline.
func (s *WriterSink) Write(_ context.Context, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if s.highlight {
		if err := quick.Highlight(s.w, text, "javascript", "terminal256", "monokai"); err == nil {
			return nil
		}
	}

	if _, err := io.WriteString(s.w, text); err != nil {
		return fmt.Errorf("%w: %w", m.ErrWriteFailure, err)
	}

	return nil
}
