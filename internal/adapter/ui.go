package adapter

import (
	m "github.com/mouse-blink/undefender/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeDeobfuscate StartMode = iota
	ModeInspect
)

// StartOption is a functional option for the Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	Mode StartMode
}

// WithDeobfuscateMode sets the UI to show pipeline progress.
func WithDeobfuscateMode() StartOption {
	return func(c *StartConfig) {
		c.Mode = ModeDeobfuscate
	}
}

// WithInspectMode sets the UI to show a signature report only.
func WithInspectMode() StartOption {
	return func(c *StartConfig) {
		c.Mode = ModeInspect
	}
}

// NewStartConfig applies options over the default configuration.
func NewStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{Mode: ModeDeobfuscate}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI is the port the workflow reports through. Progress methods may be
// called from several workers at once.
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplaySignature(sig m.Signature, catalog m.Catalog, err error)
	DisplayConcurrencyInfo(workers int, chunks int)
	DisplayChunkStarted(chunk m.WorkChunk)
	DisplayChunkCompleted(result m.WorkResult)
	DisplayResolutions(table m.ResolutionTable)
	DisplaySummary(result m.RunResult, err error)
}
