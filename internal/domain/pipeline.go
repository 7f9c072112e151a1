package domain

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

// Isolation levels for workers.
const (
	IsolationGoroutine = "goroutine"
	IsolationProcess   = "process"
)

// RunOptions configure the pipeline built for one deobfuscation.
type RunOptions struct {
	Workers      int
	Engine       string
	Isolation    string
	Timeout      time.Duration
	Format       bool
	Normalize    bool
	Rename       bool
	RenameRanges []m.RuneRange
	Arguments    []string
	// Executable is the binary re-executed for process isolation. Empty
	// means the running binary.
	Executable string
}

// OrchestratorFactory builds the pipeline for a set of options.
type OrchestratorFactory func(opts RunOptions, progress Progress, logger *slog.Logger) (Orchestrator, error)

// BuildOrchestrator wires the default pipeline stages for opts.
func BuildOrchestrator(opts RunOptions, progress Progress, logger *slog.Logger) (Orchestrator, error) {
	engine := opts.Engine
	if engine == "" {
		engine = adapter.EngineGoja
	}

	if !slices.Contains(adapter.Engines(), engine) {
		return nil, fmt.Errorf("unknown engine %q", engine)
	}

	js := adapter.NewLocalJSFileAdapter()

	var dispatcher Dispatcher

	switch opts.Isolation {
	case "", IsolationGoroutine:
		dispatcher = NewLocalDispatcher(NewWorker(adapter.NewSandbox, js, logger))
	case IsolationProcess:
		pd, err := adapter.NewProcessDispatcher(opts.Executable)
		if err != nil {
			return nil, err
		}

		dispatcher = pd
	default:
		return nil, fmt.Errorf("unknown isolation %q", opts.Isolation)
	}

	var formatter adapter.Formatter = adapter.NoopFormatter{}
	if opts.Format {
		formatter = adapter.NewEsbuildFormatter()
	}

	ranges := opts.RenameRanges
	if ranges == nil {
		ranges = m.DefaultRenameRanges
	}

	return NewOrchestrator(
		NewSignatureMatcher(js),
		NewDistributor(dispatcher, opts.Workers, progress, logger),
		NewRewriter(js, ranges),
		formatter,
		OrchestratorOptions{
			Engine:    engine,
			Timeout:   opts.Timeout,
			Normalize: opts.Normalize,
			Rename:    opts.Rename,
			Arguments: opts.Arguments,
		},
		logger,
	), nil
}
