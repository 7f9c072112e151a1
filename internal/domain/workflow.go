package domain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

// DeobfuscateArgs holds the arguments for a deobfuscation run.
type DeobfuscateArgs struct {
	Input m.Path
	// Output is the destination file. Empty writes to stdout.
	Output m.Path
	// Report is an optional YAML or JSON report path.
	Report    m.Path
	Verbose   bool
	Highlight bool
	Options   RunOptions
}

// InspectArgs holds the arguments for a signature inspection.
type InspectArgs struct {
	Input m.Path
}

// Workflow defines the user-facing operations.
type Workflow interface {
	Deobfuscate(ctx context.Context, args DeobfuscateArgs) error
	Inspect(ctx context.Context, args InspectArgs) error
}

// WorkflowOption customises a Workflow.
type WorkflowOption func(*workflow)

// WithStdio replaces the standard streams used for "-" input and stdout output.
func WithStdio(stdin io.Reader, stdout io.Writer) WorkflowOption {
	return func(w *workflow) {
		w.stdin = stdin
		w.stdout = stdout
	}
}

// WithOrchestratorFactory replaces the pipeline builder.
func WithOrchestratorFactory(factory OrchestratorFactory) WorkflowOption {
	return func(w *workflow) {
		w.newOrchestrator = factory
	}
}

type workflow struct {
	ui              adapter.UI
	reportStore     adapter.ReportStore
	matcher         SignatureMatcher
	newOrchestrator OrchestratorFactory
	stdin           io.Reader
	stdout          io.Writer
	logger          *slog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	ui adapter.UI,
	reportStore adapter.ReportStore,
	js adapter.JSFileAdapter,
	logger *slog.Logger,
	options ...WorkflowOption,
) Workflow {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &workflow{
		ui:              ui,
		reportStore:     reportStore,
		matcher:         NewSignatureMatcher(js),
		newOrchestrator: BuildOrchestrator,
		stdin:           os.Stdin,
		stdout:          os.Stdout,
		logger:          logger,
	}

	for _, option := range options {
		option(w)
	}

	return w
}

// Deobfuscate reads the input, runs the pipeline and writes the output.
// Output is written even when the run fails so a best-effort result is never
// lost; a partial resolution is only a warning.
func (w *workflow) Deobfuscate(ctx context.Context, args DeobfuscateArgs) error {
	orch, err := w.newOrchestrator(args.Options, w.ui, w.logger)
	if err != nil {
		return err
	}

	source := adapter.NewArtifactSource(args.Input, w.stdin)

	artifact, err := source.Read(ctx)
	if err != nil {
		return err
	}

	if err := w.ui.Start(adapter.WithDeobfuscateMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}

	w.logger.Debug("artifact loaded", "source", source.Location(), "bytes", len(artifact))

	result, runErr := orch.Run(ctx, artifact)

	if args.Verbose {
		w.ui.DisplayResolutions(result.Table)
	}

	w.ui.DisplaySummary(result, runErr)

	// the interactive UI shares the terminal with stdout
	w.ui.Close()

	sink := adapter.NewArtifactSink(args.Output, w.stdout, args.Highlight)
	if err := sink.Write(ctx, result.OutputText); err != nil {
		return err
	}

	if args.Report != "" {
		report := BuildReport(source.Location(), artifact, result, runErr)
		if err := w.reportStore.SaveReport(args.Report, report); err != nil {
			return err
		}
	}

	kind := m.Classify(runErr)
	if !kind.Fatal() {
		if runErr != nil {
			w.logger.Warn("deobfuscation incomplete", "error", runErr)
		}

		return nil
	}

	return runErr
}

// Inspect reports the signature and catalog sizes without evaluating anything.
func (w *workflow) Inspect(ctx context.Context, args InspectArgs) error {
	source := adapter.NewArtifactSource(args.Input, w.stdin)

	artifact, err := source.Read(ctx)
	if err != nil {
		return err
	}

	if err := w.ui.Start(adapter.WithInspectMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close()

	sig, err := w.matcher.Match(artifact)
	if err != nil {
		w.ui.DisplaySignature(sig, m.Catalog{}, err)

		return err
	}

	w.ui.DisplaySignature(sig, BuildCatalog(artifact, sig), nil)

	return nil
}
