package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

// Orchestrator runs the whole pipeline on one artifact: signature, catalog,
// distributed evaluation and rewriting.
type Orchestrator interface {
	Run(ctx context.Context, artifact m.Artifact) (m.RunResult, error)
}

// OrchestratorOptions tune one pipeline run.
type OrchestratorOptions struct {
	Engine    string
	Timeout   time.Duration
	Normalize bool
	Rename    bool
	// Arguments are passed to the bootstrap as its argument list.
	Arguments []string
}

type orchestrator struct {
	matcher     SignatureMatcher
	distributor Distributor
	rewriter    Rewriter
	formatter   adapter.Formatter
	options     OrchestratorOptions
	logger      *slog.Logger
	now         func() time.Time
}

// NewOrchestrator constructs an Orchestrator from its stages. A nil
// formatter leaves the output unformatted.
func NewOrchestrator(
	matcher SignatureMatcher,
	distributor Distributor,
	rewriter Rewriter,
	formatter adapter.Formatter,
	options OrchestratorOptions,
	logger *slog.Logger,
) Orchestrator {
	if formatter == nil {
		formatter = adapter.NoopFormatter{}
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &orchestrator{
		matcher:     matcher,
		distributor: distributor,
		rewriter:    rewriter,
		formatter:   formatter,
		options:     options,
		logger:      logger,
		now:         time.Now,
	}
}

func (o *orchestrator) Run(ctx context.Context, artifact m.Artifact) (m.RunResult, error) {
	start := o.now()
	text := string(artifact)

	sig, err := o.matcher.Match(artifact)
	if err != nil {
		o.logger.Warn("signature not recognised", "error", err)

		return o.result(start, o.finish(text), sig, m.Catalog{}, m.NewResolutionTable()), err
	}

	o.logger.Debug("signature matched", "binding", sig.Binding, "bootstraps", len(sig.Bootstraps))

	primary, _ := sig.Primary()
	initializer := BuildInitializer(sig.Binding, primary, o.options.Arguments...)
	catalog := BuildCatalog(artifact, sig)

	o.logger.Debug("catalog built", "blocks", len(catalog.Blocks),
		"accesses", len(catalog.Accesses), "arithmetic", len(catalog.Arithmetic))

	table, err := o.distributor.Distribute(ctx, m.Job{
		Binding:     sig.Binding,
		Initializer: initializer,
		Catalog:     catalog,
		Engine:      o.options.Engine,
		Timeout:     o.options.Timeout,
	})
	if err != nil {
		return o.result(start, o.formatter.Format(text), sig, catalog, m.NewResolutionTable()),
			fmt.Errorf("%w: %w", m.ErrEvaluationFailure, err)
	}

	output := o.finish(o.rewriter.Apply(text, table))
	result := o.result(start, output, sig, catalog, table)

	if err := partialResolution(catalog, table); err != nil {
		return result, err
	}

	return result, nil
}

// finish runs the cosmetic passes and the formatter.
func (o *orchestrator) finish(text string) string {
	if o.options.Normalize {
		text = o.rewriter.NormalizeProperties(text)
	}

	if o.options.Rename {
		text = o.rewriter.RenameIdentifiers(text)
	}

	return o.formatter.Format(text)
}

func (o *orchestrator) result(start time.Time, output string, sig m.Signature, catalog m.Catalog, table m.ResolutionTable) m.RunResult {
	return m.RunResult{
		OutputText:    output,
		ResolvedCount: table.Resolved(),
		Elapsed:       o.now().Sub(start),
		Signature:     sig,
		Catalog:       catalog,
		Table:         table,
	}
}

// partialResolution reports a non-empty catalog kind with no resolved fragment.
func partialResolution(catalog m.Catalog, table m.ResolutionTable) error {
	var errs []error

	if len(catalog.Blocks) > 0 && len(table.Blocks) == 0 {
		errs = append(errs, fmt.Errorf("%w: none of %d blocks decrypted", m.ErrPartialResolution, len(catalog.Blocks)))
	}

	if len(catalog.Accesses) > 0 && len(table.Values) == 0 {
		errs = append(errs, fmt.Errorf("%w: none of %d accesses resolved", m.ErrPartialResolution, len(catalog.Accesses)))
	}

	if len(catalog.Arithmetic) > 0 && len(table.Expressions) == 0 {
		errs = append(errs, fmt.Errorf("%w: none of %d expressions resolved", m.ErrPartialResolution, len(catalog.Arithmetic)))
	}

	return errors.Join(errs...)
}
