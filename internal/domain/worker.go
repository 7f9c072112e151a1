package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

// Worker resolves one chunk inside a single sandbox.
type Worker struct {
	newSandbox adapter.SandboxFactory
	js         adapter.JSFileAdapter
	logger     *slog.Logger
}

// NewWorker constructs a Worker. newSandbox is called once per task.
func NewWorker(newSandbox adapter.SandboxFactory, js adapter.JSFileAdapter, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Worker{newSandbox: newSandbox, js: js, logger: logger}
}

// Resolve bootstraps a fresh sandbox and evaluates every fragment of the
// task's chunk. A failing bootstrap is returned as an error; failing
// fragments are recorded in the result.
func (w *Worker) Resolve(ctx context.Context, task m.Task) (m.WorkResult, error) {
	result := m.NewWorkResult(task.Chunk.Index)

	sandbox, err := w.newSandbox(task.Engine)
	if err != nil {
		return result, fmt.Errorf("%w: %w", m.ErrBootstrapExecution, err)
	}
	defer sandbox.Close()

	if err := sandbox.Bootstrap(ctx, task.Initializer); err != nil {
		return result, err
	}

	accesses := slices.Clone(task.Chunk.Accesses)
	arithmetic := slices.Clone(task.Chunk.Arithmetic)

	for _, block := range task.Chunk.Blocks {
		decrypted, err := w.decrypt(ctx, sandbox, block, task.Timeout)
		if err != nil {
			if isCancelled(ctx, err) {
				return result, err
			}

			w.logger.Debug("block not decrypted", "offset", block.Offset, "error", err)
			result.Fail(block.Source, m.FragmentBlock, err.Error())

			continue
		}

		result.Blocks[block.Source] = decrypted
		accesses = append(accesses, FindAccessExpressions(decrypted, task.Binding)...)
		arithmetic = append(arithmetic, FindArithmeticExpressions(decrypted)...)
	}

	for _, fragment := range dedupe(accesses) {
		value, err := w.evaluate(ctx, sandbox, fragment, task.Timeout)
		if err != nil {
			if isCancelled(ctx, err) {
				return result, err
			}

			result.Fail(fragment, m.FragmentAccess, err.Error())

			continue
		}

		if !value.Resolved() {
			result.Fail(fragment, m.FragmentAccess, "no literal form")

			continue
		}

		result.Values[fragment] = value
	}

	for _, fragment := range dedupe(arithmetic) {
		value, err := w.evaluate(ctx, sandbox, fragment, task.Timeout)
		if err != nil {
			if isCancelled(ctx, err) {
				return result, err
			}

			result.Fail(fragment, m.FragmentArithmetic, err.Error())

			continue
		}

		if !value.Numeric() || !value.Resolved() {
			result.Fail(fragment, m.FragmentArithmetic, "not numeric")

			continue
		}

		result.Expressions[fragment] = value
	}

	return result, nil
}

func (w *Worker) decrypt(ctx context.Context, sandbox adapter.Sandbox, block m.BootstrapDescriptor, timeout time.Duration) (string, error) {
	program, err := BuildDecryptProgram(w.js, block)
	if err != nil {
		return "", err
	}

	evalCtx, cancel := withEvalTimeout(ctx, timeout)
	defer cancel()

	return sandbox.EvaluateString(evalCtx, program)
}

func (w *Worker) evaluate(ctx context.Context, sandbox adapter.Sandbox, fragment string, timeout time.Duration) (m.ResolvedValue, error) {
	evalCtx, cancel := withEvalTimeout(ctx, timeout)
	defer cancel()

	return sandbox.Evaluate(evalCtx, fragment)
}

func withEvalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

// isCancelled reports whether err comes from the task context rather than a
// per-evaluation deadline.
func isCancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
