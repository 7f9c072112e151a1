package domain

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	m "github.com/mouse-blink/undefender/internal/model"
)

// Dispatcher hands a task to a worker and waits for its result.
type Dispatcher interface {
	Dispatch(ctx context.Context, task m.Task) (m.WorkResult, error)
}

// Progress receives distribution events. Implementations must be safe for
// concurrent use.
type Progress interface {
	DisplayConcurrencyInfo(workers int, chunks int)
	DisplayChunkStarted(chunk m.WorkChunk)
	DisplayChunkCompleted(result m.WorkResult)
}

// Distributor resolves a job's catalog across a bounded pool of workers.
type Distributor interface {
	Distribute(ctx context.Context, job m.Job) (m.ResolutionTable, error)
}

type distributor struct {
	dispatcher Dispatcher
	workers    int
	progress   Progress
	logger     *slog.Logger
}

// NewDistributor constructs a Distributor running at most workers tasks at
// once. progress may be nil.
func NewDistributor(dispatcher Dispatcher, workers int, progress Progress, logger *slog.Logger) Distributor {
	if workers < 1 {
		workers = 1
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &distributor{
		dispatcher: dispatcher,
		workers:    workers,
		progress:   progress,
		logger:     logger,
	}
}

// Distribute partitions the catalog, dispatches every chunk and merges the
// results in chunk order once all workers have finished. The first worker
// error cancels the others.
func (d *distributor) Distribute(ctx context.Context, job m.Job) (m.ResolutionTable, error) {
	chunks := Partition(job.Catalog, d.workers)

	if d.progress != nil {
		d.progress.DisplayConcurrencyInfo(d.workers, len(chunks))
	}

	results := make([]m.WorkResult, len(chunks))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(d.workers)

	for i, chunk := range chunks {
		group.Go(func() error {
			if d.progress != nil {
				d.progress.DisplayChunkStarted(chunk)
			}

			d.logger.Debug("dispatching chunk", "index", chunk.Index, "fragments", chunk.Size())

			result, err := d.dispatcher.Dispatch(groupCtx, job.TaskFor(chunk))
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunk.Index, err)
			}

			results[i] = result

			if d.progress != nil {
				d.progress.DisplayChunkCompleted(result)
			}

			d.logger.Debug("chunk resolved", "index", chunk.Index,
				"resolved", result.Resolved(), "failed", len(result.Failures))

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return m.ResolutionTable{}, err
	}

	table := m.NewResolutionTable()
	for _, result := range results {
		table.Merge(result)
	}

	return table, nil
}

// Partition splits each fragment list of catalog into at most workers
// consecutive slices. Chunk i holds the i-th slice of every list; chunks
// with no fragments are dropped and the rest are numbered from zero.
func Partition(catalog m.Catalog, workers int) []m.WorkChunk {
	if workers < 1 {
		workers = 1
	}

	blocks := split(catalog.Blocks, workers)
	accesses := split(catalog.Accesses, workers)
	arithmetic := split(catalog.Arithmetic, workers)

	var chunks []m.WorkChunk

	for i := range workers {
		chunk := m.WorkChunk{
			Index:      len(chunks),
			Blocks:     blocks[i],
			Accesses:   accesses[i],
			Arithmetic: arithmetic[i],
		}

		if chunk.Size() > 0 {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// split cuts items into n slices of ceil(len/n), padding with nil. Each
// slice is clipped so appending to one never writes into the next.
func split[T any](items []T, n int) [][]T {
	out := make([][]T, n)
	if len(items) == 0 {
		return out
	}

	size := (len(items) + n - 1) / n

	for i := range n {
		start := i * size
		if start >= len(items) {
			break
		}

		end := min(start+size, len(items))
		out[i] = items[start:end:end]
	}

	return out
}

// LocalDispatcher runs tasks on goroutines of the current process. Every
// task gets its own sandbox.
type LocalDispatcher struct {
	worker *Worker
}

// NewLocalDispatcher constructs a LocalDispatcher around worker.
func NewLocalDispatcher(worker *Worker) *LocalDispatcher {
	return &LocalDispatcher{worker: worker}
}

// Dispatch resolves task in the calling goroutine.
func (d *LocalDispatcher) Dispatch(ctx context.Context, task m.Task) (result m.WorkResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panic: %v\n%s", r, debug.Stack())
		}
	}()

	return d.worker.Resolve(ctx, task)
}
