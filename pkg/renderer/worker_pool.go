package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RowTask renders one image row. It must only write to that row.
type RowTask func(ctx context.Context, row int) error

// WorkerPool shards image rows across a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls task once for every row in [0, rows) and waits for all of them.
// The first error cancels the rows that have not started yet.
func (wp *WorkerPool) Run(ctx context.Context, rows int, task RowTask) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for row := 0; row < rows; row++ {
		if gctx.Err() != nil {
			break
		}
		row := row
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return task(gctx, row)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// gctx is always done after Wait; only the caller's context matters here
	return ctx.Err()
}
