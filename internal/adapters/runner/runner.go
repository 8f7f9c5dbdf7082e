// Package runner executes selection over a batch in parallel. Events carry
// no cross-event dependency, so a batch can be split into contiguous chunks,
// selected concurrently, and stitched back together in order with identical
// results.
package runner

import (
	"context"
	"sync"

	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/selection"
)

const (
	defaultWorkers      = 4
	defaultMinChunkSize = 256
)

// Runner fans one batch out over a fixed number of workers.
type Runner struct {
	workers      int
	minChunkSize int
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithMinChunkSize sets the smallest sub-batch worth a goroutine. Batches
// below this size run on the calling goroutine.
func WithMinChunkSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.minChunkSize = n
		}
	}
}

// New constructs a Runner with default configuration.
func New(opts ...Option) *Runner {
	r := &Runner{
		workers:      defaultWorkers,
		minChunkSize: defaultMinChunkSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run selects the batch, splitting it across workers when large enough.
// The first error cancels the remaining chunks.
func (r *Runner) Run(ctx context.Context, sel *selection.Selector, in selection.Input) (*model.Selection, error) {
	events := in.Events()
	if events <= r.minChunkSize || r.workers == 1 {
		return sel.Select(ctx, in)
	}

	bounds := chunkBounds(events, r.workers, r.minChunkSize)
	parts := make([]*model.Selection, len(bounds))
	errs := make([]error, len(bounds))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for i, b := range bounds {
		wg.Add(1)
		go func(i int, lo, hi int) {
			defer wg.Done()
			part, err := sel.Select(runCtx, in.Slice(lo, hi))
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			parts[i] = part
		}(i, b[0], b[1])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return model.ConcatSelections(parts...)
}

// chunkBounds splits [0, events) into at most workers contiguous ranges of
// at least minChunk events each.
func chunkBounds(events, workers, minChunk int) [][2]int {
	chunks := workers
	if max := events / minChunk; max < chunks {
		chunks = max
	}
	if chunks < 1 {
		chunks = 1
	}
	size := events / chunks
	rem := events % chunks

	bounds := make([][2]int, 0, chunks)
	lo := 0
	for i := 0; i < chunks; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		bounds = append(bounds, [2]int{lo, hi})
		lo = hi
	}
	return bounds
}
