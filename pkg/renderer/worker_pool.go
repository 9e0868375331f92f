package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// ErrWorkerPanic is returned when a render worker panics. The render is
// abandoned and no partial film is returned.
var ErrWorkerPanic = errors.New("render worker panicked")

// WorkerPool hands out tiles to a fixed number of goroutines. Tiles are
// claimed through an atomic counter, so each index is taken exactly once.
type WorkerPool struct {
	numWorkers int
	tiles      []Tile
	nextTile   atomic.Int64
	tilesLeft  atomic.Int64
	logger     *slog.Logger
}

// NewWorkerPool creates a pool over tiles. numWorkers <= 0 uses runtime.NumCPU().
func NewWorkerPool(tiles []Tile, numWorkers int, logger *slog.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	wp := &WorkerPool{
		numWorkers: numWorkers,
		tiles:      tiles,
		logger:     core.LoggerOrNop(logger),
	}
	wp.tilesLeft.Store(int64(len(tiles)))
	return wp
}

// NumWorkers returns the number of goroutines Run starts
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// claim returns the next unclaimed tile
func (wp *WorkerPool) claim() (Tile, bool) {
	idx := wp.nextTile.Add(1) - 1
	if idx >= int64(len(wp.tiles)) {
		return Tile{}, false
	}
	return wp.tiles[idx], true
}

// Run starts the workers and blocks until every tile is done or a worker
// fails. render is called once per tile on the claiming worker's goroutine;
// done is called after each tile with the number of tiles still outstanding.
func (wp *WorkerPool) Run(ctx context.Context, render func(worker int, tile Tile), done func(tilesLeft int)) error {
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < wp.numWorkers; w++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					wp.logger.Error("render worker panicked", "worker", w, "panic", r, "stack", string(debug.Stack()))
					err = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, w, r)
				}
			}()

			for {
				// Stop claiming once any worker has failed
				if err := ctx.Err(); err != nil {
					return err
				}
				tile, ok := wp.claim()
				if !ok {
					return nil
				}
				render(w, tile)
				if done != nil {
					done(int(wp.tilesLeft.Add(-1)))
				}
			}
		})
	}

	return g.Wait()
}
