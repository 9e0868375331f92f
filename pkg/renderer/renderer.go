// Package renderer splits the image into tiles and renders them in parallel
// with per-pixel deterministic sampling.
package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/integrator"
	"github.com/df07/go-tile-raytracer/pkg/profiler"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// DefaultProgressEvery is how many tiles pass between progress log lines
const DefaultProgressEvery = 20

// Options control a render
type Options struct {
	Threads       int                    // Worker goroutines, must be positive
	TileSize      int                    // Square tile edge in pixels, must be positive
	Seed          int64                  // Base seed for every pixel stream
	DepthPolicy   integrator.DepthPolicy // Color of paths that exhaust the bounce limit
	ProgressEvery int                    // Tiles between progress logs; 0 disables them
	Logger        *slog.Logger
	Profiler      *profiler.Profiler // Session profiler; nil disables profiling

	// Progress is called after every tile from the worker that rendered it.
	// It must be safe for concurrent use.
	Progress func(tilesLeft, totalTiles int)
}

// DefaultOptions returns options for a single-threaded render with default tiles
func DefaultOptions() Options {
	return Options{
		Threads:       1,
		TileSize:      DefaultTileSize,
		Seed:          0xDEADBEEF,
		DepthPolicy:   integrator.DepthSky,
		ProgressEvery: DefaultProgressEvery,
	}
}

// Renderer renders a scene into a film
type Renderer struct {
	scene      *scene.Scene
	integrator *integrator.PathTracingIntegrator
	opts       Options
	logger     *slog.Logger
}

// NewRenderer creates a renderer for sc
func NewRenderer(sc *scene.Scene, opts Options) *Renderer {
	return &Renderer{
		scene: sc,
		integrator: integrator.NewPathTracingIntegrator(integrator.PathTracingConfig{
			MaxDepth:    sc.Camera.MaxDepth(),
			DepthPolicy: opts.DepthPolicy,
		}),
		opts:   opts,
		logger: core.LoggerOrNop(opts.Logger),
	}
}

// Render renders every tile and returns the finished film. On failure no
// film is returned.
func (r *Renderer) Render(ctx context.Context) (*Film, RenderStats, error) {
	if r.opts.Threads <= 0 {
		return nil, RenderStats{}, fmt.Errorf("renderer: threads must be positive, got %d", r.opts.Threads)
	}
	if r.opts.TileSize <= 0 {
		return nil, RenderStats{}, fmt.Errorf("renderer: tile size must be positive, got %d", r.opts.TileSize)
	}

	prof := r.opts.Profiler
	defer prof.Scope("render")()

	camera := r.scene.Camera
	width, height := camera.ImageWidth(), camera.ImageHeight()
	film := NewFilm(width, height)
	tiles := NewTileGrid(width, height, r.opts.TileSize)
	pool := NewWorkerPool(tiles, r.opts.Threads, r.logger)

	r.logger.Info("Rendering",
		"scene", r.scene.Name,
		"width", width,
		"height", height,
		"spp", camera.SamplesPerPixel(),
		"max_depth", camera.MaxDepth(),
		"tiles", len(tiles),
		"threads", pool.NumWorkers())

	// One sampler and profiler per worker; nothing mutable is shared
	workers := make([]*TileRenderer, pool.NumWorkers())
	for w := range workers {
		var workerProf *profiler.Profiler
		if prof.Enabled() {
			workerProf = profiler.New(r.logger)
		}
		workers[w] = NewTileRenderer(r.scene, r.integrator, film, r.opts.Seed, workerProf)
	}

	start := time.Now()
	err := pool.Run(ctx,
		func(worker int, tile Tile) {
			workers[worker].RenderTile(tile)
		},
		func(tilesLeft int) {
			if r.opts.ProgressEvery > 0 && tilesLeft%r.opts.ProgressEvery == 0 {
				r.logger.Debug("Tiles left", "tiles_left", tilesLeft, "total", len(tiles))
			}
			if r.opts.Progress != nil {
				r.opts.Progress(tilesLeft, len(tiles))
			}
		})

	stats := RenderStats{
		Workers:        len(workers),
		TilesPerWorker: make([]int, len(workers)),
		Elapsed:        time.Since(start),
	}
	for w, tr := range workers {
		stats.add(w, tr.stats)
		prof.Merge(tr.prof)
	}

	if err != nil {
		return nil, stats, err
	}

	r.logger.Info("Render finished",
		"elapsed", stats.Elapsed.Round(time.Millisecond),
		"samples", stats.TotalSamples,
		"avg_bounces", fmt.Sprintf("%.2f", stats.AverageBounces()),
		"avg_luminance", fmt.Sprintf("%.4f", film.AverageLuminance()))
	return film, stats, nil
}
