package renderer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/material"
	"github.com/df07/go-tile-raytracer/pkg/profiler"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// panicMaterial fails the render on the first scatter
type panicMaterial struct{}

func (panicMaterial) Scatter(core.Ray, material.HitRecord, core.Sampler) (material.ScatterResult, bool) {
	panic("scatter exploded")
}

func (panicMaterial) Name() string { return "panic" }

func smallSingleSphere() *scene.Scene {
	return scene.NewSingleSphereScene(geometry.CameraConfig{ImageWidth: 32, SamplesPerPixel: 2, MaxDepth: 5})
}

func renderWith(t *testing.T, sc *scene.Scene, opts Options) *Film {
	t.Helper()
	film, stats, err := NewRenderer(sc, opts).Render(context.Background())
	require.NoError(t, err)
	require.NotNil(t, film)
	assert.Equal(t, sc.Camera.ImageWidth()*sc.Camera.ImageHeight(), stats.TotalPixels)
	return film
}

func TestRenderer_DeterministicAcrossThreadsAndTiles(t *testing.T) {
	sc := smallSingleSphere()

	single := DefaultOptions()
	single.Threads = 1
	single.TileSize = 8
	reference := renderWith(t, sc, single)

	for _, variant := range []struct{ threads, tileSize int }{
		{4, 8},
		{3, 5},
		{8, 1},
		{2, 64},
	} {
		opts := DefaultOptions()
		opts.Threads = variant.threads
		opts.TileSize = variant.tileSize
		film := renderWith(t, sc, opts)
		assert.Equal(t, reference.Pix, film.Pix, "threads=%d tile=%d", variant.threads, variant.tileSize)
	}
}

func TestRenderer_SeedChangesImage(t *testing.T) {
	sc := smallSingleSphere()

	a := DefaultOptions()
	b := DefaultOptions()
	b.Seed = a.Seed + 1

	assert.NotEqual(t, renderWith(t, sc, a).Pix, renderWith(t, sc, b).Pix)
}

func TestRenderer_FillsEveryPixel(t *testing.T) {
	sc := createEmptyScene(30, 1)
	opts := DefaultOptions()
	opts.Threads = 4
	opts.TileSize = 7
	film := renderWith(t, sc, opts)

	for y := 0; y < film.Height; y++ {
		for x := 0; x < film.Width; x++ {
			assert.Greater(t, film.At(x, y).Z, 0.0, "pixel (%d,%d) was never rendered", x, y)
		}
	}
}

func TestRenderer_Stats(t *testing.T) {
	sc := smallSingleSphere()
	opts := DefaultOptions()
	opts.Threads = 3
	opts.TileSize = 8

	_, stats, err := NewRenderer(sc, opts).Render(context.Background())
	require.NoError(t, err)

	width, height := sc.Camera.ImageWidth(), sc.Camera.ImageHeight()
	assert.Equal(t, len(NewTileGrid(width, height, 8)), stats.Tiles)
	assert.Equal(t, width*height*2, stats.TotalSamples)
	assert.Greater(t, stats.TotalBounces, 0)
	assert.Equal(t, 3, stats.Workers)

	sum := 0
	for _, n := range stats.TilesPerWorker {
		sum += n
	}
	assert.Equal(t, stats.Tiles, sum)
}

func TestRenderer_Progress(t *testing.T) {
	sc := smallSingleSphere()
	opts := DefaultOptions()
	opts.Threads = 4
	opts.TileSize = 4

	var mu sync.Mutex
	seen := make(map[int]bool)
	total := 0
	opts.Progress = func(tilesLeft, totalTiles int) {
		mu.Lock()
		defer mu.Unlock()
		seen[tilesLeft] = true
		total = totalTiles
	}
	renderWith(t, sc, opts)

	require.Len(t, seen, total, "one report per tile")
	for left := 0; left < total; left++ {
		assert.True(t, seen[left], "tilesLeft=%d never reported", left)
	}
}

func TestRenderer_WorkerPanicFailsRender(t *testing.T) {
	sc := createEmptyScene(16, 1)
	id := sc.Store.AddMaterial(panicMaterial{})
	sc.Store.AddSphere(core.NewVec3(0, 0, -1), 0.5, id)

	opts := DefaultOptions()
	opts.Threads = 4
	opts.TileSize = 4

	film, _, err := NewRenderer(sc, opts).Render(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkerPanic)
	assert.Contains(t, err.Error(), "scatter exploded")
	assert.Nil(t, film, "failed renders return no partial film")
}

func TestRenderer_InvalidOptions(t *testing.T) {
	sc := smallSingleSphere()

	opts := DefaultOptions()
	opts.Threads = 0
	_, _, err := NewRenderer(sc, opts).Render(context.Background())
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.TileSize = -1
	_, _, err = NewRenderer(sc, opts).Render(context.Background())
	assert.Error(t, err)
}

func TestRenderer_ProfilesMergeUnderRender(t *testing.T) {
	sc := smallSingleSphere()
	prof := profiler.New(nil)

	opts := DefaultOptions()
	opts.Threads = 3
	opts.TileSize = 8
	opts.Profiler = prof
	_, stats, err := NewRenderer(sc, opts).Render(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, prof.Depth(), "render scope closed")

	render, ok := prof.Lookup("render")
	require.True(t, ok)
	assert.Equal(t, 1, render.Calls)

	tile, ok := prof.Lookup("render", "tile")
	require.True(t, ok)
	assert.Equal(t, stats.Tiles, tile.Calls)

	rayColor, ok := prof.Lookup("render", "tile", "ray_color")
	require.True(t, ok)
	assert.Equal(t, stats.TotalSamples, rayColor.Calls)

	_, ok = prof.Lookup("render", "tile", "ray_color", "lambertian::scatter")
	assert.True(t, ok)
}

func TestWorkerPool_ClaimsEachTileOnce(t *testing.T) {
	tiles := NewTileGrid(100, 100, 10)
	claims := make([]atomic.Int32, len(tiles))
	var reports atomic.Int32

	pool := NewWorkerPool(tiles, 8, nil)
	err := pool.Run(context.Background(),
		func(worker int, tile Tile) {
			claims[tile.ID].Add(1)
		},
		func(tilesLeft int) {
			reports.Add(1)
		})
	require.NoError(t, err)

	for i := range claims {
		assert.Equal(t, int32(1), claims[i].Load(), "tile %d", i)
	}
	assert.Equal(t, int32(len(tiles)), reports.Load())
}

func TestWorkerPool_DefaultWorkers(t *testing.T) {
	assert.Positive(t, NewWorkerPool(nil, 0, nil).NumWorkers())
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var rendered atomic.Int32
	err := NewWorkerPool(NewTileGrid(10, 10, 1), 2, nil).Run(ctx,
		func(int, Tile) { rendered.Add(1) }, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rendered.Load())
}
