package renderer

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/integrator"
	"github.com/df07/go-tile-raytracer/pkg/profiler"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// TileRenderer renders whole tiles into a shared film. Each worker owns one.
type TileRenderer struct {
	scene      *scene.Scene
	integrator *integrator.PathTracingIntegrator
	film       *Film
	sampler    *core.RandomSampler
	seed       int64
	prof       *profiler.Profiler
	stats      tileStats
}

// NewTileRenderer creates a tile renderer writing into film
func NewTileRenderer(sc *scene.Scene, integ *integrator.PathTracingIntegrator, film *Film, seed int64, prof *profiler.Profiler) *TileRenderer {
	return &TileRenderer{
		scene:      sc,
		integrator: integ,
		film:       film,
		sampler:    core.NewXorShiftSampler(seed),
		seed:       seed,
		prof:       prof,
	}
}

// RenderTile renders every sample of every pixel inside tile
func (tr *TileRenderer) RenderTile(tile Tile) {
	defer tr.prof.Scope("tile")()

	camera := tr.scene.Camera
	spp := camera.SamplesPerPixel()
	scale := camera.PixelSamplesScale()

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			// Per-pixel streams keep the image independent of tile order and thread count
			tr.sampler.Reseed(core.PixelSeed(tr.seed, j*tr.film.Width+i))

			var pixelColor core.Vec3
			for s := 0; s < spp; s++ {
				h := tr.prof.Start("get_ray")
				ray := camera.GetRay(i, j, tr.sampler)
				tr.prof.End(h)

				result := tr.integrator.Trace(ray, tr.scene, tr.sampler, tr.prof)
				pixelColor = pixelColor.Add(result.Color)
				tr.stats.bounces += result.Bounces
			}

			tr.film.Set(i, j, pixelColor.Multiply(scale))
			tr.stats.samples += spp
		}
	}

	tr.stats.tiles++
	tr.stats.pixels += tile.Bounds.Dx() * tile.Bounds.Dy()
}
