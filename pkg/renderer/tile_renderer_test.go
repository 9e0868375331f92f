package renderer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/integrator"
	"github.com/df07/go-tile-raytracer/pkg/profiler"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// createEmptyScene creates a scene with no bodies, so every ray escapes to the sky
func createEmptyScene(width, spp int) *scene.Scene {
	cfg := geometry.CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      width,
		SamplesPerPixel: spp,
		MaxDepth:        5,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		FocusDist:       1,
	}
	return &scene.Scene{
		Name:         "empty",
		Store:        scene.NewStore(),
		Camera:       geometry.NewCamera(cfg),
		CameraConfig: cfg,
		Sky:          scene.DefaultSky,
	}
}

func newTestIntegrator(sc *scene.Scene) *integrator.PathTracingIntegrator {
	return integrator.NewPathTracingIntegrator(integrator.PathTracingConfig{
		MaxDepth:    sc.Camera.MaxDepth(),
		DepthPolicy: integrator.DepthSky,
	})
}

func TestTileRenderer_WritesOnlyItsTile(t *testing.T) {
	sc := createEmptyScene(16, 3)
	film := NewFilm(16, 16)
	tr := NewTileRenderer(sc, newTestIntegrator(sc), film, 42, nil)

	tile := Tile{ID: 0, Bounds: image.Rect(4, 4, 12, 8)}
	tr.RenderTile(tile)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := film.At(x, y)
			if image.Pt(x, y).In(tile.Bounds) {
				// Sky colors lie between the two gradient ends
				assert.Greater(t, c.Z, 0.9, "pixel (%d,%d)", x, y)
				assert.GreaterOrEqual(t, c.X, 0.5-1e-6, "pixel (%d,%d)", x, y)
				assert.LessOrEqual(t, c.X, 1.0+1e-6, "pixel (%d,%d)", x, y)
			} else {
				assert.Equal(t, core.Vec3{}, c, "pixel (%d,%d) outside the tile", x, y)
			}
		}
	}

	assert.Equal(t, 1, tr.stats.tiles)
	assert.Equal(t, 32, tr.stats.pixels)
	assert.Equal(t, 96, tr.stats.samples)
	assert.Equal(t, 0, tr.stats.bounces, "escaping rays never scatter")
}

func TestTileRenderer_PixelIndependentOfTileOrder(t *testing.T) {
	sc := scene.NewSingleSphereScene(geometry.CameraConfig{ImageWidth: 16, SamplesPerPixel: 4})
	width, height := sc.Camera.ImageWidth(), sc.Camera.ImageHeight()
	integ := newTestIntegrator(sc)

	tiles := NewTileGrid(width, height, 4)

	forward := NewFilm(width, height)
	tr := NewTileRenderer(sc, integ, forward, 7, nil)
	for _, tile := range tiles {
		tr.RenderTile(tile)
	}

	backward := NewFilm(width, height)
	tr = NewTileRenderer(sc, integ, backward, 7, nil)
	for i := len(tiles) - 1; i >= 0; i-- {
		tr.RenderTile(tiles[i])
	}

	assert.Equal(t, forward.Pix, backward.Pix)
}

func TestTileRenderer_Profiled(t *testing.T) {
	sc := createEmptyScene(8, 2)
	prof := profiler.New(nil)
	tr := NewTileRenderer(sc, newTestIntegrator(sc), NewFilm(8, 8), 1, prof)

	tr.RenderTile(Tile{Bounds: image.Rect(0, 0, 8, 8)})

	tile, ok := prof.Lookup("tile")
	require.True(t, ok)
	assert.Equal(t, 1, tile.Calls)

	getRay, ok := prof.Lookup("tile", "get_ray")
	require.True(t, ok)
	assert.Equal(t, 128, getRay.Calls)

	rayColor, ok := prof.Lookup("tile", "ray_color")
	require.True(t, ok)
	assert.Equal(t, 128, rayColor.Calls)
}
