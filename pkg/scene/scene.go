package scene

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Store        *Store                // Bodies and their materials
	Camera       *geometry.Camera      // Initialized camera built from CameraConfig
	CameraConfig geometry.CameraConfig // Camera configuration after overrides
	Sky          Sky                   // Background seen by escaping rays
}

// Sky is a vertical two-color gradient background
type Sky struct {
	Bottom core.Vec3 `toml:"bottom" yaml:"bottom"` // Color looking straight down
	Top    core.Vec3 `toml:"top" yaml:"top"`       // Color looking straight up
}

// DefaultSky blends white into pale blue
var DefaultSky = Sky{
	Bottom: core.NewVec3(1.0, 1.0, 1.0),
	Top:    core.NewVec3(0.5, 0.7, 1.0),
}

var skyRange = core.NewInterval(-1, 1)

// Color returns the gradient color for a ray direction, blended by its unit Y component
func (s Sky) Color(direction core.Vec3) core.Vec3 {
	a := skyRange.Fraction(direction.Normalize().Y)
	return s.Bottom.Lerp(s.Top, a)
}

// newScene merges camera overrides onto the scene's camera and builds the camera
func newScene(name string, store *Store, cameraConfig geometry.CameraConfig, sky Sky, cameraOverrides ...geometry.CameraConfig) *Scene {
	for _, override := range cameraOverrides {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, override)
	}
	return &Scene{
		Name:         name,
		Store:        store,
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Sky:          sky,
	}
}
