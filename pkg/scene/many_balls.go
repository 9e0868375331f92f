package scene

import (
	"math/rand"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// NewManyBallsScene creates the random small-sphere field around three large spheres.
// The layout is a pure function of seed.
func NewManyBallsScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	random := rand.New(core.NewXorShiftSource(seed))
	randomIn := func(lo, hi float64) float64 {
		return lo + (hi-lo)*random.Float64()
	}
	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(randomIn(lo, hi), randomIn(lo, hi), randomIn(lo, hi))
	}

	store := NewStore()

	ground := store.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	store.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground)

	// Every small glass ball shares one material
	glass := store.AddMaterial(material.NewDielectric(1.5))

	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := randomColor(0, 1).MultiplyVec(randomColor(0, 1))
				store.AddSphere(center, 0.2, store.AddMaterial(material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := randomColor(0.5, 1)
				fuzz := randomIn(0, 0.5)
				store.AddSphere(center, 0.2, store.AddMaterial(material.NewMetal(albedo, fuzz)))
			default:
				store.AddSphere(center, 0.2, glass)
			}
		}
	}

	store.AddSphere(core.NewVec3(0, 1, 0), 1.0, store.AddMaterial(material.NewDielectric(1.5)))
	store.AddSphere(core.NewVec3(-4, 1, 0), 1.0, store.AddMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	store.AddSphere(core.NewVec3(4, 1, 0), 1.0, store.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	cameraConfig := geometry.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      800,
		SamplesPerPixel: 10,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0.6,
		FocusDist:       10.0,
	}

	sky := Sky{Bottom: core.White, Top: core.NewVec3(0.3, 0.7, 1.0)}

	return newScene("many-balls", store, cameraConfig, sky, cameraOverrides...)
}
