package scene

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            40.0,
		LookFrom:        core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:          core.NewVec3(0, 0.5, -1), // Look at the sphere center
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    1.0,
		FocusDist:       3.0,
	}

	store := NewStore()

	lambertianGreen := store.AddMaterial(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)))
	lambertianBlue := store.AddMaterial(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	lambertianRed := store.AddMaterial(material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2)))
	metalSilver := store.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0))
	metalGold := store.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	materialGlass := store.AddMaterial(material.NewDielectric(1.5))

	// Ground is a very large sphere so the scene stays sphere-only
	store.AddSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen)

	store.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	store.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	store.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	store.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass)

	// Glass shell around a small blue sphere
	store.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass)
	store.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.15, lambertianBlue)

	return newScene("default", store, defaultCameraConfig, DefaultSky, cameraOverrides...)
}

// NewSingleSphereScene creates one diffuse sphere in front of a pinhole camera at the origin
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       1,
	}

	store := NewStore()
	gray := store.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	store.AddSphere(core.NewVec3(0, 0, -1), 0.5, gray)

	return newScene("single-sphere", store, cameraConfig, DefaultSky, cameraOverrides...)
}
