package geometry

import (
	"math"

	"github.com/jinzhu/copier"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	AspectRatio     float64   `toml:"aspect_ratio" yaml:"aspect_ratio"`           // Ratio of image width over height
	ImageWidth      int       `toml:"image_width" yaml:"image_width"`             // Rendered image width in pixels
	SamplesPerPixel int       `toml:"samples_per_pixel" yaml:"samples_per_pixel"` // Random samples for each pixel
	MaxDepth        int       `toml:"max_depth" yaml:"max_depth"`                 // Maximum number of ray bounces
	VFov            float64   `toml:"vfov" yaml:"vfov"`                           // Vertical view angle in degrees
	LookFrom        core.Vec3 `toml:"look_from" yaml:"look_from"`                 // Point the camera is looking from
	LookAt          core.Vec3 `toml:"look_at" yaml:"look_at"`                     // Point the camera is looking at
	VUp             core.Vec3 `toml:"vup" yaml:"vup"`                             // Camera-relative "up" direction
	DefocusAngle    float64   `toml:"defocus_angle" yaml:"defocus_angle"`         // Variation angle of rays through each pixel, degrees
	FocusDist       float64   `toml:"focus_dist" yaml:"focus_dist"`               // Distance from LookFrom to the plane of perfect focus
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	if err := copier.CopyWithOption(&merged, &override, copier.Option{IgnoreEmpty: true}); err != nil {
		// Both sides share one concrete type, so copier cannot fail here
		panic("geometry: camera config merge: " + err.Error())
	}
	return merged
}

// Camera generates primary rays. Derived fields are computed by Initialize and
// are read-only afterwards, so one camera is shared by all render workers.
type Camera struct {
	config CameraConfig

	imageHeight       int
	pixelSamplesScale float64
	center            core.Vec3
	pixel00Loc        core.Vec3
	pixelDeltaU       core.Vec3
	pixelDeltaV       core.Vec3
	u, v, w           core.Vec3
	defocusDiskU      core.Vec3
	defocusDiskV      core.Vec3
}

// NewCamera creates an initialized camera from the configuration
func NewCamera(config CameraConfig) *Camera {
	c := &Camera{config: config}
	c.Initialize()
	return c
}

// Initialize derives the view basis and pixel grid from the configuration.
// It is a pure function of the configuration and may be called repeatedly.
func (c *Camera) Initialize() {
	cfg := c.config

	c.imageHeight = max(int(float64(cfg.ImageWidth)/cfg.AspectRatio), 1)
	c.pixelSamplesScale = 1.0 / float64(cfg.SamplesPerPixel)
	c.center = cfg.LookFrom

	// Viewport dimensions
	theta := degreesToRadians(cfg.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * cfg.FocusDist
	viewportWidth := viewportHeight * (float64(cfg.ImageWidth) / float64(c.imageHeight))

	// Orthonormal camera basis
	c.w = cfg.LookFrom.Subtract(cfg.LookAt).Normalize()
	c.u = cfg.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(cfg.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(cfg.FocusDist)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := cfg.FocusDist * math.Tan(degreesToRadians(cfg.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)
}

// GetRay returns a ray from the defocus disk toward a jittered point inside pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// sampleSquare returns a point in the [-0.5, 0.5]² unit square
func sampleSquare(sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int { return c.config.ImageWidth }

// ImageHeight returns the derived image height in pixels, at least 1
func (c *Camera) ImageHeight() int { return c.imageHeight }

// SamplesPerPixel returns the configured sample count
func (c *Camera) SamplesPerPixel() int { return c.config.SamplesPerPixel }

// MaxDepth returns the configured bounce limit
func (c *Camera) MaxDepth() int { return c.config.MaxDepth }

// PixelSamplesScale returns the averaging factor 1/samples-per-pixel
func (c *Camera) PixelSamplesScale() float64 { return c.pixelSamplesScale }

// Center returns the pinhole position
func (c *Camera) Center() core.Vec3 { return c.center }

// Basis returns the camera frame: u right, v up, w pointing back from the view direction
func (c *Camera) Basis() (u, v, w core.Vec3) { return c.u, c.v, c.w }

// PixelDeltas returns the offsets from one pixel to the next, horizontally and vertically
func (c *Camera) PixelDeltas() (du, dv core.Vec3) { return c.pixelDeltaU, c.pixelDeltaV }

// Pixel00 returns the world position of the center of pixel (0, 0)
func (c *Camera) Pixel00() core.Vec3 { return c.pixel00Loc }

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
