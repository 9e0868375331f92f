// Package config holds the command line options of the renderer and loads
// them from TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/integrator"
	"github.com/df07/go-tile-raytracer/pkg/logging"
	"github.com/df07/go-tile-raytracer/pkg/profiler"
	"github.com/df07/go-tile-raytracer/pkg/renderer"
)

// ErrInvalidOptions is wrapped by every Validate failure
var ErrInvalidOptions = errors.New("invalid options")

// DefaultSeed seeds every pixel stream unless overridden
const DefaultSeed int64 = 0xDEADBEEF

// Options are the settings of one renderer invocation
type Options struct {
	Scene         string                `toml:"scene"`          // Builtin scene name or scene file path
	Seed          int64                 `toml:"seed"`           // Base seed for scene generation and sampling
	Threads       int                   `toml:"threads"`        // Render workers
	TileSize      int                   `toml:"tile_size"`      // Square tile edge in pixels
	DepthPolicy   string                `toml:"depth_policy"`   // sky or black
	ProgressEvery int                   `toml:"progress_every"` // Tiles between progress logs
	Output        string                `toml:"output"`         // .exr, .png or .jpg
	Preview       string                `toml:"preview"`        // Optional scaled PNG
	PreviewScale  float64               `toml:"preview_scale"`  // In (0, 1]
	LogLevel      string                `toml:"log_level"`      // debug, info, warn or error
	LogFile       string                `toml:"log_file"`
	NoColor       bool                  `toml:"no_color"`
	Profiling     bool                  `toml:"profiling"`
	ProfileSort   string                `toml:"profile_sort"` // discovery or calls
	Camera        geometry.CameraConfig `toml:"camera"`       // Non-zero fields override the scene camera
}

// Default returns the options used when nothing is configured
func Default() Options {
	return Options{
		Scene:         "many-balls",
		Seed:          DefaultSeed,
		Threads:       runtime.NumCPU(),
		TileSize:      renderer.DefaultTileSize,
		DepthPolicy:   integrator.DepthSky.String(),
		ProgressEvery: renderer.DefaultProgressEvery,
		Output:        "image.exr",
		PreviewScale:  1,
		LogLevel:      "info",
		ProfileSort:   profiler.OrderDiscovery.String(),
	}
}

// Load reads a TOML options file over the defaults. Unknown keys are rejected.
func Load(path string) (Options, error) {
	opts := Default()

	expanded, err := ExpandPath(path)
	if err != nil {
		return opts, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return opts, fmt.Errorf("reading config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return opts, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return opts, nil
}

// Validate checks the options the renderer relies on
func (o Options) Validate() error {
	if o.Threads <= 0 {
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidOptions, o.Threads)
	}
	if o.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidOptions, o.TileSize)
	}
	if o.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress interval must not be negative, got %d", ErrInvalidOptions, o.ProgressEvery)
	}
	if o.PreviewScale <= 0 || o.PreviewScale > 1 {
		return fmt.Errorf("%w: preview scale must be in (0, 1], got %g", ErrInvalidOptions, o.PreviewScale)
	}
	if o.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidOptions)
	}
	if _, err := integrator.ParseDepthPolicy(o.DepthPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if _, err := profiler.ParseOrder(o.ProfileSort); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if _, err := logging.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", path, err)
	}
	return expanded, nil
}
