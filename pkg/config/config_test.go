package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raytracer.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	opts := Default()
	require.NoError(t, opts.Validate())
	assert.Equal(t, DefaultSeed, opts.Seed)
	assert.Equal(t, "image.exr", opts.Output)
	assert.Equal(t, 20, opts.ProgressEvery)
	assert.Positive(t, opts.Threads)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
scene = "single-sphere"
threads = 3
tile_size = 16
depth_policy = "black"
profiling = true
profile_sort = "calls"

[camera]
samples_per_pixel = 64
look_from = { x = 0.0, y = 1.0, z = 5.0 }
`)

	opts, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, opts.Validate())

	assert.Equal(t, "single-sphere", opts.Scene)
	assert.Equal(t, 3, opts.Threads)
	assert.Equal(t, 16, opts.TileSize)
	assert.Equal(t, "black", opts.DepthPolicy)
	assert.True(t, opts.Profiling)
	assert.Equal(t, "calls", opts.ProfileSort)
	assert.Equal(t, 64, opts.Camera.SamplesPerPixel)
	assert.Equal(t, core.NewVec3(0, 1, 5), opts.Camera.LookFrom)

	// Untouched keys keep their defaults
	assert.Equal(t, DefaultSeed, opts.Seed)
	assert.Equal(t, "image.exr", opts.Output)
	assert.Zero(t, opts.Camera.ImageWidth)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, `thread_count = 4`))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Load(writeConfig(t, `threads = "many"`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"zero threads", func(o *Options) { o.Threads = 0 }},
		{"negative tile size", func(o *Options) { o.TileSize = -8 }},
		{"negative progress", func(o *Options) { o.ProgressEvery = -1 }},
		{"preview scale zero", func(o *Options) { o.PreviewScale = 0 }},
		{"preview scale above one", func(o *Options) { o.PreviewScale = 1.5 }},
		{"empty output", func(o *Options) { o.Output = "" }},
		{"depth policy", func(o *Options) { o.DepthPolicy = "grey" }},
		{"profile sort", func(o *Options) { o.ProfileSort = "time" }},
		{"log level", func(o *Options) { o.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.modify(&opts)
			assert.ErrorIs(t, opts.Validate(), ErrInvalidOptions)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/renders/image.exr")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "renders", "image.exr"), expanded)

	expanded, err = ExpandPath("relative/image.exr")
	require.NoError(t, err)
	assert.Equal(t, "relative/image.exr", expanded)
}
