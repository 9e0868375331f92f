package scene

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// ErrUnsupportedSceneFormat is returned for scene files that are neither YAML nor TOML
var ErrUnsupportedSceneFormat = errors.New("unsupported scene file format")

// Format identifies a scene file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// sceneFile is the on-disk scene layout shared by both encodings
type sceneFile struct {
	Name      string                         `toml:"name" yaml:"name"`
	Camera    geometry.CameraConfig          `toml:"camera" yaml:"camera"`
	Sky       *Sky                           `toml:"sky" yaml:"sky"`
	Materials map[string]material.Descriptor `toml:"materials" yaml:"materials"`
	Spheres   []sphereEntry                  `toml:"spheres" yaml:"spheres"`
}

// sphereEntry references a named material or declares its own surface inline
type sphereEntry struct {
	Center   core.Vec3            `toml:"center" yaml:"center"`
	Radius   float64              `toml:"radius" yaml:"radius"`
	Material string               `toml:"material" yaml:"material"`
	Surface  *material.Descriptor `toml:"surface" yaml:"surface"`
}

// fileCameraDefaults fills camera fields a scene file leaves out
var fileCameraDefaults = geometry.CameraConfig{
	AspectRatio:     16.0 / 9.0,
	ImageWidth:      400,
	SamplesPerPixel: 10,
	MaxDepth:        50,
	VFov:            90,
	LookFrom:        core.NewVec3(0, 0, 0),
	LookAt:          core.NewVec3(0, 0, -1),
	VUp:             core.NewVec3(0, 1, 0),
	DefocusAngle:    0,
	FocusDist:       1,
}

// LoadFile reads a scene from a .yaml, .yml or .toml file. A leading ~ is expanded.
func LoadFile(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding scene path %q: %w", path, err)
	}

	format, err := formatFromExt(expanded)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	s, err := Parse(data, format, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", expanded, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(expanded), filepath.Ext(expanded))
	}
	return s, nil
}

// Parse decodes a scene document in the given format
func Parse(data []byte, format Format, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	var file sceneFile
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSceneFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	store, err := file.buildStore()
	if err != nil {
		return nil, err
	}

	sky := DefaultSky
	if file.Sky != nil {
		sky = *file.Sky
	}

	cameraConfig := geometry.MergeCameraConfig(fileCameraDefaults, file.Camera)
	return newScene(file.Name, store, cameraConfig, sky, cameraOverrides...), nil
}

func (f *sceneFile) buildStore() (*Store, error) {
	store := NewStore()

	// Sorted so material handles do not depend on map iteration order
	named := make(map[string]MaterialID, len(f.Materials))
	for _, name := range slices.Sorted(maps.Keys(f.Materials)) {
		m, err := f.Materials[name].Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		named[name] = store.AddMaterial(m)
	}

	for i, entry := range f.Spheres {
		var id MaterialID
		switch {
		case entry.Surface != nil && entry.Material != "":
			return nil, fmt.Errorf("sphere %d: set either material or surface, not both", i)
		case entry.Surface != nil:
			m, err := entry.Surface.Build()
			if err != nil {
				return nil, fmt.Errorf("sphere %d: %w", i, err)
			}
			id = store.AddMaterial(m)
		case entry.Material != "":
			var ok bool
			id, ok = named[entry.Material]
			if !ok {
				return nil, fmt.Errorf("sphere %d: %w: no material named %q", i, material.ErrUnknownMaterial, entry.Material)
			}
		default:
			return nil, fmt.Errorf("sphere %d: missing material", i)
		}
		store.AddSphere(entry.Center, entry.Radius, id)
	}

	return store, nil
}

func formatFromExt(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSceneFormat, path)
	}
}
