package material

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// ErrUnknownMaterial is returned when a descriptor names no known material variant
var ErrUnknownMaterial = errors.New("unknown material type")

// Material variant names accepted by Descriptor.Type
const (
	TypeLambertian = "lambertian"
	TypeMetal      = "metal"
	TypeDielectric = "dielectric"
)

// Descriptor is the serializable form of a material, as read from scene files
type Descriptor struct {
	Type            string    `toml:"type" yaml:"type"`
	Albedo          core.Vec3 `toml:"albedo" yaml:"albedo"`
	Fuzz            float64   `toml:"fuzz" yaml:"fuzz"`
	RefractionIndex float64   `toml:"refraction_index" yaml:"refraction_index"`
}

// Build constructs the material the descriptor names
func (d Descriptor) Build() (Material, error) {
	switch strings.ToLower(strings.TrimSpace(d.Type)) {
	case TypeLambertian, "diffuse":
		return NewLambertian(d.Albedo), nil
	case TypeMetal:
		return NewMetal(d.Albedo, d.Fuzz), nil
	case TypeDielectric, "glass":
		return NewDielectric(d.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, d.Type)
	}
}
