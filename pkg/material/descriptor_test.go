package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

func TestDescriptor_Build(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		expected   Material
	}{
		{
			"lambertian",
			Descriptor{Type: "lambertian", Albedo: core.NewVec3(0.1, 0.2, 0.5)},
			NewLambertian(core.NewVec3(0.1, 0.2, 0.5)),
		},
		{
			"metal clamps fuzz",
			Descriptor{Type: "Metal", Albedo: core.NewVec3(0.8, 0.6, 0.2), Fuzz: 3},
			NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1),
		},
		{
			"glass alias",
			Descriptor{Type: " glass ", RefractionIndex: 1.5},
			NewDielectric(1.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.descriptor.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestDescriptor_BuildUnknownType(t *testing.T) {
	_, err := Descriptor{Type: "plastic"}.Build()
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	assert.Contains(t, err.Error(), "plastic")
}

func TestMaterialNames(t *testing.T) {
	assert.Equal(t, "lambertian", NewLambertian(core.White).Name())
	assert.Equal(t, "metal", NewMetal(core.White, 0).Name())
	assert.Equal(t, "dielectric", NewDielectric(1.5).Name())
}
