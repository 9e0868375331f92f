package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"x cross y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"y cross z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"z cross x", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"parallel", NewVec3(2, 0, 0), NewVec3(5, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	assert.InDelta(t, 1.0, v.Length(), 1e-12)
	assert.InDelta(t, 0.6, v.X, 1e-12)
	assert.InDelta(t, 0.8, v.Y, 1e-12)

	zero := Vec3{}.Normalize()
	assert.True(t, zero.Equals(Vec3{}), "normalizing the zero vector should stay zero")
}

func TestVec3_NearZero(t *testing.T) {
	assert.True(t, NewVec3(1e-9, -1e-9, 0).NearZero())
	assert.False(t, NewVec3(1e-9, 1e-3, 0).NearZero())
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5).Clamp(NewInterval(0, 1))
	assert.Equal(t, NewVec3(0, 0.5, 1), v)
}

func TestVec3_Lerp(t *testing.T) {
	a := NewVec3(1, 1, 1)
	b := NewVec3(0.5, 0.7, 1.0)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))

	mid := a.Lerp(b, 0.5)
	assert.InDelta(t, 0.75, mid.X, 1e-12)
	assert.InDelta(t, 0.85, mid.Y, 1e-12)
	assert.InDelta(t, 1.0, mid.Z, 1e-12)
}

func TestRay_At(t *testing.T) {
	r := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	p := r.At(1.5)
	assert.Equal(t, NewVec3(1, 2, 0), p)
	assert.Equal(t, 0.0, r.Time)

	timed := NewRayAt(r.Origin, r.Direction, 0.25)
	assert.Equal(t, 0.25, timed.Time)
	assert.Equal(t, p, timed.At(1.5))
}

func TestVec3_MaxComponent(t *testing.T) {
	assert.Equal(t, 0.9, NewVec3(0.1, 0.9, -math.MaxFloat64).MaxComponent())
}
