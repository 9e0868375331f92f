package core

import (
	"math"
	"math/rand"
)

// Vec2 represents a 2D sample
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a Go random generator. It is owned by a single goroutine.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewXorShiftSampler creates a sampler backed by a fresh xorshift stream
func NewXorShiftSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(NewXorShiftSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Reseed restarts the underlying stream from seed
func (r *RandomSampler) Reseed(seed int64) {
	r.random.Seed(seed)
}

// RandomInUnitSphere rejection-samples a point inside the unit sphere
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := NewVec3(2*sampler.Get1D()-1, 2*sampler.Get1D()-1, 2*sampler.Get1D()-1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		lensq := p.LengthSquared()
		// tiny vectors lose precision when normalized
		if lensq > 1e-160 {
			return p.Divide(math.Sqrt(lensq))
		}
	}
}

// RandomInUnitDisk rejection-samples a point inside the unit disk on the z=0 plane
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := NewVec3(2*sampler.Get1D()-1, 2*sampler.Get1D()-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// PixelSeed derives a well-mixed stream seed for one pixel from the render seed
func PixelSeed(seed int64, pixelIndex int) int64 {
	// splitmix64 finalizer
	z := uint64(seed) + uint64(pixelIndex+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
