package material

import (
	"testing"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

func TestLambertian_AlwaysScattersIntoHemisphere(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	sampler := core.NewXorShiftSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should never absorb")
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scattered direction %v points into the surface", scatter.Scattered.Direction)
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)

	// Draws map to (0, -0.9998, 0), which normalizes to the negated normal
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	hit := HitRecord{Normal: normal, FrontFace: true}
	sampler := &scriptedSampler{values: []float64{0.5, 0.0001, 0.5}}

	scatter, _ := lambertian.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, sampler)
	if !scatter.Scattered.Direction.Equals(normal) {
		t.Errorf("Expected fallback to the normal %v, got %v", normal, scatter.Scattered.Direction)
	}
}

func TestLambertian_BlackAlbedoKillsThroughput(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0, 0, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	scatter, didScatter := lambertian.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, core.NewXorShiftSampler(3))
	if !didScatter {
		t.Fatal("Lambertian should never absorb")
	}
	throughput := core.White.MultiplyVec(scatter.Attenuation)
	if !throughput.Equals(core.Vec3{}) {
		t.Errorf("Expected zero throughput after one bounce, got %v", throughput)
	}
}

// scriptedSampler replays a fixed sequence of values, cycling when exhausted
type scriptedSampler struct {
	values []float64
	next   int
}

func (s *scriptedSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *scriptedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}
