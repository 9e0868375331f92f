package geometry

import (
	"math"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// Sphere represents a sphere shape. The radius is never negative.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere, clamping a negative radius to zero
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{
		Center: center,
		Radius: max(0, radius),
	}
}

// Hit returns the nearest root of the ray-sphere equation strictly inside rayT.
//
// The quadratic is solved as a·t² − 2h·t + c = 0 with h = d·(center − origin),
// which avoids the cancellation of the b² − 4ac form.
func (s Sphere) Hit(ray core.Ray, rayT core.Interval) (float64, bool) {
	return HitSphere(s.Center, s.Radius, ray, rayT)
}

// OutwardNormal returns the unit normal pointing away from the center at point p
func (s Sphere) OutwardNormal(p core.Vec3) core.Vec3 {
	return OutwardSphereNormal(s.Center, s.Radius, p)
}

// HitSphere is the root solve behind Sphere.Hit, usable directly on
// structure-of-arrays storage
func HitSphere(center core.Vec3, radius float64, ray core.Ray, rayT core.Interval) (float64, bool) {
	oc := center.Subtract(ray.Origin)

	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - radius*radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return 0, false
		}
	}
	return root, true
}

// OutwardSphereNormal returns (p − center) / radius
func OutwardSphereNormal(center core.Vec3, radius float64, p core.Vec3) core.Vec3 {
	return p.Subtract(center).Divide(radius)
}
