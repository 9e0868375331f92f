package scene

import (
	"fmt"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// MaterialID is a non-owning handle into a Store's material arena
type MaterialID int

// Store holds sphere bodies as parallel arrays plus the materials they reference.
// It is built before rendering and read-only afterwards, so workers share it freely.
type Store struct {
	centers     []core.Vec3
	radii       []float64
	materialIDs []MaterialID
	materials   []material.Material
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// FromArrays builds a store from parallel body arrays and a material arena.
// It panics if the body arrays differ in length or a handle is out of range.
func FromArrays(centers []core.Vec3, radii []float64, materialIDs []MaterialID, materials []material.Material) *Store {
	if len(centers) != len(radii) || len(centers) != len(materialIDs) {
		panic(fmt.Sprintf("scene: mismatched body arrays: %d centers, %d radii, %d materials",
			len(centers), len(radii), len(materialIDs)))
	}

	s := &Store{materials: materials}
	for i := range centers {
		s.AddSphere(centers[i], radii[i], materialIDs[i])
	}
	return s
}

// AddMaterial stores m in the arena and returns its handle
func (s *Store) AddMaterial(m material.Material) MaterialID {
	s.materials = append(s.materials, m)
	return MaterialID(len(s.materials) - 1)
}

// AddSphere adds a body referencing an existing material. Negative radii clamp to zero.
func (s *Store) AddSphere(center core.Vec3, radius float64, id MaterialID) {
	if int(id) < 0 || int(id) >= len(s.materials) {
		panic(fmt.Sprintf("scene: material handle %d out of range [0, %d)", id, len(s.materials)))
	}
	sphere := geometry.NewSphere(center, radius)
	s.centers = append(s.centers, sphere.Center)
	s.radii = append(s.radii, sphere.Radius)
	s.materialIDs = append(s.materialIDs, id)
}

// Len returns the number of bodies
func (s *Store) Len() int { return len(s.centers) }

// MaterialCount returns the size of the material arena
func (s *Store) MaterialCount() int { return len(s.materials) }

// Sphere returns body i
func (s *Store) Sphere(i int) geometry.Sphere {
	return geometry.Sphere{Center: s.centers[i], Radius: s.radii[i]}
}

// MaterialOf returns the material referenced by body i
func (s *Store) MaterialOf(i int) material.Material {
	return s.materials[s.materialIDs[i]]
}

// NearestHit scans every body and returns the closest intersection strictly inside rayT
func (s *Store) NearestHit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool) {
	closest := -1
	closestSoFar := rayT.Max
	for i := range s.centers {
		if t, ok := geometry.HitSphere(s.centers[i], s.radii[i], ray, rayT.WithMax(closestSoFar)); ok {
			closestSoFar = t
			closest = i
		}
	}
	if closest < 0 {
		return material.HitRecord{}, false
	}

	hit := material.HitRecord{
		T:        closestSoFar,
		Point:    ray.At(closestSoFar),
		Material: s.MaterialOf(closest),
	}
	hit.SetFaceNormal(ray, geometry.OutwardSphereNormal(s.centers[closest], s.radii[closest], hit.Point))
	return hit, true
}
