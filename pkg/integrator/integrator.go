package integrator

import (
	"fmt"
	"strings"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/profiler"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler, prof *profiler.Profiler) core.Vec3
}

// DepthPolicy selects what a path that exhausts the bounce limit contributes
type DepthPolicy int

const (
	// DepthSky treats an exhausted path like an escaped one: throughput times the sky
	DepthSky DepthPolicy = iota
	// DepthBlack returns black for an exhausted path
	DepthBlack
)

// ParseDepthPolicy converts "sky" or "black" to a DepthPolicy
func ParseDepthPolicy(s string) (DepthPolicy, error) {
	switch strings.ToLower(s) {
	case "", "sky":
		return DepthSky, nil
	case "black":
		return DepthBlack, nil
	default:
		return DepthSky, fmt.Errorf("unknown depth policy %q", s)
	}
}

// String returns the flag spelling of the policy
func (p DepthPolicy) String() string {
	if p == DepthBlack {
		return "black"
	}
	return "sky"
}

// Termination records why a path stopped
type Termination int

const (
	Escaped        Termination = iota // Left the scene and saw the sky
	Absorbed                          // A material absorbed the ray
	DepthExhausted                    // Reached the bounce limit
)

func (t Termination) String() string {
	switch t {
	case Escaped:
		return "escaped"
	case Absorbed:
		return "absorbed"
	default:
		return "depth-exhausted"
	}
}

// PathResult is the outcome of tracing one camera ray
type PathResult struct {
	Color       core.Vec3   // Radiance estimate
	Throughput  core.Vec3   // Product of attenuations along the path
	Bounces     int         // Successful scatter events
	Termination Termination // Why the path stopped
}
