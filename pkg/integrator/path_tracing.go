package integrator

import (
	"math"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/profiler"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// RayEpsilon is the minimum hit distance, which keeps scattered rays from
// re-hitting the surface they start on
const RayEpsilon = 0.001

// PathTracingConfig configures the path tracer
type PathTracingConfig struct {
	MaxDepth    int         // Maximum number of bounces
	DepthPolicy DepthPolicy // Contribution of paths that reach MaxDepth
}

// PathTracingIntegrator implements iterative unidirectional path tracing
type PathTracingIntegrator struct {
	config PathTracingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config PathTracingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler, prof *profiler.Profiler) core.Vec3 {
	return pt.Trace(ray, scene, sampler, prof).Color
}

// Trace follows ray through the scene until it escapes, is absorbed, or
// reaches the bounce limit
func (pt *PathTracingIntegrator) Trace(ray core.Ray, scene *scene.Scene, sampler core.Sampler, prof *profiler.Profiler) PathResult {
	defer prof.Scope("ray_color")()

	throughput := core.White
	rayT := core.NewInterval(RayEpsilon, math.Inf(1))

	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		h := prof.Start("nearest_hit")
		hit, isHit := scene.Store.NearestHit(ray, rayT)
		prof.End(h)

		if !isHit {
			return PathResult{
				Color:       throughput.MultiplyVec(scene.Sky.Color(ray.Direction)),
				Throughput:  throughput,
				Bounces:     depth,
				Termination: Escaped,
			}
		}

		h = prof.Start(hit.Material.Name() + "::scatter")
		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		prof.End(h)

		if !didScatter {
			return PathResult{
				Throughput:  throughput,
				Bounces:     depth,
				Termination: Absorbed,
			}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	result := PathResult{
		Throughput:  throughput,
		Bounces:     max(pt.config.MaxDepth, 0),
		Termination: DepthExhausted,
	}
	if pt.config.DepthPolicy == DepthSky {
		result.Color = throughput.MultiplyVec(scene.Sky.Color(ray.Direction))
	}
	return result
}
