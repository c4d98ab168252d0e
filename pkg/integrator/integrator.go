package integrator

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray with at most depth bounces.
	// world must not be mutated while RayColor runs.
	RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3
}

// Background supplies the radiance of rays that escape the scene
type Background struct {
	Horizon core.Vec3 // Color at t=0 (straight down), blending upwards through the horizon
	Zenith  core.Vec3 // Color at t=1 (straight up)
}

// DefaultSky returns the white-to-light-blue vertical gradient
func DefaultSky() Background {
	return Background{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Evaluate blends between Horizon and Zenith by the height of the ray direction
func (b Background) Evaluate(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Horizon.Lerp(b.Zenith, t)
}
