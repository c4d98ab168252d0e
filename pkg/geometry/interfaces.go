package geometry

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect: a primitive, a list, or a BVH node.
// Implementations must be safe for concurrent Hit calls once built.
type Hittable interface {
	// Hit returns the closest intersection with t strictly inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
