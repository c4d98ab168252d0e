package geometry

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
)

// motionEpsilon is the shortest motion window treated as actual motion
const motionEpsilon = 1e-8

// Sphere represents a sphere shape, optionally moving linearly between two centers.
// A negative radius flips the normals inward, which models a hollow shell.
type Sphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         material.Material
	bbox             core.AABB
}

// NewSphere creates a stationary sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return NewMovingSphere(center, center, 0, 0, radius, mat)
}

// NewMovingSphere creates a sphere whose center moves from center0 at time0 to center1 at time1
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) *Sphere {
	s := &Sphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
	}
	s.bbox = s.computeBoundingBox()
	return s
}

// CenterAt returns the center at the given time, clamped to the motion window
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	if s.Time1-s.Time0 < motionEpsilon {
		return s.Center0
	}
	if time <= s.Time0 {
		return s.Center0
	}
	if time >= s.Time1 {
		return s.Center1
	}
	t := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Lerp(s.Center1, t)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	center := s.CenterAt(ray.Time)
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2hb·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (-halfB + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hit := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hit.Point.Subtract(center).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.UV = sphereUV(outwardNormal)

	return hit, true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u wraps around the Y axis starting at -X; v runs from the south pole (0) to the north pole (1).
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// computeBoundingBox encloses the sphere at both ends of its motion window
func (s *Sphere) computeBoundingBox() core.AABB {
	r := math.Abs(s.Radius)
	rvec := core.NewVec3(r, r, r)

	box0 := core.NewAABBFromPoints(s.Center0.Subtract(rvec), s.Center0.Add(rvec))
	if s.Time1-s.Time0 < motionEpsilon {
		return box0
	}
	box1 := core.NewAABBFromPoints(s.Center1.Subtract(rvec), s.Center1.Add(rvec))
	return box0.Union(box1)
}
