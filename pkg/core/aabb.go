package core

// minAxisExtent is the thinnest slab an AABB keeps; flatter axes are padded so the slab test can hit them
const minAxisExtent = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB returns a box that contains nothing. Its union with any box is that box.
func EmptyAABB() AABB {
	return AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
}

// NewAABB creates an AABB from one interval per axis
func NewAABB(x, y, z Interval) AABB {
	box := AABB{X: x, Y: y, Z: z}
	box.padToMinimums()
	return box
}

// NewAABBFromPoints creates an AABB with a and b as opposite corners, in either order
func NewAABBFromPoints(a, b Vec3) AABB {
	box := AABB{
		X: NewInterval(min(a.X, b.X), max(a.X, b.X)),
		Y: NewInterval(min(a.Y, b.Y), max(a.Y, b.Y)),
		Z: NewInterval(min(a.Z, b.Z), max(a.Z, b.Z)),
	}
	box.padToMinimums()
	return box
}

// NewAABBFromBoxes returns the AABB that bounds both boxes
func NewAABBFromBoxes(a, b AABB) AABB {
	return AABB{
		X: NewIntervalUnion(a.X, b.X),
		Y: NewIntervalUnion(a.Y, b.Y),
		Z: NewIntervalUnion(a.Z, b.Z),
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return NewAABBFromBoxes(aabb, other)
}

// padToMinimums thickens zero-thickness axes so rays grazing a flat box are still accepted
func (aabb *AABB) padToMinimums() {
	if aabb.X.Size() < minAxisExtent {
		aabb.X = aabb.X.Expand(minAxisExtent)
	}
	if aabb.Y.Size() < minAxisExtent {
		aabb.Y = aabb.Y.Expand(minAxisExtent)
	}
	if aabb.Z.Size() < minAxisExtent {
		aabb.Z = aabb.Z.Expand(minAxisExtent)
	}
}

// Axis returns the interval for axis 0 (X), 1 (Y) or 2 (Z)
func (aabb AABB) Axis(axis int) Interval {
	switch axis {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	default:
		return aabb.Z
	}
}

// Hit tests if a ray intersects with this AABB within rayT using the slab method
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	tMin, tMax := rayT.Min, rayT.Max

	for axis := 0; axis < 3; axis++ {
		slab := aabb.Axis(axis)
		invDirection := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection
		if invDirection < 0 {
			t0, t1 = t1, t0
		}

		// A NaN bound (parallel ray with its origin on a slab plane) leaves the window unchanged
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		if tMax <= tMin {
			return false
		}
	}

	return true
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return NewVec3(
		(aabb.X.Min+aabb.X.Max)*0.5,
		(aabb.Y.Min+aabb.Y.Max)*0.5,
		(aabb.Z.Min+aabb.Z.Max)*0.5,
	)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x > y && x > z {
		return 0
	}
	if y > z {
		return 1
	}
	return 2
}

// IsEmpty returns true if any axis interval is empty
func (aabb AABB) IsEmpty() bool {
	return aabb.X.Min > aabb.X.Max || aabb.Y.Min > aabb.Y.Max || aabb.Z.Min > aabb.Z.Max
}
