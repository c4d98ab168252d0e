package geometry

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
)

// HittableList is an ordered collection of hittables tested linearly
type HittableList struct {
	objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB()}
	for _, obj := range objects {
		list.Add(obj)
	}
	return list
}

// Add appends an object and grows the bounding box to include it
func (l *HittableList) Add(object Hittable) {
	l.objects = append(l.objects, object)
	l.bbox = l.bbox.Union(object.BoundingBox())
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.objects = nil
	l.bbox = core.EmptyAABB()
}

// Objects returns the underlying objects. Callers must not modify the slice.
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Len returns the number of objects
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.objects {
		if hit, ok := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); ok {
			closestHit = hit
			closestSoFar = hit.T
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all object boxes
func (l *HittableList) BoundingBox() core.AABB {
	return l.bbox
}
