package geometry

import (
	"sort"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
)

// BVHNode is a binary bounding volume hierarchy node. Children are either
// primitives or further nodes; a single remaining primitive is stored as both children.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// NewBVH builds a hierarchy over objects, splitting on a random axis at each level.
// The input slice is copied. Panics if objects is empty.
func NewBVH(objects []Hittable, sampler core.Sampler) *BVHNode {
	if len(objects) == 0 {
		panic("geometry: NewBVH called with no objects")
	}

	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, sampler)
}

// NewBVHFromList builds a hierarchy over the objects of list
func NewBVHFromList(list *HittableList, sampler core.Sampler) *BVHNode {
	return NewBVH(list.Objects(), sampler)
}

// buildBVH recursively splits objects in place at the median of a random axis
func buildBVH(objects []Hittable, sampler core.Sampler) *BVHNode {
	axis := core.RandomInt(sampler, 0, 2)
	node := &BVHNode{}

	switch len(objects) {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		if boxLess(objects[0], objects[1], axis) {
			node.Left, node.Right = objects[0], objects[1]
		} else {
			node.Left, node.Right = objects[1], objects[0]
		}
	default:
		sortByAxis(objects, axis)
		mid := len(objects) / 2
		node.Left = buildBVH(objects[:mid], sampler)
		node.Right = buildBVH(objects[mid:], sampler)
	}

	node.bbox = node.Left.BoundingBox().Union(node.Right.BoundingBox())
	return node
}

// boxLess orders hittables by the minimum of their boxes on axis
func boxLess(a, b Hittable, axis int) bool {
	return a.BoundingBox().Axis(axis).Min < b.BoundingBox().Axis(axis).Min
}

// sortByAxis sorts objects by the minimum of their boxes on axis
func sortByAxis(objects []Hittable, axis int) {
	sort.Slice(objects, func(i, j int) bool {
		return boxLess(objects[i], objects[j], axis)
	})
}

// Hit tests the left subtree first and uses its hit distance to bound the right subtree
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT)

	rightMax := rayT.Max
	if hitLeft {
		rightMax = leftHit.T
	}
	rightHit, hitRight := n.Right.Hit(ray, core.NewInterval(rayT.Min, rightMax))

	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the union of both children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVHStats describes the shape of a hierarchy
type BVHStats struct {
	TotalNodes int
	LeafNodes  int // Nodes whose children are both primitives
	Primitives int // Distinct primitives referenced from leaves
	MaxDepth   int
	AvgDepth   float64
}

// Stats walks the hierarchy and reports its structure
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	left, leftIsNode := n.Left.(*BVHNode)
	right, rightIsNode := n.Right.(*BVHNode)

	if !leftIsNode && !rightIsNode {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth)
	}

	if leftIsNode {
		left.collectStats(depth+1, stats)
	} else {
		stats.Primitives++
	}

	// A span of one aliases the same primitive on both sides
	if rightIsNode {
		right.collectStats(depth+1, stats)
	} else if n.Right != n.Left {
		stats.Primitives++
	}
}
