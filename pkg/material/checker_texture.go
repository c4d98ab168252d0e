package material

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// CheckerTexture alternates between two textures on a 3D grid of cubic cells
type CheckerTexture struct {
	InvScale float64 // Reciprocal of the cell edge length
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a checker pattern with cells of edge length scale
func NewCheckerTexture(scale float64, even, odd Texture) *CheckerTexture {
	return &CheckerTexture{InvScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckerTextureFromColors creates a checker pattern from two solid colors
func NewCheckerTextureFromColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate picks the even or odd texture from the parity of the cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.InvScale * point.X))
	y := int(math.Floor(c.InvScale * point.Y))
	z := int(math.Floor(c.InvScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}
