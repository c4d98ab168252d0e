package material

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// PixelSource is a decoded raster image addressed from the top-left corner.
// A Height() of zero or less means no image is available.
type PixelSource interface {
	Width() int
	Height() int
	PixelAt(x, y int) (r, g, b uint8)
}

// missingImageColor is returned when there is no image data to sample
var missingImageColor = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Source PixelSource
}

// NewImageTexture creates a new image texture
func NewImageTexture(source PixelSource) *ImageTexture {
	return &ImageTexture{Source: source}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Source == nil || t.Source.Height() <= 0 || t.Source.Width() <= 0 {
		return missingImageColor
	}

	unit := core.NewInterval(0, 1)
	u := unit.Clamp(uv.X)
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	v := 1.0 - unit.Clamp(uv.Y)

	width, height := t.Source.Width(), t.Source.Height()
	x := int(u * float64(width))
	y := int(v * float64(height))

	// u or v of exactly 1 lands one past the last pixel
	if x >= width {
		x = width - 1
	}
	if y >= height {
		y = height - 1
	}

	r, g, b := t.Source.PixelAt(x, y)
	const colorScale = 1.0 / 255.0
	return core.NewVec3(
		colorScale*float64(r),
		colorScale*float64(g),
		colorScale*float64(b),
	)
}
