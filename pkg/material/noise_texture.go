package material

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// NoiseTexture shades gray from a Perlin noise field
type NoiseTexture struct {
	Noise *Perlin
	Scale float64 // Spatial frequency of the noise
}

// NewNoiseTexture creates a noise texture with its own Perlin field
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{Noise: NewPerlin(sampler), Scale: scale}
}

// Evaluate maps noise in [-1,1] to a gray level in [0,1]
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	value := 0.5 * (1.0 + n.Noise.Noise(point.Multiply(n.Scale)))
	return core.NewVec3(value, value, value)
}

// MarbleTexture phase-shifts a sine stripe along Z with turbulence
type MarbleTexture struct {
	Noise *Perlin
	Scale float64
}

// NewMarbleTexture creates a marble texture with its own Perlin field
func NewMarbleTexture(scale float64, sampler core.Sampler) *MarbleTexture {
	return &MarbleTexture{Noise: NewPerlin(sampler), Scale: scale}
}

// Evaluate returns the marble gray level at point
func (m *MarbleTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	value := 0.5 * (1.0 + math.Sin(m.Scale*point.Z+10*m.Noise.Turbulence(point, 7)))
	return core.NewVec3(value, value, value)
}
