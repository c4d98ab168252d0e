package material

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

func TestSolidColor(t *testing.T) {
	color := core.NewVec3(0.2, 0.4, 0.6)
	texture := NewSolidColor(color)

	points := []core.Vec3{{X: 0, Y: 0, Z: 0}, {X: -3, Y: 7, Z: 1e6}}
	for _, p := range points {
		if got := texture.Evaluate(core.NewVec2(0.3, 0.9), p); !got.Equals(color) {
			t.Errorf("SolidColor at %v = %v, want %v", p, got, color)
		}
	}
}

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewCheckerTextureFromColors(0.5, even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"Origin cell", core.NewVec3(0.1, 0.1, 0.1), even},
		{"One step in X", core.NewVec3(0.6, 0.1, 0.1), odd},
		{"Two steps", core.NewVec3(0.6, 0.6, 0.1), even},
		{"Negative cell", core.NewVec3(-0.1, 0.1, 0.1), odd},
		{"Two negative steps", core.NewVec3(-0.1, -0.1, 0.1), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); !got.Equals(tt.expected) {
				t.Errorf("Checker at %v = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestCheckerTexture_Periodicity(t *testing.T) {
	const scale = 0.32
	checker := NewCheckerTextureFromColors(scale, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	sampler := core.NewSeededSampler(3)

	// Shifting by two cells along any axis keeps the color
	for i := 0; i < 200; i++ {
		p := core.RandomVec3Range(sampler, -10, 10)
		base := checker.Evaluate(core.Vec2{}, p)
		for axis := 0; axis < 3; axis++ {
			var shift core.Vec3
			switch axis {
			case 0:
				shift = core.NewVec3(2*scale, 0, 0)
			case 1:
				shift = core.NewVec3(0, 2*scale, 0)
			default:
				shift = core.NewVec3(0, 0, 2*scale)
			}
			shifted := p.Add(shift)
			// Skip points that land within rounding distance of a cell boundary
			c := shifted.Axis(axis) / scale
			if math.Abs(c-math.Round(c)) < 1e-6 {
				continue
			}
			if got := checker.Evaluate(core.Vec2{}, shifted); !got.Equals(base) {
				t.Fatalf("Checker not periodic at %v + %v: %v vs %v", p, shift, got, base)
			}
		}
	}
}

// gridImage is a PixelSource whose red channel encodes x and green encodes y
type gridImage struct {
	width, height int
}

func (g gridImage) Width() int  { return g.width }
func (g gridImage) Height() int { return g.height }
func (g gridImage) PixelAt(x, y int) (uint8, uint8, uint8) {
	return uint8(x), uint8(y), 255
}

func TestImageTexture_Evaluate(t *testing.T) {
	texture := NewImageTexture(gridImage{width: 4, height: 2})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"Bottom-left", core.NewVec2(0, 0), core.NewVec3(0, 1.0/255, 1)},
		{"Top-left", core.NewVec2(0, 1), core.NewVec3(0, 0, 1)},
		{"Top-right corner clamps to last pixel", core.NewVec2(1, 1), core.NewVec3(3.0/255, 0, 1)},
		{"Interior", core.NewVec2(0.6, 0.25), core.NewVec3(2.0/255, 1.0/255, 1)},
		{"Out of range clamps", core.NewVec2(-2, 5), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texture.Evaluate(tt.uv, core.Vec3{})
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.uv, got, tt.expected)
			}
		})
	}
}

func TestImageTexture_MissingImageIsCyan(t *testing.T) {
	cyan := core.NewVec3(0, 1, 1)

	tests := []struct {
		name    string
		texture *ImageTexture
	}{
		{"Nil source", NewImageTexture(nil)},
		{"Zero height", NewImageTexture(gridImage{width: 4, height: 0})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); !got.Equals(cyan) {
				t.Errorf("Expected cyan, got %v", got)
			}
		})
	}
}

func TestPerlin_Deterministic(t *testing.T) {
	a := NewPerlin(core.NewSeededSampler(11))
	b := NewPerlin(core.NewSeededSampler(11))

	sampler := core.NewSeededSampler(5)
	for i := 0; i < 100; i++ {
		p := core.RandomVec3Range(sampler, -20, 20)
		if a.Noise(p) != b.Noise(p) {
			t.Fatalf("Noise differs for identical seeds at %v", p)
		}
	}
}

func TestPerlin_Range(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(1))
	sampler := core.NewSeededSampler(2)

	varied := false
	first := perlin.Noise(core.NewVec3(0.5, 0.5, 0.5))
	for i := 0; i < 5000; i++ {
		p := core.RandomVec3Range(sampler, -50, 50)
		n := perlin.Noise(p)
		if n < -1.0001 || n > 1.0001 {
			t.Fatalf("Noise(%v) = %f out of [-1,1]", p, n)
		}
		if n != first {
			varied = true
		}

		turb := perlin.Turbulence(p, 7)
		if turb < 0 {
			t.Fatalf("Turbulence(%v) = %f is negative", p, turb)
		}
	}
	if !varied {
		t.Error("Noise should vary across space")
	}
}

func TestPerlin_ZeroAtLatticePoints(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(9))

	// Gradient noise vanishes on integer lattice points
	for _, p := range []core.Vec3{{X: 0, Y: 0, Z: 0}, {X: 3, Y: -2, Z: 7}, {X: -100, Y: 4, Z: 1}} {
		if n := perlin.Noise(p); math.Abs(n) > 1e-12 {
			t.Errorf("Noise(%v) = %f, want 0", p, n)
		}
	}
}

func TestPerlin_Permutations(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(4))

	for name, perm := range map[string][perlinPointCount]int{"x": perlin.permX, "y": perlin.permY, "z": perlin.permZ} {
		var seen [perlinPointCount]bool
		for _, v := range perm {
			if v < 0 || v >= perlinPointCount || seen[v] {
				t.Fatalf("perm%s is not a permutation: duplicate or out of range value %d", name, v)
			}
			seen[v] = true
		}
	}
	for i, g := range perlin.gradients {
		if math.Abs(g.Length()-1) > 1e-9 {
			t.Fatalf("gradient %d has length %f", i, g.Length())
		}
	}
}

func TestNoiseTextures_GrayInUnitRange(t *testing.T) {
	noise := NewNoiseTexture(4, core.NewSeededSampler(1))
	marble := NewMarbleTexture(4, core.NewSeededSampler(1))
	sampler := core.NewSeededSampler(8)

	for i := 0; i < 1000; i++ {
		p := core.RandomVec3Range(sampler, -5, 5)
		for name, c := range map[string]core.Vec3{
			"noise":  noise.Evaluate(core.Vec2{}, p),
			"marble": marble.Evaluate(core.Vec2{}, p),
		} {
			if c.X != c.Y || c.Y != c.Z {
				t.Fatalf("%s texture should be gray, got %v", name, c)
			}
			if c.X < -1e-4 || c.X > 1+1e-4 {
				t.Fatalf("%s texture value %f outside [0,1]", name, c.X)
			}
		}
	}
}
