package scene

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// MockLogger collects formatted log lines
type MockLogger struct {
	mu    sync.Mutex
	lines []string
}

func (m *MockLogger) Printf(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
}

func (m *MockLogger) contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func tinyOptions() Options {
	return Options{
		Sampling: renderer.SamplingConfig{
			Width:           32,
			Height:          16,
			SamplesPerPixel: 1,
			TileSize:        8,
			NumWorkers:      2,
		},
		Logger: &MockLogger{},
	}
}

func TestNames(t *testing.T) {
	expected := []string{"basic", "checker", "earth", "grid", "materials", "moving", "perlin", "random"}
	names := Names()
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Names() = %v, want %v", names, expected)
	}

	infos := ListScenes()
	if len(infos) != len(expected) {
		t.Fatalf("Expected %d scene infos, got %d", len(expected), len(infos))
	}
	for i, info := range infos {
		if info.ID != expected[i] || info.DisplayName == "" || info.Description == "" {
			t.Errorf("Incomplete scene info: %+v", info)
		}
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	_, err := Create("cornell", tinyOptions())
	if err == nil {
		t.Fatal("Expected error for unknown scene")
	}
	if !strings.Contains(err.Error(), "basic") {
		t.Errorf("Error should list available scenes, got %v", err)
	}
}

func TestCreate_InvalidSampling(t *testing.T) {
	opts := tinyOptions()
	opts.Sampling.Width = -5
	if _, err := Create("basic", opts); err == nil {
		t.Error("Expected error for negative width")
	}
}

func TestCreate_AllScenesBuildAndPreprocess(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Create(name, tinyOptions())
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if s.SamplingConfig.Width != 32 || s.SamplingConfig.Height != 16 {
				t.Errorf("Sampling overrides not applied: %+v", s.SamplingConfig)
			}
			if s.SamplingConfig.MaxDepth <= 0 {
				t.Errorf("Scene default depth should be kept, got %d", s.SamplingConfig.MaxDepth)
			}
			if s.CameraConfig.AspectRatio != 2 {
				t.Errorf("Camera aspect ratio should follow image size, got %f", s.CameraConfig.AspectRatio)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Fatal("Scene has no objects")
			}

			if err := s.Preprocess(true, core.NewSeededSampler(1)); err != nil {
				t.Fatalf("Preprocess failed: %v", err)
			}
			if _, ok := s.World.(*geometry.BVHNode); !ok {
				t.Errorf("Expected BVH world, got %T", s.World)
			}
			if _, err := s.NewRaytracer(&MockLogger{}); err != nil {
				t.Errorf("NewRaytracer failed: %v", err)
			}
		})
	}
}

func TestPreprocess_EmptyScene(t *testing.T) {
	s := newScene("empty", renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}, renderer.DefaultSamplingConfig())

	err := s.Preprocess(true, core.NewSeededSampler(1))
	if !errors.Is(err, ErrEmptyScene) {
		t.Fatalf("Expected ErrEmptyScene, got %v", err)
	}
	if _, err := s.NewRaytracer(nil); err == nil {
		t.Error("Expected error creating a raytracer for an unprocessed scene")
	}
}

func TestPreprocess_WithoutBVHUsesList(t *testing.T) {
	s, err := Create("basic", tinyOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Preprocess(false, core.NewSeededSampler(1)); err != nil {
		t.Fatal(err)
	}
	if s.World != geometry.Hittable(s.Objects) {
		t.Errorf("Expected the flat object list as world, got %T", s.World)
	}
}

func TestRandomScene_Reproducible(t *testing.T) {
	opts := tinyOptions()
	opts.Sampling.Seed = 1234

	a, err := Create("random", opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Create("random", opts)
	if err != nil {
		t.Fatal(err)
	}

	// Ground + up to 484 small spheres + 3 large spheres
	count := a.GetPrimitiveCount()
	if count < 400 || count > 488 {
		t.Errorf("Unexpected object count %d", count)
	}
	if count != b.GetPrimitiveCount() {
		t.Fatalf("Same seed produced %d and %d objects", count, b.GetPrimitiveCount())
	}
	for i, obj := range a.Objects.Objects() {
		sa := obj.(*geometry.Sphere)
		sb := b.Objects.Objects()[i].(*geometry.Sphere)
		if !sa.Center0.Equals(sb.Center0) || sa.Radius != sb.Radius {
			t.Fatalf("Object %d differs between identical seeds", i)
		}
	}
}

func TestMovingScene_HasMovingSphere(t *testing.T) {
	s, err := Create("moving", tinyOptions())
	if err != nil {
		t.Fatal(err)
	}
	if s.CameraConfig.ShutterClose <= s.CameraConfig.ShutterOpen {
		t.Errorf("Moving scene needs an open shutter, got [%f, %f]", s.CameraConfig.ShutterOpen, s.CameraConfig.ShutterClose)
	}

	moving := 0
	for _, obj := range s.Objects.Objects() {
		if sphere, ok := obj.(*geometry.Sphere); ok && !sphere.Center0.Equals(sphere.Center1) {
			moving++
		}
	}
	if moving != 1 {
		t.Errorf("Expected one moving sphere, got %d", moving)
	}
}

func TestEarthScene_MissingTextureWarns(t *testing.T) {
	logger := &MockLogger{}
	opts := tinyOptions()
	opts.Logger = logger
	opts.TexturePath = filepath.Join(t.TempDir(), "no-such-map.jpg")

	s, err := Create("earth", opts)
	if err != nil {
		t.Fatalf("Missing texture should not fail scene creation: %v", err)
	}
	if !logger.contains("Warning") {
		t.Error("Expected a warning about the missing texture")
	}

	if err := s.Preprocess(false, core.NewSeededSampler(1)); err != nil {
		t.Fatal(err)
	}
	hit, ok := s.World.Hit(core.NewRay(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, -1)), core.NewInterval(0.001, 100))
	if !ok {
		t.Fatal("Expected the camera axis to hit the globe")
	}
	scatter, _ := hit.Material.Scatter(core.NewRay(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, -1)), *hit, core.NewSeededSampler(1))
	if !scatter.Attenuation.Equals(core.NewVec3(0, 1, 1)) {
		t.Errorf("Expected cyan albedo without a texture, got %v", scatter.Attenuation)
	}
}

var updateGolden = flag.Bool("update", false, "rewrite testdata golden images")

const basicGoldenPath = "testdata/basic_golden.ppm"

// basicGoldenSampling is the fixed configuration the basic scene golden image was rendered with
func basicGoldenSampling() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		Width:           32,
		Height:          16,
		SamplesPerPixel: 4,
		MaxDepth:        8,
		TileSize:        8,
		NumWorkers:      1,
		Seed:            2024,
	}
}

func renderBasic(t *testing.T, sampling renderer.SamplingConfig, useBVH bool) *image.RGBA {
	t.Helper()
	opts := tinyOptions()
	opts.Sampling = sampling

	s, err := Create("basic", opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Preprocess(useBVH, core.NewSeededSampler(sampling.Seed)); err != nil {
		t.Fatal(err)
	}
	rt, err := s.NewRaytracer(&MockLogger{})
	if err != nil {
		t.Fatal(err)
	}
	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return img
}

// encodePPM writes the RGB channels of img as an ASCII P3 image
func encodePPM(img *image.RGBA) []byte {
	var buf bytes.Buffer
	b := img.Bounds()
	fmt.Fprintf(&buf, "P3\n%d %d\n255\n", b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			fmt.Fprintf(&buf, "%d %d %d\n", c.R, c.G, c.B)
		}
	}
	return buf.Bytes()
}

// decodePPM reads an ASCII P3 image into an opaque RGBA image
func decodePPM(t *testing.T, data []byte) *image.RGBA {
	t.Helper()
	r := bytes.NewReader(data)
	var magic string
	var width, height, maxVal int
	if _, err := fmt.Fscan(r, &magic, &width, &height, &maxVal); err != nil || magic != "P3" || maxVal != 255 {
		t.Fatalf("Bad PPM header (%q %dx%d max %d): %v", magic, width, height, maxVal, err)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		var cr, cg, cb uint8
		if _, err := fmt.Fscan(r, &cr, &cg, &cb); err != nil {
			t.Fatalf("Reading pixel %d: %v", i, err)
		}
		copy(img.Pix[i*4:], []byte{cr, cg, cb, 255})
	}
	return img
}

// pixelsMatch reports whether got equals want exactly. Architectures that fuse
// multiply-add can round the last bit differently, so there one level of slack is allowed.
func pixelsMatch(got, want []byte) (bool, int) {
	if len(got) != len(want) {
		return false, -1
	}
	tolerance := 1
	if runtime.GOARCH == "amd64" || runtime.GOARCH == "386" {
		tolerance = 0
	}
	for i := range got {
		diff := int(got[i]) - int(want[i])
		if diff < -tolerance || diff > tolerance {
			return false, i
		}
	}
	return true, 0
}

func TestBasicScene_GoldenImage(t *testing.T) {
	if *updateGolden {
		img := renderBasic(t, basicGoldenSampling(), true)
		if err := os.WriteFile(basicGoldenPath, encodePPM(img), 0644); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(basicGoldenPath)
	if err != nil {
		t.Fatalf("Reading golden image: %v", err)
	}
	golden := decodePPM(t, data)

	tests := []struct {
		name    string
		useBVH  bool
		workers int
	}{
		{"BVH single worker", true, 1},
		{"BVH parallel", true, 4},
		{"Linear list", false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampling := basicGoldenSampling()
			sampling.NumWorkers = tt.workers
			img := renderBasic(t, sampling, tt.useBVH)

			if !img.Bounds().Eq(golden.Bounds()) {
				t.Fatalf("Render size %v differs from golden %v", img.Bounds(), golden.Bounds())
			}
			if ok, i := pixelsMatch(img.Pix, golden.Pix); !ok {
				p := i / 4
				t.Errorf("Render differs from %s at pixel (%d,%d) channel %d: got %d, want %d",
					basicGoldenPath, p%golden.Bounds().Dx(), p/golden.Bounds().Dx(), i%4, img.Pix[i], golden.Pix[i])
			}
		})
	}
}

func TestBasicScene_RepeatRendersIdentical(t *testing.T) {
	sampling := basicGoldenSampling()
	sampling.Width, sampling.Height, sampling.SamplesPerPixel = 64, 32, 1

	baseline := renderBasic(t, sampling, true).Pix
	sampling.NumWorkers = 4
	if !bytes.Equal(renderBasic(t, sampling, true).Pix, baseline) {
		t.Error("Repeated render with a different worker count differs")
	}
	if !bytes.Equal(renderBasic(t, sampling, false).Pix, baseline) {
		t.Error("Linear list render differs from BVH render")
	}

	// Every pixel is written with full alpha
	for i := 3; i < len(baseline); i += 4 {
		if baseline[i] != 255 {
			t.Fatal("Rendered image should be fully opaque")
		}
	}
}

func TestBuilders_WithoutLogger(t *testing.T) {
	cfg := renderer.SamplingConfig{Width: 8, Height: 4, SamplesPerPixel: 1, MaxDepth: 2, TileSize: 4, Seed: 1}
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s := registry[name].build(cfg, Options{}, core.NewSeededSampler(1))
			if s == nil || s.GetPrimitiveCount() == 0 {
				t.Fatalf("Builder for %q returned an empty scene", name)
			}
		})
	}

	// Exported builders are usable directly with zero options
	if s := NewEarthScene(cfg, Options{}, core.NewSeededSampler(1)); s.GetPrimitiveCount() != 1 {
		t.Errorf("Expected one globe, got %d objects", s.GetPrimitiveCount())
	}
}

func TestMergeSamplingConfig(t *testing.T) {
	base := renderer.DefaultSamplingConfig()
	merged := MergeSamplingConfig(base, renderer.SamplingConfig{Width: 10, Seed: 9})

	if merged.Width != 10 || merged.Seed != 9 {
		t.Errorf("Overrides not applied: %+v", merged)
	}
	if merged.Height != base.Height || merged.SamplesPerPixel != base.SamplesPerPixel || merged.MaxDepth != base.MaxDepth {
		t.Errorf("Zero fields should keep base values: %+v", merged)
	}
}
