package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Edge length of a square render tile
	NumWorkers      int   // Number of parallel tile workers (0 = use CPU count)
	Seed            int64 // Base seed; tile i uses Seed+i
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate checks that the configuration describes a renderable image
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	case c.TileSize <= 0:
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// Raytracer renders a world through a camera. The world is only read while rendering.
type Raytracer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, world geometry.Hittable, integ integrator.Integrator, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integ,
		config:     config,
		logger:     logger,
	}
}

// SamplingConfig returns the configuration the raytracer renders with
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.config
}

// SamplePixel averages SamplesPerPixel radiance estimates for pixel (i, j), where
// j counts rows from the bottom of the image
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		s := (float64(i) + sampler.Get1D()) / float64(rt.config.Width)
		t := (float64(j) + sampler.Get1D()) / float64(rt.config.Height)

		ray := rt.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, rt.config.MaxDepth, sampler))
	}

	return colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
}

// RenderTile renders every pixel of tile into img using the tile's own sampler
func (rt *Raytracer) RenderTile(tile *Tile, img *image.RGBA) RenderStats {
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		j := rt.config.Height - 1 - y
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			img.SetRGBA(i, y, vec3ToColor(rt.SamplePixel(i, j, tile.Sampler)))
		}
	}

	pixels := tile.Bounds.Dx() * tile.Bounds.Dy()
	return RenderStats{
		TotalPixels:   pixels,
		TotalSamples:  pixels * rt.config.SamplesPerPixel,
		TilesRendered: 1,
	}
}

// Render renders the full image with tiles spread over NumWorkers goroutines.
// Output is identical for any worker count. When ctx is cancelled no further tiles
// are started and the partially rendered image is returned with the context error.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))

	workers := rt.config.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize, rt.config.Seed)
	tileStats := make([]RenderStats, len(tiles))

	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d: %d tiles on %d workers\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, len(tiles), workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		idx, tile := idx, tile
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tileStats[idx] = rt.RenderTile(tile, img)
			return nil
		})
	}

	err := g.Wait()

	stats := RenderStats{TotalTiles: len(tiles), Workers: workers}
	for _, ts := range tileStats {
		stats.Add(ts)
	}
	stats.Duration = time.Since(start)
	stats.finalize()

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		rt.logger.Printf("Render stopped after %d/%d tiles: %v\n", stats.TilesRendered, stats.TotalTiles, err)
		return img, stats, fmt.Errorf("render cancelled: %w", err)
	}

	rt.logger.Printf("Render complete in %v (%.0f samples/s)\n", stats.Duration.Round(time.Millisecond), stats.SamplesPerSecond())
	return img, stats, nil
}

// vec3ToColor converts a linear color to RGBA with gamma 2 correction and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Sqrt().Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255.99 * colorVec.X),
		G: uint8(255.99 * colorVec.Y),
		B: uint8(255.99 * colorVec.Z),
		A: 255,
	}
}
