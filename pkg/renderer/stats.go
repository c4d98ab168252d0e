package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of camera rays traced
	AverageSamples float64       // Average samples per pixel
	TilesRendered  int           // Tiles that finished before the render stopped
	TotalTiles     int           // Tiles in the grid
	Workers        int           // Concurrent tile workers used
	Duration       time.Duration // Wall-clock render time
}

// Add accumulates the pixel and sample counts of a finished tile
func (s *RenderStats) Add(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.TotalSamples += tile.TotalSamples
	s.TilesRendered += tile.TilesRendered
}

// finalize calculates derived statistics after all tiles are merged
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// SamplesPerSecond returns camera-ray throughput, or 0 before any time has elapsed
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}
