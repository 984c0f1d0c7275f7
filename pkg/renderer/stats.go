package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/stat"
)

// RenderStats contains statistics about one render pass
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	SamplesPerPixel int           // Camera rays per pixel
	TotalSamples    int           // Total number of camera rays
	Rays            uint64        // Every RayColor evaluation, depth-0 calls included
	Elapsed         time.Duration // Wall-clock render time
	LuminanceMean   float64       // Mean pixel luminance
	LuminanceStdDev float64       // Spread of pixel luminance across the image
}

// MRaysPerSecond returns throughput in millions of rays per second
func (s RenderStats) MRaysPerSecond() float64 {
	seconds := s.Elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(s.Rays) / seconds / 1_000_000.0
}

// String formats the summary line printed after a render
func (s RenderStats) String() string {
	return fmt.Sprintf("Took %.4f seconds, shot %d rays, %.4f mrays/s",
		s.Elapsed.Seconds(), s.Rays, s.MRaysPerSecond())
}

// rayCounter is shared by every worker during a render pass
type rayCounter struct {
	n atomic.Uint64
}

func (c *rayCounter) inc() {
	c.n.Add(1)
}

func (c *rayCounter) load() uint64 {
	return c.n.Load()
}

func (c *rayCounter) reset() {
	c.n.Store(0)
}

// luminanceStats returns the mean and standard deviation of pixel luminance
func luminanceStats(fb *Framebuffer) (mean, stdDev float64) {
	lum := make([]float64, len(fb.Pixels))
	for i, p := range fb.Pixels {
		lum[i] = p.Luminance()
	}
	if len(lum) < 2 {
		return stat.Mean(lum, nil), 0
	}
	return stat.MeanStdDev(lum, nil)
}
