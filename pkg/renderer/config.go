package renderer

import (
	"errors"
	"fmt"
	"math"
	"runtime"
)

// ErrInvalidConfig is returned by Validate for unusable render settings
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains rendering configuration for one render pass
type Config struct {
	ImageWidth  uint32  // Output width in pixels
	AspectRatio float64 // Width / height; the height is derived from it
	NumSamples  uint16  // Rays per pixel
	MaxDepth    uint16  // Maximum scatter events per sample path
	Workers     int     // Parallel row workers (0 = use CPU count)
	Seed        int64   // Base seed for per-row random sources
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		ImageWidth:  800,
		AspectRatio: 16.0 / 9.0,
		NumSamples:  100,
		MaxDepth:    50,
		Workers:     0,
		Seed:        42,
	}
}

// ImageHeight returns floor(ImageWidth / AspectRatio)
func (c Config) ImageHeight() uint32 {
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return 0
	}
	return uint32(float64(c.ImageWidth) / c.AspectRatio)
}

// NumWorkers resolves the worker count, defaulting to the CPU count
func (c Config) NumWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Validate rejects settings that would divide by zero or render nothing.
// Both dimensions must be at least 2 since (u, v) are normalized by
// width-1 and height-1.
func (c Config) Validate() error {
	if math.IsNaN(c.AspectRatio) || math.IsInf(c.AspectRatio, 0) || c.AspectRatio <= 0 {
		return fmt.Errorf("%w: aspect ratio %v must be positive and finite", ErrInvalidConfig, c.AspectRatio)
	}
	if c.ImageWidth < 2 {
		return fmt.Errorf("%w: image width %d must be at least 2", ErrInvalidConfig, c.ImageWidth)
	}
	if h := c.ImageHeight(); h < 2 {
		return fmt.Errorf("%w: width %d and aspect ratio %v give image height %d, need at least 2",
			ErrInvalidConfig, c.ImageWidth, c.AspectRatio, h)
	}
	if c.NumSamples == 0 {
		return fmt.Errorf("%w: at least one sample per pixel is required", ErrInvalidConfig)
	}
	if c.MaxDepth == 0 {
		return fmt.Errorf("%w: max depth must be at least 1", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// MergeConfig overlays the non-zero fields of override onto base
func MergeConfig(base, override Config) Config {
	result := base
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.NumSamples != 0 {
		result.NumSamples = override.NumSamples
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Workers != 0 {
		result.Workers = override.Workers
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}
