package renderer

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/imagesink"
	"github.com/df07/go-sphere-raytracer/pkg/progress"
)

// HitEpsilon is the lower bound of the hit interval, keeping scattered rays
// from re-hitting the surface they leave
const HitEpsilon = 0.00001

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
	black    = core.Vec3{}
)

// Raytracer renders a fixed world through a camera.
// Configure it with the builder methods, then call Render or RenderToFile.
// A Raytracer runs one render at a time.
type Raytracer struct {
	world          *geometry.World
	camera         RayGenerator
	config         Config
	logger         core.Logger
	progressWriter io.Writer
	rays           rayCounter
}

// NewRaytracer creates a raytracer with DefaultConfig
func NewRaytracer(world *geometry.World, camera RayGenerator) *Raytracer {
	if world == nil {
		world = geometry.NewWorld()
	}
	return &Raytracer{
		world:          world,
		camera:         camera,
		config:         DefaultConfig(),
		logger:         NewDefaultLogger(),
		progressWriter: os.Stderr,
	}
}

// Width sets the image width in pixels
func (rt *Raytracer) Width(imageWidth uint32) *Raytracer {
	rt.config.ImageWidth = imageWidth
	return rt
}

// AspectRatio sets width / height
func (rt *Raytracer) AspectRatio(aspectRatio float64) *Raytracer {
	rt.config.AspectRatio = aspectRatio
	return rt
}

// NumSamples sets the number of camera rays per pixel
func (rt *Raytracer) NumSamples(numSamples uint16) *Raytracer {
	rt.config.NumSamples = numSamples
	return rt
}

// MaxDepth sets the scatter budget of each sample path
func (rt *Raytracer) MaxDepth(maxDepth uint16) *Raytracer {
	rt.config.MaxDepth = maxDepth
	return rt
}

// Workers sets the number of parallel row workers (0 = CPU count)
func (rt *Raytracer) Workers(workers int) *Raytracer {
	rt.config.Workers = workers
	return rt
}

// Seed sets the base seed of the per-row random sources
func (rt *Raytracer) Seed(seed int64) *Raytracer {
	rt.config.Seed = seed
	return rt
}

// WithConfig replaces the whole configuration
func (rt *Raytracer) WithConfig(config Config) *Raytracer {
	rt.config = config
	return rt
}

// WithLogger sets the logger used for the render summary. nil silences it.
func (rt *Raytracer) WithLogger(logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}
	rt.logger = logger
	return rt
}

// WithProgressWriter sets where the progress bar is drawn. nil hides it.
func (rt *Raytracer) WithProgressWriter(w io.Writer) *Raytracer {
	if w == nil {
		w = io.Discard
	}
	rt.progressWriter = w
	return rt
}

// Config returns a copy of the current configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// RayCount returns the number of rays counted by the current or last render
func (rt *Raytracer) RayCount() uint64 {
	return rt.rays.load()
}

// validate checks everything a render depends on
func (rt *Raytracer) validate(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if rt.camera == nil {
		return fmt.Errorf("%w: no camera", ErrInvalidConfig)
	}
	if err := rt.world.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// backgroundGradient blends white at the bottom to sky blue at the top
// based on the ray's vertical direction
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyWhite.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}

// RayColor returns the radiance estimate for a ray with the given scatter budget.
// Every call is counted, including the depth-0 base case.
func (rt *Raytracer) RayColor(r core.Ray, depth uint16, sampler core.Sampler) core.Vec3 {
	rt.rays.inc()

	// Budget exhausted: the unresolved tail of the path contributes nothing
	if depth == 0 {
		return black
	}

	hit, isHit := rt.world.Hit(r, HitEpsilon, math.Inf(1))
	if !isHit {
		return backgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		return black
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, sampler))
}

// samplePixel averages NumSamples jittered camera rays through pixel (i, j)
func (rt *Raytracer) samplePixel(config Config, width, height, i, j int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}
	uScale := 1.0 / float64(width-1)
	vScale := 1.0 / float64(height-1)

	for s := 0; s < int(config.NumSamples); s++ {
		jitter := sampler.Get2D()
		u := (float64(i) + jitter.X) * uScale
		v := (float64(j) + jitter.Y) * vScale

		ray := rt.camera.GetRay(u, v)
		colorAccum = colorAccum.Add(rt.RayColor(ray, config.MaxDepth, sampler))
	}

	return colorAccum.Divide(float64(config.NumSamples))
}

// rowSeed derives an independent seed for each row so results do not
// depend on which worker renders the row
func rowSeed(base int64, row int) int64 {
	return base ^ int64(uint64(row+1)*0x9e3779b97f4a7c15)
}

// Render renders every pixel into a framebuffer. The configuration is
// snapshotted when the call starts. Cancelling ctx stops unstarted rows.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	config := rt.config
	if err := rt.validate(config); err != nil {
		return nil, RenderStats{}, err
	}

	width := int(config.ImageWidth)
	height := int(config.ImageHeight())
	fb := NewFramebuffer(width, height)

	rt.rays.reset()
	reporter := progress.New(height, width, rt.progressWriter)
	pool := NewWorkerPool(config.NumWorkers())

	var overflowOnce sync.Once
	err := pool.Run(ctx, height, func(ctx context.Context, j int) error {
		sampler := core.NewSeededSampler(rowSeed(config.Seed, j))
		for i := 0; i < width; i++ {
			fb.Set(i, j, rt.samplePixel(config, width, height, i, j, sampler))
			if err := reporter.Advance(); err != nil {
				overflowOnce.Do(func() {
					rt.logger.Printf("Warning: %v\n", err)
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	if err := reporter.Finish(); err != nil {
		rt.logger.Printf("Warning: %v\n", err)
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		SamplesPerPixel: int(config.NumSamples),
		TotalSamples:    width * height * int(config.NumSamples),
		Rays:            rt.rays.load(),
		Elapsed:         reporter.Elapsed(),
	}
	stats.LuminanceMean, stats.LuminanceStdDev = luminanceStats(fb)

	rt.logger.Printf("%s\n", stats)
	return fb, stats, nil
}

// RenderToFile renders the image and writes it as a PNG to filename.
// The file is created before any rendering starts and removed again if
// the render or the encode fails.
func (rt *Raytracer) RenderToFile(filename string) (RenderStats, error) {
	config := rt.config
	if err := rt.validate(config); err != nil {
		return RenderStats{}, err
	}

	file, err := os.Create(filename)
	if err != nil {
		return RenderStats{}, fmt.Errorf("failed to create output file: %w", err)
	}

	stats, err := rt.renderInto(file)
	if cerr := file.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close output file: %w", cerr)
	}
	if err != nil {
		_ = os.Remove(filename)
		return RenderStats{}, fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return stats, nil
}

// renderInto renders and streams the encoded image to w
func (rt *Raytracer) renderInto(w io.Writer) (RenderStats, error) {
	fb, stats, err := rt.Render(context.Background())
	if err != nil {
		return RenderStats{}, err
	}
	if err := imagesink.Encode(w, fb.Width, fb.Height, fb.At); err != nil {
		return RenderStats{}, err
	}
	return stats, nil
}
