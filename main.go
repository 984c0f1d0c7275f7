package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// options holds the parsed command line. Zero values keep the scene's own settings.
type options struct {
	scene   string
	width   uint
	aspect  float64
	samples uint
	depth   uint
	workers int
	seed    int64
	out     string
	quiet   bool
	help    bool
}

func main() {
	opts := parseFlags(flag.CommandLine, os.Args[1:])

	if opts.help {
		printHelp()
		return
	}

	if err := run(opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) options {
	var opts options
	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.UintVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.Float64Var(&opts.aspect, "aspect", 0, "Aspect ratio width/height (0 = scene default)")
	fs.UintVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.UintVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed for sampling and procedural scenes (0 = scene default)")
	fs.StringVar(&opts.out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress the progress bar")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	// flag.CommandLine exits on parse errors
	_ = fs.Parse(args)
	return opts
}

func printHelp() {
	fmt.Println("Sphere Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListAllScenes("scenes")
	if err != nil {
		scenes = scene.BuiltinScenes()
	}
	for _, info := range scenes {
		fmt.Printf("  %s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -out is set")
}

func run(opts options) error {
	fmt.Println("Starting Sphere Raytracer...")

	s, err := createScene(opts.scene, opts.seed)
	if err != nil {
		return err
	}
	s.Config, err = applyOverrides(s.Config, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Using %s scene (%d spheres)...\n", s.Name, s.World.Len())

	raytracer, err := s.NewRaytracer()
	if err != nil {
		return err
	}
	if opts.quiet {
		raytracer.WithProgressWriter(io.Discard)
	}

	filename := opts.out
	if filename == "" {
		filename = defaultOutputPath(opts.scene, time.Now())
		if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	config := raytracer.Config()
	fmt.Printf("Rendering %dx%d, %d samples, depth %d, %d workers\n",
		config.ImageWidth, config.ImageHeight(), config.NumSamples, config.MaxDepth, config.NumWorkers())

	if _, err := raytracer.RenderToFile(filename); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a built-in scene name or a scene file path
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if seed == 0 {
		seed = renderer.DefaultConfig().Seed
	}
	return scene.Lookup(sceneType, seed)
}

// applyOverrides layers non-zero flags over the scene's render settings
func applyOverrides(base renderer.Config, opts options) (renderer.Config, error) {
	if opts.width > 1<<32-1 {
		return base, fmt.Errorf("width %d is too large", opts.width)
	}
	if opts.samples > 1<<16-1 {
		return base, fmt.Errorf("samples %d is too large", opts.samples)
	}
	if opts.depth > 1<<16-1 {
		return base, fmt.Errorf("depth %d is too large", opts.depth)
	}
	if opts.workers < 0 {
		return base, fmt.Errorf("workers %d must not be negative", opts.workers)
	}

	return renderer.MergeConfig(base, renderer.Config{
		ImageWidth:  uint32(opts.width),
		AspectRatio: opts.aspect,
		NumSamples:  uint16(opts.samples),
		MaxDepth:    uint16(opts.depth),
		Workers:     opts.workers,
		Seed:        opts.seed,
	}), nil
}

// defaultOutputPath builds output/<scene>/render_<timestamp>.png. Scene files
// are filed under their base name.
func defaultOutputPath(sceneType string, now time.Time) string {
	dir := strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.png", timestamp))
}
