package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// ErrInvalidScene is returned for scene files that cannot be turned into a world
var ErrInvalidScene = errors.New("invalid scene file")

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

// Vec returns the vector as a core.Vec3
func (v Vec3Cfg) Vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// FileCfg is the top level of a JSON scene file
type FileCfg struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Camera      *CameraCfg             `json:"camera,omitempty"`
	Render      *RenderCfg             `json:"render,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// CameraCfg overrides the default camera. Omitted fields keep their defaults.
type CameraCfg struct {
	Center *Vec3Cfg `json:"center,omitempty"`
	LookAt *Vec3Cfg `json:"lookAt,omitempty"`
	Up     *Vec3Cfg `json:"up,omitempty"`
	VFov   float64  `json:"vfov,omitempty"`
}

// RenderCfg overrides the default render settings
type RenderCfg struct {
	Width   uint32  `json:"width,omitempty"`
	Aspect  float64 `json:"aspect,omitempty"`
	Samples uint16  `json:"samples,omitempty"`
	Depth   uint16  `json:"depth,omitempty"`
	Workers int     `json:"workers,omitempty"`
	Seed    int64   `json:"seed,omitempty"`
}

// MaterialCfg describes one named material. Which fields apply depends on Type.
type MaterialCfg struct {
	Type   string   `json:"type"`             // lambertian, checker, metal, dielectric, mix, absorber
	Albedo *Vec3Cfg `json:"albedo,omitempty"` // lambertian, metal
	Even   *Vec3Cfg `json:"even,omitempty"`   // checker
	Odd    *Vec3Cfg `json:"odd,omitempty"`    // checker
	Scale  float64  `json:"scale,omitempty"`  // checker cube size
	Fuzz   float64  `json:"fuzz,omitempty"`   // metal
	IOR    float64  `json:"ior,omitempty"`    // dielectric
	A      string   `json:"a,omitempty"`      // mix
	B      string   `json:"b,omitempty"`      // mix
	Ratio  float64  `json:"ratio,omitempty"`  // mix: probability of picking B
}

// SphereCfg places one sphere with a material referenced by name
type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// LoadFile reads a JSON scene from disk. The scene name defaults to the
// file name without its extension.
func LoadFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer file.Close()

	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := Parse(file, fallback)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a JSON scene. Unknown fields are rejected so typos surface.
func Parse(r io.Reader, fallbackName string) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg FileCfg
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return cfg.Build(fallbackName)
}

// Build resolves materials, places spheres and applies camera and render
// overrides on top of the defaults
func (cfg FileCfg) Build(fallbackName string) (*Scene, error) {
	name := cfg.Name
	if name == "" {
		name = fallbackName
	}

	if len(cfg.Spheres) == 0 {
		return nil, fmt.Errorf("%w: scene has no spheres", ErrInvalidScene)
	}

	resolver := newMaterialResolver(cfg.Materials)
	world := geometry.NewWorld()
	for i, sc := range cfg.Spheres {
		m, err := resolver.resolve(sc.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		sphere := geometry.NewSphere(sc.Center.Vec(), sc.Radius, m)
		if err := sphere.Validate(); err != nil {
			return nil, fmt.Errorf("%w: sphere %d: %w", ErrInvalidScene, i, err)
		}
		world.Add(sphere)
	}

	cameraConfig := renderer.DefaultCameraConfig()
	if c := cfg.Camera; c != nil {
		// Set fields are taken verbatim so an explicit origin is honored
		if c.Center != nil {
			cameraConfig.Center = c.Center.Vec()
		}
		if c.LookAt != nil {
			cameraConfig.LookAt = c.LookAt.Vec()
		}
		if c.Up != nil {
			cameraConfig.Up = c.Up.Vec()
		}
		if c.VFov != 0 {
			cameraConfig.VFov = c.VFov
		}
	}

	config := renderer.DefaultConfig()
	if r := cfg.Render; r != nil {
		config = renderer.MergeConfig(config, renderer.Config{
			ImageWidth:  r.Width,
			AspectRatio: r.Aspect,
			NumSamples:  r.Samples,
			MaxDepth:    r.Depth,
			Workers:     r.Workers,
			Seed:        r.Seed,
		})
	}
	cameraConfig.AspectRatio = config.AspectRatio

	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}

	return &Scene{
		Name:         name,
		World:        world,
		CameraConfig: cameraConfig,
		Config:       config,
	}, nil
}

// materialResolver builds each named material once. Mix materials reference
// others by name, so resolution tracks the chain to reject cycles.
type materialResolver struct {
	configs  map[string]MaterialCfg
	built    map[string]material.Material
	visiting map[string]bool
}

func newMaterialResolver(configs map[string]MaterialCfg) *materialResolver {
	return &materialResolver{
		configs:  configs,
		built:    make(map[string]material.Material),
		visiting: make(map[string]bool),
	}
}

func (mr *materialResolver) resolve(name string) (material.Material, error) {
	if m, ok := mr.built[name]; ok {
		return m, nil
	}
	cfg, ok := mr.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown material %q", ErrInvalidScene, name)
	}
	if mr.visiting[name] {
		return nil, fmt.Errorf("%w: material %q references itself", ErrInvalidScene, name)
	}
	mr.visiting[name] = true
	defer delete(mr.visiting, name)

	m, err := mr.build(name, cfg)
	if err != nil {
		return nil, err
	}
	mr.built[name] = m
	return m, nil
}

func (mr *materialResolver) build(name string, cfg MaterialCfg) (material.Material, error) {
	switch cfg.Type {
	case "lambertian":
		if cfg.Albedo == nil {
			return nil, fmt.Errorf("%w: material %q: lambertian needs albedo", ErrInvalidScene, name)
		}
		return material.NewLambertian(cfg.Albedo.Vec()), nil
	case "checker":
		if cfg.Even == nil || cfg.Odd == nil {
			return nil, fmt.Errorf("%w: material %q: checker needs even and odd", ErrInvalidScene, name)
		}
		return material.NewTexturedLambertian(material.NewChecker(cfg.Even.Vec(), cfg.Odd.Vec(), cfg.Scale)), nil
	case "metal":
		if cfg.Albedo == nil {
			return nil, fmt.Errorf("%w: material %q: metal needs albedo", ErrInvalidScene, name)
		}
		return material.NewMetal(cfg.Albedo.Vec(), cfg.Fuzz), nil
	case "dielectric":
		if !(cfg.IOR > 0) {
			return nil, fmt.Errorf("%w: material %q: dielectric needs a positive ior", ErrInvalidScene, name)
		}
		return material.NewDielectric(cfg.IOR), nil
	case "mix":
		a, err := mr.resolve(cfg.A)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		b, err := mr.resolve(cfg.B)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		return material.NewMix(a, b, cfg.Ratio), nil
	case "absorber":
		return material.NewAbsorber(), nil
	default:
		return nil, fmt.Errorf("%w: material %q: unknown type %q", ErrInvalidScene, name, cfg.Type)
	}
}
