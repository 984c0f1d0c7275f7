package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewRandomScene creates a field of small random spheres around three large
// ones on a checkered ground. The same seed always yields the same layout.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 3.0 / 2.0,
		VFov:        20.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	config := renderer.DefaultConfig()
	config.ImageWidth = 1200
	config.AspectRatio = cameraConfig.AspectRatio
	config.NumSamples = 500

	rng := core.NewSeededSampler(seed)
	random := func(lo, hi float64) float64 {
		return lo + (hi-lo)*rng.Get1D()
	}
	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(random(lo, hi), random(lo, hi), random(lo, hi))
	}

	checker := material.NewChecker(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9), 0.32)
	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)),
	)

	glass := material.NewDielectric(1.5)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(float64(a)+0.9*random(0, 1), 0.2, float64(b)+0.9*random(0, 1))
			chooseMat := random(0, 1)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var m material.Material
			switch {
			case chooseMat < 0.8:
				m = material.NewLambertian(randomColor(0, 1).MultiplyVec(randomColor(0, 1)))
			case chooseMat < 0.95:
				m = material.NewMetal(randomColor(0.5, 1), random(0, 0.5))
			default:
				m = glass
			}
			world.Add(geometry.NewSphere(center, 0.2, m))
		}
	}

	world.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		Name:         "random",
		World:        world,
		CameraConfig: cameraConfig,
		Config:       config,
	}
}
