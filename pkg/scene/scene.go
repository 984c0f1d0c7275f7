// Package scene builds the worlds, cameras and render settings that the
// renderer consumes, either from built-in constructors or from JSON files.
package scene

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.World
	CameraConfig renderer.CameraConfig
	Config       renderer.Config // Suggested render settings for this scene
}

// Camera builds the scene camera. The render aspect ratio wins over the
// camera's own so rays cover exactly the output image.
func (s *Scene) Camera() (*renderer.Camera, error) {
	config := s.CameraConfig
	if s.Config.AspectRatio > 0 {
		config.AspectRatio = s.Config.AspectRatio
	}
	camera, err := renderer.NewCamera(config)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return camera, nil
}

// NewRaytracer wires the scene world and camera into a raytracer
// configured with the scene's render settings
func (s *Scene) NewRaytracer() (*renderer.Raytracer, error) {
	camera, err := s.Camera()
	if err != nil {
		return nil, err
	}
	return renderer.NewRaytracer(s.World, camera).WithConfig(s.Config), nil
}
