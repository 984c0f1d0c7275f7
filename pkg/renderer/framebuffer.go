package renderer

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Framebuffer holds linear pixel colors. Pixel (i, j) has j counting up
// from the bottom row, matching the camera's v axis.
type Framebuffer struct {
	Width, Height int
	Pixels        []core.Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color at pixel (i, j)
func (fb *Framebuffer) At(i, j int) core.Vec3 {
	return fb.Pixels[j*fb.Width+i]
}

// Set stores the color at pixel (i, j). Distinct pixels may be set concurrently.
func (fb *Framebuffer) Set(i, j int, c core.Vec3) {
	fb.Pixels[j*fb.Width+i] = c
}
