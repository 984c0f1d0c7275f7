// Package imagesink quantizes linear colors and encodes them as PNG images.
package imagesink

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/fogleman/gg"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Gamma applied when quantizing linear colors
const Gamma = 2.0

// PixelFunc returns the linear color of pixel (i, j), with j = 0 the bottom row
type PixelFunc func(i, j int) core.Vec3

// ToRGBA converts a linear color to 8-bit RGBA with gamma correction and clamping
func ToRGBA(c core.Vec3) color.RGBA {
	c = c.GammaCorrect(Gamma).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255.999 * c.X),
		G: uint8(255.999 * c.Y),
		B: uint8(255.999 * c.Z),
		A: 255,
	}
}

// Draw calls pixel exactly once per coordinate and returns the filled context
func Draw(width, height int, pixel PixelFunc) *gg.Context {
	dc := gg.NewContext(width, height)
	for y := 0; y < height; y++ {
		j := height - 1 - y
		for i := 0; i < width; i++ {
			dc.SetColor(ToRGBA(pixel(i, j)))
			dc.SetPixel(i, y)
		}
	}
	return dc
}

// Encode draws a width x height image from pixel and writes it to w as PNG
func Encode(w io.Writer, width, height int, pixel PixelFunc) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if err := Draw(width, height, pixel).EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG creates path and encodes the image into it
func SavePNG(path string, width, height int, pixel PixelFunc) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(file, width, height, pixel); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
