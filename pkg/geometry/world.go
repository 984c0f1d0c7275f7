package geometry

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

var (
	_ Shape = (*Sphere)(nil)
	_ Shape = (*World)(nil)
)

// World is the ordered set of spheres making up a scene.
// It is tested by linear scan and must not be mutated while rendering.
type World struct {
	Spheres []*Sphere
}

// NewWorld creates a world from spheres, keeping their order
func NewWorld(spheres ...*Sphere) *World {
	return &World{Spheres: spheres}
}

// Add appends spheres to the world
func (w *World) Add(spheres ...*Sphere) {
	w.Spheres = append(w.Spheres, spheres...)
}

// Len returns the number of spheres
func (w *World) Len() int {
	return len(w.Spheres)
}

// Validate checks every sphere in the world
func (w *World) Validate() error {
	for i, s := range w.Spheres {
		if s == nil {
			return fmt.Errorf("sphere %d: %w: nil sphere", i, ErrInvalidSphere)
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	return nil
}

// Hit returns the nearest intersection strictly inside (tMin, tMax).
// The upper bound shrinks to each hit, so on an exact tie the sphere
// that comes first keeps the hit.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, sphere := range w.Spheres {
		if hit, isHit := sphere.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
