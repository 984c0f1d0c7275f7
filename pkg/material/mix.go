package material

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Mix represents a material that probabilistically chooses between two materials
type Mix struct {
	Material1 Material
	Material2 Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 Material, ratio float64) *Mix {
	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     max(0.0, min(ratio, 1.0)),
	}
}

// Scatter delegates to one of the two materials
func (m *Mix) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	if sampler.Get1D() < m.Ratio {
		return m.Material2.Scatter(rayIn, hit, sampler)
	}
	return m.Material1.Scatter(rayIn, hit, sampler)
}

// Absorber never scatters; every ray that reaches it turns black
type Absorber struct{}

// NewAbsorber creates an absorbing material
func NewAbsorber() *Absorber {
	return &Absorber{}
}

// Scatter always reports absorption
func (a *Absorber) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}
