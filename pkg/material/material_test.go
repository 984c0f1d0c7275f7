package material

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// fixedSampler returns the same values on every draw
type fixedSampler struct {
	v float64
}

func (f fixedSampler) Get1D() float64   { return f.v }
func (f fixedSampler) Get2D() core.Vec2 { return core.NewVec2(f.v, f.v) }
func (f fixedSampler) Get3D() core.Vec3 { return core.NewVec3(f.v, f.v, f.v) }

func upHit(m Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  m,
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)

	var front HitRecord
	front.SetFaceNormal(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0)), outward)
	if !front.FrontFace || front.Normal != outward {
		t.Errorf("Expected front face with outward normal, got front=%t normal=%v", front.FrontFace, front.Normal)
	}

	var back HitRecord
	back.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), outward)
	if back.FrontFace || back.Normal != outward.Negate() {
		t.Errorf("Expected back face with flipped normal, got front=%t normal=%v", back.FrontFace, back.Normal)
	}
}

func TestLambertian_ScattersIntoHemisphere(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.6, 0.7)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)
	hit := upHit(lambertian)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 1000; i++ {
		result, ok := lambertian.Scatter(rayIn, hit, sampler)
		if !ok {
			t.Fatal("Lambertian should always scatter")
		}
		if result.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		if result.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scattered direction below surface: %v", result.Scattered.Direction)
		}
		if result.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at hit point, got %v", result.Scattered.Origin)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	// A sample of (1, 1) maps to the unit vector (0, 0, -1), which cancels the normal
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), FrontFace: true}
	sampler := fixedSampler{v: 1.0}

	result, ok := lambertian.Scatter(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), hit, sampler)
	if !ok {
		t.Fatal("Lambertian should always scatter")
	}
	if result.Scattered.Direction.NearZero() {
		t.Errorf("Expected non-degenerate direction, got %v", result.Scattered.Direction)
	}
}

func TestLambertian_Textured(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	lambertian := NewTexturedLambertian(NewChecker(even, odd, 1.0))
	sampler := core.NewSeededSampler(3)

	hit := upHit(lambertian)
	hit.Point = core.NewVec3(0.5, 0.5, 0.5)
	result, _ := lambertian.Scatter(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0)), hit, sampler)
	if result.Attenuation != even {
		t.Errorf("Expected even color at %v, got %v", hit.Point, result.Attenuation)
	}

	hit.Point = core.NewVec3(1.5, 0.5, 0.5)
	result, _ = lambertian.Scatter(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0)), hit, sampler)
	if result.Attenuation != odd {
		t.Errorf("Expected odd color at %v, got %v", hit.Point, result.Attenuation)
	}
}

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction.Normalize()
	if actual.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_GrazingFuzzAbsorbs(t *testing.T) {
	// Fully fuzzy metal hit at a grazing angle: some perturbations dip below the surface
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := upHit(metal)

	absorbed := 0
	sampler := core.NewSeededSampler(9)
	for i := 0; i < 1000; i++ {
		result, ok := metal.Scatter(rayIn, hit, sampler)
		if !ok {
			absorbed++
			continue
		}
		if result.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("Scattered ray reported but points below surface: %v", result.Scattered.Direction)
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing fuzzy reflections to be absorbed")
	}
}

func TestDielectric_Refraction(t *testing.T) {
	glass := NewDielectric(1.5)

	// Head-on air-to-glass ray: reflectance is 4%, so a sample of 0.99 refracts straight through
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	result, ok := glass.Scatter(ray, upHit(glass), fixedSampler{v: 0.99})
	if !ok {
		t.Fatal("Dielectric should always scatter")
	}
	if result.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white attenuation, got %v", result.Attenuation)
	}
	expected := core.NewVec3(0, -1, 0)
	if result.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected straight refraction %v, got %v", expected, result.Scattered.Direction)
	}

	// A sample below the reflectance reflects instead
	result, _ = glass.Scatter(ray, upHit(glass), fixedSampler{v: 0.0})
	if result.Scattered.Direction.Y <= 0 {
		t.Errorf("Expected reflection back up, got %v", result.Scattered.Direction)
	}
}

func TestDielectric_SnellsLaw(t *testing.T) {
	glass := NewDielectric(1.5)
	in := core.NewVec3(1, -1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 1, 0), in)

	result, _ := glass.Scatter(ray, upHit(glass), fixedSampler{v: 0.999})
	out := result.Scattered.Direction.Normalize()

	sinIn := math.Abs(in.X)
	sinOut := math.Abs(out.X)
	if math.Abs(sinIn-1.5*sinOut) > 1e-9 {
		t.Errorf("Snell's law violated: sin(in)=%f, 1.5*sin(out)=%f", sinIn, 1.5*sinOut)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false, // Exiting the material
		Material:  glass,
	}

	for i := 0; i < 10; i++ {
		sampler := core.NewSeededSampler(int64(i))
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Error("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Y <= 0 {
			t.Errorf("Expected total internal reflection (ray going up), got %+v", result.Scattered.Direction)
		}
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence air-to-glass
	r := Reflectance(1.0, 1.0/1.5)
	if math.Abs(r-0.04) > 1e-9 {
		t.Errorf("Expected 0.04 at normal incidence, got %f", r)
	}
	// Grazing incidence reflects everything
	if math.Abs(Reflectance(0.0, 1.0/1.5)-1.0) > 1e-9 {
		t.Errorf("Expected 1.0 at grazing incidence, got %f", Reflectance(0.0, 1.0/1.5))
	}
}

func TestMix_SelectsByRatio(t *testing.T) {
	diffuse := NewLambertian(core.NewVec3(1, 0, 0))
	mix := NewMix(diffuse, NewAbsorber(), 0.25)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	if _, ok := mix.Scatter(ray, upHit(mix), fixedSampler{v: 0.1}); ok {
		t.Error("Sample below ratio should pick the absorber")
	}
	if _, ok := mix.Scatter(ray, upHit(mix), fixedSampler{v: 0.9}); !ok {
		t.Error("Sample above ratio should pick the lambertian")
	}

	if NewMix(diffuse, diffuse, 3).Ratio != 1 {
		t.Error("Expected ratio to be clamped to 1")
	}
}

func TestAbsorber_NeverScatters(t *testing.T) {
	absorber := NewAbsorber()
	sampler := core.NewSeededSampler(1)
	for i := 0; i < 10; i++ {
		if _, ok := absorber.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), upHit(absorber), sampler); ok {
			t.Fatal("Absorber should never scatter")
		}
	}
}
