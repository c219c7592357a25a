package material

import (
	"math"
	"math/rand"

	"github.com/fluidgravity/raychi/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo   ColorSource // Base color/reflectance (can be solid or checkered)
	Specular core.Vec3   // Optional highlight color for direct lighting
}

// NewLambertian creates a new lambertian material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with a color source
func NewTexturedLambertian(albedo ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	// Generate cosine-weighted random direction in hemisphere around normal
	scatterDirection := core.SampleHemisphereCosine(hit.Normal, random)
	scattered := core.Ray{Origin: hit.Point, Direction: scatterDirection}

	// PDF for cosine-weighted hemisphere sampling: cos(θ) / π
	cosTheta := scatterDirection.Dot(hit.Normal)
	if cosTheta < 0 {
		cosTheta = 0
	}

	// BRDF: albedo / π
	albedo := l.Albedo.Evaluate(hit.U, hit.V, hit.Point)
	attenuation := albedo.Multiply(1.0 / math.Pi)

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
		PDF:         cosTheta / math.Pi,
	}, true
}

// PhongColors implements the DirectLit interface
func (l *Lambertian) PhongColors(u, v float64, point core.Vec3) (core.Vec3, core.Vec3) {
	return l.Albedo.Evaluate(u, v, point), l.Specular
}
