package material

import (
	"math/rand"

	"github.com/fluidgravity/raychi/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo  core.Vec3 // Specular color
	Fuzz    float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
	Diffuse core.Vec3 // Base color for direct lighting and ambient occlusion
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	// Clamp fuzz to valid range
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	// Calculate perfect reflection direction
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)

	// Add fuzziness by perturbing the reflection direction
	if m.Fuzz > 0 {
		perturbation := core.RandomInUnitSphere(random).Multiply(m.Fuzz)
		reflected = reflected.Add(perturbation)
	}

	// Only scatter if the ray stays above the surface (not absorbed)
	if reflected.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	scattered := core.Ray{Origin: hit.Point, Direction: reflected.Normalize()}

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo, // No π factor for specular
		PDF:         0,        // Specular materials have no PDF
	}, true
}

// PhongColors implements the DirectLit interface
func (m *Metal) PhongColors(u, v float64, point core.Vec3) (core.Vec3, core.Vec3) {
	return m.Diffuse, m.Albedo
}
