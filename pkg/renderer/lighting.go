package renderer

import (
	"math"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/material"
)

// phongShininess is the Blinn-Phong specular exponent
const phongShininess = 10.0

// backgroundColor returns the vertical sky gradient for rays that miss
func backgroundColor(direction core.Vec3) core.Vec3 {
	unit := direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return core.NewVec3(1, 1, 1).Lerp(core.NewVec3(0.5, 0.7, 1.0), t)
}

// directLighting computes the Blinn-Phong contribution of the scene's point
// light at a surface hit, attenuated by shadowing
func (p *pipeline) directLighting(rayDirection core.Vec3, hit *core.HitRecord) core.Vec3 {
	lit, ok := hit.Material.(core.DirectLit)
	if !ok {
		return core.Vec3{}
	}
	diffuseColor, specularColor := lit.PhongColors(hit.U, hit.V, hit.Point)

	toLight := p.scene.LightPos.Subtract(hit.Point).Normalize()
	diffuse := math.Max(hit.Normal.Dot(toLight), 0.0)

	view := rayDirection.Negate().Normalize()
	halfway := toLight.Add(view).Normalize()
	specular := math.Pow(math.Max(hit.Normal.Dot(halfway), 0.0), phongShininess)

	localColor := diffuseColor.Multiply(diffuse).Add(specularColor.Multiply(specular))
	return localColor.Multiply(p.shadowWeight(hit.Point, hit.Normal))
}

// shadowWeight traces a shadow ray toward the light. Opaque occluders block
// the light entirely, glass occluders pass half of it.
func (p *pipeline) shadowWeight(point, normal core.Vec3) float64 {
	origin := point.Add(normal.Multiply(epsilon))
	toLight := p.scene.LightPos.Subtract(origin)
	distance := toLight.Length()

	hit, occluded := p.scene.Occluded(origin, toLight.Normalize(), distance)
	if !occluded {
		return 1.0
	}
	if _, isGlass := hit.Material.(*material.Dielectric); isGlass {
		return 0.5
	}
	return 0.0
}
