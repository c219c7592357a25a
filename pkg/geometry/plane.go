package geometry

import (
	"math"

	"github.com/fluidgravity/raychi/pkg/core"
)

// Plane represents an infinite plane satisfying normal·p = offset
type Plane struct {
	Normal   core.Vec3     // Plane normal (normalized on construction)
	Offset   float64       // Signed distance along the normal
	Material core.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(normal core.Vec3, offset float64, material core.Material) *Plane {
	return &Plane{
		Normal:   normal.Normalize(),
		Offset:   offset,
		Material: material,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denominator := p.Normal.Dot(ray.Direction)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-4 {
		return nil, false
	}

	t := -(p.Normal.Dot(ray.Origin) - p.Offset) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	hitRecord := &core.HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: p.Material,
		// Planar parameterization in world X/Z, used by checker patterns
		U: hitPoint.X,
		V: hitPoint.Z,
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	return hitRecord, true
}
