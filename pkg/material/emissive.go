package material

import (
	"math/rand"

	"github.com/fluidgravity/raychi/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Emission core.Vec3 // Emitted radiance (can exceed 1.0 for bright lights)
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter implements the Material interface. Emissive surfaces absorb
// incoming rays, so paths terminate here.
func (e *Emissive) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emit implements the Emitter interface
func (e *Emissive) Emit() core.Vec3 {
	return e.Emission
}
