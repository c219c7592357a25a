package material

import (
	"math"

	"github.com/fluidgravity/raychi/pkg/core"
)

// ColorSource provides a color for a surface point, either solid or patterned
type ColorSource interface {
	Evaluate(u, v float64, point core.Vec3) core.Vec3
}

// SolidColor is a constant color source
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the constant color regardless of position
func (s *SolidColor) Evaluate(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates between two colors on a square grid in UV space
type Checker struct {
	Even  core.Vec3 // Color of even squares
	Odd   core.Vec3 // Color of odd squares
	Scale float64   // Number of squares per unit of UV space
}

// NewChecker creates a checkerboard color source
func NewChecker(even, odd core.Vec3, scale float64) *Checker {
	if scale <= 0 {
		scale = 1
	}
	return &Checker{Even: even, Odd: odd, Scale: scale}
}

// Evaluate returns the checker color for the given UV coordinates
func (c *Checker) Evaluate(u, v float64, point core.Vec3) core.Vec3 {
	sum := int(math.Floor(u*c.Scale)) + int(math.Floor(v*c.Scale))
	// Go's % returns -1 for negative sums, so normalize the parity
	if ((sum%2)+2)%2 == 0 {
		return c.Even
	}
	return c.Odd
}
