package material

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidgravity/raychi/pkg/core"
)

func TestChecker_Evaluate(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	checker := NewChecker(white, black, 1)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"origin square is even", 0.5, 0.5, white},
		{"next square over is odd", 1.5, 0.5, black},
		{"diagonal square is even", 1.5, 1.5, white},
		{"negative coordinates alternate", -0.5, 0.5, black},
		{"negative diagonal is even", -0.5, -0.5, white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checker.Evaluate(tt.u, tt.v, core.Vec3{}))
		})
	}
}

func TestChecker_Scale(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	checker := NewChecker(white, black, 4)

	// At scale 4, squares are 0.25 UV units wide
	assert.Equal(t, white, checker.Evaluate(0.1, 0.1, core.Vec3{}))
	assert.Equal(t, black, checker.Evaluate(0.3, 0.1, core.Vec3{}))

	// Non-positive scale falls back to 1
	assert.Equal(t, 1.0, NewChecker(white, black, 0).Scale)
}

func TestSolidColor_Evaluate(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	solid := NewSolidColor(red)

	assert.Equal(t, red, solid.Evaluate(0, 0, core.Vec3{}))
	assert.Equal(t, red, solid.Evaluate(7.3, -2.1, core.NewVec3(5, 5, 5)))
}
