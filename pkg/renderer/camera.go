package renderer

import (
	"math"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/scene"
)

// Camera generates primary rays from a look-at configuration
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from scene configuration and image dimensions
func NewCamera(config scene.CameraConfig, width, height int) *Camera {
	theta := config.Theta * (math.Pi / 180)
	halfHeight := math.Tan(theta / 2)
	aspect := float64(width) / float64(height)
	halfWidth := aspect * halfHeight

	w := config.Origin.Subtract(config.LookAt).Normalize()
	u := config.VUp.Normalize().Cross(w).Normalize()
	v := w.Cross(u)

	lowerLeftCorner := config.Origin.
		Subtract(u.Multiply(halfWidth)).
		Subtract(v.Multiply(halfHeight)).
		Subtract(w)

	return &Camera{
		origin:          config.Origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth),
		vertical:        v.Multiply(2 * halfHeight),
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1
// and t = 0 is the bottom of the image
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Normalize()

	return core.NewRay(c.origin, direction)
}
