package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/scene"
)

func TestCamera_CenterRay(t *testing.T) {
	camera := NewCamera(scene.CameraConfig{
		Origin: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		VUp:    core.NewVec3(0, 1, 0),
		Theta:  90,
	}, 200, 100)

	ray := camera.GetRay(0.5, 0.5)
	assert.Equal(t, core.NewVec3(0, 0, 0), ray.Origin)
	assert.InDelta(t, 0.0, ray.Direction.X, 1e-9)
	assert.InDelta(t, 0.0, ray.Direction.Y, 1e-9)
	assert.InDelta(t, -1.0, ray.Direction.Z, 1e-9)
}

func TestCamera_FieldOfView(t *testing.T) {
	// Square image with a 90 degree vertical FOV: the top edge is 45 degrees
	// off-axis
	camera := NewCamera(scene.CameraConfig{
		Origin: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		VUp:    core.NewVec3(0, 1, 0),
		Theta:  90,
	}, 100, 100)

	top := camera.GetRay(0.5, 1.0).Direction
	assert.InDelta(t, 1.0, top.Y/(-top.Z), 1e-9, "tan of half the FOV should be 1")
}

func TestCamera_AspectRatio(t *testing.T) {
	camera := NewCamera(scene.CameraConfig{
		Origin: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		VUp:    core.NewVec3(0, 1, 0),
		Theta:  90,
	}, 200, 100)

	// Horizontal extent is aspect times the vertical extent
	right := camera.GetRay(1.0, 0.5).Direction
	assert.InDelta(t, 2.0, right.X/(-right.Z), 1e-9)
}

func TestCamera_OffAxisLookAt(t *testing.T) {
	camera := NewCamera(scene.CameraConfig{
		Origin: core.NewVec3(0, 1, -5),
		LookAt: core.NewVec3(0, 1, 0),
		VUp:    core.NewVec3(0, 1, 0),
		Theta:  60,
	}, 640, 360)

	// The center ray points from the origin toward the look-at target
	ray := camera.GetRay(0.5, 0.5)
	expected := core.NewVec3(0, 0, 1)
	assert.InDelta(t, expected.X, ray.Direction.X, 1e-9)
	assert.InDelta(t, expected.Y, ray.Direction.Y, 1e-9)
	assert.InDelta(t, expected.Z, ray.Direction.Z, 1e-9)

	// All rays are normalized
	assert.InDelta(t, 1.0, camera.GetRay(0.1, 0.9).Direction.Length(), 1e-9)
}
