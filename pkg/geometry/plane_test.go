package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidgravity/raychi/pkg/core"
)

func TestPlane_Hit_GroundPlane(t *testing.T) {
	// Ground plane: y = -0.5, so normal (0,1,0), offset -0.5
	plane := NewPlane(core.NewVec3(0, 1, 0), -0.5, nil)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	require.True(t, isHit)

	assert.InDelta(t, 1.5, hit.T, 1e-9)
	assert.InDelta(t, -0.5, hit.Point.Y, 1e-9)
	assert.True(t, hit.FrontFace)
	assert.Equal(t, core.NewVec3(0, 1, 0), hit.Normal)
}

func TestPlane_Hit_Parallel(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 0, nil)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))

	_, isHit := plane.Hit(ray, 0.001, 1000.0)
	assert.False(t, isHit)
}

func TestPlane_Hit_Behind(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 0, nil)
	// Ray pointing away from the plane
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	_, isHit := plane.Hit(ray, 0.001, 1000.0)
	assert.False(t, isHit)
}

func TestPlane_Hit_FromBelow(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 0, nil)
	ray := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	require.True(t, isHit)

	// Normal flips to face the incoming ray
	assert.False(t, hit.FrontFace)
	assert.Equal(t, core.NewVec3(0, -1, 0), hit.Normal)
}

func TestPlane_Hit_UVFromWorldXZ(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 0, nil)
	ray := core.NewRay(core.NewVec3(2.5, 1, -3.5), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	require.True(t, isHit)

	assert.InDelta(t, 2.5, hit.U, 1e-9)
	assert.InDelta(t, -3.5, hit.V, 1e-9)
}

func TestNewPlane_NormalizesNormal(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 2, 0), 1, nil)
	assert.InDelta(t, 1.0, plane.Normal.Length(), 1e-12)
}
