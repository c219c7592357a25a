package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidgravity/raychi/pkg/core"
)

func testHit(normal core.Vec3) core.HitRecord {
	return core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		T:         1.0,
		FrontFace: true,
	}
}

func TestLambertian_Scatter(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	normal := core.NewVec3(0, 1, 0)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 100; i++ {
		scatter, didScatter := lambertian.Scatter(rayIn, testHit(normal), random)
		require.True(t, didScatter, "lambertian always scatters")

		// Scattered direction must be in the hemisphere around the normal
		cosTheta := scatter.Scattered.Direction.Dot(normal)
		assert.GreaterOrEqual(t, cosTheta, 0.0)

		// BRDF is albedo/π, PDF is cos(θ)/π
		assert.InDelta(t, albedo.X/math.Pi, scatter.Attenuation.X, 1e-12)
		assert.InDelta(t, cosTheta/math.Pi, scatter.PDF, 1e-9)
		assert.False(t, scatter.IsSpecular())
	}
}

func TestLambertian_CheckeredAlbedo(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)
	lambertian := NewTexturedLambertian(NewChecker(red, blue, 1))
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	evenHit := testHit(core.NewVec3(0, 1, 0))
	evenHit.U, evenHit.V = 0.5, 0.5
	scatter, _ := lambertian.Scatter(rayIn, evenHit, random)
	assert.InDelta(t, red.X/math.Pi, scatter.Attenuation.X, 1e-12)
	assert.InDelta(t, 0.0, scatter.Attenuation.Z, 1e-12)

	oddHit := testHit(core.NewVec3(0, 1, 0))
	oddHit.U, oddHit.V = 1.5, 0.5
	scatter, _ = lambertian.Scatter(rayIn, oddHit, random)
	assert.InDelta(t, 0.0, scatter.Attenuation.X, 1e-12)
	assert.InDelta(t, blue.Z/math.Pi, scatter.Attenuation.Z, 1e-12)
}
