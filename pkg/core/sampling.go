package core

import (
	"math"
	"math/rand"
)

// RandomInUnitSphere generates a random point inside the unit sphere
// using rejection sampling
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
			Z: 2*random.Float64() - 1,
		}
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// SampleHemisphereCosine generates a cosine-weighted random direction in the
// hemisphere around normal
func SampleHemisphereCosine(normal Vec3, random *rand.Rand) Vec3 {
	u1 := random.Float64()
	u2 := random.Float64()

	phi := 2 * math.Pi * u2
	cosTheta := math.Sqrt(u1)
	sinTheta := math.Sqrt(1.0 - u1)

	localDir := Vec3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: cosTheta,
	}

	// Build a tangent frame around the normal. Fall back to the X axis when
	// the normal is nearly parallel to Z.
	var tangent Vec3
	if math.Abs(normal.Z) < 0.999 {
		tangent = normal.Cross(NewVec3(0, 0, 1))
	} else {
		tangent = normal.Cross(NewVec3(1, 0, 0))
	}
	tangent = tangent.Normalize()
	bitangent := normal.Cross(tangent)

	worldDir := tangent.Multiply(localDir.X).
		Add(bitangent.Multiply(localDir.Y)).
		Add(normal.Multiply(localDir.Z))
	return worldDir.Normalize()
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n Vec3) Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract calculates the refraction of a unit vector using Snell's law
func Refract(uv, n Vec3, etaiOverEtat float64) Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
