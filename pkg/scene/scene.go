// Package scene defines the renderable scene model and its JSON configuration
// format. A scene is a flat list of spheres and planes plus a single point
// light, an ambient term and a look-at camera.
package scene

import (
	"github.com/fluidgravity/raychi/pkg/core"
)

// CameraConfig holds the look-at camera parameters for a scene
type CameraConfig struct {
	Origin core.Vec3 // Eye position
	LookAt core.Vec3 // Target point
	VUp    core.Vec3 // View-up vector
	Theta  float64   // Vertical field of view in degrees
}

// Scene contains all objects, lighting and camera settings for a render
type Scene struct {
	Objects      []core.Shape // Spheres and planes
	LightPos     core.Vec3    // Point light position
	LightColor   core.Vec3    // Point light intensity
	AmbientColor core.Vec3    // Carried from the scene config, not used in shading
	Camera       CameraConfig
}

// Hit finds the closest intersection of the ray with any scene object
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range s.Objects {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// Occluded reports whether anything blocks the segment from origin toward
// direction within maxDistance, and returns the blocking hit
func (s *Scene) Occluded(origin, direction core.Vec3, maxDistance float64) (*core.HitRecord, bool) {
	ray := core.NewRay(origin, direction)
	hit, isHit := s.Hit(ray, 0.001, maxDistance)
	return hit, isHit
}
