package scene

import (
	"fmt"
	"sort"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/geometry"
	"github.com/fluidgravity/raychi/pkg/material"
)

// builtins maps scene names to constructors
var builtins = map[string]func() *Scene{
	"default": NewDefaultScene,
	"checker": NewCheckerScene,
}

// Builtin returns a built-in scene by name
func Builtin(name string) (*Scene, error) {
	constructor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return constructor(), nil
}

// BuiltinNames returns the sorted names of all built-in scenes
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefaultScene creates the default Cornell-style sphere box: a bright
// spherical light above, giant spheres forming the floor, ceiling and walls,
// and a diffuse, a metal, a glass and a brushed-gold sphere inside.
func NewDefaultScene() *Scene {
	white := core.NewVec3(0.8, 0.8, 0.8)

	objects := []core.Shape{
		// Ceiling light
		geometry.NewSphere(core.NewVec3(0, 5.4, -1), 3.0, material.NewEmissive(core.NewVec3(10, 10, 10))),
		// Floor, ceiling and back wall as giant spheres
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100.0, material.NewLambertian(white)),
		geometry.NewSphere(core.NewVec3(0, 102.5, -1), 100.0, material.NewLambertian(white)),
		geometry.NewSphere(core.NewVec3(0, 1, 101), 100.0, material.NewLambertian(white)),
		// Red and green side walls
		geometry.NewSphere(core.NewVec3(-101.5, 0, -1), 100.0, material.NewLambertian(core.NewVec3(0.6, 0, 0))),
		geometry.NewSphere(core.NewVec3(101.5, 0, -1), 100.0, material.NewLambertian(core.NewVec3(0, 0.6, 0))),
		// Inner spheres: diffuse, metal, glass, brushed gold
		geometry.NewSphere(core.NewVec3(0, -0.2, -1.5), 0.3, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(-0.8, 0.2, -1), 0.7, material.NewMetal(core.NewVec3(0.6, 0.8, 0.8), 0.0)),
		geometry.NewSphere(core.NewVec3(0.7, 0, -0.5), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0.6, -0.3, -2), 0.2, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1)),
	}

	return &Scene{
		Objects:      objects,
		LightPos:     core.NewVec3(0, 5.4, -1),
		LightColor:   core.NewVec3(10, 10, 10),
		AmbientColor: core.NewVec3(0.2, 0.2, 0.4),
		Camera: CameraConfig{
			Origin: core.NewVec3(0, 1, -5),
			LookAt: core.NewVec3(0, 1, 0),
			VUp:    core.NewVec3(0, 1, 0),
			Theta:  60,
		},
	}
}

// NewCheckerScene creates an open scene with a checkered ground plane and
// three demo spheres under a sky gradient.
func NewCheckerScene() *Scene {
	ground := material.NewTexturedLambertian(
		material.NewChecker(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.1, 0.1, 0.1), 1))

	objects := []core.Shape{
		geometry.NewPlane(core.NewVec3(0, 1, 0), -0.5, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(-1.1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.05)),
		geometry.NewSphere(core.NewVec3(1.1, 0, -1), 0.5, material.NewDielectric(1.5)),
	}

	return &Scene{
		Objects:      objects,
		LightPos:     core.NewVec3(2, 4, 1),
		LightColor:   core.NewVec3(8, 8, 8),
		AmbientColor: core.NewVec3(0.25, 0.25, 0.35),
		Camera: CameraConfig{
			Origin: core.NewVec3(0, 0.6, 2.5),
			LookAt: core.NewVec3(0, 0, -1),
			VUp:    core.NewVec3(0, 1, 0),
			Theta:  45,
		},
	}
}
