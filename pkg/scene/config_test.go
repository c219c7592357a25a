package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/geometry"
	"github.com/fluidgravity/raychi/pkg/material"
)

const validConfigJSON = `{
	"light_pos": [0.0, 5.4, -1.0],
	"ambient_color": [0.2, 0.2, 0.4],
	"light_color": [10.0, 10.0, 10.0],
	"cam_origin": [0.0, 1.0, -5.0],
	"lookat": [0.0, 1.0, 0.0],
	"vup": [0.0, 1.0, 0.0],
	"theta": 60.0,
	"objects": [
		{"type": 1, "center": [0.0, 5.4, -1.0], "radius": 3.0, "diffuse": [10.0, 10.0, 10.0], "material": 0},
		{"type": 1, "center": [0.7, 0.0, -0.5], "radius": 0.5, "diffuse": [1.0, 1.0, 1.0], "ior": 1.5, "material": 3},
		{"type": 1, "center": [0.6, -0.3, -2.0], "radius": 0.2, "diffuse": [0.0, 0.0, 0.0], "specular": [0.8, 0.6, 0.2], "fuzz": 0.1, "material": 4},
		{"type": 0, "normal": [0.0, 1.0, 0.0], "offset": -0.5, "diffuse": [0.8, 0.8, 0.8], "material": 1, "do_checkboard": 1, "scale": 2}
	]
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	sc, err := Load(writeConfig(t, validConfigJSON))
	require.NoError(t, err)

	assert.Equal(t, core.NewVec3(0, 5.4, -1), sc.LightPos)
	assert.Equal(t, core.NewVec3(10, 10, 10), sc.LightColor)
	assert.Equal(t, core.NewVec3(0.2, 0.2, 0.4), sc.AmbientColor)
	assert.Equal(t, core.NewVec3(0, 1, -5), sc.Camera.Origin)
	assert.Equal(t, 60.0, sc.Camera.Theta)
	require.Len(t, sc.Objects, 4)

	// Material codes map to the right implementations
	light := sc.Objects[0].(*geometry.Sphere)
	assert.IsType(t, &material.Emissive{}, light.Material)

	glass := sc.Objects[1].(*geometry.Sphere)
	require.IsType(t, &material.Dielectric{}, glass.Material)
	assert.Equal(t, 1.5, glass.Material.(*material.Dielectric).RefractiveIndex)

	gold := sc.Objects[2].(*geometry.Sphere)
	require.IsType(t, &material.Metal{}, gold.Material)
	assert.Equal(t, 0.1, gold.Material.(*material.Metal).Fuzz)
	assert.Equal(t, core.NewVec3(0.8, 0.6, 0.2), gold.Material.(*material.Metal).Albedo)

	ground := sc.Objects[3].(*geometry.Plane)
	require.IsType(t, &material.Lambertian{}, ground.Material)
	assert.IsType(t, &material.Checker{}, ground.Material.(*material.Lambertian).Albedo)
}

func TestBuildMaterial_DirectLightingColors(t *testing.T) {
	// Every non-emissive object feeds its config diffuse and specular into
	// Blinn-Phong shading, whatever the material code
	diffuse := []float64{0.5, 0.4, 0.3}
	specular := []float64{0.8, 0.8, 0.9}
	ior := 1.5
	fuzz := 0.1

	tests := []struct {
		name string
		code int
	}{
		{"diffuse", MaterialDiffuse},
		{"metal", MaterialMetal},
		{"dielectric", MaterialDielectric},
		{"fuzzy metal", MaterialFuzzyMetal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := tt.code
			obj := ObjectConfig{
				Type: intPtr(ObjectSphere), Center: []float64{0, 0, 0}, Radius: floatPtr(1),
				Diffuse: diffuse, Specular: specular, IOR: &ior, Fuzz: &fuzz,
				Material: &code,
			}
			mat, err := obj.buildMaterial()
			require.NoError(t, err)

			lit, ok := mat.(core.DirectLit)
			require.True(t, ok)
			d, s := lit.PhongColors(0, 0, core.Vec3{})
			assert.Equal(t, core.NewVec3(0.5, 0.4, 0.3), d)
			assert.Equal(t, core.NewVec3(0.8, 0.8, 0.9), s)
		})
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load(writeConfig(t, "{not json"))
	assert.Error(t, err)
}

func TestConfig_Validate_Errors(t *testing.T) {
	theta := 60.0
	badTheta := -1.0
	sphereType := 1
	planeType := 0
	badType := 7
	diffuseMat := 1
	badMat := 9
	radius := 1.0

	vec := []float64{0, 0, 0}
	sphere := ObjectConfig{Type: &sphereType, Center: vec, Radius: &radius, Diffuse: vec, Material: &diffuseMat}

	base := func() Config {
		return Config{
			LightPos:     vec,
			AmbientColor: vec,
			LightColor:   vec,
			CamOrigin:    vec,
			LookAt:       vec,
			VUp:          vec,
			Theta:        &theta,
			Objects:      []ObjectConfig{sphere},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing light_pos", func(c *Config) { c.LightPos = nil }, "light_pos"},
		{"short vup", func(c *Config) { c.VUp = []float64{0, 1} }, "vup"},
		{"missing theta", func(c *Config) { c.Theta = nil }, "theta"},
		{"negative theta", func(c *Config) { c.Theta = &badTheta }, "positive"},
		{"no objects", func(c *Config) { c.Objects = nil }, "at least 1 object"},
		{"object missing type", func(c *Config) { c.Objects[0].Type = nil }, "type"},
		{"unknown object type", func(c *Config) { c.Objects[0].Type = &badType }, "unknown object type"},
		{"sphere missing radius", func(c *Config) { c.Objects[0].Radius = nil }, "radius"},
		{"missing diffuse", func(c *Config) { c.Objects[0].Diffuse = nil }, "diffuse"},
		{"missing material", func(c *Config) { c.Objects[0].Material = nil }, "material"},
		{"unknown material", func(c *Config) { c.Objects[0].Material = &badMat }, "unknown material"},
		{"plane missing normal", func(c *Config) {
			c.Objects[0] = ObjectConfig{Type: &planeType, Diffuse: vec, Material: &diffuseMat}
		}, "normal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base()
			tt.mutate(&config)
			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	theta := 60.0
	sphereType := 1
	mat := 1
	radius := 1.0
	vec := []float64{0, 0, 0}

	config := Config{
		LightPos:     vec,
		AmbientColor: vec,
		LightColor:   vec,
		CamOrigin:    vec,
		LookAt:       vec,
		VUp:          []float64{0, 1, 0},
		Theta:        &theta,
		Objects: []ObjectConfig{
			{Type: &sphereType, Center: vec, Radius: &radius, Diffuse: vec, Material: &mat},
		},
	}

	assert.NoError(t, config.Validate())
}
