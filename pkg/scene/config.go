package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/geometry"
	"github.com/fluidgravity/raychi/pkg/material"
)

// Object type codes used in scene configuration files
const (
	ObjectPlane  = 0
	ObjectSphere = 1
)

// Material codes used in scene configuration files
const (
	MaterialEmissive   = 0
	MaterialDiffuse    = 1
	MaterialMetal      = 2
	MaterialDielectric = 3
	MaterialFuzzyMetal = 4
)

// ObjectConfig describes a single scene object in a configuration file.
// Pointer fields distinguish "absent" from zero values during validation.
type ObjectConfig struct {
	Type         *int      `json:"type"`          // 0 = plane, 1 = sphere
	Center       []float64 `json:"center"`        // Sphere center
	Radius       *float64  `json:"radius"`        // Sphere radius
	Normal       []float64 `json:"normal"`        // Plane normal
	Offset       *float64  `json:"offset"`        // Plane offset along the normal
	Diffuse      []float64 `json:"diffuse"`       // Albedo or emission
	Specular     []float64 `json:"specular"`      // Specular color for metals
	IOR          *float64  `json:"ior"`           // Index of refraction
	Fuzz         *float64  `json:"fuzz"`          // Fuzz for material 4
	Material     *int      `json:"material"`      // Material code
	DoCheckboard int       `json:"do_checkboard"` // Non-zero enables the checker pattern
	Scale        float64   `json:"scale"`         // Checker squares per unit
}

// Config is the top-level scene configuration file format
type Config struct {
	LightPos     []float64      `json:"light_pos"`
	AmbientColor []float64      `json:"ambient_color"`
	LightColor   []float64      `json:"light_color"`
	CamOrigin    []float64      `json:"cam_origin"`
	LookAt       []float64      `json:"lookat"`
	VUp          []float64      `json:"vup"`
	Theta        *float64       `json:"theta"`
	Objects      []ObjectConfig `json:"objects"`
}

// LoadConfig reads and parses a scene configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing scene config %s: %w", path, err)
	}
	return &config, nil
}

// Validate checks the configuration against the scene schema
func (c *Config) Validate() error {
	vectors := []struct {
		name  string
		value []float64
	}{
		{"light_pos", c.LightPos},
		{"ambient_color", c.AmbientColor},
		{"light_color", c.LightColor},
		{"cam_origin", c.CamOrigin},
		{"lookat", c.LookAt},
		{"vup", c.VUp},
	}
	for _, v := range vectors {
		if v.value == nil {
			return fmt.Errorf("'%s' missing in scene config", v.name)
		}
		if len(v.value) != 3 {
			return fmt.Errorf("%s must be a 3-element array, got %d elements", v.name, len(v.value))
		}
	}

	if c.Theta == nil {
		return fmt.Errorf("'theta' missing in scene config")
	}
	if *c.Theta <= 0 {
		return fmt.Errorf("theta must be a positive number, got %g", *c.Theta)
	}

	if len(c.Objects) < 1 {
		return fmt.Errorf("scene must contain at least 1 object")
	}

	for i, obj := range c.Objects {
		if err := obj.validate(); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}

// validate checks per-type required fields of a single object
func (o *ObjectConfig) validate() error {
	if o.Type == nil {
		return fmt.Errorf("missing 'type' specification")
	}

	switch *o.Type {
	case ObjectSphere:
		if o.Center == nil {
			return fmt.Errorf("missing required field 'center'")
		}
		if len(o.Center) != 3 {
			return fmt.Errorf("center must be a 3-element array")
		}
		if o.Radius == nil {
			return fmt.Errorf("missing required field 'radius'")
		}
	case ObjectPlane:
		if o.Normal == nil {
			return fmt.Errorf("missing required field 'normal'")
		}
		if len(o.Normal) != 3 {
			return fmt.Errorf("normal must be a 3-element array")
		}
		if o.Offset == nil {
			return fmt.Errorf("missing required field 'offset'")
		}
	default:
		return fmt.Errorf("unknown object type %d", *o.Type)
	}

	if o.Diffuse == nil {
		return fmt.Errorf("missing required field 'diffuse'")
	}
	if len(o.Diffuse) != 3 {
		return fmt.Errorf("diffuse must be a 3-element array")
	}
	if o.Material == nil {
		return fmt.Errorf("missing required field 'material'")
	}
	if *o.Material < MaterialEmissive || *o.Material > MaterialFuzzyMetal {
		return fmt.Errorf("unknown material code %d", *o.Material)
	}
	if o.Specular != nil && len(o.Specular) != 3 {
		return fmt.Errorf("specular must be a 3-element array")
	}
	return nil
}

// Build validates the configuration and constructs a renderable scene
func (c *Config) Build() (*Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	scene := &Scene{
		LightPos:     toVec3(c.LightPos),
		AmbientColor: toVec3(c.AmbientColor),
		LightColor:   toVec3(c.LightColor),
		Camera: CameraConfig{
			Origin: toVec3(c.CamOrigin),
			LookAt: toVec3(c.LookAt),
			VUp:    toVec3(c.VUp),
			Theta:  *c.Theta,
		},
	}

	for i, obj := range c.Objects {
		shape, err := obj.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		scene.Objects = append(scene.Objects, shape)
	}
	return scene, nil
}

// build constructs a shape with its material from a validated object config
func (o *ObjectConfig) build() (core.Shape, error) {
	mat, err := o.buildMaterial()
	if err != nil {
		return nil, err
	}

	switch *o.Type {
	case ObjectSphere:
		return geometry.NewSphere(toVec3(o.Center), *o.Radius, mat), nil
	case ObjectPlane:
		return geometry.NewPlane(toVec3(o.Normal), *o.Offset, mat), nil
	}
	return nil, fmt.Errorf("unknown object type %d", *o.Type)
}

// buildMaterial maps a material code to its implementation
func (o *ObjectConfig) buildMaterial() (core.Material, error) {
	diffuse := toVec3(o.Diffuse)
	specular := core.Vec3{}
	if o.Specular != nil {
		specular = toVec3(o.Specular)
	}
	ior := 1.0
	if o.IOR != nil {
		ior = *o.IOR
	}
	fuzz := 0.0
	if o.Fuzz != nil {
		fuzz = *o.Fuzz
	}
	scale := o.Scale
	if scale <= 0 {
		scale = 1
	}

	switch *o.Material {
	case MaterialEmissive:
		return material.NewEmissive(diffuse), nil
	case MaterialDiffuse:
		var lambertian *material.Lambertian
		if o.DoCheckboard != 0 {
			checker := material.NewChecker(diffuse, specular, scale)
			lambertian = material.NewTexturedLambertian(checker)
		} else {
			lambertian = material.NewLambertian(diffuse)
		}
		lambertian.Specular = specular
		return lambertian, nil
	case MaterialMetal:
		metal := material.NewMetal(specular, 0.0)
		metal.Diffuse = diffuse
		return metal, nil
	case MaterialDielectric:
		dielectric := material.NewDielectric(ior)
		dielectric.Diffuse = diffuse
		dielectric.Specular = specular
		return dielectric, nil
	case MaterialFuzzyMetal:
		metal := material.NewMetal(specular, fuzz)
		metal.Diffuse = diffuse
		return metal, nil
	}
	return nil, fmt.Errorf("unknown material code %d", *o.Material)
}

// Load reads, validates and builds a scene from a configuration file
func Load(path string) (*Scene, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return config.Build()
}

func toVec3(v []float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
