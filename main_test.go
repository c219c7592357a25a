package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSceneJSON = `{
	"light_pos": [0, 5, 0],
	"ambient_color": [0.2, 0.2, 0.2],
	"light_color": [10, 10, 10],
	"cam_origin": [0, 1, -3],
	"lookat": [0, 0, 0],
	"vup": [0, 1, 0],
	"theta": 60,
	"objects": [
		{"type": 0, "normal": [0, 1, 0], "offset": -0.5, "diffuse": [0.8, 0.8, 0.8], "material": 1},
		{"type": 1, "center": [0, 0, 0], "radius": 0.5, "diffuse": [0.7, 0.3, 0.3], "material": 1}
	]
}`

// parseRenderFlags binds the render flags to a fresh flag set and parses args
func parseRenderFlags(t *testing.T, args ...string) (*renderOptions, *pflag.FlagSet) {
	t.Helper()
	o := newRenderOptions()
	flags := pflag.NewFlagSet("render", pflag.ContinueOnError)
	o.bindFlags(flags)
	require.NoError(t, flags.Parse(args))
	return o, flags
}

func TestVec3Flag(t *testing.T) {
	v, err := vec3Flag([]float64{1, 2, 3}, "light-pos")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.X)
	assert.Equal(t, 3.0, v.Z)

	_, err = vec3Flag([]float64{1, 2}, "light-pos")
	assert.Error(t, err)
}

func TestBuildScene_Builtin(t *testing.T) {
	o, flags := parseRenderFlags(t, "--scene", "checker")
	sc, err := o.buildScene(flags)
	require.NoError(t, err)
	assert.NotEmpty(t, sc.Objects)

	o, flags = parseRenderFlags(t, "--scene", "nonexistent")
	_, err = o.buildScene(flags)
	assert.Error(t, err)
}

func TestBuildScene_Overrides(t *testing.T) {
	o, flags := parseRenderFlags(t,
		"--scene", "default",
		"--light-pos", "1,9,2",
		"--cam-origin", "0,0,-7",
		"--theta", "45",
	)

	sc, err := o.buildScene(flags)
	require.NoError(t, err)

	assert.Equal(t, 9.0, sc.LightPos.Y)
	assert.Equal(t, -7.0, sc.Camera.Origin.Z)
	assert.Equal(t, 45.0, sc.Camera.Theta)
	// Untouched fields keep the scene defaults
	assert.Equal(t, 1.0, sc.Camera.VUp.Y)
}

func TestBuildScene_InvalidOverrides(t *testing.T) {
	o, flags := parseRenderFlags(t, "--light-pos", "1,2")
	_, err := o.buildScene(flags)
	assert.Error(t, err)

	o, flags = parseRenderFlags(t, "--theta", "-10")
	_, err = o.buildScene(flags)
	assert.Error(t, err)
}

func TestRendererConfig_DisableFlags(t *testing.T) {
	o, _ := parseRenderFlags(t, "--disable-ao", "--disable-direct-lighting", "--tile-size", "32")
	cfg := o.rendererConfig()

	assert.False(t, cfg.EnableAO)
	assert.False(t, cfg.EnableDirectLighting)
	assert.Equal(t, 32, cfg.TileWidth)
	assert.Equal(t, 32, cfg.TileHeight)
}

func TestRenderCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(configPath, []byte(testSceneJSON), 0644))
	outputPath := filepath.Join(dir, "out", "render.png")

	o, flags := parseRenderFlags(t,
		"--config", configPath,
		"--output", outputPath,
		"--width", "16",
		"--height", "16",
		"--samples", "1",
		"--max-depth", "2",
		"--ao-samples", "1",
		"--workers", "1",
	)

	sc, err := o.buildScene(flags)
	require.NoError(t, err)
	require.NoError(t, o.renderOnce(context.Background(), sc, o.rendererConfig()))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestWatchRequiresConfig(t *testing.T) {
	o, flags := parseRenderFlags(t, "--watch", "--samples", "1")
	err := o.run(flags)
	assert.ErrorContains(t, err, "--watch requires --config")
}

func TestScenesCommand(t *testing.T) {
	cmd := newScenesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Contains(t, out.String(), "default")
	assert.Contains(t, out.String(), "checker")
}
