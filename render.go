package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/renderer"
	"github.com/fluidgravity/raychi/pkg/scene"
)

// renderOptions holds all flags of the render command
type renderOptions struct {
	configPath string
	sceneName  string
	output     string
	format     string
	watch      bool

	width         int
	height        int
	tileSize      int
	samples       int
	maxDepth      int
	workers       int
	seed          int64
	rrProb        float64
	maxRayPool    int
	maxAmbient    int
	aoSamples     int
	aoDistance    float64
	disableAO     bool
	disableDirect bool

	lightPos     []float64
	lightColor   []float64
	ambientColor []float64
	camOrigin    []float64
	lookAt       []float64
	vup          []float64
	theta        float64
}

func newRenderOptions() *renderOptions {
	return &renderOptions{}
}

// bindFlags registers the render flags, defaulting to the standard
// rendering parameters
func (o *renderOptions) bindFlags(flags *pflag.FlagSet) {
	defaults := renderer.DefaultConfig()

	flags.StringVar(&o.configPath, "config", "", "JSON scene configuration file")
	flags.StringVar(&o.sceneName, "scene", "default", "built-in scene name (ignored with --config)")
	flags.StringVarP(&o.output, "output", "o", "render.png", "output image path")
	flags.StringVar(&o.format, "format", "", "output format: png, bmp or tiff (default from the output extension)")
	flags.BoolVar(&o.watch, "watch", false, "re-render whenever the config file changes")

	flags.IntVar(&o.width, "width", defaults.Width, "image width in pixels")
	flags.IntVar(&o.height, "height", defaults.Height, "image height in pixels")
	flags.IntVar(&o.tileSize, "tile-size", defaults.TileWidth, "square tile edge in pixels")
	flags.IntVar(&o.samples, "samples", defaults.SamplesPerPixel, "samples per pixel")
	flags.IntVar(&o.maxDepth, "max-depth", defaults.MaxDepth, "maximum ray bounce depth")
	flags.IntVar(&o.workers, "workers", 0, "parallel workers (0 = CPU count)")
	flags.Int64Var(&o.seed, "seed", defaults.Seed, "base seed for per-tile sampling")
	flags.Float64Var(&o.rrProb, "rr-prob", defaults.RRProb, "russian roulette survival probability")
	flags.IntVar(&o.maxRayPool, "max-ray-pool", defaults.MaxRayPool, "ray pool capacity per tile")
	flags.IntVar(&o.maxAmbient, "max-ambient-requests", defaults.MaxAmbientRequests, "ambient request pool capacity per tile")
	flags.IntVar(&o.aoSamples, "ao-samples", defaults.NumAOSamples, "hemisphere probes per ambient request")
	flags.Float64Var(&o.aoDistance, "ao-distance", defaults.MaxAODistance, "ambient occlusion distance")
	flags.BoolVar(&o.disableAO, "disable-ao", false, "skip the ambient occlusion pass")
	flags.BoolVar(&o.disableDirect, "disable-direct-lighting", false, "skip Blinn-Phong direct lighting")

	flags.Float64SliceVar(&o.lightPos, "light-pos", nil, "point light position override, e.g. 0,5,0")
	flags.Float64SliceVar(&o.lightColor, "light-color", nil, "point light intensity override")
	flags.Float64SliceVar(&o.ambientColor, "ambient-color", nil, "ambient color override")
	flags.Float64SliceVar(&o.camOrigin, "cam-origin", nil, "camera origin override")
	flags.Float64SliceVar(&o.lookAt, "lookat", nil, "camera look-at target override")
	flags.Float64SliceVar(&o.vup, "vup", nil, "camera view-up vector override")
	flags.Float64Var(&o.theta, "theta", 0, "vertical field of view override in degrees")
}

func newRenderCmd() *cobra.Command {
	o := newRenderOptions()
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to an image file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Flags())
		},
	}
	o.bindFlags(cmd.Flags())
	return cmd
}

func (o *renderOptions) run(flags *pflag.FlagSet) error {
	cfg := o.rendererConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if o.watch {
		return o.watchLoop(ctx, flags, cfg)
	}

	sc, err := o.buildScene(flags)
	if err != nil {
		return err
	}
	return o.renderOnce(ctx, sc, cfg)
}

// rendererConfig converts the flag values into rendering parameters
func (o *renderOptions) rendererConfig() renderer.Config {
	return renderer.Config{
		Width:                o.width,
		Height:               o.height,
		TileWidth:            o.tileSize,
		TileHeight:           o.tileSize,
		EnableAO:             !o.disableAO,
		EnableDirectLighting: !o.disableDirect,
		RRProb:               o.rrProb,
		MaxRayPool:           o.maxRayPool,
		MaxAmbientRequests:   o.maxAmbient,
		SamplesPerPixel:      o.samples,
		MaxDepth:             o.maxDepth,
		NumAOSamples:         o.aoSamples,
		MaxAODistance:        o.aoDistance,
		NumWorkers:           o.workers,
		Seed:                 o.seed,
	}
}

// buildScene loads the scene from the config file or the built-in set, then
// applies any camera and lighting overrides from the command line
func (o *renderOptions) buildScene(flags *pflag.FlagSet) (*scene.Scene, error) {
	var sc *scene.Scene
	var err error
	if o.configPath != "" {
		sc, err = scene.Load(o.configPath)
	} else {
		sc, err = scene.Builtin(o.sceneName)
	}
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		name   string
		values []float64
		target *core.Vec3
	}{
		{"light-pos", o.lightPos, &sc.LightPos},
		{"light-color", o.lightColor, &sc.LightColor},
		{"ambient-color", o.ambientColor, &sc.AmbientColor},
		{"cam-origin", o.camOrigin, &sc.Camera.Origin},
		{"lookat", o.lookAt, &sc.Camera.LookAt},
		{"vup", o.vup, &sc.Camera.VUp},
	}
	for _, ov := range overrides {
		if !flags.Changed(ov.name) {
			continue
		}
		v, err := vec3Flag(ov.values, ov.name)
		if err != nil {
			return nil, err
		}
		*ov.target = v
	}

	if flags.Changed("theta") {
		if o.theta <= 0 {
			return nil, fmt.Errorf("theta must be a positive number, got %g", o.theta)
		}
		sc.Camera.Theta = o.theta
	}

	return sc, nil
}

// vec3Flag converts a repeated float flag into a vector
func vec3Flag(values []float64, name string) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("--%s must have 3 components, got %d", name, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// renderOnce renders the scene and writes the output image
func (o *renderOptions) renderOnce(ctx context.Context, sc *scene.Scene, cfg renderer.Config) error {
	rend := renderer.NewRenderer(sc, cfg, nil)
	img, stats, err := rend.Render(ctx)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(o.output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(o.output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	format := o.format
	if format == "" {
		format = renderer.FormatFromPath(o.output)
	}
	if err := renderer.EncodeImage(file, img, format); err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}

	fmt.Printf("Render saved as %s (%d tiles, %d rays, max %d generations)\n",
		o.output, stats.TotalTiles, stats.TotalRays, stats.MaxGenerations)
	return nil
}

// watchLoop renders once, then re-renders whenever the config file changes
func (o *renderOptions) watchLoop(ctx context.Context, flags *pflag.FlagSet, cfg renderer.Config) error {
	if o.configPath == "" {
		return fmt.Errorf("--watch requires --config")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(o.configPath); err != nil {
		return fmt.Errorf("watching %s: %w", o.configPath, err)
	}

	renderCurrent := func() {
		sc, err := o.buildScene(flags)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scene error: %v\n", err)
			return
		}
		if err := o.renderOnce(ctx, sc, cfg); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Render error: %v\n", err)
		}
	}

	renderCurrent()
	fmt.Printf("Watching %s for changes, press Ctrl-C to stop\n", o.configPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often replace the file instead of writing in place, so
			// re-arm the watch after remove and rename events
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				watcher.Add(o.configPath)
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fmt.Printf("Config changed, re-rendering...\n")
				renderCurrent()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", werr)
		}
	}
}
