// Package renderer implements the wavefront rendering pipeline: camera ray
// generation, a generational ray pool with ambient occlusion requests, and
// tiled dispatch across a worker pool.
package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/scene"
)

// outputGamma is applied when converting the framebuffer to 8-bit color
const outputGamma = 2.2

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains all rendering parameters
type Config struct {
	Width                int     // Image width in pixels
	Height               int     // Image height in pixels
	TileWidth            int     // Tile width in pixels
	TileHeight           int     // Tile height in pixels
	EnableAO             bool    // Enable ambient occlusion
	EnableDirectLighting bool    // Enable Blinn-Phong direct lighting
	RRProb               float64 // Russian roulette survival probability
	MaxRayPool           int     // Ray pool capacity per tile
	MaxAmbientRequests   int     // Ambient request pool capacity per tile
	SamplesPerPixel      int     // Camera rays per pixel
	MaxDepth             int     // Maximum ray bounce depth
	NumAOSamples         int     // Hemisphere probes per ambient request
	MaxAODistance        float64 // Occlusion distance for ambient probes
	NumWorkers           int     // Parallel workers (0 = CPU count)
	Seed                 int64   // Base seed for per-tile random generators
}

// DefaultConfig returns the standard rendering parameters
func DefaultConfig() Config {
	return Config{
		Width:                640,
		Height:               360,
		TileWidth:            16,
		TileHeight:           16,
		EnableAO:             true,
		EnableDirectLighting: true,
		RRProb:               0.8,
		MaxRayPool:           8000000,
		MaxAmbientRequests:   1000000,
		SamplesPerPixel:      256,
		MaxDepth:             8,
		NumAOSamples:         32,
		MaxAODistance:        2.0,
		NumWorkers:           0,
		Seed:                 42,
	}
}

// Validate checks the configuration for usable values
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		return fmt.Errorf("tile dimensions must be positive, got %dx%d", c.TileWidth, c.TileHeight)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	if c.RRProb <= 0 || c.RRProb > 1 {
		return fmt.Errorf("russian roulette probability must be in (0, 1], got %g", c.RRProb)
	}
	if c.MaxRayPool <= 0 || c.MaxAmbientRequests <= 0 {
		return fmt.Errorf("pool capacities must be positive")
	}
	return nil
}

// TileUpdate reports a completed tile to progress callbacks
type TileUpdate struct {
	TileID     int             // Tile identifier
	Bounds     image.Rectangle // Pixel bounds of the tile
	Image      *image.RGBA     // Finished pixels for just this tile
	Stats      TileStats       // Per-tile statistics
	TileNumber int             // Completed tiles so far (1-based)
	TotalTiles int             // Total number of tiles
}

// Renderer renders a scene with the wavefront pipeline
type Renderer struct {
	scene  *scene.Scene
	config Config
	logger core.Logger
}

// NewRenderer creates a renderer for the given scene. A nil logger falls
// back to stdout.
func NewRenderer(sc *scene.Scene, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{scene: sc, config: config, logger: logger}
}

// Render renders the full image
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	return r.RenderWithProgress(ctx, nil)
}

// RenderWithProgress renders the full image, invoking the callback as each
// tile completes. Callbacks are dispatched from a single goroutine.
func (r *Renderer) RenderWithProgress(ctx context.Context, callback func(TileUpdate)) (*image.RGBA, RenderStats, error) {
	if err := r.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	camera := NewCamera(r.scene.Camera, r.config.Width, r.config.Height)
	framebuffer := make([]core.Vec3, r.config.Width*r.config.Height)
	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileWidth, r.config.TileHeight, r.config.Seed)

	pool := NewWorkerPool(r.scene, r.config, camera, framebuffer, len(tiles), r.config.NumWorkers)
	pool.Start(ctx)
	defer pool.Stop()

	r.logger.Printf("Rendering %dx%d with %d tiles on %d workers...\n",
		r.config.Width, r.config.Height, len(tiles), pool.NumWorkers())

	startTime := time.Now()
	for _, tile := range tiles {
		pool.Submit(tile)
	}

	stats := RenderStats{Width: r.config.Width, Height: r.config.Height}
	for completed := 0; completed < len(tiles); completed++ {
		select {
		case <-ctx.Done():
			return nil, stats, ctx.Err()
		case tileStats := <-pool.Results():
			stats.accumulate(tileStats)

			if tileStats.RayOverflow {
				r.logger.Printf("Warning: ray pool capacity reached in tile %d\n", tileStats.TileID)
			}
			if tileStats.AmbientOverflow {
				r.logger.Printf("Warning: ambient request pool capacity reached in tile %d\n", tileStats.TileID)
			}

			if callback != nil {
				callback(TileUpdate{
					TileID:     tileStats.TileID,
					Bounds:     tileStats.Bounds,
					Image:      r.extractTileImage(framebuffer, tileStats.Bounds),
					Stats:      tileStats,
					TileNumber: completed + 1,
					TotalTiles: len(tiles),
				})
			}
		}
	}
	stats.Elapsed = time.Since(startTime)

	r.logger.Printf("Render completed in %v with %d rays\n", stats.Elapsed, stats.TotalRays)

	return r.assembleImage(framebuffer), stats, nil
}

// assembleImage converts the accumulated framebuffer to an 8-bit image
func (r *Renderer) assembleImage(framebuffer []core.Vec3) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))
	for y := 0; y < r.config.Height; y++ {
		for x := 0; x < r.config.Width; x++ {
			img.SetRGBA(x, y, r.pixelColor(framebuffer[y*r.config.Width+x]))
		}
	}
	return img
}

// extractTileImage converts one completed tile's pixels to an image
func (r *Renderer) extractTileImage(framebuffer []core.Vec3, bounds image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, r.pixelColor(framebuffer[y*r.config.Width+x]))
		}
	}
	return img
}

// pixelColor averages, gamma-corrects and clamps one framebuffer value
func (r *Renderer) pixelColor(accum core.Vec3) color.RGBA {
	colorVec := accum.Multiply(1.0 / float64(r.config.SamplesPerPixel))
	colorVec = colorVec.GammaCorrect(outputGamma).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
