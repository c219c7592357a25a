package renderer

import (
	"image"
	"time"
)

// TileStats contains statistics from rendering a single tile
type TileStats struct {
	TileID          int             // Tile identifier
	Bounds          image.Rectangle // Pixel bounds of the tile
	Rays            int             // Rays processed across all generations
	Generations     int             // Wavefront generations until the pool drained
	RayOverflow     bool            // Ray pool capacity was reached
	AmbientOverflow bool            // Ambient request pool capacity was reached
}

// RenderStats contains statistics about a completed render
type RenderStats struct {
	Width                int           // Image width in pixels
	Height               int           // Image height in pixels
	TotalTiles           int           // Number of tiles rendered
	TotalRays            int64         // Total rays processed
	MaxGenerations       int           // Largest generation count of any tile
	RayPoolOverflows     int           // Tiles that hit the ray pool capacity
	AmbientPoolOverflows int           // Tiles that hit the ambient pool capacity
	Elapsed              time.Duration // Wall-clock render time
}

// accumulate folds one tile's statistics into the render totals
func (rs *RenderStats) accumulate(ts TileStats) {
	rs.TotalTiles++
	rs.TotalRays += int64(ts.Rays)
	if ts.Generations > rs.MaxGenerations {
		rs.MaxGenerations = ts.Generations
	}
	if ts.RayOverflow {
		rs.RayPoolOverflows++
	}
	if ts.AmbientOverflow {
		rs.AmbientPoolOverflows++
	}
}
