// Package server exposes the wavefront renderer over HTTP: a server-sent
// events endpoint streaming finished tiles, a websocket variant for live
// viewers, and small JSON endpoints for health and scene discovery.
package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fluidgravity/raychi/pkg/renderer"
	"github.com/fluidgravity/raychi/pkg/scene"
)

// Server handles web requests for the wavefront renderer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene         string  `json:"scene"`         // Built-in scene name (e.g. "default")
	Width         int     `json:"width"`         // Image width
	Height        int     `json:"height"`        // Image height
	Samples       int     `json:"samples"`       // Samples per pixel
	MaxDepth      int     `json:"maxDepth"`      // Maximum ray bounce depth
	TileSize      int     `json:"tileSize"`      // Square tile edge in pixels
	RRProb        float64 `json:"rrProb"`        // Russian roulette survival probability
	AOSamples     int     `json:"aoSamples"`     // Hemisphere probes per ambient request
	AODistance    float64 `json:"aoDistance"`    // Ambient occlusion distance
	DisableAO     bool    `json:"disableAO"`     // Skip the ambient occlusion pass
	DisableDirect bool    `json:"disableDirect"` // Skip Blinn-Phong direct lighting
}

// TileProgress represents a completed tile sent via SSE or websocket
type TileProgress struct {
	TileNumber  int    `json:"tileNumber"`
	TotalTiles  int    `json:"totalTiles"`
	TileID      int    `json:"tileId"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this tile
	Rays        int    `json:"rays"`
	Generations int    `json:"generations"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// RenderComplete carries the final frame and totals once all tiles are done
type RenderComplete struct {
	ImageData      string `json:"imageData"` // Base64 encoded PNG of the full frame
	TotalRays      int64  `json:"totalRays"`
	TotalTiles     int    `json:"totalTiles"`
	MaxGenerations int    `json:"maxGenerations"`
	RayOverflows   int    `json:"rayOverflows"`
	ElapsedMs      int64  `json:"elapsedMs"`
}

// Handler returns the routing mux for the API endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/live", s.handleLive)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scene names
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string][]string{"scenes": scene.BuiltinNames()})
}

// handleRender renders a scene and streams tile progress via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := scene.Builtin(req.Scene)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	// Use request context to detect client disconnection
	ctx := r.Context()
	startTime := time.Now()

	rend := renderer.NewRenderer(sceneObj, req.config(), &sseLogger{})
	img, stats, err := rend.RenderWithProgress(ctx, func(update renderer.TileUpdate) {
		imageData, encErr := imageToBase64PNG(update.Image)
		if encErr != nil {
			return
		}
		s.sendSSEUpdate(w, TileProgress{
			TileNumber:  update.TileNumber,
			TotalTiles:  update.TotalTiles,
			TileID:      update.TileID,
			X:           update.Bounds.Min.X,
			Y:           update.Bounds.Min.Y,
			Width:       update.Bounds.Dx(),
			Height:      update.Bounds.Dy(),
			ImageData:   imageData,
			Rays:        update.Stats.Rays,
			Generations: update.Stats.Generations,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		})
	})
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}
	s.sendSSEComplete(w, RenderComplete{
		ImageData:      imageData,
		TotalRays:      stats.TotalRays,
		TotalTiles:     stats.TotalTiles,
		MaxGenerations: stats.MaxGenerations,
		RayOverflows:   stats.RayPoolOverflows,
		ElapsedMs:      stats.Elapsed.Milliseconds(),
	})
}

// config converts the request into rendering parameters
func (req *RenderRequest) config() renderer.Config {
	cfg := renderer.DefaultConfig()
	cfg.Width = req.Width
	cfg.Height = req.Height
	cfg.SamplesPerPixel = req.Samples
	cfg.MaxDepth = req.MaxDepth
	cfg.TileWidth = req.TileSize
	cfg.TileHeight = req.TileSize
	cfg.RRProb = req.RRProb
	cfg.NumAOSamples = req.AOSamples
	cfg.MaxAODistance = req.AODistance
	cfg.EnableAO = !req.DisableAO
	cfg.EnableDirectLighting = !req.DisableDirect
	return cfg
}

// parseRenderRequest parses and validates query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{}

	if sceneName := values.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 640, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 360, 16, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 64, 1, 4096); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 8, 1, 100); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(values, "tileSize", 16, 4, 256); err != nil {
		return nil, err
	}
	if req.RRProb, err = parseFloatParam(values, "rrProb", 0.8, 0.01, 1.0); err != nil {
		return nil, err
	}
	if req.AOSamples, err = parseIntParam(values, "aoSamples", 32, 1, 256); err != nil {
		return nil, err
	}
	if req.AODistance, err = parseFloatParam(values, "aoDistance", 2.0, 0.01, 1000); err != nil {
		return nil, err
	}
	req.DisableAO = values.Get("disableAO") == "true"
	req.DisableDirect = values.Get("disableDirect") == "true"

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 256 {
		log.Printf("Render warning: large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sseLogger routes renderer log lines to the server log instead of stdout
type sseLogger struct{}

func (sl *sseLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// sendSSEUpdate sends a tile progress update via SSE
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update TileProgress) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "progress", string(data))
}

// sendSSEComplete sends the final frame via SSE
func (s *Server) sendSSEComplete(w http.ResponseWriter, complete RenderComplete) error {
	data, err := json.Marshal(complete)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "complete", string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
