package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fluidgravity/raychi/pkg/renderer"
	"github.com/fluidgravity/raychi/pkg/scene"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is same-origin in production but the dev viewer runs elsewhere
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveMessage is the envelope for all websocket frames
type liveMessage struct {
	Type     string          `json:"type"` // "progress", "complete" or "error"
	Progress *TileProgress   `json:"progress,omitempty"`
	Complete *RenderComplete `json:"complete,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// handleLive streams tile updates over a websocket. Render parameters come
// from the query string, same as the SSE endpoint.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		s.sendLiveError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := scene.Builtin(req.Scene)
	if err != nil {
		s.sendLiveError(conn, err.Error())
		return
	}

	// Cancel the render as soon as the client goes away. The read loop is the
	// only reader, so a close or error there means the socket is done.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				cancel()
				return
			}
		}
	}()

	startTime := time.Now()
	rend := renderer.NewRenderer(sceneObj, req.config(), &sseLogger{})
	img, stats, err := rend.RenderWithProgress(ctx, func(update renderer.TileUpdate) {
		imageData, encErr := imageToBase64PNG(update.Image)
		if encErr != nil {
			return
		}
		conn.WriteJSON(liveMessage{
			Type: "progress",
			Progress: &TileProgress{
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
			},
		})
	})
	if err != nil {
		s.sendLiveError(conn, fmt.Sprintf("Render error: %v", err))
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		s.sendLiveError(conn, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}
	conn.WriteJSON(liveMessage{
		Type: "complete",
		Complete: &RenderComplete{
			ImageData:      imageData,
			TotalRays:      stats.TotalRays,
			TotalTiles:     stats.TotalTiles,
			MaxGenerations: stats.MaxGenerations,
			RayOverflows:   stats.RayPoolOverflows,
			ElapsedMs:      stats.Elapsed.Milliseconds(),
		},
	})

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// sendLiveError sends an error frame and closes the socket
func (s *Server) sendLiveError(conn *websocket.Conn, message string) {
	conn.WriteJSON(liveMessage{Type: "error", Error: message})
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, ""))
}
