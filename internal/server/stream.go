// Package server provides the HTTP server for the Hushtone gesture-to-text service.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/keerthana/hushtone/internal/pipeline"
)

// StreamHandler serves annotated MJPEG frames from the pipeline. Frames
// are whatever the capture worker last published; a slow client only
// skips frames, it never stalls the worker.
type StreamHandler struct {
	pipeline *pipeline.Pipeline
}

// NewStreamHandler creates a new StreamHandler over the given pipeline.
func NewStreamHandler(p *pipeline.Pipeline) *StreamHandler {
	return &StreamHandler{pipeline: p}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		buf, ok := h.pipeline.LatestFrameJPEG()
		if !ok {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(buf))
		if _, err := w.Write(buf); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}
