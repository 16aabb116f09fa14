// Package server provides the HTTP server for the Hushtone gesture-to-text service.
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/meaning"
	"github.com/keerthana/hushtone/internal/pipeline"
	"github.com/keerthana/hushtone/internal/server/api"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// LiveHandler pushes recognition state to WebSocket clients. Each client
// gets the state resolved for its own subject and locale, so connections
// are served individually instead of through a shared broadcast.
type LiveHandler struct {
	pipeline *pipeline.Pipeline
	resolver *meaning.Resolver
	identity *api.Identity
	logger   *zap.SugaredLogger
}

// NewLiveHandler creates a LiveHandler over the given pipeline.
func NewLiveHandler(p *pipeline.Pipeline, resolver *meaning.Resolver, identity *api.Identity, logger *zap.SugaredLogger) *LiveHandler {
	return &LiveHandler{pipeline: p, resolver: resolver, identity: identity, logger: logger}
}

type liveMessage struct {
	Running   bool   `json:"running"`
	Gesture   string `json:"gesture"`
	Text      string `json:"text"`
	Image     string `json:"image,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub := h.identity.Subject(r)
	locale := r.URL.Query().Get("lang")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	var last liveMessage
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		st := h.pipeline.Status()
		msg := liveMessage{
			Running: st.Running,
			Gesture: st.Gesture,
		}
		if st.Gesture != "" {
			msg.Text = h.resolver.Resolve(st.Gesture, sub, locale)
			if st.ImageRef != "" {
				msg.Image = "/static/" + st.ImageRef
			}
		}
		if msg.Running == last.Running && msg.Gesture == last.Gesture && msg.Text == last.Text {
			continue
		}
		msg.Timestamp = time.Now().UnixMilli()

		if err := conn.WriteJSON(msg); err != nil {
			return
		}
		last = msg
	}
}
