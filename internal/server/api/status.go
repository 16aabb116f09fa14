package api

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/gesture"
	"github.com/keerthana/hushtone/internal/meaning"
	"github.com/keerthana/hushtone/internal/pipeline"
	"github.com/keerthana/hushtone/internal/store"
)

// StatusHandler serves the polling status endpoint and the caller's
// recent event history.
type StatusHandler struct {
	pipeline *pipeline.Pipeline
	events   *store.EventRepository
	resolver *meaning.Resolver
	identity *Identity
	logger   *zap.SugaredLogger
}

func NewStatusHandler(p *pipeline.Pipeline, events *store.EventRepository, resolver *meaning.Resolver, identity *Identity, logger *zap.SugaredLogger) *StatusHandler {
	return &StatusHandler{pipeline: p, events: events, resolver: resolver, identity: identity, logger: logger}
}

type historyEntry struct {
	Gesture   string    `json:"gesture"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type statusResponse struct {
	Running     bool           `json:"running"`
	Gesture     string         `json:"gesture"`
	Text        string         `json:"text"`
	Image       string         `json:"image,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	History     []historyEntry `json:"history"`
}

// Get handles GET /api/status. The latest gesture is resolved against
// the caller's own subject and the requested locale, so the same wall
// state can read differently per caller.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sub := h.identity.Subject(r)
	locale := r.URL.Query().Get("lang")
	st := h.pipeline.Status()

	resp := statusResponse{
		Running: st.Running,
		Gesture: st.Gesture,
		History: []historyEntry{},
	}
	if st.Gesture != "" {
		resp.Text = h.resolver.Resolve(st.Gesture, sub, locale)
		if st.ImageRef != "" {
			resp.Image = "/static/" + st.ImageRef
		}
		resp.Suggestions = gesture.Suggestions(st.Gesture)
	}

	if !sub.IsZero() {
		events, err := h.events.Recent(sub, 10)
		if err != nil {
			h.logger.Warnw("load history", "error", err)
		} else {
			for _, e := range events {
				resp.History = append(resp.History, historyEntry{
					Gesture:   e.Gesture,
					Text:      e.ActionText,
					Timestamp: e.CreatedAt,
				})
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /api/history with an optional limit parameter.
func (h *StatusHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sub := h.identity.Subject(r)
	if sub.IsZero() {
		writeError(w, http.StatusUnauthorized, "sign in or provide a guest id")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := h.events.Recent(sub, limit)
	if err != nil {
		h.logger.Errorw("load history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	entries := make([]historyEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, historyEntry{
			Gesture:   e.Gesture,
			Text:      e.ActionText,
			Timestamp: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}
