package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/auth"
	"github.com/keerthana/hushtone/internal/pipeline"
)

// CaptureHandler starts and stops the recognition pipeline.
type CaptureHandler struct {
	pipeline *pipeline.Pipeline
	identity *Identity
	logger   *zap.SugaredLogger
}

func NewCaptureHandler(p *pipeline.Pipeline, identity *Identity, logger *zap.SugaredLogger) *CaptureHandler {
	return &CaptureHandler{pipeline: p, identity: identity, logger: logger}
}

type captureResponse struct {
	Running bool   `json:"running"`
	GuestID string `json:"guest_id,omitempty"`
}

// Start handles POST /api/capture/start. Callers without a user token
// are given a fresh guest id unless they already present one.
func (h *CaptureHandler) Start(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sub := h.identity.Subject(r)
	if sub.IsZero() {
		sub = auth.NewGuest()
	}

	if err := h.pipeline.Start(sub); err != nil {
		h.logger.Errorw("start capture", "error", err)
		writeError(w, http.StatusServiceUnavailable, "camera unavailable")
		return
	}

	// Report the subject actually owning the session; a start against an
	// already-running pipeline keeps the original subject.
	resp := captureResponse{Running: true}
	if owner := h.pipeline.Status().Subject; owner.IsGuest() {
		resp.GuestID = owner.GuestID
	}
	writeJSON(w, http.StatusOK, resp)
}

// Stop handles POST /api/capture/stop.
func (h *CaptureHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.pipeline.Stop()
	writeJSON(w, http.StatusOK, captureResponse{Running: false})
}
