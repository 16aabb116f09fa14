package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/gesture"
	"github.com/keerthana/hushtone/internal/store"
)

// MeaningsHandler lets signed-in users submit custom meanings and list
// their own submissions.
type MeaningsHandler struct {
	meanings *store.MeaningRepository
	identity *Identity
	logger   *zap.SugaredLogger
}

func NewMeaningsHandler(meanings *store.MeaningRepository, identity *Identity, logger *zap.SugaredLogger) *MeaningsHandler {
	return &MeaningsHandler{meanings: meanings, identity: identity, logger: logger}
}

type meaningResponse struct {
	ID        int64     `json:"id"`
	Gesture   string    `json:"gesture"`
	Meaning   string    `json:"meaning"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func meaningFromStore(m *store.Meaning) meaningResponse {
	return meaningResponse{
		ID:        m.ID,
		Gesture:   m.Gesture,
		Meaning:   m.Text,
		Language:  m.Language,
		Status:    string(m.Status),
		Username:  m.Username,
		CreatedAt: m.CreatedAt,
	}
}

// ServeHTTP routes GET and POST /api/meanings.
func (h *MeaningsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := h.identity.User(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, claims.UserID)
	case http.MethodPost:
		h.submit(w, r, claims.UserID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *MeaningsHandler) list(w http.ResponseWriter, userID int64) {
	meanings, err := h.meanings.ListByUser(userID)
	if err != nil {
		h.logger.Errorw("list meanings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load meanings")
		return
	}

	resp := make([]meaningResponse, 0, len(meanings))
	for _, m := range meanings {
		resp = append(resp, meaningFromStore(m))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"meanings": resp})
}

type submitMeaningRequest struct {
	Gesture  string `json:"gesture"`
	Meaning  string `json:"meaning"`
	Language string `json:"language"`
}

func (h *MeaningsHandler) submit(w http.ResponseWriter, r *http.Request, userID int64) {
	var req submitMeaningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Gesture = strings.TrimSpace(req.Gesture)
	req.Meaning = strings.TrimSpace(req.Meaning)
	if req.Gesture == "" || req.Meaning == "" {
		writeError(w, http.StatusBadRequest, "gesture and meaning are required")
		return
	}
	if !gesture.Known(req.Gesture) {
		writeError(w, http.StatusBadRequest, "unknown gesture")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	m := &store.Meaning{
		Gesture:  req.Gesture,
		Text:     req.Meaning,
		Language: req.Language,
		UserID:   userID,
	}
	if err := h.meanings.Create(m); err != nil {
		h.logger.Errorw("create meaning", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit meaning")
		return
	}

	writeJSON(w, http.StatusCreated, meaningFromStore(m))
}
