package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/store"
)

// AdminHandler serves the moderation surface under /api/admin/. Every
// route requires an admin token.
type AdminHandler struct {
	users    *store.UserRepository
	events   *store.EventRepository
	meanings *store.MeaningRepository
	identity *Identity
	logger   *zap.SugaredLogger
}

func NewAdminHandler(users *store.UserRepository, events *store.EventRepository, meanings *store.MeaningRepository, identity *Identity, logger *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{users: users, events: events, meanings: meanings, identity: identity, logger: logger}
}

// ServeHTTP dispatches on the path below /api/admin/.
func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := h.identity.Admin(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "admin access required")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/admin/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch parts[0] {
	case "users":
		h.routeUsers(w, r, parts)
	case "history":
		h.routeHistory(w, r, parts)
	case "meanings":
		h.routeMeanings(w, r, parts, claims.Username)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *AdminHandler) routeUsers(w http.ResponseWriter, r *http.Request, parts []string) {
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.listUsers(w)
	case len(parts) == 2 && r.Method == http.MethodDelete:
		h.deleteUser(w, parts[1])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *AdminHandler) routeHistory(w http.ResponseWriter, r *http.Request, parts []string) {
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.listHistory(w, r)
	case len(parts) == 2 && parts[1] == "clear" && r.Method == http.MethodPost:
		h.clearHistory(w)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *AdminHandler) routeMeanings(w http.ResponseWriter, r *http.Request, parts []string, reviewer string) {
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.listMeanings(w, r)
	case len(parts) == 3 && r.Method == http.MethodPost:
		h.reviewMeaning(w, parts[1], parts[2], reviewer)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

type adminUserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Age       int       `json:"age,omitempty"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *AdminHandler) listUsers(w http.ResponseWriter) {
	users, err := h.users.List()
	if err != nil {
		h.logger.Errorw("list users", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	resp := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, adminUserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Name:      u.Name,
			Age:       u.Age,
			City:      u.City,
			CreatedAt: u.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": resp})
}

func (h *AdminHandler) deleteUser(w http.ResponseWriter, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.users.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Errorw("delete user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type adminEventResponse struct {
	ID        int64     `json:"id"`
	Gesture   string    `json:"gesture"`
	Text      string    `json:"text"`
	Username  string    `json:"username,omitempty"`
	GuestID   string    `json:"guest_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *AdminHandler) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := h.events.ListAll(limit)
	if err != nil {
		h.logger.Errorw("list history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	resp := make([]adminEventResponse, 0, len(events))
	for _, e := range events {
		entry := adminEventResponse{
			ID:        e.ID,
			Gesture:   e.Gesture,
			Text:      e.ActionText,
			Username:  e.Username,
			Timestamp: e.CreatedAt,
		}
		if e.Subject.IsGuest() {
			entry.GuestID = e.Subject.GuestID
		}
		resp = append(resp, entry)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": resp})
}

func (h *AdminHandler) clearHistory(w http.ResponseWriter) {
	if err := h.events.ClearAll(); err != nil {
		h.logger.Errorw("clear history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *AdminHandler) listMeanings(w http.ResponseWriter, r *http.Request) {
	var status store.MeaningStatus
	switch raw := r.URL.Query().Get("status"); raw {
	case "", "pending":
		status = store.MeaningPending
	case "all":
		// empty status lists every submission
	default:
		status = store.MeaningStatus(raw)
	}

	meanings, err := h.meanings.List(status)
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

func (h *AdminHandler) reviewMeaning(w http.ResponseWriter, rawID, action, reviewer string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid meaning id")
		return
	}

	var status store.MeaningStatus
	switch action {
	case "approve":
		status = store.MeaningApproved
	case "reject":
		status = store.MeaningRejected
	default:
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.meanings.Review(id, status, reviewer); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "meaning not found")
			return
		}
		h.logger.Errorw("review meaning", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to review meaning")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}
