package api

import (
	"net/http"

	"github.com/keerthana/hushtone/internal/gesture"
)

// GesturesHandler serves the static catalog of recognizable gestures.
type GesturesHandler struct{}

type gestureInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Image string `json:"image,omitempty"`
}

// List handles GET /api/gestures.
func (h *GesturesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ids := gesture.Catalog()
	infos := make([]gestureInfo, 0, len(ids))
	for _, id := range ids {
		info := gestureInfo{ID: id, Label: gesture.DefaultLabel(id)}
		if ref := gesture.ImageRef(id); ref != "" {
			info.Image = "/static/" + ref
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"gestures": infos})
}
