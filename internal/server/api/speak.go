package api

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/tts"
)

// SpeakHandler converts resolved text to speech via the configured
// synthesis backend.
type SpeakHandler struct {
	tts    *tts.Client
	logger *zap.SugaredLogger
}

func NewSpeakHandler(client *tts.Client, logger *zap.SugaredLogger) *SpeakHandler {
	return &SpeakHandler{tts: client, logger: logger}
}

// Get handles GET /api/speak?text=...&lang=... and streams back MP3
// audio. Unsupported languages are reported, not failed, so the client
// can fall back to showing text only.
func (h *SpeakHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}
	if !h.tts.Supported(lang) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "unsupported", "language": lang})
		return
	}

	audio, err := h.tts.Synthesize(r.Context(), text, lang)
	if err != nil {
		h.logger.Errorw("synthesize speech", "error", err)
		writeError(w, http.StatusBadGateway, "speech synthesis failed")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}
