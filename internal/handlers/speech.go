package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"assistant-backend/internal/models"
)

type SpeechHandler struct {
	speech speechSynthesizer
}

func NewSpeechHandler(speech speechSynthesizer) *SpeechHandler {
	return &SpeechHandler{speech: speech}
}

// Synthesize renders arbitrary text as MP3 audio.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if !h.speech.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("NOT_CONFIGURED", "Speech synthesis is not configured", r))
		return
	}

	var req models.SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Text is required", r))
		return
	}

	audio, err := h.speech.Synthesize(r.Context(), req.Text, req.Voice)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}
