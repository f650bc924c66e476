package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"assistant-backend/internal/models"
	"assistant-backend/internal/services"
)

type chatService interface {
	Ask(ctx context.Context, assistantID uuid.UUID, sessionID *uuid.UUID, message string) (*services.ChatResult, error)
	EndSession(ctx context.Context, sessionID uuid.UUID) error
}

type speechSynthesizer interface {
	Enabled() bool
	Synthesize(ctx context.Context, text, voiceName string) ([]byte, error)
}

type ChatHandler struct {
	chat   chatService
	speech speechSynthesizer
}

func NewChatHandler(chat chatService, speech speechSynthesizer) *ChatHandler {
	return &ChatHandler{chat: chat, speech: speech}
}

// Ask runs one conversation turn with an assistant.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	assistantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid assistant ID", r))
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message is required", r))
		return
	}

	var sessionID *uuid.UUID
	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
			return
		}
		sessionID = &id
	}

	result, err := h.chat.Ask(r.Context(), assistantID, sessionID, req.Message)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := models.ChatResponse{
		SessionID: result.SessionID,
		Reply:     result.Reply,
		History:   services.ToMessages(result.History),
	}

	// Speech failure never fails the turn; the text reply already stands.
	if req.Speak && h.speech.Enabled() {
		audio, err := h.speech.Synthesize(r.Context(), result.Reply, "")
		if err != nil {
			log.Printf("Speech synthesis failed for session %s: %v", result.SessionID, err)
		} else {
			resp.AudioContent = base64.StdEncoding.EncodeToString(audio)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// EndSession discards a stored conversation.
func (h *ChatHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	if err := h.chat.EndSession(r.Context(), sessionID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Session ended"})
}
