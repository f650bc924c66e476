package models

import "github.com/google/uuid"

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint. SessionID is
// omitted on the first turn; the server creates the session and returns
// its ID.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
	Speak     bool   `json:"speak,omitempty"`
}

// ChatResponse is the reply from one conversation turn. AudioContent is
// base64-encoded MP3, present only when speech was requested and the
// speech collaborator is configured.
type ChatResponse struct {
	SessionID    uuid.UUID     `json:"session_id"`
	Reply        string        `json:"reply"`
	History      []ChatMessage `json:"history"`
	AudioContent string        `json:"audio_content,omitempty"`
}

// SpeechRequest is the payload for the standalone speech endpoint.
type SpeechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}
