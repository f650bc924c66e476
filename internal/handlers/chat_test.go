package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"assistant-backend/internal/chat"
	"assistant-backend/internal/models"
	"assistant-backend/internal/services"
)

type fakeChatService struct {
	result *services.ChatResult
	err    error

	gotAssistantID uuid.UUID
	gotSessionID   *uuid.UUID
	gotMessage     string
	endedSession   *uuid.UUID
}

func (f *fakeChatService) Ask(ctx context.Context, assistantID uuid.UUID, sessionID *uuid.UUID, message string) (*services.ChatResult, error) {
	f.gotAssistantID = assistantID
	f.gotSessionID = sessionID
	f.gotMessage = message
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeChatService) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	f.endedSession = &sessionID
	return nil
}

type fakeSpeech struct {
	enabled bool
	audio   []byte
	err     error
	gotText string
}

func (f *fakeSpeech) Enabled() bool { return f.enabled }

func (f *fakeSpeech) Synthesize(ctx context.Context, text, voiceName string) ([]byte, error) {
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func chatRouter(svc chatService, speech speechSynthesizer) http.Handler {
	h := NewChatHandler(svc, speech)
	r := chi.NewRouter()
	r.Post("/assistants/{id}/chat", h.Ask)
	r.Delete("/sessions/{sessionID}", h.EndSession)
	return r
}

func TestAsk_ReturnsReplyAndHistory(t *testing.T) {
	sessionID := uuid.New()
	svc := &fakeChatService{
		result: &services.ChatResult{
			SessionID: sessionID,
			Reply:     "Bonjour",
			History: []chat.Turn{
				{Role: chat.RoleUser, Text: "Hi"},
				{Role: chat.RoleAssistant, Text: "Bonjour"},
			},
		},
	}
	router := chatRouter(svc, &fakeSpeech{})

	assistantID := uuid.New()
	body := `{"message":"Hi"}`
	req := httptest.NewRequest(http.MethodPost, "/assistants/"+assistantID.String()+"/chat", bytes.NewReader([]byte(body)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if svc.gotAssistantID != assistantID {
		t.Errorf("Expected assistant %s, got %s", assistantID, svc.gotAssistantID)
	}
	if svc.gotSessionID != nil {
		t.Error("Expected nil session ID for a first turn")
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Reply != "Bonjour" {
		t.Errorf("Expected reply 'Bonjour', got %q", resp.Reply)
	}
	if resp.SessionID != sessionID {
		t.Errorf("Expected session %s, got %s", sessionID, resp.SessionID)
	}
	if len(resp.History) != 2 || resp.History[0].Role != "user" {
		t.Errorf("Unexpected history: %+v", resp.History)
	}
	if resp.AudioContent != "" {
		t.Error("Expected no audio when speak not requested")
	}
}

func TestAsk_ForwardsSessionID(t *testing.T) {
	sessionID := uuid.New()
	svc := &fakeChatService{
		result: &services.ChatResult{SessionID: sessionID, Reply: "ok"},
	}
	router := chatRouter(svc, &fakeSpeech{})

	body, _ := json.Marshal(models.ChatRequest{SessionID: sessionID.String(), Message: "suite"})
	req := httptest.NewRequest(http.MethodPost, "/assistants/"+uuid.NewString()+"/chat", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if svc.gotSessionID == nil || *svc.gotSessionID != sessionID {
		t.Errorf("Expected session %s forwarded, got %v", sessionID, svc.gotSessionID)
	}
}

func TestAsk_Validation(t *testing.T) {
	router := chatRouter(&fakeChatService{}, &fakeSpeech{})

	tests := []struct {
		name string
		url  string
		body string
	}{
		{"empty message", "/assistants/" + uuid.NewString() + "/chat", `{"message":"  "}`},
		{"bad assistant id", "/assistants/nope/chat", `{"message":"hi"}`},
		{"bad session id", "/assistants/" + uuid.NewString() + "/chat", `{"message":"hi","session_id":"nope"}`},
		{"invalid body", "/assistants/" + uuid.NewString() + "/chat", `{`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.url, bytes.NewReader([]byte(tc.body)))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestAsk_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", &services.NotFoundError{Message: "Assistant not found"}, http.StatusNotFound},
		{"busy", &services.BusyError{Message: "busy"}, http.StatusConflict},
		{"upstream", &services.UpstreamError{Message: "AI down"}, http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := chatRouter(&fakeChatService{err: tc.err}, &fakeSpeech{})

			req := httptest.NewRequest(http.MethodPost, "/assistants/"+uuid.NewString()+"/chat", bytes.NewReader([]byte(`{"message":"hi"}`)))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, rr.Code)
			}

			var errResp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("Failed to decode error envelope: %v", err)
			}
			if errResp.Error.Code == "" {
				t.Error("Expected an error code in the envelope")
			}
		})
	}
}

func TestAsk_WithSpeech(t *testing.T) {
	svc := &fakeChatService{
		result: &services.ChatResult{SessionID: uuid.New(), Reply: "Bonjour"},
	}
	speech := &fakeSpeech{enabled: true, audio: []byte("mp3")}
	router := chatRouter(svc, speech)

	req := httptest.NewRequest(http.MethodPost, "/assistants/"+uuid.NewString()+"/chat", bytes.NewReader([]byte(`{"message":"hi","speak":true}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if speech.gotText != "Bonjour" {
		t.Errorf("Expected the reply synthesized, got %q", speech.gotText)
	}

	var resp models.ChatResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	expected := base64.StdEncoding.EncodeToString([]byte("mp3"))
	if resp.AudioContent != expected {
		t.Errorf("Expected audio %q, got %q", expected, resp.AudioContent)
	}
}

func TestEndSession(t *testing.T) {
	svc := &fakeChatService{}
	router := chatRouter(svc, &fakeSpeech{})

	sessionID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/sessions/"+sessionID.String(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if svc.endedSession == nil || *svc.endedSession != sessionID {
		t.Errorf("Expected session %s ended, got %v", sessionID, svc.endedSession)
	}
}
