package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVoiceLanguage(t *testing.T) {
	tests := []struct {
		voice    string
		expected string
	}{
		{"fr-CA-Neural2-B", "fr-CA"},
		{"en-US-Wavenet-D", "en-US"},
		{"fr-CA", "fr-CA"},
		{"weird", "weird"},
	}

	for _, tc := range tests {
		if got := voiceLanguage(tc.voice); got != tc.expected {
			t.Errorf("voiceLanguage(%q): expected %q, got %q", tc.voice, tc.expected, got)
		}
	}
}

func TestSynthesize_NotConfigured(t *testing.T) {
	svc := NewSpeechService("", "fr-CA-Neural2-B")

	if svc.Enabled() {
		t.Error("Expected Enabled()=false without an API key")
	}
	if _, err := svc.Synthesize(context.Background(), "Bonjour", ""); err == nil {
		t.Error("Expected an error when not configured")
	}
}

func TestSynthesize_Success(t *testing.T) {
	audio := []byte("mp3-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ttsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode TTS request: %v", err)
		}
		if req.Input.Text != "Bonjour le monde" {
			t.Errorf("Expected input text forwarded, got %q", req.Input.Text)
		}
		if req.Voice.Name != "fr-CA-Neural2-B" {
			t.Errorf("Expected default voice, got %q", req.Voice.Name)
		}
		if req.Voice.LanguageCode != "fr-CA" {
			t.Errorf("Expected derived language code fr-CA, got %q", req.Voice.LanguageCode)
		}
		if req.AudioConfig.AudioEncoding != "MP3" {
			t.Errorf("Expected MP3 encoding, got %q", req.AudioConfig.AudioEncoding)
		}

		json.NewEncoder(w).Encode(ttsResponse{
			AudioContent: base64.StdEncoding.EncodeToString(audio),
		})
	}))
	defer server.Close()

	svc := NewSpeechService("test-key", "fr-CA-Neural2-B")
	svc.endpoint = server.URL

	got, err := svc.Synthesize(context.Background(), "Bonjour le monde", "")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(got) != string(audio) {
		t.Errorf("Expected decoded audio %q, got %q", audio, got)
	}
}

func TestSynthesize_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	svc := NewSpeechService("bad-key", "fr-CA-Neural2-B")
	svc.endpoint = server.URL

	_, err := svc.Synthesize(context.Background(), "Bonjour", "")

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Errorf("Expected UpstreamError, got %v", err)
	}
}

func TestSynthesize_EmptyText(t *testing.T) {
	svc := NewSpeechService("test-key", "fr-CA-Neural2-B")

	_, err := svc.Synthesize(context.Background(), "   ", "")

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for blank text, got %v", err)
	}
}
