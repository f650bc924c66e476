package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTTSEndpoint = "https://texttospeech.googleapis.com/v1beta1/text:synthesize"

// SpeechService renders assistant replies as spoken audio through the
// Google text-to-speech API. Entirely decoupled from conversation state:
// callers hand it finalized text and a voice name.
type SpeechService struct {
	httpClient   *http.Client
	apiKey       string
	defaultVoice string
	endpoint     string
}

func NewSpeechService(apiKey, defaultVoice string) *SpeechService {
	return &SpeechService{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		apiKey:       apiKey,
		defaultVoice: defaultVoice,
		endpoint:     defaultTTSEndpoint,
	}
}

// Enabled reports whether speech synthesis is configured.
func (s *SpeechService) Enabled() bool {
	return s.apiKey != ""
}

type ttsRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
		SSMLGender   string `json:"ssmlGender"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type ttsResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize renders text as MP3 bytes. An empty voiceName uses the
// configured default voice.
func (s *SpeechService) Synthesize(ctx context.Context, text, voiceName string) ([]byte, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("speech synthesis is not configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Message: "Text is required"}
	}
	if voiceName == "" {
		voiceName = s.defaultVoice
	}

	var reqBody ttsRequest
	reqBody.Input.Text = text
	reqBody.Voice.LanguageCode = voiceLanguage(voiceName)
	reqBody.Voice.Name = voiceName
	reqBody.Voice.SSMLGender = "MALE"
	reqBody.AudioConfig.AudioEncoding = "MP3"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?key=%s", s.endpoint, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: "Failed to reach the speech service", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Message: fmt.Sprintf("Speech service returned status %d", resp.StatusCode)}
	}

	var body ttsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &UpstreamError{Message: "Failed to decode speech response", Err: err}
	}
	if body.AudioContent == "" {
		return nil, &UpstreamError{Message: "Speech service returned no audio"}
	}

	audio, err := base64.StdEncoding.DecodeString(body.AudioContent)
	if err != nil {
		return nil, &UpstreamError{Message: "Speech service returned invalid audio encoding", Err: err}
	}
	return audio, nil
}

// voiceLanguage derives the language code from a voice name, e.g.
// "fr-CA-Neural2-B" yields "fr-CA".
func voiceLanguage(voiceName string) string {
	parts := strings.SplitN(voiceName, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return voiceName
}
