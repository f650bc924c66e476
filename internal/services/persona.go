package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"assistant-backend/internal/chat"
	"assistant-backend/internal/models"
)

// PersonaService builds the static persona configuration for an assistant.
// The system description can optionally be fetched from an external URL at
// session start; a failed fetch falls back to the stored description and
// never fails session creation.
type PersonaService struct {
	httpClient     *http.Client
	descriptionURL string
}

func NewPersonaService(descriptionURL string) *PersonaService {
	return &PersonaService{
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		descriptionURL: descriptionURL,
	}
}

// FromAssistant assembles the persona for one assistant: its description
// as the system text and the stored user role / model info as the seed
// exchange, in that order.
func (s *PersonaService) FromAssistant(ctx context.Context, a *models.Assistant) chat.PersonaConfig {
	desc := a.Description
	if s.descriptionURL != "" {
		if text, err := s.fetchDescription(ctx); err != nil {
			log.Printf("Persona description fetch failed, using stored description: %v", err)
		} else {
			desc = text
		}
	}

	var seed []chat.Turn
	if a.UserRole != "" {
		seed = append(seed, chat.Turn{Role: chat.RoleUser, Text: a.UserRole})
	}
	if a.ModelInfo != "" {
		seed = append(seed, chat.Turn{Role: chat.RoleAssistant, Text: a.ModelInfo})
	}

	return chat.PersonaConfig{
		SystemDescription: desc,
		SeedExchange:      seed,
		Generation:        chat.DefaultGenerationParams(),
	}
}

func (s *PersonaService) fetchDescription(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.descriptionURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("description fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
