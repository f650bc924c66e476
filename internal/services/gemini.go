package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"assistant-backend/internal/chat"
)

// GeminiService is the transport collaborator for chat sessions: it maps
// an assembled request payload onto the generative-language API and the
// reply back into the core's response shape.
type GeminiService struct {
	client    *genai.Client
	modelName string
	rateChan  chan struct{} // Token bucket
}

func NewGeminiService(apiKey, modelName string, concurrentReqs int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:    client,
		modelName: modelName,
		rateChan:  rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Generate implements chat.Transport. The final payload block is sent as
// the message; all earlier blocks become the chat history, role order
// preserved. Generation parameters are applied as the model's
// generationConfig; safety thresholds are relaxed the way the assistant
// widgets configure them.
func (s *GeminiService) Generate(ctx context.Context, payload chat.RequestPayload) (chat.ResponsePayload, error) {
	if len(payload.Blocks) == 0 {
		return chat.ResponsePayload{}, fmt.Errorf("empty request payload")
	}

	if err := s.acquireRate(ctx); err != nil {
		return chat.ResponsePayload{}, err
	}
	defer s.releaseRate()

	model := s.client.GenerativeModel(s.modelName)
	applyGeneration(model, payload.Generation)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}

	n := len(payload.Blocks)
	cs := model.StartChat()
	cs.History = make([]*genai.Content, 0, n-1)
	for _, block := range payload.Blocks[:n-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  wireRole(block.Role),
			Parts: []genai.Part{genai.Text(block.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(payload.Blocks[n-1].Text))
	if err != nil {
		return chat.ResponsePayload{}, fmt.Errorf("Gemini API error: %w", err)
	}

	return toResponsePayload(resp), nil
}

func applyGeneration(model *genai.GenerativeModel, g chat.GenerationParams) {
	model.SetTemperature(g.Temperature)
	model.SetTopP(g.TopP)
	model.SetTopK(g.TopK)
	if g.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(g.MaxOutputTokens)
	}
	if g.ResponseFormat != "" {
		model.ResponseMIMEType = g.ResponseFormat
	}
}

// wireRole translates core roles to the API's role names; the service
// calls the second party "model", not "assistant".
func wireRole(r chat.Role) string {
	if r == chat.RoleAssistant {
		return "model"
	}
	return "user"
}

func toResponsePayload(resp *genai.GenerateContentResponse) chat.ResponsePayload {
	out := chat.ResponsePayload{}
	for _, cand := range resp.Candidates {
		c := chat.Candidate{}
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					c.Fragments = append(c.Fragments, string(t))
				}
			}
		}
		out.Candidates = append(out.Candidates, c)
	}
	return out
}
