package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"assistant-backend/internal/chat"
	"assistant-backend/internal/models"
	"assistant-backend/internal/repository"
)

type assistantGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Assistant, error)
}

// ChatService runs one conversation turn per request: it restores the
// session history from the store, drives a chat session against the
// transport, and persists the grown history back. Sessions are
// single-flight across requests: a second Ask for a session ID whose
// call is still running is rejected, so two turns can never race on the
// same stored history.
type ChatService struct {
	assistants assistantGetter
	personas   *PersonaService
	transport  chat.Transport
	store      SessionStore

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewChatService(assistants assistantGetter, personas *PersonaService, transport chat.Transport, store SessionStore) *ChatService {
	return &ChatService{
		assistants: assistants,
		personas:   personas,
		transport:  transport,
		store:      store,
		inFlight:   make(map[uuid.UUID]struct{}),
	}
}

// ChatResult is one completed (or failed-but-recorded) turn.
type ChatResult struct {
	SessionID uuid.UUID
	Reply     string
	History   []chat.Turn
}

// Ask runs one turn for an assistant. A nil sessionID starts a new
// session. The user turn is persisted even when the model call fails, so
// the stored history always reflects what was asked.
func (s *ChatService) Ask(ctx context.Context, assistantID uuid.UUID, sessionID *uuid.UUID, message string) (*ChatResult, error) {
	assistant, err := s.assistants.GetByID(ctx, assistantID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: "Assistant not found"}
	}
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	if sessionID != nil {
		id = *sessionID
	}

	// Claimed before the store is read so overlapping requests cannot
	// both load the same prior history and overwrite each other's turns.
	if !s.beginTurn(id) {
		return nil, &BusyError{Message: "A reply is already being generated for this session"}
	}
	defer s.endTurn(id)

	var prior []chat.Turn
	if sessionID != nil {
		turns, ok, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &NotFoundError{Message: "Session not found or expired"}
		}
		prior = turns
	}

	persona := s.personas.FromAssistant(ctx, assistant)
	builder := chat.RequestBuilder{Escaper: chat.Escaper{Newlines: chat.NewlineEscape}}
	session := chat.ResumeSession(persona, s.transport, builder, prior)

	reply, submitErr := session.Submit(ctx, message)

	// Persist whatever the session recorded, failed call included: the
	// question was asked. A failed first turn is the exception: the
	// caller never learns the fresh session ID on the error path, so the
	// entry would be unreachable.
	if len(session.History()) > len(prior) && (submitErr == nil || sessionID != nil) {
		if err := s.store.Set(ctx, id, session.History()); err != nil {
			log.Printf("Failed to persist session %s: %v", id, err)
		}
	}

	if submitErr != nil {
		return nil, translateSubmitError(submitErr)
	}

	return &ChatResult{
		SessionID: id,
		Reply:     reply.Text,
		History:   session.History(),
	}, nil
}

// beginTurn claims the in-flight slot for a session ID. It reports false
// when another call already holds it.
func (s *ChatService) beginTurn(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *ChatService) endTurn(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// EndSession discards a stored session.
func (s *ChatService) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	return s.store.Delete(ctx, sessionID)
}

func translateSubmitError(err error) error {
	var te *chat.TransportError
	switch {
	case errors.Is(err, chat.ErrInvalidInput):
		return &ValidationError{Message: "Message is required"}
	case errors.Is(err, chat.ErrSessionBusy):
		return &BusyError{Message: "A reply is already being generated for this session"}
	case errors.Is(err, chat.ErrMalformedResponse):
		return &UpstreamError{Message: "The AI service returned an unusable response", Err: err}
	case errors.As(err, &te):
		return &UpstreamError{Message: "Failed to reach the AI service", Err: err}
	default:
		return err
	}
}

// ToMessages converts core turns to the API message shape.
func ToMessages(turns []chat.Turn) []models.ChatMessage {
	out := make([]models.ChatMessage, len(turns))
	for i, t := range turns {
		out[i] = models.ChatMessage{Role: string(t.Role), Content: t.Text}
	}
	return out
}
