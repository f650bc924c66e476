package chat

import (
	"context"
	"strings"
	"sync"
)

// Transport performs the external model call for one assembled payload.
// Implementations own timeouts and any retry policy; the session observes
// every transport failure uniformly, whatever its cause.
type Transport interface {
	Generate(ctx context.Context, payload RequestPayload) (ResponsePayload, error)
}

// Session drives one conversation against a single History and a single
// PersonaConfig for its whole lifetime. Sessions are single-flight: at
// most one call may be in flight at a time, and a Submit that overlaps
// another returns ErrSessionBusy instead of queueing. Independent sessions
// share no state and may run concurrently.
type Session struct {
	persona   PersonaConfig
	builder   RequestBuilder
	transport Transport

	mu      sync.Mutex
	busy    bool
	history *History
}

// NewSession starts a conversation with an empty history.
func NewSession(persona PersonaConfig, transport Transport, builder RequestBuilder) *Session {
	return &Session{
		persona:   persona,
		builder:   builder,
		transport: transport,
		history:   NewHistory(),
	}
}

// ResumeSession recreates a session around previously recorded turns, in
// the order given.
func ResumeSession(persona PersonaConfig, transport Transport, builder RequestBuilder, turns []Turn) *Session {
	s := NewSession(persona, transport, builder)
	s.history = NewHistory(turns...)
	return s
}

// Submit runs one turn-taking cycle: the user turn is appended to history
// before the external call is issued, so history always reflects what was
// asked even when the call fails. On success the extracted assistant turn
// is appended and returned. On transport or extraction failure the user
// turn stays, no assistant turn is appended, and the error is surfaced
// unchanged; the session never retries.
func (s *Session) Submit(ctx context.Context, inputText string) (Turn, error) {
	if strings.TrimSpace(inputText) == "" {
		return Turn{}, ErrInvalidInput
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Turn{}, ErrSessionBusy
	}

	// Built from the pre-append history: the new input appears in the
	// payload exactly once, as the final block.
	payload, err := s.builder.Build(s.persona, s.history, inputText)
	if err != nil {
		s.mu.Unlock()
		return Turn{}, err
	}

	s.history.Append(Turn{Role: RoleUser, Text: inputText})
	s.busy = true
	s.mu.Unlock()

	resp, callErr := s.transport.Generate(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if callErr != nil {
		return Turn{}, &TransportError{Err: callErr}
	}

	reply, err := ExtractReply(resp)
	if err != nil {
		return Turn{}, err
	}

	s.history.Append(reply)
	return reply, nil
}

// History returns a snapshot of the turns recorded so far.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Turns()
}

// Persona returns the session's static configuration.
func (s *Session) Persona() PersonaConfig {
	return s.persona
}
