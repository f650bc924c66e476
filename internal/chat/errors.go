package chat

import "errors"

var (
	// ErrInvalidInput rejects empty or blank user text before any side
	// effect; the external API must never receive an empty final turn.
	ErrInvalidInput = errors.New("chat: input text is empty")

	// ErrMalformedResponse signals a reply payload missing the expected
	// candidate structure. It indicates a contract break with the external
	// service, not a transient fault, so it is never retried.
	ErrMalformedResponse = errors.New("chat: malformed model response")

	// ErrSessionBusy rejects a Submit issued while another call is still
	// in flight on the same session.
	ErrSessionBusy = errors.New("chat: another submit is in flight")
)

// TransportError wraps a network or HTTP-level failure from the transport
// collaborator so callers can tell it apart from a contract break.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "chat: transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
