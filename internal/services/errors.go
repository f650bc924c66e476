package services

// Typed errors translated by the handler layer into HTTP responses.

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type BusyError struct{ Message string }

func (e *BusyError) Error() string { return e.Message }

// UpstreamError covers transport failures and malformed replies from the
// generative-language service.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Message }
func (e *UpstreamError) Unwrap() error { return e.Err }
