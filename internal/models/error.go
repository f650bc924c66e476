package models

// APIError is the API error body.
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

// ErrorResponse is the envelope for all error replies.
type ErrorResponse struct {
	Error APIError `json:"error"`
}
