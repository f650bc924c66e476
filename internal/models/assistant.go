package models

import (
	"time"

	"github.com/google/uuid"
)

// Assistant is one stored assistant identity: its persona description and
// the seed exchange material (user role + model info) used to start a
// conversation.
type Assistant struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserRole    string    `json:"user_role"`
	ModelInfo   string    `json:"model_info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateAssistantRequest is the payload for creating an assistant.
type CreateAssistantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UserRole    string `json:"user_role"`
	ModelInfo   string `json:"model_info"`
}

// UpdateAssistantRequest is the payload for updating an assistant.
type UpdateAssistantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UserRole    string `json:"user_role"`
	ModelInfo   string `json:"model_info"`
}

// AssistantList is a paginated listing response.
type AssistantList struct {
	Assistants []*Assistant `json:"assistants"`
	Total      int          `json:"total"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
}
