package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"assistant-backend/internal/models"
	"assistant-backend/internal/repository"
)

type assistantRepository interface {
	Create(ctx context.Context, a *models.Assistant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Assistant, error)
	List(ctx context.Context, search string, limit, offset int) ([]*models.Assistant, int, error)
	Update(ctx context.Context, a *models.Assistant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AssistantHandler struct {
	repo assistantRepository
}

func NewAssistantHandler(repo assistantRepository) *AssistantHandler {
	return &AssistantHandler{repo: repo}
}

func (h *AssistantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Name is required", r))
		return
	}

	assistant := &models.Assistant{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		UserRole:    req.UserRole,
		ModelInfo:   req.ModelInfo,
	}

	if err := h.repo.Create(r.Context(), assistant); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create assistant", r))
		return
	}

	writeJSON(w, http.StatusCreated, assistant)
}

func (h *AssistantHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	assistants, total, err := h.repo.List(r.Context(), search, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list assistants", r))
		return
	}
	if assistants == nil {
		assistants = []*models.Assistant{}
	}

	writeJSON(w, http.StatusOK, models.AssistantList{
		Assistants: assistants,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	})
}

func (h *AssistantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid assistant ID", r))
		return
	}

	assistant, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Assistant not found", r))
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load assistant", r))
		return
	}

	writeJSON(w, http.StatusOK, assistant)
}

func (h *AssistantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid assistant ID", r))
		return
	}

	var req models.UpdateAssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Name is required", r))
		return
	}

	assistant := &models.Assistant{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		UserRole:    req.UserRole,
		ModelInfo:   req.ModelInfo,
	}

	err = h.repo.Update(r.Context(), assistant)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Assistant not found", r))
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update assistant", r))
		return
	}

	writeJSON(w, http.StatusOK, assistant)
}

func (h *AssistantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid assistant ID", r))
		return
	}

	err = h.repo.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Assistant not found", r))
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete assistant", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Assistant deleted"})
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
