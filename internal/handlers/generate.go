package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"promptstudio/internal/contextutil"
	"promptstudio/internal/service"
	"promptstudio/internal/storage"
)

// GenerateHandler handles HTTP requests to generate an image.
type GenerateHandler struct {
	sessions service.SessionService
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(sessions service.SessionService) *GenerateHandler {
	return &GenerateHandler{sessions: sessions}
}

// GenerateRequest represents the HTTP request payload for generation.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

// RecordResponse represents a stored prompt record in HTTP responses.
type RecordResponse struct {
	ID        string `json:"id"`
	Prompt    string `json:"prompt"`
	Style     string `json:"style"`
	ImagePath string `json:"image_path,omitempty"`
	Timestamp string `json:"timestamp"`
}

func toRecordResponse(rec storage.PromptRecord) RecordResponse {
	return RecordResponse{
		ID:        rec.ID,
		Prompt:    rec.Prompt,
		Style:     rec.Style,
		ImagePath: rec.ImagePath,
		Timestamp: rec.CreatedAt.Format(timeLayout),
	}
}

// ServeHTTP handles HTTP requests to generate an image and record it.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.sessions.Generate(ctx, service.GenerateRequest{
		Prompt: req.Prompt,
		Style:  req.Style,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// handleError maps service errors to HTTP status codes.
func (h *GenerateHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		logger.WarnContext(ctx, "invalid generate request", "error", err)
		writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, service.ErrGeneration):
		logger.ErrorContext(ctx, "generation backend failed", "error", err)
		writeError(w, http.StatusBadGateway, "Image generation failed")
	case errors.Is(err, service.ErrStorage):
		logger.ErrorContext(ctx, "artifact storage failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store image")
	default:
		logger.ErrorContext(ctx, "generate request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to record generation")
	}
}
