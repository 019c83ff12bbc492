package handlers

import (
	"net/http"

	"promptstudio/internal/contextutil"
	"promptstudio/internal/service"
)

// PurgeHandler handles HTTP requests to delete the full prompt history.
type PurgeHandler struct {
	sessions service.SessionService
}

// NewPurgeHandler creates a new PurgeHandler.
func NewPurgeHandler(sessions service.SessionService) *PurgeHandler {
	return &PurgeHandler{sessions: sessions}
}

// PurgeResponse summarizes a history purge, including artifact cleanup
// failures that were tolerated.
type PurgeResponse struct {
	ArtifactsRemoved int      `json:"artifacts_removed"`
	ArtifactsMissing int      `json:"artifacts_missing"`
	Failures         []string `json:"failures,omitempty"`
}

// ServeHTTP deletes every record and reclaims the referenced artifacts.
// The response reports success once row deletion has committed, even if
// individual artifact removals failed.
func (h *PurgeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodDelete {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	result, err := h.sessions.ClearHistory(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to purge history", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete history")
		return
	}

	writeJSON(w, http.StatusOK, PurgeResponse{
		ArtifactsRemoved: result.ArtifactsRemoved,
		ArtifactsMissing: result.ArtifactsMissing,
		Failures:         result.Failures,
	})
}
