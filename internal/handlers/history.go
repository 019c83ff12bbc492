package handlers

import (
	"net/http"

	"promptstudio/internal/contextutil"
	"promptstudio/internal/service"
)

// HistoryHandler handles HTTP requests for the prompt history.
type HistoryHandler struct {
	sessions service.SessionService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(sessions service.SessionService) *HistoryHandler {
	return &HistoryHandler{sessions: sessions}
}

// HistoryResponse represents the prompt history payload.
type HistoryResponse struct {
	Records []RecordResponse `json:"records"`
	Styles  []string         `json:"styles"`
}

// ServeHTTP returns every stored record in insertion order, plus the
// accepted style tags for the front-end's selector.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	records, err := h.sessions.History(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load history", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	resp := HistoryResponse{
		Records: make([]RecordResponse, 0, len(records)),
		Styles:  service.Styles(),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, toRecordResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}
