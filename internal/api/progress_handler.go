package api

import (
	"net/http"

	"github.com/simverse/simverse-api/internal/api/middleware"
	"github.com/simverse/simverse-api/internal/api/shared"
	"github.com/simverse/simverse-api/internal/service"
)

// ProgressHandler handles progress tracking endpoints.
type ProgressHandler struct {
	progress *service.ProgressService
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// Complete handles POST /progress/complete.
func (h *ProgressHandler) Complete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CompleteLevelRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.progress.CompleteLevel(r.Context(), accountID,
		req.TopicID, req.Level, req.Score, req.PassingScore, req.SecondsSpent)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CompleteLevelResponse{
		Record:    result.Record,
		Passed:    result.Passed,
		Unlocked:  result.Unlocked,
		NextLevel: result.NextLevel,
	})
}

// List handles GET /progress.
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	records, err := h.progress.ListProgress(r.Context(), accountID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProgressListResponse{Progress: records})
}
