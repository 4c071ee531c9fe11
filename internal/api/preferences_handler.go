package api

import (
	"net/http"

	"github.com/simverse/simverse-api/internal/api/middleware"
	"github.com/simverse/simverse-api/internal/api/shared"
	"github.com/simverse/simverse-api/internal/service"
)

// PreferencesHandler handles per-account preferences endpoints.
type PreferencesHandler struct {
	accounts *service.AccountService
}

// NewPreferencesHandler creates a PreferencesHandler.
func NewPreferencesHandler(accounts *service.AccountService) *PreferencesHandler {
	return &PreferencesHandler{accounts: accounts}
}

// Get handles GET /preferences.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	prefs, err := h.accounts.GetPreferences(r.Context(), accountID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PreferencesResponse{
		Mode:      prefs.Mode,
		Voice:     prefs.Voice,
		UpdatedAt: prefs.UpdatedAt,
	})
}

// Update handles PUT /preferences.
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdatePreferencesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	prefs, err := h.accounts.UpdatePreferences(r.Context(), accountID, req.Mode, req.Voice)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PreferencesResponse{
		Mode:      prefs.Mode,
		Voice:     prefs.Voice,
		UpdatedAt: prefs.UpdatedAt,
	})
}
