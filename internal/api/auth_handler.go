package api

import (
	"errors"
	"net/http"

	"github.com/simverse/simverse-api/internal/api/shared"
	"github.com/simverse/simverse-api/internal/service"
	"github.com/simverse/simverse-api/internal/service/auth"
	"github.com/simverse/simverse-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accounts   *service.AccountService
	jwtService auth.JWTService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(accounts *service.AccountService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		jwtService: jwtService,
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), account.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		AccountID: account.ID,
		Token:     token,
	})
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	account, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), account.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		AccountID: account.ID,
		Token:     token,
	})
}
