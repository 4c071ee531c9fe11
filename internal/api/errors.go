package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/simverse/simverse-api/internal/api/shared"
	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/service"
	"github.com/simverse/simverse-api/internal/service/auth"
	"github.com/simverse/simverse-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrAccountNotFound),
		errors.Is(err, store.ErrPreferencesNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrScoreOutOfRange),
		errors.Is(err, domain.ErrInvalidInteractionMode),
		errors.Is(err, domain.ErrSpeechRateOutOfRange),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmailInvalid),
		errors.Is(err, service.ErrTopicEmpty),
		errors.Is(err, service.ErrTopicTitleEmpty):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for an internal error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, store.ErrAccountNotFound):
		return "Account not found"

	case errors.Is(err, store.ErrPreferencesNotFound):
		return "Preferences not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, domain.ErrInvalidLevel):
		return "Invalid level"

	case errors.Is(err, domain.ErrScoreOutOfRange):
		return "Score must be between 0 and 100"

	case errors.Is(err, domain.ErrInvalidInteractionMode):
		return "Invalid interaction mode"

	case errors.Is(err, domain.ErrSpeechRateOutOfRange):
		return "Speech rate must be between 0.5 and 2.0"

	case errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong):
		return "Password must be between 12 and 72 characters"

	case errors.Is(err, domain.ErrEmailInvalid):
		return "Invalid email format"

	case errors.Is(err, service.ErrTopicEmpty),
		errors.Is(err, service.ErrTopicTitleEmpty):
		return "Topic is required"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the sanitized response for a service-layer error
// and logs the underlying cause.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// SanitizeValidationError turns a validator error into a short user-facing
// message naming the first failing field.
func SanitizeValidationError(err error) string {
	msg := err.Error()
	if !strings.Contains(msg, "Field validation") {
		return "Validation error"
	}

	parts := strings.Split(msg, "Error:")
	if len(parts) < 2 {
		return "Validation error"
	}
	fieldParts := strings.Split(parts[1], "'")
	if len(fieldParts) < 3 {
		return "Validation error"
	}

	return "Invalid " + fieldParts[1]
}
