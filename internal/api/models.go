package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/simverse/simverse-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the account registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	AccountID uuid.UUID `json:"account_id"`
	Token     string    `json:"token"`
}

// PreferencesResponse mirrors the account's stored preferences.
type PreferencesResponse struct {
	Mode      domain.InteractionMode `json:"mode"`
	Voice     domain.VoiceSettings   `json:"voice"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// UpdatePreferencesRequest defines the payload for replacing preferences.
// Bounds are enforced again by the domain layer; the tags here give clients
// field-level feedback before the service runs.
type UpdatePreferencesRequest struct {
	Mode  domain.InteractionMode `json:"mode"  validate:"required,oneof=voice click mixed"`
	Voice domain.VoiceSettings   `json:"voice" validate:"required"`
}

// LessonRequest defines the payload for the lesson generation endpoint. The
// topic ID is optional; when omitted it is derived from the title.
type LessonRequest struct {
	TopicID     string       `json:"topic_id"`
	Title       string       `json:"title"       validate:"required,min=1,max=200"`
	Description string       `json:"description" validate:"max=2000"`
	Level       domain.Level `json:"level"       validate:"required,oneof=beginner intermediate advanced"`
}

// LessonResponse carries the generated lesson package.
type LessonResponse struct {
	Topic   domain.Topic             `json:"topic"`
	Level   domain.Level             `json:"level"`
	Source  string                   `json:"source"`
	Content *domain.GeneratedContent `json:"content"`
}

// CompleteLevelRequest defines the payload for reporting a finished level.
type CompleteLevelRequest struct {
	TopicID      string       `json:"topic_id"      validate:"required,min=1,max=200"`
	Level        domain.Level `json:"level"         validate:"required,oneof=beginner intermediate advanced"`
	Score        float64      `json:"score"         validate:"min=0,max=100"`
	PassingScore float64      `json:"passing_score" validate:"min=0,max=100"`
	SecondsSpent int          `json:"seconds_spent" validate:"min=0"`
}

// CompleteLevelResponse reports the updated record and any unlock.
type CompleteLevelResponse struct {
	Record    domain.ProgressRecord `json:"record"`
	Passed    bool                  `json:"passed"`
	Unlocked  bool                  `json:"unlocked"`
	NextLevel domain.Level          `json:"next_level,omitempty"`
}

// ProgressListResponse lists the account's progress records.
type ProgressListResponse struct {
	Progress []domain.ProgressRecord `json:"progress"`
}

// HistoryEntry is one interaction record as returned to clients.
type HistoryEntry struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// HistoryResponse lists the account's interaction history, oldest first.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}
