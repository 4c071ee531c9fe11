package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Level identifies one of the three difficulty tiers every topic has.
type Level string

// The three difficulty levels, in unlock order.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists the difficulty tiers in unlock order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ProgressStatus describes how far a learner has taken one topic level.
type ProgressStatus string

// Valid progress statuses.
const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

// Progress validation errors
var (
	ErrProgressAccountEmpty  = errors.New("progress account ID cannot be empty")
	ErrProgressTopicEmpty    = errors.New("progress topic ID cannot be empty")
	ErrInvalidLevel          = errors.New("invalid level")
	ErrInvalidProgressStatus = errors.New("invalid progress status")
	ErrScoreOutOfRange       = errors.New("score must be between 0 and 100")
)

// ProgressRecord tracks one (account, topic, level) tuple. At most one record
// exists per tuple; the store's mutators are responsible for upholding that.
type ProgressRecord struct {
	AccountID    uuid.UUID      `json:"account_id"`
	TopicID      string         `json:"topic_id"`
	Level        Level          `json:"level"`
	Status       ProgressStatus `json:"status"`
	Score        float64        `json:"score"`
	SecondsSpent int            `json:"seconds_spent"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewProgressRecord creates a not-started record for the given tuple.
func NewProgressRecord(accountID uuid.UUID, topicID string, level Level) ProgressRecord {
	return ProgressRecord{
		AccountID: accountID,
		TopicID:   topicID,
		Level:     level,
		Status:    StatusNotStarted,
		UpdatedAt: time.Now().UTC(),
	}
}

// Validate checks if the ProgressRecord has valid data.
func (p *ProgressRecord) Validate() error {
	if p.AccountID == uuid.Nil {
		return ErrProgressAccountEmpty
	}

	if p.TopicID == "" {
		return ErrProgressTopicEmpty
	}

	if !p.Level.Valid() {
		return ErrInvalidLevel
	}

	switch p.Status {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
	default:
		return ErrInvalidProgressStatus
	}

	if p.Score < 0 || p.Score > 100 {
		return ErrScoreOutOfRange
	}

	return nil
}

// Valid reports whether l is one of the three known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Next returns the level unlocked after completing l. The second return is
// false for the final level.
func (l Level) Next() (Level, bool) {
	switch l {
	case LevelBeginner:
		return LevelIntermediate, true
	case LevelIntermediate:
		return LevelAdvanced, true
	}
	return "", false
}
