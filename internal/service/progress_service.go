package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/store"
)

// Progress service errors
var (
	// ErrTopicEmpty indicates a progress operation without a topic ID.
	ErrTopicEmpty = errors.New("topic ID cannot be empty")
)

// CompletionResult describes the outcome of completing a level: the updated
// record, and whether the completion unlocked the next level.
type CompletionResult struct {
	Record    domain.ProgressRecord `json:"record"`
	Passed    bool                  `json:"passed"`
	Unlocked  bool                  `json:"unlocked"`
	NextLevel domain.Level          `json:"next_level,omitempty"`
}

// ProgressService tracks per-account learning progress across topics and
// levels.
type ProgressService struct {
	store  store.StateStore
	logger *slog.Logger
}

// NewProgressService creates a ProgressService.
func NewProgressService(s store.StateStore, logger *slog.Logger) *ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressService{
		store:  s,
		logger: logger.With("component", "progress_service"),
	}
}

// CompleteLevel records a finished level attempt. The progress record for the
// (account, topic, level) tuple is created or updated with the score and time
// spent. When the score reaches the passing score, the next level's record is
// created in not-started state unless it already exists, all within the same
// atomic update. Repeating a passing completion never creates a duplicate.
func (s *ProgressService) CompleteLevel(ctx context.Context, accountID uuid.UUID, topicID string, level domain.Level, score, passingScore float64, secondsSpent int) (*CompletionResult, error) {
	if topicID == "" {
		return nil, ErrTopicEmpty
	}
	if !level.Valid() {
		return nil, domain.ErrInvalidLevel
	}
	if score < 0 || score > 100 {
		return nil, domain.ErrScoreOutOfRange
	}

	result, err := store.UpdateResult(ctx, s.store, func(snap *domain.Snapshot) (*CompletionResult, error) {
		if snap.FindAccount(accountID) == nil {
			return nil, store.ErrAccountNotFound
		}

		rec := snap.FindProgress(accountID, topicID, level)
		if rec == nil {
			snap.Progress = append(snap.Progress, domain.NewProgressRecord(accountID, topicID, level))
			rec = &snap.Progress[len(snap.Progress)-1]
		}

		rec.Status = domain.StatusCompleted
		if score > rec.Score {
			rec.Score = score
		}
		rec.SecondsSpent += secondsSpent
		rec.UpdatedAt = time.Now().UTC()

		out := &CompletionResult{Record: *rec, Passed: score >= passingScore}
		if !out.Passed {
			return out, nil
		}

		next, ok := level.Next()
		if !ok {
			return out, nil
		}
		out.NextLevel = next

		if snap.FindProgress(accountID, topicID, next) == nil {
			snap.Progress = append(snap.Progress, domain.NewProgressRecord(accountID, topicID, next))
			out.Unlocked = true
		}

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	if result.Unlocked {
		s.logger.InfoContext(ctx, "next level unlocked",
			"account_id", accountID, "topic_id", topicID, "level", result.NextLevel)
	}
	return result, nil
}

// ListProgress returns every progress record for the account, sorted by topic
// then level order.
func (s *ProgressService) ListProgress(ctx context.Context, accountID uuid.UUID) ([]domain.ProgressRecord, error) {
	snap, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	if snap.FindAccount(accountID) == nil {
		return nil, store.ErrAccountNotFound
	}

	return snap.ProgressFor(accountID), nil
}
