package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/simverse/simverse-api/internal/content"
	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/generation"
	"github.com/simverse/simverse-api/internal/store"
)

// Lesson service errors
var (
	// ErrTopicTitleEmpty indicates a lesson request without a topic title.
	ErrTopicTitleEmpty = errors.New("topic title cannot be empty")
)

// Lesson is a generated lesson package together with its provenance.
type Lesson struct {
	Topic   domain.Topic             `json:"topic"`
	Level   domain.Level             `json:"level"`
	Content *domain.GeneratedContent `json:"content"`
	Source  content.Source           `json:"source"`
}

// lessonMetadata is the history payload recorded for each generated lesson.
type lessonMetadata struct {
	TopicID string         `json:"topic_id"`
	Level   domain.Level   `json:"level"`
	Source  content.Source `json:"source"`
}

// LessonService produces lesson content and records the interaction. The
// external generator is optional; without one every lesson is served from the
// deterministic fallback engine.
type LessonService struct {
	store     store.StateStore
	generator generation.Generator // may be nil
	logger    *slog.Logger
}

// NewLessonService creates a LessonService. A nil generator disables external
// content generation.
func NewLessonService(s store.StateStore, gen generation.Generator, logger *slog.Logger) *LessonService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonService{
		store:     s,
		generator: gen,
		logger:    logger.With("component", "lesson_service"),
	}
}

// GenerateLesson builds a validated lesson package for the topic and level,
// then records the interaction and marks the level in progress in one atomic
// update. Generator failures are not retried; the fallback engine covers
// them, so the only errors returned here come from validation or the store.
func (s *LessonService) GenerateLesson(ctx context.Context, accountID uuid.UUID, topic domain.Topic, level domain.Level) (*Lesson, error) {
	if topic.Title == "" {
		return nil, ErrTopicTitleEmpty
	}
	if !level.Valid() {
		return nil, domain.ErrInvalidLevel
	}
	if topic.ID == "" {
		topic.ID = domain.TopicIDFromTitle(topic.Title)
	}

	raw := ""
	if s.generator != nil {
		text, err := s.generator.GenerateLessonText(ctx, topic, level)
		if err != nil {
			s.logger.WarnContext(ctx, "external generation failed, serving fallback",
				"topic_id", topic.ID, "level", level, "error", err)
		} else {
			raw = text
		}
	}

	pkg, source := content.ProduceValidatedContent(ctx, raw, topic, level)

	meta, err := json.Marshal(lessonMetadata{TopicID: topic.ID, Level: level, Source: source})
	if err != nil {
		return nil, err
	}

	rec, err := domain.NewInteractionRecord(accountID, "lesson_generated", meta)
	if err != nil {
		return nil, err
	}

	err = s.store.Update(ctx, func(snap *domain.Snapshot) error {
		if snap.FindAccount(accountID) == nil {
			return store.ErrAccountNotFound
		}

		progress := snap.FindProgress(accountID, topic.ID, level)
		if progress == nil {
			snap.Progress = append(snap.Progress, domain.NewProgressRecord(accountID, topic.ID, level))
			progress = &snap.Progress[len(snap.Progress)-1]
		}
		if progress.Status == domain.StatusNotStarted {
			progress.Status = domain.StatusInProgress
		}
		progress.UpdatedAt = time.Now().UTC()

		snap.AppendHistory(*rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "lesson generated",
		"account_id", accountID, "topic_id", topic.ID, "level", level, "source", source)

	return &Lesson{Topic: topic, Level: level, Content: pkg, Source: source}, nil
}

// History returns the account's interaction records, oldest first.
func (s *LessonService) History(ctx context.Context, accountID uuid.UUID) ([]domain.InteractionRecord, error) {
	snap, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	if snap.FindAccount(accountID) == nil {
		return nil, store.ErrAccountNotFound
	}

	return snap.HistoryFor(accountID), nil
}
