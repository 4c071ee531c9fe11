package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse-api/internal/content"
	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/service"
	"github.com/simverse/simverse-api/internal/store"
)

// stubGenerator returns a canned response or error.
type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (g *stubGenerator) GenerateLessonText(ctx context.Context, topic domain.Topic, level domain.Level) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestGenerateLessonWithoutGeneratorServesFallback(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewLessonService(st, nil, nil)
	ctx := context.Background()

	lesson, err := svc.GenerateLesson(ctx, account.ID,
		domain.Topic{Title: "Orbital Mechanics"}, domain.LevelBeginner)
	require.NoError(t, err)

	assert.Equal(t, content.SourceFallback, lesson.Source)
	assert.Equal(t, "orbital-mechanics", lesson.Topic.ID, "topic ID derived from title")
	require.NoError(t, content.Validate(lesson.Content))
}

func TestGenerateLessonRecordsInteractionAndProgress(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewLessonService(st, nil, nil)
	ctx := context.Background()

	_, err := svc.GenerateLesson(ctx, account.ID,
		domain.Topic{Title: "Orbital Mechanics"}, domain.LevelBeginner)
	require.NoError(t, err)

	snap, err := st.Read(ctx)
	require.NoError(t, err)

	progress := snap.FindProgress(account.ID, "orbital-mechanics", domain.LevelBeginner)
	require.NotNil(t, progress)
	assert.Equal(t, domain.StatusInProgress, progress.Status)

	require.Len(t, snap.History, 1)
	assert.Equal(t, "lesson_generated", snap.History[0].Kind)

	var meta struct {
		TopicID string `json:"topic_id"`
		Source  string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(snap.History[0].Metadata, &meta))
	assert.Equal(t, "orbital-mechanics", meta.TopicID)
	assert.Equal(t, string(content.SourceFallback), meta.Source)
}

func TestGenerateLessonDoesNotDowngradeCompletedProgress(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	progress := service.NewProgressService(st, nil)
	lessons := service.NewLessonService(st, nil, nil)
	ctx := context.Background()

	_, err := progress.CompleteLevel(ctx, account.ID, "orbital-mechanics", domain.LevelBeginner, 90, 65, 100)
	require.NoError(t, err)

	_, err = lessons.GenerateLesson(ctx, account.ID,
		domain.Topic{Title: "Orbital Mechanics"}, domain.LevelBeginner)
	require.NoError(t, err)

	snap, err := st.Read(ctx)
	require.NoError(t, err)
	rec := snap.FindProgress(account.ID, "orbital-mechanics", domain.LevelBeginner)
	require.NotNil(t, rec)
	assert.Equal(t, domain.StatusCompleted, rec.Status, "revisiting a completed level keeps it completed")
}

func TestGenerateLessonUsesExternalContentWhenValid(t *testing.T) {
	external := &domain.GeneratedContent{
		Description: "External lesson about waves.",
		Narration:   []string{"One.", "Two.", "Three."},
		Steps: []domain.SimulationStep{
			{Objects: []domain.SceneObject{{ID: "a", Kind: domain.KindCube, Color: "#fff", Size: 1}}},
			{Objects: []domain.SceneObject{{ID: "a", Kind: domain.KindCube, Color: "#fff", Size: 1}}},
			{Objects: []domain.SceneObject{{ID: "a", Kind: domain.KindCube, Color: "#fff", Size: 1}}},
		},
		Levels: []domain.LevelProblemSet{{
			Level:        domain.LevelBeginner,
			PassingScore: 70,
			Problems: []domain.Problem{
				{Question: "Q?", Choices: []string{"yes", "no"}, Answer: "yes"},
			},
		}},
	}
	raw, err := json.Marshal(external)
	require.NoError(t, err)

	st := newTestStateStore(t)
	account := registerAccount(t, st)
	gen := &stubGenerator{response: string(raw)}
	svc := service.NewLessonService(st, gen, nil)

	lesson, err := svc.GenerateLesson(context.Background(), account.ID,
		domain.Topic{Title: "Waves"}, domain.LevelBeginner)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, content.SourceExternal, lesson.Source)
	assert.Equal(t, "External lesson about waves.", lesson.Content.Description)
}

func TestGenerateLessonGeneratorFailureFallsBack(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	gen := &stubGenerator{err: errors.New("model unavailable")}
	svc := service.NewLessonService(st, gen, nil)

	lesson, err := svc.GenerateLesson(context.Background(), account.ID,
		domain.Topic{Title: "Waves"}, domain.LevelBeginner)
	require.NoError(t, err, "generator failures never surface to the caller")

	assert.Equal(t, 1, gen.calls, "failed fetches are not retried")
	assert.Equal(t, content.SourceFallback, lesson.Source)
	require.NoError(t, content.Validate(lesson.Content))
}

func TestGenerateLessonValidation(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewLessonService(st, nil, nil)
	ctx := context.Background()

	_, err := svc.GenerateLesson(ctx, account.ID, domain.Topic{}, domain.LevelBeginner)
	assert.ErrorIs(t, err, service.ErrTopicTitleEmpty)

	_, err = svc.GenerateLesson(ctx, account.ID, domain.Topic{Title: "Waves"}, "expert")
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)

	_, err = svc.GenerateLesson(ctx, uuid.New(), domain.Topic{Title: "Waves"}, domain.LevelBeginner)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestHistoryOrdering(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewLessonService(st, nil, nil)
	ctx := context.Background()

	_, err := svc.GenerateLesson(ctx, account.ID, domain.Topic{Title: "Waves"}, domain.LevelBeginner)
	require.NoError(t, err)
	_, err = svc.GenerateLesson(ctx, account.ID, domain.Topic{Title: "Atoms"}, domain.LevelBeginner)
	require.NoError(t, err)

	history, err := svc.History(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.False(t, history[1].CreatedAt.Before(history[0].CreatedAt), "history is oldest first")

	_, err = svc.History(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}
