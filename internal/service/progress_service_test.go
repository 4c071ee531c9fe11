package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/service"
	"github.com/simverse/simverse-api/internal/service/auth"
	"github.com/simverse/simverse-api/internal/store"
)

func registerAccount(t *testing.T, st store.StateStore) *domain.Account {
	t.Helper()
	accounts := service.NewAccountService(st, auth.NewBcryptHasher(), nil)
	account, err := accounts.Register(context.Background(), "learner@example.com", "a-long-enough-password")
	require.NoError(t, err)
	return account
}

func TestCompleteLevelPassingUnlocksNext(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewProgressService(st, nil)
	ctx := context.Background()

	result, err := svc.CompleteLevel(ctx, account.ID, "waves", domain.LevelBeginner, 80, 65, 300)
	require.NoError(t, err)

	assert.True(t, result.Passed)
	assert.True(t, result.Unlocked)
	assert.Equal(t, domain.LevelIntermediate, result.NextLevel)
	assert.Equal(t, domain.StatusCompleted, result.Record.Status)
	assert.Equal(t, 80.0, result.Record.Score)

	snap, err := st.Read(ctx)
	require.NoError(t, err)
	next := snap.FindProgress(account.ID, "waves", domain.LevelIntermediate)
	require.NotNil(t, next)
	assert.Equal(t, domain.StatusNotStarted, next.Status)
}

func TestCompleteLevelUnlockIsIdempotent(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewProgressService(st, nil)
	ctx := context.Background()

	first, err := svc.CompleteLevel(ctx, account.ID, "waves", domain.LevelBeginner, 90, 65, 100)
	require.NoError(t, err)
	assert.True(t, first.Unlocked)

	second, err := svc.CompleteLevel(ctx, account.ID, "waves", domain.LevelBeginner, 95, 65, 50)
	require.NoError(t, err)
	assert.True(t, second.Passed)
	assert.False(t, second.Unlocked, "repeat completion must not unlock again")

	snap, err := st.Read(ctx)
	require.NoError(t, err)

	intermediate := 0
	for _, rec := range snap.Progress {
		if rec.AccountID == account.ID && rec.TopicID == "waves" && rec.Level == domain.LevelIntermediate {
			intermediate++
		}
	}
	assert.Equal(t, 1, intermediate, "exactly one intermediate record, never two")
}

func TestCompleteLevelFailingDoesNotUnlock(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewProgressService(st, nil)
	ctx := context.Background()

	result, err := svc.CompleteLevel(ctx, account.ID, "waves", domain.LevelBeginner, 40, 65, 120)
	require.NoError(t, err)

	assert.False(t, result.Passed)
	assert.False(t, result.Unlocked)
	assert.Equal(t, domain.StatusCompleted, result.Record.Status)

	snap, err := st.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.FindProgress(account.ID, "waves", domain.LevelIntermediate))
}

func TestCompleteLevelKeepsBestScoreAndAccumulatesTime(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewProgressService(st, nil)
	ctx := context.Background()

	_, err := svc.CompleteLevel(ctx, account.ID, "waves", domain.LevelBeginner, 90, 65, 100)
	require.NoError(t, err)

	result, err := svc.CompleteLevel(ctx, account.ID, "waves", domain.LevelBeginner, 70, 65, 60)
	require.NoError(t, err)

	assert.Equal(t, 90.0, result.Record.Score, "a lower retake never lowers the stored score")
	assert.Equal(t, 160, result.Record.SecondsSpent)
}

func TestCompleteLevelFinalLevelHasNoNext(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewProgressService(st, nil)

	result, err := svc.CompleteLevel(context.Background(), account.ID, "waves", domain.LevelAdvanced, 95, 85, 200)
	require.NoError(t, err)

	assert.True(t, result.Passed)
	assert.False(t, result.Unlocked)
	assert.Empty(t, result.NextLevel)
}

func TestCompleteLevelValidation(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewProgressService(st, nil)
	ctx := context.Background()

	_, err := svc.CompleteLevel(ctx, account.ID, "", domain.LevelBeginner, 80, 65, 10)
	assert.ErrorIs(t, err, service.ErrTopicEmpty)

	_, err = svc.CompleteLevel(ctx, account.ID, "waves", "expert", 80, 65, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)

	_, err = svc.CompleteLevel(ctx, account.ID, "waves", domain.LevelBeginner, 120, 65, 10)
	assert.ErrorIs(t, err, domain.ErrScoreOutOfRange)

	_, err = svc.CompleteLevel(ctx, uuid.New(), "waves", domain.LevelBeginner, 80, 65, 10)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestListProgress(t *testing.T) {
	st := newTestStateStore(t)
	account := registerAccount(t, st)
	svc := service.NewProgressService(st, nil)
	ctx := context.Background()

	_, err := svc.CompleteLevel(ctx, account.ID, "waves", domain.LevelBeginner, 90, 65, 100)
	require.NoError(t, err)
	_, err = svc.CompleteLevel(ctx, account.ID, "atoms", domain.LevelBeginner, 50, 65, 80)
	require.NoError(t, err)

	records, err := svc.ListProgress(ctx, account.ID)
	require.NoError(t, err)

	// waves beginner (completed), waves intermediate (unlocked), atoms beginner.
	require.Len(t, records, 3)
	assert.Equal(t, "atoms", records[0].TopicID)
	assert.Equal(t, "waves", records[1].TopicID)

	_, err = svc.ListProgress(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}
