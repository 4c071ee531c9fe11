package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse-api/internal/domain"
)

func TestLevelNext(t *testing.T) {
	next, ok := domain.LevelBeginner.Next()
	require.True(t, ok)
	assert.Equal(t, domain.LevelIntermediate, next)

	next, ok = domain.LevelIntermediate.Next()
	require.True(t, ok)
	assert.Equal(t, domain.LevelAdvanced, next)

	_, ok = domain.LevelAdvanced.Next()
	assert.False(t, ok, "advanced is the final level")
}

func TestLevelValid(t *testing.T) {
	for _, level := range domain.Levels {
		assert.True(t, level.Valid())
	}
	assert.False(t, domain.Level("expert").Valid())
	assert.False(t, domain.Level("").Valid())
}

func TestProgressRecordValidate(t *testing.T) {
	accountID := uuid.New()

	rec := domain.NewProgressRecord(accountID, "orbital-mechanics", domain.LevelBeginner)
	assert.NoError(t, rec.Validate())
	assert.Equal(t, domain.StatusNotStarted, rec.Status)

	tests := []struct {
		name    string
		mutate  func(r *domain.ProgressRecord)
		wantErr error
	}{
		{
			name:    "nil account",
			mutate:  func(r *domain.ProgressRecord) { r.AccountID = uuid.Nil },
			wantErr: domain.ErrProgressAccountEmpty,
		},
		{
			name:    "empty topic",
			mutate:  func(r *domain.ProgressRecord) { r.TopicID = "" },
			wantErr: domain.ErrProgressTopicEmpty,
		},
		{
			name:    "bad level",
			mutate:  func(r *domain.ProgressRecord) { r.Level = "expert" },
			wantErr: domain.ErrInvalidLevel,
		},
		{
			name:    "bad status",
			mutate:  func(r *domain.ProgressRecord) { r.Status = "paused" },
			wantErr: domain.ErrInvalidProgressStatus,
		},
		{
			name:    "score above 100",
			mutate:  func(r *domain.ProgressRecord) { r.Score = 101 },
			wantErr: domain.ErrScoreOutOfRange,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := domain.NewProgressRecord(accountID, "orbital-mechanics", domain.LevelBeginner)
			tc.mutate(&rec)
			assert.ErrorIs(t, rec.Validate(), tc.wantErr)
		})
	}
}
