package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:          strings.Repeat("s", 32),
		TokenLifetimeHours: 1,
	}
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeHours: 1})
	require.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	accountID := uuid.New()
	token, err := svc.GenerateToken(context.Background(), accountID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
}

func TestValidateTokenErrors(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:          strings.Repeat("o", 32),
			TokenLifetimeHours: 1,
		})
		require.NoError(t, err)

		token, err := other.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		impl := svc.(*hmacJWTService)
		issued := time.Now().Add(-3 * time.Hour)

		impl.timeFunc = func() time.Time { return issued }
		token, err := impl.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)
		impl.timeFunc = time.Now

		_, err = impl.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
