package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse-api/internal/domain"
)

func TestNewAccount(t *testing.T) {
	t.Run("valid account", func(t *testing.T) {
		account, err := domain.NewAccount("Learner@Example.COM", "hashed")
		require.NoError(t, err)

		assert.NotEqual(t, account.ID.String(), "00000000-0000-0000-0000-000000000000")
		assert.Equal(t, "learner@example.com", account.Email, "email is normalized to lowercase")
		assert.False(t, account.CreatedAt.IsZero())
	})

	t.Run("invalid email", func(t *testing.T) {
		tests := []string{"", "no-at-sign", "@missing.local", "trailing@", "nodot@domain"}
		for _, email := range tests {
			_, err := domain.NewAccount(email, "hashed")
			assert.Error(t, err, "email %q should be rejected", email)
		}
	})

	t.Run("empty hash", func(t *testing.T) {
		_, err := domain.NewAccount("learner@example.com", "")
		assert.ErrorIs(t, err, domain.ErrHashedPasswordEmpty)
	})
}

func TestValidatePasswordLength(t *testing.T) {
	assert.ErrorIs(t, domain.ValidatePasswordLength("short"), domain.ErrPasswordTooShort)
	assert.ErrorIs(t, domain.ValidatePasswordLength(strings.Repeat("x", 73)), domain.ErrPasswordTooLong)
	assert.NoError(t, domain.ValidatePasswordLength("long-enough-password"))
	assert.NoError(t, domain.ValidatePasswordLength(strings.Repeat("x", 72)))
}

func TestTouchLogin(t *testing.T) {
	account, err := domain.NewAccount("learner@example.com", "hashed")
	require.NoError(t, err)

	before := account.LastLoginAt
	account.TouchLogin()
	assert.False(t, account.LastLoginAt.Before(before))
}
