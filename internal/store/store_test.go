package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/store"
)

// memStore is a minimal in-memory StateStore for exercising the package
// helpers without a backend.
type memStore struct {
	snap *domain.Snapshot
}

func newMemStore() *memStore {
	return &memStore{snap: domain.NewSnapshot()}
}

func (m *memStore) Read(ctx context.Context) (*domain.Snapshot, error) {
	return m.snap.Clone(), nil
}

func (m *memStore) Write(ctx context.Context, s *domain.Snapshot) error {
	m.snap = s.Clone()
	return nil
}

func (m *memStore) Update(ctx context.Context, fn store.MutatorFunc) error {
	working := m.snap.Clone()
	if err := fn(working); err != nil {
		return err
	}
	m.snap = working
	return nil
}

func TestUpdateResultReturnsDerivedValue(t *testing.T) {
	s := newMemStore()

	account, err := domain.NewAccount("learner@example.com", "hash")
	require.NoError(t, err)

	created, err := store.UpdateResult(context.Background(), s,
		func(snap *domain.Snapshot) (*domain.Account, error) {
			snap.Accounts = append(snap.Accounts, *account)
			return account, nil
		})
	require.NoError(t, err)
	assert.Equal(t, account.ID, created.ID)

	snap, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Accounts, 1)
}

func TestUpdateResultPropagatesMutatorError(t *testing.T) {
	s := newMemStore()
	sentinel := errors.New("nope")

	result, err := store.UpdateResult(context.Background(), s,
		func(snap *domain.Snapshot) (int, error) {
			snap.Accounts = append(snap.Accounts, domain.Account{})
			return 42, sentinel
		})

	assert.Equal(t, sentinel, err)
	assert.Zero(t, result, "failed updates return the zero value")

	snap, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Accounts, "failed updates must not persist")
}
