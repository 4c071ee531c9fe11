// Package filestore implements store.StateStore on top of a single JSON
// document containing the four persisted collections. Every operation
// rewrites the whole document.
//
// The store is safe for concurrent use within one process; it provides no
// cross-process write protection and is suitable only for single-process
// deployments.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/store"
)

// Store is the file-backed StateStore. A process-local mutex serializes all
// operations so no two Update calls interleave their read/mutate/persist
// steps.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// Ensure Store implements store.StateStore.
var _ store.StateStore = (*Store)(nil)

// New creates a file-backed StateStore persisting to the given path. The
// file is created on first write; a missing file reads as an empty snapshot.
func New(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("state file path cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}, nil
}

// Read implements store.StateStore.Read.
func (s *Store) Read(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStorageError("file", "read", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Write implements store.StateStore.Write.
func (s *Store) Write(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return store.NewStorageError("file", "write", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(snap)
}

// Update implements store.StateStore.Update. The mutex is held across the
// whole read/mutate/persist sequence. A mutator error is returned unwrapped
// and nothing is persisted.
func (s *Store) Update(ctx context.Context, fn store.MutatorFunc) error {
	if err := ctx.Err(); err != nil {
		return store.NewStorageError("file", "update", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}

	if err := fn(snap); err != nil {
		s.logger.DebugContext(ctx, "mutator aborted file store update", "error", err)
		return err
	}

	return s.save(snap)
}

// load reads and decodes the state document. Callers must hold s.mu.
func (s *Store) load() (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewSnapshot(), nil
		}
		return nil, store.NewStorageError("file", "read", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, store.NewStorageError("file", "read", fmt.Errorf("corrupt state document: %w", err))
	}

	return &snap, nil
}

// save encodes and persists the state document via a temp file and rename,
// so a crash mid-write never leaves a truncated document behind. Callers
// must hold s.mu.
func (s *Store) save(snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return store.NewStorageError("file", "write", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return store.NewStorageError("file", "write", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return store.NewStorageError("file", "write", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return store.NewStorageError("file", "write", err)
	}

	return nil
}
