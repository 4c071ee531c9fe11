package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/service/auth"
	"github.com/simverse/simverse-api/internal/store"
)

// AccountService handles account registration, authentication, and
// per-account preferences. Every write that touches more than one collection
// runs inside a single store Update so the cross-entity invariants hold.
type AccountService struct {
	store  store.StateStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(s store.StateStore, hasher auth.PasswordHasher, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		store:  s,
		hasher: hasher,
		logger: logger.With("component", "account_service"),
	}
}

// Register creates a new account and its default preferences record in one
// atomic update. Returns store.ErrEmailExists if the email is already taken.
func (s *AccountService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	if err := domain.ValidatePasswordLength(password); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := domain.NewAccount(email, hashed)
	if err != nil {
		return nil, err
	}

	created, err := store.UpdateResult(ctx, s.store, func(snap *domain.Snapshot) (*domain.Account, error) {
		if snap.FindAccountByEmail(account.Email) != nil {
			return nil, store.ErrEmailExists
		}
		snap.Accounts = append(snap.Accounts, *account)
		snap.Preferences = append(snap.Preferences, domain.DefaultPreferences(account.ID))
		return account, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "account registered", "account_id", created.ID)
	return created, nil
}

// Authenticate verifies an email/password pair and records the login time.
// Returns auth.ErrInvalidCredentials on any mismatch; the same error covers
// unknown emails so callers cannot probe for registered addresses.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	snap, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	account := snap.FindAccountByEmail(email)
	if account == nil {
		return nil, auth.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(account.HashedPassword, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return store.UpdateResult(ctx, s.store, func(snap *domain.Snapshot) (*domain.Account, error) {
		current := snap.FindAccount(account.ID)
		if current == nil {
			return nil, store.ErrAccountNotFound
		}
		current.TouchLogin()
		result := *current
		return &result, nil
	})
}

// GetAccount returns the account with the given ID.
func (s *AccountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	snap, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	account := snap.FindAccount(accountID)
	if account == nil {
		return nil, store.ErrAccountNotFound
	}

	result := *account
	return &result, nil
}

// GetPreferences returns the preferences record owned by the account.
func (s *AccountService) GetPreferences(ctx context.Context, accountID uuid.UUID) (*domain.Preferences, error) {
	snap, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	prefs := snap.FindPreferences(accountID)
	if prefs == nil {
		return nil, store.ErrPreferencesNotFound
	}

	result := *prefs
	return &result, nil
}

// UpdatePreferences replaces the account's interaction mode and voice
// settings. The AccountID and UpdatedAt fields of the input are ignored.
func (s *AccountService) UpdatePreferences(ctx context.Context, accountID uuid.UUID, mode domain.InteractionMode, voice domain.VoiceSettings) (*domain.Preferences, error) {
	candidate := domain.Preferences{
		AccountID: accountID,
		Mode:      mode,
		Voice:     voice,
		UpdatedAt: time.Now().UTC(),
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	return store.UpdateResult(ctx, s.store, func(snap *domain.Snapshot) (*domain.Preferences, error) {
		prefs := snap.FindPreferences(accountID)
		if prefs == nil {
			return nil, store.ErrPreferencesNotFound
		}
		*prefs = candidate
		result := *prefs
		return &result, nil
	})
}
