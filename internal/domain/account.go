package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account validation errors
var (
	ErrAccountIDEmpty      = errors.New("account ID cannot be empty")
	ErrEmailEmpty          = errors.New("email cannot be empty")
	ErrEmailInvalid        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrHashedPasswordEmpty = errors.New("hashed password cannot be empty")
)

// Account represents a registered learner. An Account owns exactly one
// Preferences record; the two are created together at registration time.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"hashed_password"`
	CreatedAt      time.Time `json:"created_at"`
	LastLoginAt    time.Time `json:"last_login_at"`
}

// NewAccount creates a new Account with the given email and an already-hashed
// credential. It generates a new UUID for the account ID and sets the
// creation timestamp. Returns an error if validation fails.
func NewAccount(email, hashedPassword string) (*Account, error) {
	now := time.Now().UTC()
	account := &Account{
		ID:             uuid.New(),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		LastLoginAt:    now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAccountIDEmpty
	}

	if a.Email == "" {
		return ErrEmailEmpty
	}

	if !validEmailFormat(a.Email) {
		return ErrEmailInvalid
	}

	if a.HashedPassword == "" {
		return ErrHashedPasswordEmpty
	}

	return nil
}

// TouchLogin records a successful login.
func (a *Account) TouchLogin() {
	a.LastLoginAt = time.Now().UTC()
}

// ValidatePasswordLength checks plaintext password length bounds before
// hashing. The upper bound is bcrypt's 72-byte input limit.
func ValidatePasswordLength(password string) error {
	if len(password) < 12 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}

// validEmailFormat performs basic structural validation of an email address:
// a local part, an @, and a domain containing an interior dot.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
