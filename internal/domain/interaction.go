package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Interaction validation errors
var (
	ErrInteractionIDEmpty      = errors.New("interaction ID cannot be empty")
	ErrInteractionAccountEmpty = errors.New("interaction account ID cannot be empty")
	ErrInteractionKindEmpty    = errors.New("interaction kind cannot be empty")
	ErrInteractionMetadata     = errors.New("interaction metadata must be valid JSON")
)

// InteractionRecord is an append-only history entry. Records are immutable
// once created and ordered by CreatedAt. Metadata is a free-form JSON
// payload whose shape depends on Kind.
type InteractionRecord struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"account_id"`
	Kind      string          `json:"kind"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewInteractionRecord creates an InteractionRecord with a fresh ID and
// timestamp. Returns an error if validation fails.
func NewInteractionRecord(accountID uuid.UUID, kind string, metadata json.RawMessage) (*InteractionRecord, error) {
	rec := &InteractionRecord{
		ID:        uuid.New(),
		AccountID: accountID,
		Kind:      kind,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the InteractionRecord has valid data.
func (r *InteractionRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInteractionIDEmpty
	}

	if r.AccountID == uuid.Nil {
		return ErrInteractionAccountEmpty
	}

	if r.Kind == "" {
		return ErrInteractionKindEmpty
	}

	if len(r.Metadata) > 0 {
		var js json.RawMessage
		if err := json.Unmarshal(r.Metadata, &js); err != nil {
			return ErrInteractionMetadata
		}
	}

	return nil
}
