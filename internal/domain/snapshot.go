package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Snapshot is the complete in-memory representation of the four persisted
// collections at one instant. Store mutators receive a Snapshot, mutate it in
// place, and hand it back for atomic persistence; no component keeps a
// long-lived copy of its own.
type Snapshot struct {
	Accounts    []Account           `json:"accounts"`
	Preferences []Preferences       `json:"preferences"`
	Progress    []ProgressRecord    `json:"progress"`
	History     []InteractionRecord `json:"history"`
}

// NewSnapshot returns an empty snapshot with all four collections allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Accounts:    []Account{},
		Preferences: []Preferences{},
		Progress:    []ProgressRecord{},
		History:     []InteractionRecord{},
	}
}

// Clone returns a deep copy of the snapshot. Backends hand out clones so a
// caller can never alias the store's internal state.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Accounts:    make([]Account, len(s.Accounts)),
		Preferences: make([]Preferences, len(s.Preferences)),
		Progress:    make([]ProgressRecord, len(s.Progress)),
		History:     make([]InteractionRecord, len(s.History)),
	}

	copy(out.Accounts, s.Accounts)
	copy(out.Preferences, s.Preferences)
	copy(out.Progress, s.Progress)

	for i, rec := range s.History {
		cloned := rec
		if rec.Metadata != nil {
			cloned.Metadata = append([]byte(nil), rec.Metadata...)
		}
		out.History[i] = cloned
	}

	return out
}

// FindAccount returns a pointer into the snapshot's account collection, or
// nil if no account has the given ID.
func (s *Snapshot) FindAccount(id uuid.UUID) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i]
		}
	}
	return nil
}

// FindAccountByEmail returns a pointer into the snapshot's account
// collection, or nil if no account has the given email.
func (s *Snapshot) FindAccountByEmail(email string) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].Email == email {
			return &s.Accounts[i]
		}
	}
	return nil
}

// FindPreferences returns a pointer to the preferences record owned by the
// given account, or nil if none exists.
func (s *Snapshot) FindPreferences(accountID uuid.UUID) *Preferences {
	for i := range s.Preferences {
		if s.Preferences[i].AccountID == accountID {
			return &s.Preferences[i]
		}
	}
	return nil
}

// FindProgress returns a pointer to the unique progress record for the
// (account, topic, level) tuple, or nil if none exists.
func (s *Snapshot) FindProgress(accountID uuid.UUID, topicID string, level Level) *ProgressRecord {
	for i := range s.Progress {
		p := &s.Progress[i]
		if p.AccountID == accountID && p.TopicID == topicID && p.Level == level {
			return p
		}
	}
	return nil
}

// ProgressFor returns all progress records for one account, sorted by topic
// then level order.
func (s *Snapshot) ProgressFor(accountID uuid.UUID) []ProgressRecord {
	out := []ProgressRecord{}
	for _, p := range s.Progress {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TopicID != out[j].TopicID {
			return out[i].TopicID < out[j].TopicID
		}
		return levelOrder(out[i].Level) < levelOrder(out[j].Level)
	})
	return out
}

// HistoryFor returns all interaction records for one account in timestamp
// order, oldest first.
func (s *Snapshot) HistoryFor(accountID uuid.UUID) []InteractionRecord {
	out := []InteractionRecord{}
	for _, rec := range s.History {
		if rec.AccountID == accountID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// AppendHistory appends an interaction record, keeping the collection in
// timestamp order.
func (s *Snapshot) AppendHistory(rec InteractionRecord) {
	s.History = append(s.History, rec)
	sort.SliceStable(s.History, func(i, j int) bool {
		return s.History[i].CreatedAt.Before(s.History[j].CreatedAt)
	})
}

func levelOrder(l Level) int {
	for i, known := range Levels {
		if known == l {
			return i
		}
	}
	return len(Levels)
}
