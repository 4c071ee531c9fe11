package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/store"
)

// loadSnapshot reads all four collections from the database into a fresh
// snapshot. It works against either a connection or an open transaction.
func loadSnapshot(ctx context.Context, q store.DBTX) (*domain.Snapshot, error) {
	snap := domain.NewSnapshot()

	rows, err := q.QueryContext(ctx,
		`SELECT id, email, hashed_password, created_at, last_login_at
		 FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.HashedPassword, &a.CreatedAt, &a.LastLoginAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		snap.Accounts = append(snap.Accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	prefRows, err := q.QueryContext(ctx,
		`SELECT account_id, mode, narration_enabled, interaction_enabled, navigation_enabled,
		        speech_rate, voice_name, updated_at
		 FROM preferences ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer func() { _ = prefRows.Close() }()
	for prefRows.Next() {
		var p domain.Preferences
		if err := prefRows.Scan(&p.AccountID, &p.Mode,
			&p.Voice.NarrationEnabled, &p.Voice.InteractionEnabled, &p.Voice.NavigationEnabled,
			&p.Voice.SpeechRate, &p.Voice.VoiceName, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan preferences: %w", err)
		}
		snap.Preferences = append(snap.Preferences, p)
	}
	if err := prefRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}

	progRows, err := q.QueryContext(ctx,
		`SELECT account_id, topic_id, level, status, score, seconds_spent, updated_at
		 FROM progress ORDER BY account_id, topic_id, level`)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer func() { _ = progRows.Close() }()
	for progRows.Next() {
		var p domain.ProgressRecord
		if err := progRows.Scan(&p.AccountID, &p.TopicID, &p.Level, &p.Status,
			&p.Score, &p.SecondsSpent, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		snap.Progress = append(snap.Progress, p)
	}
	if err := progRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}

	histRows, err := q.QueryContext(ctx,
		`SELECT id, account_id, kind, metadata, created_at
		 FROM history ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = histRows.Close() }()
	for histRows.Next() {
		var rec domain.InteractionRecord
		var metadata []byte
		if err := histRows.Scan(&rec.ID, &rec.AccountID, &rec.Kind, &metadata, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if len(metadata) > 0 {
			rec.Metadata = json.RawMessage(metadata)
		}
		snap.History = append(snap.History, rec)
	}
	if err := histRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return snap, nil
}

// replaceSnapshot clears all four tables and reinserts the snapshot's
// contents. It must run inside the store-wide advisory lock; the caller's
// transaction makes the clear-and-reinsert atomic.
func replaceSnapshot(ctx context.Context, q store.DBTX, snap *domain.Snapshot) error {
	// Children first so foreign keys never dangle mid-transaction.
	for _, table := range []string{"history", "progress", "preferences", "accounts"} {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, a := range snap.Accounts {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO accounts (id, email, hashed_password, created_at, last_login_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			a.ID, a.Email, a.HashedPassword, a.CreatedAt, a.LastLoginAt); err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
	}

	for _, p := range snap.Preferences {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO preferences (account_id, mode, narration_enabled, interaction_enabled,
			                          navigation_enabled, speech_rate, voice_name, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.AccountID, p.Mode,
			p.Voice.NarrationEnabled, p.Voice.InteractionEnabled, p.Voice.NavigationEnabled,
			p.Voice.SpeechRate, p.Voice.VoiceName, p.UpdatedAt); err != nil {
			return fmt.Errorf("insert preferences: %w", err)
		}
	}

	for _, p := range snap.Progress {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO progress (account_id, topic_id, level, status, score, seconds_spent, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.AccountID, p.TopicID, p.Level, p.Status, p.Score, p.SecondsSpent, p.UpdatedAt); err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
	}

	for _, rec := range snap.History {
		var metadata any
		if len(rec.Metadata) > 0 {
			metadata = []byte(rec.Metadata)
		}
		if _, err := q.ExecContext(ctx,
			`INSERT INTO history (id, account_id, kind, metadata, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			rec.ID, rec.AccountID, rec.Kind, metadata, rec.CreatedAt); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
	}

	return nil
}
