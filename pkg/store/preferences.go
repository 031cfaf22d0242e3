package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"digital.vasic.sweepbot/pkg/settings"
)

// Load returns the saved preferences, or defaults when none were
// saved yet.
func (s *Store) Load(ctx context.Context) (settings.Preferences, error) {
	return loadPreferences(ctx, s.db)
}

// Save replaces the saved preferences.
func (s *Store) Save(ctx context.Context, prefs settings.Preferences) error {
	return savePreferences(ctx, s.db, prefs)
}

// AddEntries adds worth to the total in one transaction and
// returns the new total.
func (s *Store) AddEntries(ctx context.Context, worth int) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	prefs, err := loadPreferences(ctx, tx)
	if err != nil {
		return 0, err
	}
	prefs.TotalEntries += worth
	if err := savePreferences(ctx, tx, prefs); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit entries: %w", err)
	}
	return prefs.TotalEntries, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func loadPreferences(ctx context.Context, q queryer) (settings.Preferences, error) {
	prefs := settings.DefaultPreferences()

	var data string
	err := q.QueryRowContext(ctx, `SELECT data FROM preferences WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("failed to load preferences: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		return settings.DefaultPreferences(), fmt.Errorf("failed to parse preferences: %w", err)
	}
	return prefs, nil
}

func savePreferences(ctx context.Context, q queryer, prefs settings.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	_, err = q.ExecContext(ctx, `
INSERT INTO preferences(id, data, total_entries, updated_at)
VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	data=excluded.data,
	total_entries=excluded.total_entries,
	updated_at=excluded.updated_at
`, string(data), prefs.TotalEntries, ts(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
