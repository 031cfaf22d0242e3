package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Migration is one schema version.
type Migration struct {
	Version int
	UpSQL   string
	DownSQL string
}

var migrations = []Migration{
	{
		Version: 1,
		UpSQL: `
CREATE TABLE IF NOT EXISTS preferences (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL,
	total_entries INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	campaign_key TEXT NOT NULL,
	campaign_name TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	severity TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL DEFAULT '',
	started_at TEXT NOT NULL,
	ended_at TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	total INTEGER NOT NULL,
	submitted INTEGER NOT NULL,
	accepted INTEGER NOT NULL,
	worth_gained INTEGER NOT NULL,
	report TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_ended_at ON runs(ended_at);
`,
		DownSQL: `
DROP INDEX IF EXISTS runs_ended_at;
DROP TABLE IF EXISTS runs;
DROP TABLE IF EXISTS preferences;
`,
	},
	{
		Version: 2,
		UpSQL: `
ALTER TABLE runs ADD COLUMN dry_run INTEGER NOT NULL DEFAULT 0;
CREATE INDEX IF NOT EXISTS runs_campaign_key ON runs(campaign_key, ended_at);
`,
		DownSQL: `
DROP INDEX IF EXISTS runs_campaign_key;
`,
	},
}

// ApplyMigrations brings db to the latest schema version.
// Applied versions are skipped.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations(version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM schema_migrations WHERE version = ?`, m.Version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check migration %d: %w", m.Version, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version, applied_at) VALUES (?, datetime('now'))`, m.Version); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// SchemaVersion returns the highest applied version, 0 for a
// fresh database.
func SchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v sql.NullInt64
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(v.Int64), nil
}

// RollbackAll reverts every migration, newest first.
func RollbackAll(ctx context.Context, db *sql.DB) error {
	for i := len(migrations) - 1; i >= 0; i-- {
		m := migrations[i]
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin rollback %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.DownSQL); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("failed to roll back migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = ?`, m.Version); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("failed to unrecord migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit rollback %d: %w", m.Version, err)
		}
	}
	return nil
}
