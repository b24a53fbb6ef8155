package db

import (
	"fmt"
	"log"
)

// Schema statements, applied in order at startup. All idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS organize_runs (
		id          UUID PRIMARY KEY,
		kind        TEXT NOT NULL,
		folder_id   TEXT NOT NULL,
		folder_name TEXT NOT NULL,
		dry_run     BOOLEAN NOT NULL DEFAULT FALSE,
		status      TEXT NOT NULL,
		error       TEXT,
		logs        JSONB NOT NULL DEFAULT '[]',
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_organize_runs_started_at
		ON organize_runs (started_at DESC)`,
}

func Migrate(db *DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	log.Printf("db: schema up to date (%d statements)", len(migrations))
	return nil
}
