package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent schema statements, run in order on every
// startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cookies (
		server     TEXT NOT NULL,
		name       TEXT NOT NULL,
		value      TEXT NOT NULL,
		path       TEXT NOT NULL DEFAULT '/',
		expires    TEXT,
		http_only  INTEGER NOT NULL DEFAULT 0,
		secure     INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (server, name)
	)`,
	`CREATE TABLE IF NOT EXISTS identities (
		server     TEXT PRIMARY KEY,
		user_id    INTEGER NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
