package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent, so the
// whole list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS form; a replayed column
			// addition fails with "duplicate column name".
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS eaps (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_eaps_short_id ON eaps(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS wbs_items (
		id          TEXT PRIMARY KEY,
		eap_id      TEXT NOT NULL REFERENCES eaps(id) ON DELETE CASCADE,
		parent_id   TEXT REFERENCES wbs_items(id) ON DELETE CASCADE,
		code        TEXT NOT NULL,
		type        TEXT NOT NULL
		            CHECK(type IN ('phase','deliverable','activity','task')),
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		end_date    TEXT,
		budget      TEXT NOT NULL DEFAULT '0',
		progress    INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		status      TEXT NOT NULL DEFAULT 'not_started'
		            CHECK(status IN ('not_started','in_progress','completed','paused','cancelled','blocked')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE (eap_id, code)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_items_eap ON wbs_items(eap_id)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_items_parent ON wbs_items(parent_id)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		id             TEXT PRIMARY KEY,
		eap_id         TEXT NOT NULL REFERENCES eaps(id) ON DELETE CASCADE,
		predecessor_id TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		successor_id   TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		type           TEXT NOT NULL DEFAULT 'FS'
		               CHECK(type IN ('FS','SS','FF','SF')),
		lag_days       INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		UNIQUE (predecessor_id, successor_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dependencies_eap ON dependencies(eap_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_successor ON dependencies(successor_id)`,

	// Ownership and item accountability
	`ALTER TABLE eaps ADD COLUMN created_by TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE wbs_items ADD COLUMN responsible TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE wbs_items ADD COLUMN critical INTEGER NOT NULL DEFAULT 0`,
}
