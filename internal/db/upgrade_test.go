package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradeFromFirstSchema opens a database created before the
// ownership and accountability columns existed and checks that existing rows
// survive and pick up the column defaults.
func TestMigrate_UpgradeFromFirstSchema(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacy := []string{
		`CREATE TABLE eaps (
			id          TEXT PRIMARY KEY,
			short_id    TEXT NOT NULL DEFAULT '',
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE TABLE wbs_items (
			id          TEXT PRIMARY KEY,
			eap_id      TEXT NOT NULL REFERENCES eaps(id) ON DELETE CASCADE,
			parent_id   TEXT REFERENCES wbs_items(id) ON DELETE CASCADE,
			code        TEXT NOT NULL,
			type        TEXT NOT NULL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_date  TEXT,
			end_date    TEXT,
			budget      TEXT NOT NULL DEFAULT '0',
			progress    INTEGER NOT NULL DEFAULT 0,
			status      TEXT NOT NULL DEFAULT 'not_started',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL,
			UNIQUE (eap_id, code)
		)`,
		`INSERT INTO eaps (id, short_id, name, created_at, updated_at)
			VALUES ('e1', 'OBRA01', 'Obra', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		`INSERT INTO wbs_items (id, eap_id, code, type, name, budget, progress, status, created_at, updated_at)
			VALUES ('i1', 'e1', '1', 'phase', 'Fundação', '1500.50', 40, 'in_progress', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var createdBy string
	require.NoError(t, db.QueryRow(`SELECT created_by FROM eaps WHERE id = 'e1'`).Scan(&createdBy))
	assert.Equal(t, "", createdBy)

	var (
		name, budget, responsible string
		progress, critical        int
	)
	err = db.QueryRow(`SELECT name, budget, progress, responsible, critical FROM wbs_items WHERE id = 'i1'`).
		Scan(&name, &budget, &progress, &responsible, &critical)
	require.NoError(t, err)
	assert.Equal(t, "Fundação", name)
	assert.Equal(t, "1500.50", budget)
	assert.Equal(t, 40, progress)
	assert.Equal(t, "", responsible)
	assert.Equal(t, 0, critical)

	var depTable string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='dependencies'`).Scan(&depTable))

	// Replaying after the upgrade is a no-op.
	require.NoError(t, Migrate(db))
}
