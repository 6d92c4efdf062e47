package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// BusyTimeoutMillis is how long a connection waits on a locked database
// before failing with SQLITE_BUSY.
const BusyTimeoutMillis = 5000

// connPragmas run on every connection the pool opens. Cascading deletes of
// WBS subtrees rely on foreign_keys being on for all of them.
var connPragmas = []string{
	fmt.Sprintf("busy_timeout(%d)", BusyTimeoutMillis),
	"foreign_keys(1)",
	"journal_mode(WAL)",
}

// DSN builds the driver data source name for an EAP database at path.
// Transactions begin IMMEDIATE: services read a snapshot and then write in
// the same transaction, and a deferred lock upgrade would fail with
// SQLITE_BUSY instead of waiting.
func DSN(path string) string {
	q := url.Values{"_pragma": connPragmas, "_txlock": {"immediate"}}
	return path + "?" + q.Encode()
}

// OpenDB opens the EAP database at path, creating its directory when
// needed, and applies the schema. MemoryPath yields a single-connection
// in-memory database.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if path == MemoryPath {
		// Each pooled connection would see its own empty database.
		database.SetMaxOpenConns(1)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("connecting to %s: %w", path, err)
	}
	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return database, nil
}
