package db

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN_CarriesConnectionPragmas(t *testing.T) {
	dsn := DSN("/tmp/eap.db")
	path, query, ok := strings.Cut(dsn, "?")
	require.True(t, ok)
	assert.Equal(t, "/tmp/eap.db", path)

	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, []string{"busy_timeout(5000)", "foreign_keys(1)", "journal_mode(WAL)"}, q["_pragma"])
	assert.Equal(t, "immediate", q.Get("_txlock"))
}

func TestOpenDB_EveryConnectionHasPragmas(t *testing.T) {
	ctx := context.Background()
	database, err := OpenDB(filepath.Join(t.TempDir(), "nested", "eap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// Hold one connection so the pool has to open a second one.
	held, err := database.Conn(ctx)
	require.NoError(t, err)
	defer held.Close()
	second, err := database.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for name, c := range map[string]DBTX{"held": held, "second": second} {
		var fk, timeout int
		var mode string
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk), name)
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout), name)
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode), name)
		assert.Equal(t, 1, fk, name)
		assert.Equal(t, BusyTimeoutMillis, timeout, name)
		assert.Equal(t, "wal", mode, name)
	}
}

func TestOpenDB_SecondConnectionCascades(t *testing.T) {
	ctx := context.Background()
	database, err := OpenDB(filepath.Join(t.TempDir(), "eap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	seedEAP(t, database, "e1")
	seedItem(t, database, "p", "e1", nil, "1")
	seedItem(t, database, "c", "e1", "p", "1.1")

	held, err := database.Conn(ctx)
	require.NoError(t, err)
	defer held.Close()
	other, err := database.Conn(ctx)
	require.NoError(t, err)
	defer other.Close()

	_, err = other.ExecContext(ctx, `DELETE FROM wbs_items WHERE id = 'p'`)
	require.NoError(t, err)
	assert.Zero(t, count(t, database, "wbs_items"))
}
