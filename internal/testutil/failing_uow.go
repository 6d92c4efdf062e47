package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/eap/internal/db"
)

// FailingWriteUoW behaves like the SQLite unit of work except that the
// FailAt-th write (1-based) inside each transaction returns Err instead of
// reaching the database. Reads are never intercepted.
type FailingWriteUoW struct {
	DB     *sql.DB
	FailAt int
	Err    error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, failAt: u.FailAt, err: u.Err})
	})
}

type failingWrites struct {
	db.DBTX
	writes int
	failAt int
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failAt {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
