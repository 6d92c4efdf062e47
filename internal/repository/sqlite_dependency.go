package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/eap/internal/db"
	"github.com/alexanderramin/eap/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

const dependencyColumns = `id, eap_id, predecessor_id, successor_id, type, lag_days, created_at`

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO dependencies (` + dependencyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.EAPID,
		d.PredecessorID,
		d.SuccessorID,
		string(d.Type),
		d.LagDays,
		d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) GetByID(ctx context.Context, id string) (*domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies WHERE id = ?`
	return r.scanDependency(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteDependencyRepo) ListByEAP(ctx context.Context, eapID string) ([]*domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies WHERE eap_id = ? ORDER BY created_at, rowid`
	return r.list(ctx, "listing dependencies", query, eapID)
}

func (r *SQLiteDependencyRepo) ListPredecessors(ctx context.Context, itemID string) ([]*domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies WHERE successor_id = ? ORDER BY created_at, rowid`
	return r.list(ctx, "listing predecessors", query, itemID)
}

func (r *SQLiteDependencyRepo) ListSuccessors(ctx context.Context, itemID string) ([]*domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies WHERE predecessor_id = ? ORDER BY created_at, rowid`
	return r.list(ctx, "listing successors", query, itemID)
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dependencies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return requireAffected(res, "deleting dependency")
}

func (r *SQLiteDependencyRepo) list(ctx context.Context, what, query string, args ...any) ([]*domain.Dependency, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	var deps []*domain.Dependency
	for rows.Next() {
		d, err := r.scanDependency(rows)
		if err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return deps, nil
}

func (r *SQLiteDependencyRepo) scanDependency(row rowScanner) (*domain.Dependency, error) {
	var d domain.Dependency
	var typeStr, createdAtStr string

	err := row.Scan(&d.ID, &d.EAPID, &d.PredecessorID, &d.SuccessorID, &typeStr, &d.LagDays, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("dependency: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning dependency: %w", err)
	}
	d.Type = domain.DependencyType(typeStr)
	if d.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, err
	}
	return &d, nil
}
