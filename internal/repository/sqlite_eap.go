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

// SQLiteEAPRepo implements EAPRepo using a SQLite database.
type SQLiteEAPRepo struct {
	db db.DBTX
}

// NewSQLiteEAPRepo creates a new SQLiteEAPRepo.
func NewSQLiteEAPRepo(conn db.DBTX) *SQLiteEAPRepo {
	return &SQLiteEAPRepo{db: conn}
}

const eapColumns = `id, short_id, name, description, created_by, created_at, updated_at`

func (r *SQLiteEAPRepo) Create(ctx context.Context, e *domain.EAP) error {
	query := `INSERT INTO eaps (` + eapColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ShortID,
		e.Name,
		e.Description,
		e.CreatedBy,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting eap: %w", err)
	}
	return nil
}

func (r *SQLiteEAPRepo) GetByID(ctx context.Context, id string) (*domain.EAP, error) {
	query := `SELECT ` + eapColumns + ` FROM eaps WHERE id = ?`
	return r.scanEAP(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEAPRepo) GetByShortID(ctx context.Context, shortID string) (*domain.EAP, error) {
	query := `SELECT ` + eapColumns + ` FROM eaps WHERE UPPER(short_id) = UPPER(?)`
	return r.scanEAP(r.db.QueryRowContext(ctx, query, shortID))
}

func (r *SQLiteEAPRepo) List(ctx context.Context) ([]*domain.EAP, error) {
	query := `SELECT ` + eapColumns + ` FROM eaps ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing eaps: %w", err)
	}
	defer rows.Close()

	var eaps []*domain.EAP
	for rows.Next() {
		e, err := r.scanEAP(rows)
		if err != nil {
			return nil, err
		}
		eaps = append(eaps, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating eaps: %w", err)
	}
	return eaps, nil
}

func (r *SQLiteEAPRepo) Update(ctx context.Context, e *domain.EAP) error {
	query := `UPDATE eaps SET short_id = ?, name = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.ShortID,
		e.Name,
		e.Description,
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating eap: %w", err)
	}
	return requireAffected(res, "updating eap")
}

// Delete removes an EAP; items and dependencies go with it through the
// foreign key cascade.
func (r *SQLiteEAPRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM eaps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting eap: %w", err)
	}
	return requireAffected(res, "deleting eap")
}

func (r *SQLiteEAPRepo) scanEAP(row rowScanner) (*domain.EAP, error) {
	var e domain.EAP
	var createdAtStr, updatedAtStr string

	err := row.Scan(&e.ID, &e.ShortID, &e.Name, &e.Description, &e.CreatedBy, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("eap: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning eap: %w", err)
	}

	if e.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, err
	}
	return &e, nil
}
