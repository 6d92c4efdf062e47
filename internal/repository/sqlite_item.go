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

// SQLiteItemRepo implements ItemRepo using a SQLite database.
type SQLiteItemRepo struct {
	db db.DBTX
}

// NewSQLiteItemRepo creates a new SQLiteItemRepo.
func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: conn}
}

const itemColumns = `id, eap_id, parent_id, code, type, name, description, responsible,
	start_date, end_date, budget, progress, status, critical, created_at, updated_at`

func (r *SQLiteItemRepo) Create(ctx context.Context, it *domain.WBSItem) error {
	query := `INSERT INTO wbs_items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		it.ID,
		it.EAPID,
		nullableString(it.ParentID),
		it.Code,
		string(it.Type),
		it.Name,
		it.Description,
		it.Responsible,
		formatDate(it.StartDate),
		formatDate(it.EndDate),
		it.Budget.String(),
		it.Progress,
		string(it.Status),
		boolToInt(it.Critical),
		it.CreatedAt.Format(time.RFC3339),
		it.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting wbs item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id string) (*domain.WBSItem, error) {
	query := `SELECT ` + itemColumns + ` FROM wbs_items WHERE id = ?`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteItemRepo) ListByEAP(ctx context.Context, eapID string) ([]*domain.WBSItem, error) {
	query := `SELECT ` + itemColumns + ` FROM wbs_items WHERE eap_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, eapID)
	if err != nil {
		return nil, fmt.Errorf("listing wbs items: %w", err)
	}
	defer rows.Close()

	var items []*domain.WBSItem
	for rows.Next() {
		it, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs items: %w", err)
	}
	return items, nil
}

// Update writes every mutable column. Parent, code and EAP are fixed at
// creation and are not touched.
func (r *SQLiteItemRepo) Update(ctx context.Context, it *domain.WBSItem) error {
	query := `UPDATE wbs_items SET type = ?, name = ?, description = ?, responsible = ?,
		start_date = ?, end_date = ?, budget = ?, progress = ?, status = ?, critical = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(it.Type),
		it.Name,
		it.Description,
		it.Responsible,
		formatDate(it.StartDate),
		formatDate(it.EndDate),
		it.Budget.String(),
		it.Progress,
		string(it.Status),
		boolToInt(it.Critical),
		it.UpdatedAt.Format(time.RFC3339),
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating wbs item: %w", err)
	}
	return requireAffected(res, "updating wbs item")
}

// Delete removes one item. Descendants and touching dependencies are removed
// by the foreign key cascade.
func (r *SQLiteItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wbs_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting wbs item: %w", err)
	}
	return requireAffected(res, "deleting wbs item")
}

func (r *SQLiteItemRepo) scanItem(row rowScanner) (*domain.WBSItem, error) {
	var it domain.WBSItem
	var parentID, startStr, endStr sql.NullString
	var typeStr, statusStr, budgetStr, createdAtStr, updatedAtStr string
	var critical int

	err := row.Scan(
		&it.ID, &it.EAPID, &parentID, &it.Code, &typeStr,
		&it.Name, &it.Description, &it.Responsible,
		&startStr, &endStr, &budgetStr, &it.Progress, &statusStr, &critical,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("wbs item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning wbs item: %w", err)
	}

	it.ParentID = stringPtr(parentID)
	it.Type = domain.ItemType(typeStr)
	it.Status = domain.ItemStatus(statusStr)
	it.Critical = intToBool(critical)
	if it.StartDate, err = parseDate(startStr, "start_date"); err != nil {
		return nil, fmt.Errorf("wbs item %s: %w", it.ID, err)
	}
	if it.EndDate, err = parseDate(endStr, "end_date"); err != nil {
		return nil, fmt.Errorf("wbs item %s: %w", it.ID, err)
	}
	if it.Budget, err = parseBudget(budgetStr); err != nil {
		return nil, err
	}
	if it.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, err
	}
	if it.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, err
	}
	return &it, nil
}
