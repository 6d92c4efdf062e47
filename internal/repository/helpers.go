package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/shopspring/decimal"
)

// parseDate reads an optional YYYY-MM-DD column. NULL and empty are nil; a
// value that does not parse is an error rather than a dropped date.
func parseDate(s sql.NullString, column string) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", column, s.String, err)
	}
	return &t, nil
}

// formatDate stores an optional calendar date as YYYY-MM-DD, or NULL.
func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateLayout)
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// parseBudget reads a money amount stored as its exact decimal text.
func parseBudget(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing budget %q: %w", s, err)
	}
	return d, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// requireAffected maps a write that touched no row to ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
