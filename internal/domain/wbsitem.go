package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WBSItem is a node of the work breakdown structure. Budget is the planned
// cost of the item alone; Progress is authoritative only for leaves.
type WBSItem struct {
	ID          string
	EAPID       string
	ParentID    *string
	Code        string
	Type        ItemType
	Name        string
	Description string
	Responsible string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      decimal.Decimal
	Progress    int
	Status      ItemStatus
	Critical    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot reports whether the item has no parent.
func (w *WBSItem) IsRoot() bool {
	return w.ParentID == nil
}

// Validate checks the field-level invariants of a single item.
func (w *WBSItem) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if !ValidItemTypes[string(w.Type)] {
		return fmt.Errorf("%w: invalid type %q", ErrInvalidItem, w.Type)
	}
	if w.Status != "" && !ValidItemStatuses[string(w.Status)] {
		return fmt.Errorf("%w: invalid status %q", ErrInvalidItem, w.Status)
	}
	if w.Budget.IsNegative() {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidItem)
	}
	if w.Progress < 0 || w.Progress > 100 {
		return fmt.Errorf("%w: progress %d outside 0-100", ErrInvalidItem, w.Progress)
	}
	if w.StartDate != nil && w.EndDate != nil && w.EndDate.Before(*w.StartDate) {
		return fmt.Errorf("%w: end date %s precedes start date %s", ErrInvalidItem,
			w.EndDate.Format(DateLayout), w.StartDate.Format(DateLayout))
	}
	return nil
}

// Clone returns a copy that shares no pointers with w.
func (w *WBSItem) Clone() *WBSItem {
	c := *w
	if w.ParentID != nil {
		p := *w.ParentID
		c.ParentID = &p
	}
	if w.StartDate != nil {
		s := *w.StartDate
		c.StartDate = &s
	}
	if w.EndDate != nil {
		e := *w.EndDate
		c.EndDate = &e
	}
	return &c
}

// DateLayout is the calendar-date format used for item dates.
const DateLayout = "2006-01-02"
