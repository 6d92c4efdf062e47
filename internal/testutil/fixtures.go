package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testShortIDCounter atomic.Int64

// Date returns midnight UTC on the given calendar day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EAP options
type EAPOption func(*domain.EAP)

func WithShortID(id string) EAPOption {
	return func(e *domain.EAP) {
		e.ShortID = id
	}
}

func WithCreatedBy(user string) EAPOption {
	return func(e *domain.EAP) {
		e.CreatedBy = user
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestEAP(name string, opts ...EAPOption) *domain.EAP {
	now := time.Now().UTC()
	e := &domain.EAP{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		CreatedBy: "tester",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WBSItem options
type ItemOption func(*domain.WBSItem)

func WithParent(id string) ItemOption {
	return func(w *domain.WBSItem) {
		w.ParentID = &id
	}
}

func WithCode(code string) ItemOption {
	return func(w *domain.WBSItem) {
		w.Code = code
	}
}

func WithItemType(t domain.ItemType) ItemOption {
	return func(w *domain.WBSItem) {
		w.Type = t
	}
}

func WithBudget(amount int64) ItemOption {
	return func(w *domain.WBSItem) {
		w.Budget = decimal.NewFromInt(amount)
	}
}

func WithProgress(p int) ItemOption {
	return func(w *domain.WBSItem) {
		w.Progress = p
	}
}

func WithStatus(s domain.ItemStatus) ItemOption {
	return func(w *domain.WBSItem) {
		w.Status = s
	}
}

func WithDates(start, end time.Time) ItemOption {
	return func(w *domain.WBSItem) {
		w.StartDate = &start
		w.EndDate = &end
	}
}

func WithEndDate(end time.Time) ItemOption {
	return func(w *domain.WBSItem) {
		w.EndDate = &end
	}
}

func WithCritical() ItemOption {
	return func(w *domain.WBSItem) {
		w.Critical = true
	}
}

func NewTestItem(eapID, name string, opts ...ItemOption) *domain.WBSItem {
	now := time.Now().UTC()
	w := &domain.WBSItem{
		ID:        uuid.New().String(),
		EAPID:     eapID,
		Name:      name,
		Type:      domain.ItemTask,
		Status:    domain.StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dependency options
type DependencyOption func(*domain.Dependency)

func WithDependencyType(t domain.DependencyType) DependencyOption {
	return func(d *domain.Dependency) {
		d.Type = t
	}
}

func WithLag(days int) DependencyOption {
	return func(d *domain.Dependency) {
		d.LagDays = days
	}
}

func NewTestDependency(eapID, predecessorID, successorID string, opts ...DependencyOption) *domain.Dependency {
	d := &domain.Dependency{
		ID:            uuid.New().String(),
		EAPID:         eapID,
		PredecessorID: predecessorID,
		SuccessorID:   successorID,
		Type:          domain.FinishToStart,
		CreatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
