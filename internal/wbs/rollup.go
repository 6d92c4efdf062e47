package wbs

import (
	"fmt"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Row is an item annotated with the values derived from its subtree. Rows
// are recomputed from the current store on every read.
type Row struct {
	Item     *domain.WBSItem
	Depth    int
	Leaf     bool
	Progress int
	Status   domain.ItemStatus
	Executed decimal.Decimal
}

// AggregateStats is the project-level summary. TotalBudget and AvgProgress
// consider root items only; the counts cover every item.
type AggregateStats struct {
	TotalBudget  decimal.Decimal
	TotalItems   int
	Completed    int
	InProgress   int
	NotStarted   int
	AvgProgress  float64
	CountsByType map[domain.ItemType]int
}

// ExecutedValue returns budget x progress for a leaf, and for any other item
// the sum over its transitive leaves. Intermediate budgets are not added.
func (s *Store) ExecutedValue(id string) (decimal.Decimal, error) {
	if !s.Has(id) {
		return decimal.Zero, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return s.executed(id, nil), nil
}

// DerivedProgress returns the stored progress of a leaf. For an item with
// children it is the budget-weighted completion of its leaves, bounded to
// 100, and 0 when the item has no budget to weigh against.
func (s *Store) DerivedProgress(id string) (int, error) {
	if !s.Has(id) {
		return 0, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return s.progress(id, nil), nil
}

// executed computes the executed value of id. memo, when non-nil, caches
// results for the duration of a single read.
func (s *Store) executed(id string, memo map[string]decimal.Decimal) decimal.Decimal {
	if memo != nil {
		if v, ok := memo[id]; ok {
			return v
		}
	}
	var v decimal.Decimal
	if kids := s.children[id]; len(kids) == 0 {
		it := s.items[id]
		v = it.Budget.Mul(decimal.NewFromInt(int64(it.Progress))).Div(hundred)
	} else {
		for _, c := range kids {
			v = v.Add(s.executed(c, memo))
		}
	}
	if memo != nil {
		memo[id] = v
	}
	return v
}

func (s *Store) progress(id string, memo map[string]decimal.Decimal) int {
	it := s.items[id]
	if s.IsLeaf(id) {
		return it.Progress
	}
	if !it.Budget.IsPositive() {
		return 0
	}
	pct := s.executed(id, memo).Mul(hundred).Div(it.Budget)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return int(pct.Round(0).IntPart())
}

// Rows returns the flattened forest annotated with derived values.
func (s *Store) Rows() []Row {
	memo := make(map[string]decimal.Decimal, len(s.items))
	rows := make([]Row, 0, len(s.items))
	for depth, it := range s.Walk() {
		leaf := s.IsLeaf(it.ID)
		r := Row{
			Item:     it,
			Depth:    depth,
			Leaf:     leaf,
			Progress: s.progress(it.ID, memo),
			Status:   it.Status,
			Executed: s.executed(it.ID, memo),
		}
		if !leaf {
			r.Status = domain.StatusForProgress(r.Progress, it.Status)
		}
		rows = append(rows, r)
	}
	return rows
}

// Aggregate computes the project summary over the whole forest.
func (s *Store) Aggregate() AggregateStats {
	stats := AggregateStats{CountsByType: make(map[domain.ItemType]int)}
	for _, r := range s.Rows() {
		stats.TotalItems++
		stats.CountsByType[r.Item.Type]++
		switch category(r.Status) {
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusNotStarted:
			stats.NotStarted++
		default:
			stats.InProgress++
		}
	}

	roots := s.children[rootKey]
	if len(roots) == 0 {
		return stats
	}
	var sum int
	for _, id := range roots {
		stats.TotalBudget = stats.TotalBudget.Add(s.items[id].Budget)
		sum += s.progress(id, nil)
	}
	stats.AvgProgress = float64(sum) / float64(len(roots))
	return stats
}

// category folds a status into completed, not_started or in_progress.
// Paused, blocked and cancelled items have been started and count as in
// progress.
func category(st domain.ItemStatus) domain.ItemStatus {
	switch st {
	case domain.StatusCompleted, domain.StatusNotStarted:
		return st
	default:
		return domain.StatusInProgress
	}
}
