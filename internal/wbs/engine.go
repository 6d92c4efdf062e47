package wbs

import (
	"fmt"
	"time"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine applies the item and dependency mutation contract to one EAP
// snapshot. Each call validates first and mutates only when every check
// passes.
type Engine struct {
	store *Store
	graph *Graph
}

// ItemPatch lists the fields an update may change. Nil fields are left
// unchanged. Parent and code are fixed at creation.
type ItemPatch struct {
	Name        *string
	Description *string
	Responsible *string
	Type        *domain.ItemType
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *decimal.Decimal
	Progress    *int
	Status      *domain.ItemStatus
	Critical    *bool
}

// DeleteResult lists everything removed by a cascading delete.
type DeleteResult struct {
	ItemIDs      []string
	Dependencies []*domain.Dependency
}

// NewEngine builds an engine from a repository snapshot.
func NewEngine(items []*domain.WBSItem, deps []*domain.Dependency) (*Engine, error) {
	store, err := NewStore(items)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	graph, err := NewGraph(store, deps)
	if err != nil {
		return nil, fmt.Errorf("loading dependencies: %w", err)
	}
	return &Engine{store: store, graph: graph}, nil
}

// Store exposes the hierarchy for structural queries.
func (e *Engine) Store() *Store {
	return e.store
}

// Graph exposes the dependency graph for neighbour queries.
func (e *Engine) Graph() *Graph {
	return e.graph
}

// CreateItem assigns an id (when empty), the next sibling code and the status
// implied by the item's progress, then inserts a copy of it. On success the
// caller's item carries the assigned values; on error it is left untouched.
func (e *Engine) CreateItem(it *domain.WBSItem) error {
	code, err := e.store.NextCode(it.ParentID)
	if err != nil {
		return err
	}
	c := it.Clone()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if e.store.Has(c.ID) {
		return fmt.Errorf("%w: item id %s already in use", domain.ErrInvalidItem, c.ID)
	}
	c.Code = code
	c.Progress = domain.ClampProgress(c.Progress)
	c.Status = domain.StatusForProgress(c.Progress, c.Status)
	if err := c.Validate(); err != nil {
		return err
	}
	e.store.insert(c)
	*it = *c.Clone()
	return nil
}

// UpdateItem applies a patch and returns the updated item. Progress and
// status are derived for items with children and cannot be patched there.
func (e *Engine) UpdateItem(id string, p ItemPatch) (*domain.WBSItem, error) {
	cur, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	leaf := e.store.IsLeaf(id)
	if !leaf && (p.Progress != nil || p.Status != nil) {
		return nil, fmt.Errorf("%w: progress of %s is derived from its children", domain.ErrInvalidItem, cur.Code)
	}

	next := cur.Clone()
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Responsible != nil {
		next.Responsible = *p.Responsible
	}
	if p.Type != nil {
		next.Type = *p.Type
	}
	if p.StartDate != nil {
		d := *p.StartDate
		next.StartDate = &d
	}
	if p.EndDate != nil {
		d := *p.EndDate
		next.EndDate = &d
	}
	if p.Budget != nil {
		next.Budget = *p.Budget
	}
	if p.Critical != nil {
		next.Critical = *p.Critical
	}
	if p.Progress != nil || p.Status != nil {
		requested := next.Status
		if p.Status != nil {
			requested = *p.Status
		}
		if p.Progress != nil {
			next.Progress = domain.ClampProgress(*p.Progress)
		}
		next.Status = domain.StatusForProgress(next.Progress, requested)
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	e.store.replace(next)
	return next.Clone(), nil
}

// DeleteItem removes an item, its whole subtree and every dependency that
// touches a removed item.
func (e *Engine) DeleteItem(id string) (DeleteResult, error) {
	if !e.store.Has(id) {
		return DeleteResult{}, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	ids := e.store.removeSubtree(id)
	set := make(map[string]struct{}, len(ids))
	for _, rid := range ids {
		set[rid] = struct{}{}
	}
	return DeleteResult{
		ItemIDs:      ids,
		Dependencies: e.graph.removeTouching(set),
	}, nil
}

// AddDependency validates and records a dependency, assigning an id when
// empty.
func (e *Engine) AddDependency(d *domain.Dependency) error {
	c := *d
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if err := e.graph.Add(&c); err != nil {
		return err
	}
	d.ID = c.ID
	return nil
}

// RemoveDependency deletes a dependency by id.
func (e *Engine) RemoveDependency(id string) (*domain.Dependency, error) {
	return e.graph.Remove(id)
}

// Rows returns the annotated, flattened forest.
func (e *Engine) Rows() []Row {
	return e.store.Rows()
}

// Filter returns the rows matching pred plus their ancestors.
func (e *Engine) Filter(pred Predicate) []Row {
	return Filter(e.store, e.store.Rows(), pred)
}

// Aggregate returns the project summary.
func (e *Engine) Aggregate() AggregateStats {
	return e.store.Aggregate()
}

// ScheduleStats returns the status and lateness counts as of today.
func (e *Engine) ScheduleStats(today time.Time) ScheduleSummary {
	return ScheduleStats(e.store.Rows(), today)
}

// Violations checks every dependency against the stored dates.
func (e *Engine) Violations() []Violation {
	var out []Violation
	for _, d := range e.graph.All() {
		pred, succ := e.store.items[d.PredecessorID], e.store.items[d.SuccessorID]
		if v, ok := Check(d, pred, succ); ok && v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Gantt lays the whole EAP out on a day grid.
func (e *Engine) Gantt() Gantt {
	return BuildGantt(e.store.Rows())
}
