package wbs

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/eap/internal/domain"
)

// Graph holds the precedence dependencies of one EAP, indexed in both
// directions. Neighbour lists keep creation order.
type Graph struct {
	store  *Store
	deps   map[string]*domain.Dependency
	order  []string
	bySucc map[string][]string
	byPred map[string][]string
}

// NewGraph indexes a repository snapshot of dependencies. The snapshot is
// trusted to satisfy the insertion rules; only endpoint existence is checked.
func NewGraph(store *Store, deps []*domain.Dependency) (*Graph, error) {
	g := &Graph{
		store:  store,
		deps:   make(map[string]*domain.Dependency, len(deps)),
		bySucc: make(map[string][]string),
		byPred: make(map[string][]string),
	}
	for _, d := range deps {
		if !store.Has(d.PredecessorID) || !store.Has(d.SuccessorID) {
			return nil, fmt.Errorf("dependency %s: endpoint: %w", d.ID, domain.ErrNotFound)
		}
		c := *d
		g.link(&c)
	}
	return g, nil
}

func (g *Graph) link(d *domain.Dependency) {
	g.deps[d.ID] = d
	g.order = append(g.order, d.ID)
	g.bySucc[d.SuccessorID] = append(g.bySucc[d.SuccessorID], d.ID)
	g.byPred[d.PredecessorID] = append(g.byPred[d.PredecessorID], d.ID)
}

func (g *Graph) unlink(d *domain.Dependency) {
	drop := func(ids []string) []string {
		return slices.DeleteFunc(ids, func(id string) bool { return id == d.ID })
	}
	delete(g.deps, d.ID)
	g.order = drop(g.order)
	g.bySucc[d.SuccessorID] = drop(g.bySucc[d.SuccessorID])
	g.byPred[d.PredecessorID] = drop(g.byPred[d.PredecessorID])
}

// Len returns the number of dependencies.
func (g *Graph) Len() int {
	return len(g.deps)
}

// Get returns the dependency with the given id.
func (g *Graph) Get(id string) (*domain.Dependency, error) {
	d, ok := g.deps[id]
	if !ok {
		return nil, fmt.Errorf("dependency %s: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

// All returns every dependency in creation order.
func (g *Graph) All() []*domain.Dependency {
	return g.resolve(g.order)
}

// PredecessorsOf returns the dependencies whose successor is itemID.
func (g *Graph) PredecessorsOf(itemID string) []*domain.Dependency {
	return g.resolve(g.bySucc[itemID])
}

// SuccessorsOf returns the dependencies whose predecessor is itemID.
func (g *Graph) SuccessorsOf(itemID string) []*domain.Dependency {
	return g.resolve(g.byPred[itemID])
}

func (g *Graph) resolve(ids []string) []*domain.Dependency {
	out := make([]*domain.Dependency, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.deps[id])
	}
	return out
}

// Validate runs every insertion check for d without mutating the graph.
func (g *Graph) Validate(d *domain.Dependency) error {
	if !domain.ValidDependencyTypes[string(d.Type)] {
		return fmt.Errorf("%w: invalid dependency type %q", domain.ErrInvalidItem, d.Type)
	}
	if d.PredecessorID == d.SuccessorID {
		return fmt.Errorf("item %s: %w", d.PredecessorID, domain.ErrSelfDependency)
	}
	if !g.store.Has(d.PredecessorID) {
		return fmt.Errorf("predecessor %s: %w", d.PredecessorID, domain.ErrNotFound)
	}
	if !g.store.Has(d.SuccessorID) {
		return fmt.Errorf("successor %s: %w", d.SuccessorID, domain.ErrNotFound)
	}
	if g.store.isAncestor(d.PredecessorID, d.SuccessorID) || g.store.isAncestor(d.SuccessorID, d.PredecessorID) {
		return fmt.Errorf("%s -> %s: %w", d.PredecessorID, d.SuccessorID, domain.ErrAncestryViolation)
	}
	for _, id := range g.byPred[d.PredecessorID] {
		if g.deps[id].SuccessorID == d.SuccessorID {
			return fmt.Errorf("%s -> %s: %w", d.PredecessorID, d.SuccessorID, domain.ErrDuplicateDependency)
		}
	}
	if g.reaches(d.SuccessorID, d.PredecessorID) {
		return fmt.Errorf("%s -> %s: %w", d.PredecessorID, d.SuccessorID, domain.ErrDependencyCycle)
	}
	if _, taken := g.deps[d.ID]; taken {
		return fmt.Errorf("%w: dependency id %s already in use", domain.ErrInvalidItem, d.ID)
	}
	return nil
}

// Add validates and inserts a dependency. The graph is unchanged on error.
func (g *Graph) Add(d *domain.Dependency) error {
	if err := g.Validate(d); err != nil {
		return err
	}
	c := *d
	g.link(&c)
	return nil
}

// Remove deletes a dependency and returns it.
func (g *Graph) Remove(id string) (*domain.Dependency, error) {
	d, ok := g.deps[id]
	if !ok {
		return nil, fmt.Errorf("dependency %s: %w", id, domain.ErrNotFound)
	}
	g.unlink(d)
	return d, nil
}

// reaches reports whether a chain of successor edges leads from -> to.
func (g *Graph) reaches(from, to string) bool {
	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		for _, id := range g.byPred[cur] {
			next := g.deps[id].SuccessorID
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// removeTouching deletes every dependency with an endpoint in ids.
func (g *Graph) removeTouching(ids map[string]struct{}) []*domain.Dependency {
	var removed []*domain.Dependency
	for _, id := range slices.Clone(g.order) {
		d := g.deps[id]
		_, p := ids[d.PredecessorID]
		_, s := ids[d.SuccessorID]
		if p || s {
			g.unlink(d)
			removed = append(removed, d)
		}
	}
	for id := range ids {
		delete(g.bySucc, id)
		delete(g.byPred, id)
	}
	return removed
}
