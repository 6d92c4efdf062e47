// Package wbs implements the work breakdown structure engine: the item
// hierarchy, code assignment, budget roll-up, the precedence dependency
// graph and the read projections built on top of them.
//
// None of the types in this package are safe for concurrent use. Items
// returned by the Store are owned by it and must not be modified by callers;
// mutations go through Engine.
package wbs

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/alexanderramin/eap/internal/domain"
)

// rootKey indexes the children of the virtual forest root.
const rootKey = ""

// Store is an arena of WBS items indexed by id. Children are derived from a
// parent-id index kept in code order, never from embedded child slices.
type Store struct {
	items    map[string]*domain.WBSItem
	children map[string][]string
}

// NewStore builds a store from a repository snapshot. Every parent reference
// must resolve inside the snapshot and parent links must be acyclic.
func NewStore(items []*domain.WBSItem) (*Store, error) {
	s := &Store{
		items:    make(map[string]*domain.WBSItem, len(items)),
		children: make(map[string][]string),
	}
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("%w: item %q has no id", domain.ErrInvalidItem, it.Name)
		}
		if _, dup := s.items[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %s", domain.ErrInvalidItem, it.ID)
		}
		s.items[it.ID] = it.Clone()
	}
	for _, it := range s.items {
		key := rootKey
		if it.ParentID != nil {
			if _, ok := s.items[*it.ParentID]; !ok {
				return nil, fmt.Errorf("item %s: parent %s: %w", it.ID, *it.ParentID, domain.ErrInvalidParent)
			}
			key = *it.ParentID
		}
		s.children[key] = append(s.children[key], it.ID)
	}
	for key := range s.children {
		s.sortChildren(key)
	}
	if err := s.checkAcyclic(); err != nil {
		return nil, err
	}
	return s, nil
}

// checkAcyclic rejects snapshots whose parent links loop. An item can have at
// most len(items)-1 ancestors, so a longer walk means a cycle.
func (s *Store) checkAcyclic() error {
	limit := len(s.items)
	for id, it := range s.items {
		steps := 0
		for cur := it; cur.ParentID != nil; cur = s.items[*cur.ParentID] {
			steps++
			if steps > limit {
				return fmt.Errorf("item %s: %w: parent chain loops", id, domain.ErrInvalidParent)
			}
		}
	}
	return nil
}

func (s *Store) sortChildren(key string) {
	slices.SortStableFunc(s.children[key], func(a, b string) int {
		if c := CompareCodes(s.items[a].Code, s.items[b].Code); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

// Len returns the number of items in the store.
func (s *Store) Len() int {
	return len(s.items)
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (*domain.WBSItem, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return it, nil
}

// Has reports whether id is a known item.
func (s *Store) Has(id string) bool {
	_, ok := s.items[id]
	return ok
}

// IsLeaf reports whether the item has no children.
func (s *Store) IsLeaf(id string) bool {
	return len(s.children[id]) == 0
}

// Roots returns the root-level items in code order.
func (s *Store) Roots() []*domain.WBSItem {
	return s.resolve(s.children[rootKey])
}

// Children returns the direct children of an item in code order.
func (s *Store) Children(id string) ([]*domain.WBSItem, error) {
	if !s.Has(id) {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return s.resolve(s.children[id]), nil
}

func (s *Store) resolve(ids []string) []*domain.WBSItem {
	out := make([]*domain.WBSItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.items[id])
	}
	return out
}

// Ancestors returns the chain of parents of an item, nearest first, ending
// with the root-level item. A root item has no ancestors.
func (s *Store) Ancestors(id string) ([]*domain.WBSItem, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	var chain []*domain.WBSItem
	for it.ParentID != nil {
		it = s.items[*it.ParentID]
		chain = append(chain, it)
	}
	return chain, nil
}

// DescendantIDs returns the ids of every transitive child of an item.
func (s *Store) DescendantIDs(id string) (map[string]struct{}, error) {
	if !s.Has(id) {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	out := make(map[string]struct{})
	stack := slices.Clone(s.children[id])
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out[cur] = struct{}{}
		stack = append(stack, s.children[cur]...)
	}
	return out, nil
}

// isAncestor reports whether a is a proper ancestor of b.
func (s *Store) isAncestor(a, b string) bool {
	it := s.items[b]
	for it != nil && it.ParentID != nil {
		if *it.ParentID == a {
			return true
		}
		it = s.items[*it.ParentID]
	}
	return false
}

// Flatten yields every item depth-first in sibling order. The sequence is
// lazy and may be iterated any number of times.
func (s *Store) Flatten() iter.Seq[*domain.WBSItem] {
	return func(yield func(*domain.WBSItem) bool) {
		s.walk(rootKey, 0, func(it *domain.WBSItem, _ int) bool {
			return yield(it)
		})
	}
}

// Walk is Flatten with the depth of each item (roots are depth 0).
func (s *Store) Walk() iter.Seq2[int, *domain.WBSItem] {
	return func(yield func(int, *domain.WBSItem) bool) {
		s.walk(rootKey, 0, func(it *domain.WBSItem, depth int) bool {
			return yield(depth, it)
		})
	}
}

func (s *Store) walk(key string, depth int, visit func(*domain.WBSItem, int) bool) bool {
	for _, id := range s.children[key] {
		if !visit(s.items[id], depth) {
			return false
		}
		if !s.walk(id, depth+1, visit) {
			return false
		}
	}
	return true
}

// insert adds an item whose parent is already present.
func (s *Store) insert(it *domain.WBSItem) {
	key := rootKey
	if it.ParentID != nil {
		key = *it.ParentID
	}
	s.items[it.ID] = it
	s.children[key] = append(s.children[key], it.ID)
	s.sortChildren(key)
}

// replace swaps the stored copy of an item without touching the index.
// Parent and code must be unchanged.
func (s *Store) replace(it *domain.WBSItem) {
	s.items[it.ID] = it
}

// removeSubtree deletes an item and all of its descendants, returning the
// removed ids in depth-first order.
func (s *Store) removeSubtree(id string) []string {
	it := s.items[id]
	removed := []string{id}
	s.walk(id, 0, func(d *domain.WBSItem, _ int) bool {
		removed = append(removed, d.ID)
		return true
	})
	for _, rid := range removed {
		delete(s.items, rid)
		delete(s.children, rid)
	}
	key := rootKey
	if it.ParentID != nil {
		key = *it.ParentID
	}
	s.children[key] = slices.DeleteFunc(s.children[key], func(c string) bool { return c == id })
	if len(s.children[key]) == 0 {
		delete(s.children, key)
	}
	return removed
}
