package wbs

import (
	"slices"
	"time"

	"github.com/alexanderramin/eap/internal/domain"
)

// Predicate selects rows for a filtered view.
type Predicate func(Row) bool

// StatusIn matches rows whose effective status is one of statuses.
func StatusIn(statuses ...domain.ItemStatus) Predicate {
	return func(r Row) bool {
		return slices.Contains(statuses, r.Status)
	}
}

// Overdue matches rows whose end date lies before today and whose progress
// is below 100, regardless of status.
func Overdue(today time.Time) Predicate {
	day := dateOnly(today)
	return func(r Row) bool {
		return r.Item.EndDate != nil && dateOnly(*r.Item.EndDate).Before(day) && r.Progress < 100
	}
}

// AnyOf matches rows accepted by at least one of preds.
func AnyOf(preds ...Predicate) Predicate {
	return func(r Row) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// TreeFilter combines a status selection and the overdue flag into one
// predicate matching either. It returns nil when neither narrows the view.
func TreeFilter(statuses []domain.ItemStatus, overdue bool, today time.Time) Predicate {
	var preds []Predicate
	if len(statuses) > 0 {
		preds = append(preds, StatusIn(statuses...))
	}
	if overdue {
		preds = append(preds, Overdue(today))
	}
	if len(preds) == 0 {
		return nil
	}
	return AnyOf(preds...)
}

// Filter returns the rows matching pred together with every ancestor of a
// match, in their original order, so parents always precede their children.
// No match yields an empty result.
func Filter(store *Store, rows []Row, pred Predicate) []Row {
	keep := make(map[string]struct{})
	for _, r := range rows {
		if !pred(r) {
			continue
		}
		keep[r.Item.ID] = struct{}{}
		ancestors, err := store.Ancestors(r.Item.ID)
		if err != nil {
			continue
		}
		for _, a := range ancestors {
			keep[a.ID] = struct{}{}
		}
	}
	if len(keep) == 0 {
		return []Row{}
	}

	out := make([]Row, 0, len(keep))
	for _, r := range rows {
		if _, ok := keep[r.Item.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}
