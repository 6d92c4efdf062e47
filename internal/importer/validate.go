package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/eap/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateEAP(&schema.EAP)...)

	refs := make(map[string]int)
	errs = append(errs, validateItems(schema.Items, refs)...)
	errs = append(errs, validateDependencies(schema.Dependencies, schema.Items, refs)...)

	return errs
}

func validateEAP(e *EAPImport) []error {
	var errs []error

	if e.ShortID == "" {
		errs = append(errs, fmt.Errorf("eap.short_id is required"))
	} else if err := (&domain.EAP{ShortID: strings.ToUpper(e.ShortID)}).ValidateShortID(); err != nil {
		errs = append(errs, fmt.Errorf("eap.short_id: %w", err))
	}
	if e.Name == "" {
		errs = append(errs, fmt.Errorf("eap.name is required"))
	}

	return errs
}

// validateItems records each item's index in refs as it goes, so a
// parent_ref can only resolve to an earlier item.
func validateItems(items []ItemImport, refs map[string]int) []error {
	var errs []error

	hasChildren := make(map[string]bool)
	for _, it := range items {
		if it.ParentRef != nil && *it.ParentRef != "" {
			hasChildren[*it.ParentRef] = true
		}
	}

	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := refs[it.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, it.Ref))
		} else {
			refs[it.Ref] = i
		}

		if it.ParentRef != nil && *it.ParentRef != "" {
			if _, ok := refs[*it.ParentRef]; !ok {
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in items list)", prefix, *it.ParentRef))
			}
		}

		if it.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if it.Type == "" {
			errs = append(errs, fmt.Errorf("%s.type is required", prefix))
		} else if !domain.ValidItemTypes[it.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, it.Type))
		}
		if it.Status != "" && !domain.ValidItemStatuses[it.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, it.Status))
		}
		if it.Progress != nil && (*it.Progress < 0 || *it.Progress > 100) {
			errs = append(errs, fmt.Errorf("%s.progress: %d outside 0-100", prefix, *it.Progress))
		}
		if it.Budget != nil && it.Budget.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.budget: must not be negative", prefix))
		}
		if hasChildren[it.Ref] && (it.Progress != nil || it.Status != "") {
			errs = append(errs, fmt.Errorf("%s: progress and status are derived for items with children", prefix))
		}

		start, startErr := parseOptionalDate(prefix+".start_date", it.StartDate)
		end, endErr := parseOptionalDate(prefix+".end_date", it.EndDate)
		if startErr != nil {
			errs = append(errs, startErr)
		}
		if endErr != nil {
			errs = append(errs, endErr)
		}
		if startErr == nil && endErr == nil {
			if start != nil && end != nil && end.Before(*start) {
				errs = append(errs, fmt.Errorf("%s.end_date %q must not precede start_date %q", prefix, *it.EndDate, *it.StartDate))
			}
		}
	}

	return errs
}

func validateDependencies(deps []DependencyImport, items []ItemImport, refs map[string]int) []error {
	var errs []error

	for i, d := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)

		_, predOK := refs[d.PredecessorRef]
		_, succOK := refs[d.SuccessorRef]
		if d.PredecessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref is required", prefix))
		} else if !predOK {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref: ref %q not found in items", prefix, d.PredecessorRef))
		}
		if d.SuccessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.successor_ref is required", prefix))
		} else if !succOK {
			errs = append(errs, fmt.Errorf("%s.successor_ref: ref %q not found in items", prefix, d.SuccessorRef))
		}

		if d.Type != "" && !domain.ValidDependencyTypes[d.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, d.Type))
		}

		if d.PredecessorRef != "" && d.PredecessorRef == d.SuccessorRef {
			errs = append(errs, fmt.Errorf("%s: self-dependency (predecessor_ref == successor_ref == %q)", prefix, d.PredecessorRef))
		} else if predOK && succOK && related(items, refs, d.PredecessorRef, d.SuccessorRef) {
			errs = append(errs, fmt.Errorf("%s: %q and %q are in the same branch", prefix, d.PredecessorRef, d.SuccessorRef))
		}
	}

	if len(deps) > 1 {
		errs = append(errs, detectCycles(deps)...)
	}

	return errs
}

// related reports whether one ref is an ancestor of the other.
func related(items []ItemImport, refs map[string]int, a, b string) bool {
	return ancestorOf(items, refs, a, b) || ancestorOf(items, refs, b, a)
}

func ancestorOf(items []ItemImport, refs map[string]int, ancestor, ref string) bool {
	seen := make(map[string]bool)
	for {
		it := items[refs[ref]]
		if it.ParentRef == nil || *it.ParentRef == "" || seen[ref] {
			return false
		}
		seen[ref] = true
		parent := *it.ParentRef
		if parent == ancestor {
			return true
		}
		if _, ok := refs[parent]; !ok {
			return false
		}
		ref = parent
	}
}

func detectCycles(deps []DependencyImport) []error {
	graph := make(map[string][]string)
	var order []string
	for _, d := range deps {
		if d.PredecessorRef == "" || d.SuccessorRef == "" || d.PredecessorRef == d.SuccessorRef {
			continue
		}
		if _, ok := graph[d.PredecessorRef]; !ok {
			order = append(order, d.PredecessorRef)
		}
		graph[d.PredecessorRef] = append(graph[d.PredecessorRef], d.SuccessorRef)
	}

	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // done
	)

	color := make(map[string]int)
	var errs []error

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, next := range graph[node] {
			if color[next] == gray {
				errs = append(errs, fmt.Errorf("circular dependency detected involving %q and %q", node, next))
				return true
			}
			if color[next] == white && visit(next) {
				return true
			}
		}
		color[node] = black
		return false
	}

	for _, node := range order {
		if color[node] == white {
			visit(node)
		}
	}

	return errs
}
