package wbs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/eap/internal/domain"
)

// NextCode returns the code a new child of parentID (nil for the root level)
// would receive: the parent's code followed by the smallest positive ordinal
// not used by an existing sibling. Gaps left by deletions are reused.
func (s *Store) NextCode(parentID *string) (string, error) {
	key, prefix := rootKey, ""
	if parentID != nil {
		parent, ok := s.items[*parentID]
		if !ok {
			return "", fmt.Errorf("parent %s: %w", *parentID, domain.ErrInvalidParent)
		}
		key, prefix = parent.ID, parent.Code+"."
	}

	used := make(map[int]bool, len(s.children[key]))
	for _, id := range s.children[key] {
		if n, ok := lastOrdinal(s.items[id].Code); ok {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return prefix + strconv.Itoa(n), nil
}

// lastOrdinal parses the final dot-separated segment of a code.
func lastOrdinal(code string) (int, bool) {
	seg := code[strings.LastIndex(code, ".")+1:]
	n, err := strconv.Atoi(seg)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// CompareCodes orders WBS codes segment by segment, numerically where both
// segments are numbers, so "1.9" sorts before "1.10".
func CompareCodes(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aErr := strconv.Atoi(as[i])
		bn, bErr := strconv.Atoi(bs[i])
		switch {
		case aErr == nil && bErr == nil:
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return len(as) - len(bs)
}

// CheckCodes reports every item whose code is not its parent's code plus a
// positive ordinal (or a bare ordinal at the root), and every code shared by
// more than one item.
func (s *Store) CheckCodes() []error {
	var errs []error
	seen := make(map[string]string, len(s.items))
	for it := range s.Flatten() {
		if other, dup := seen[it.Code]; dup {
			errs = append(errs, fmt.Errorf("item %s: code %q already used by %s", it.ID, it.Code, other))
		} else {
			seen[it.Code] = it.ID
		}

		rest := it.Code
		if it.ParentID != nil {
			parent := s.items[*it.ParentID]
			var ok bool
			rest, ok = strings.CutPrefix(it.Code, parent.Code+".")
			if !ok {
				errs = append(errs, fmt.Errorf("item %s: code %q does not extend parent code %q", it.ID, it.Code, parent.Code))
				continue
			}
		}
		if n, err := strconv.Atoi(rest); err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("item %s: code %q does not end in a positive ordinal", it.ID, it.Code))
		}
	}
	return errs
}
