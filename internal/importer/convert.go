package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/google/uuid"
)

// Snapshot holds the domain objects produced from an import file. Items are
// in file order, so every parent precedes its children; codes are left empty
// for the engine to assign.
type Snapshot struct {
	EAP          *domain.EAP
	Items        []*domain.WBSItem
	Dependencies []*domain.Dependency
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, session domain.Session) (*Snapshot, error) {
	now := time.Now().UTC()

	eap := &domain.EAP{
		ID:          uuid.New().String(),
		ShortID:     strings.ToUpper(schema.EAP.ShortID),
		Name:        schema.EAP.Name,
		Description: schema.EAP.Description,
		CreatedBy:   session.Actor(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	refMap := make(map[string]string, len(schema.Items)) // ref -> UUID

	items := make([]*domain.WBSItem, 0, len(schema.Items))
	for _, it := range schema.Items {
		realID := uuid.New().String()
		refMap[it.Ref] = realID

		var parentID *string
		if it.ParentRef != nil && *it.ParentRef != "" {
			pid, ok := refMap[*it.ParentRef]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for item %q", *it.ParentRef, it.Ref)
			}
			parentID = &pid
		}

		start, err := parseOptionalDate(it.Ref+".start_date", it.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseOptionalDate(it.Ref+".end_date", it.EndDate)
		if err != nil {
			return nil, err
		}

		items = append(items, &domain.WBSItem{
			ID:          realID,
			EAPID:       eap.ID,
			ParentID:    parentID,
			Type:        domain.ItemTypeOrDefault(it.Type),
			Name:        it.Name,
			Description: it.Description,
			Responsible: it.Responsible,
			StartDate:   start,
			EndDate:     end,
			Budget:      deref(it.Budget),
			Progress:    deref(it.Progress),
			Status:      domain.ItemStatusOrDefault(it.Status),
			Critical:    deref(it.Critical),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	deps := make([]*domain.Dependency, 0, len(schema.Dependencies))
	for _, d := range schema.Dependencies {
		predUUID, ok := refMap[d.PredecessorRef]
		if !ok {
			return nil, fmt.Errorf("predecessor_ref %q not found", d.PredecessorRef)
		}
		succUUID, ok := refMap[d.SuccessorRef]
		if !ok {
			return nil, fmt.Errorf("successor_ref %q not found", d.SuccessorRef)
		}
		deps = append(deps, &domain.Dependency{
			ID:            uuid.New().String(),
			EAPID:         eap.ID,
			PredecessorID: predUUID,
			SuccessorID:   succUUID,
			Type:          domain.DependencyTypeOrDefault(d.Type),
			LagDays:       d.LagDays,
			CreatedAt:     now,
		})
	}

	return &Snapshot{EAP: eap, Items: items, Dependencies: deps}, nil
}

// parseOptionalDate reads an optional YYYY-MM-DD field. Absent or empty
// yields nil; anything else must parse.
func parseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *s)
	}
	return &t, nil
}

// deref returns the pointed-to value, or the zero value for nil.
func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
