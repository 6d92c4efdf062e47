package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }
func ptrBool(b bool) *bool    { return &b }

func ptrDecimal(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		EAP: EAPImport{
			ShortID: "OBRA01",
			Name:    "Obra Residencial",
		},
		Items: []ItemImport{
			{Ref: "i1", Type: "task", Name: "Limpeza do terreno"},
		},
	}
}

// hasError reports whether any error message contains want.
func hasError(errs []error, want string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), want) {
			return true
		}
	}
	return false
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validMinimalSchema()))
}

func TestValidateImportSchema_ValidFull(t *testing.T) {
	schema := &ImportSchema{
		EAP: EAPImport{ShortID: "OBRA01", Name: "Obra", Description: "Casa"},
		Items: []ItemImport{
			{Ref: "fund", Type: "phase", Name: "Fundação", Budget: ptrDecimal("10000")},
			{Ref: "sap", ParentRef: ptrStr("fund"), Type: "task", Name: "Sapatas",
				StartDate: ptrStr("2025-03-01"), EndDate: ptrStr("2025-03-10"),
				Budget: ptrDecimal("4000.50"), Progress: ptrInt(50), Status: "paused", Critical: ptrBool(true)},
			{Ref: "vig", ParentRef: ptrStr("fund"), Type: "task", Name: "Vigas",
				StartDate: ptrStr("2025-03-11"), EndDate: ptrStr("2025-03-20")},
		},
		Dependencies: []DependencyImport{
			{PredecessorRef: "sap", SuccessorRef: "vig", Type: "FS", LagDays: 1},
		},
	}
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *ImportSchema)
		wantMsg string
	}{
		{"missing short_id", func(s *ImportSchema) { s.EAP.ShortID = "" }, "eap.short_id is required"},
		{"malformed short_id", func(s *ImportSchema) { s.EAP.ShortID = "x1" }, "eap.short_id"},
		{"missing name", func(s *ImportSchema) { s.EAP.Name = "" }, "eap.name is required"},
		{"missing item ref", func(s *ImportSchema) { s.Items[0].Ref = "" }, "items[0].ref is required"},
		{"missing item name", func(s *ImportSchema) { s.Items[0].Name = "" }, "items[0].name is required"},
		{"missing type", func(s *ImportSchema) { s.Items[0].Type = "" }, "items[0].type is required"},
		{"bad type", func(s *ImportSchema) { s.Items[0].Type = "epic" }, "items[0].type: invalid value"},
		{"bad status", func(s *ImportSchema) { s.Items[0].Status = "done" }, "items[0].status: invalid value"},
		{"progress range", func(s *ImportSchema) { s.Items[0].Progress = ptrInt(120) }, "outside 0-100"},
		{"negative budget", func(s *ImportSchema) { s.Items[0].Budget = ptrDecimal("-1") }, "must not be negative"},
		{"bad start date", func(s *ImportSchema) { s.Items[0].StartDate = ptrStr("01/03/2025") }, "invalid date format"},
		{"end before start", func(s *ImportSchema) {
			s.Items[0].StartDate = ptrStr("2025-03-10")
			s.Items[0].EndDate = ptrStr("2025-03-01")
		}, "must not precede start_date"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalSchema()
			tc.mutate(s)
			errs := ValidateImportSchema(s)
			assert.True(t, hasError(errs, tc.wantMsg), "expected error containing %q, got %v", tc.wantMsg, errs)
		})
	}
}

func TestValidateImportSchema_DuplicateRef(t *testing.T) {
	s := validMinimalSchema()
	s.Items = append(s.Items, ItemImport{Ref: "i1", Type: "task", Name: "Dup"})
	assert.True(t, hasError(ValidateImportSchema(s), "duplicate ref"))
}

func TestValidateImportSchema_ParentMustComeFirst(t *testing.T) {
	s := validMinimalSchema()
	s.Items = []ItemImport{
		{Ref: "child", ParentRef: ptrStr("parent"), Type: "task", Name: "Child"},
		{Ref: "parent", Type: "phase", Name: "Parent"},
	}
	assert.True(t, hasError(ValidateImportSchema(s), "must appear earlier"))
}

func TestValidateImportSchema_DerivedFieldsOnParent(t *testing.T) {
	s := validMinimalSchema()
	s.Items = []ItemImport{
		{Ref: "p", Type: "phase", Name: "Parent", Progress: ptrInt(40)},
		{Ref: "c", ParentRef: ptrStr("p"), Type: "task", Name: "Child"},
	}
	assert.True(t, hasError(ValidateImportSchema(s), "derived for items with children"))
}

func TestValidateImportSchema_DependencyErrors(t *testing.T) {
	base := func() *ImportSchema {
		s := validMinimalSchema()
		s.Items = []ItemImport{
			{Ref: "p", Type: "phase", Name: "Parent"},
			{Ref: "a", ParentRef: ptrStr("p"), Type: "task", Name: "A"},
			{Ref: "b", Type: "task", Name: "B"},
			{Ref: "c", Type: "task", Name: "C"},
		}
		return s
	}

	tests := []struct {
		name    string
		deps    []DependencyImport
		wantMsg string
	}{
		{"unknown ref", []DependencyImport{{PredecessorRef: "a", SuccessorRef: "zzz"}}, "not found in items"},
		{"missing ref", []DependencyImport{{PredecessorRef: "", SuccessorRef: "a"}}, "predecessor_ref is required"},
		{"self", []DependencyImport{{PredecessorRef: "a", SuccessorRef: "a"}}, "self-dependency"},
		{"same branch", []DependencyImport{{PredecessorRef: "p", SuccessorRef: "a"}}, "same branch"},
		{"same branch reversed", []DependencyImport{{PredecessorRef: "a", SuccessorRef: "p"}}, "same branch"},
		{"bad type", []DependencyImport{{PredecessorRef: "a", SuccessorRef: "b", Type: "XY"}}, "type: invalid value"},
		{"cycle", []DependencyImport{
			{PredecessorRef: "a", SuccessorRef: "b"},
			{PredecessorRef: "b", SuccessorRef: "c"},
			{PredecessorRef: "c", SuccessorRef: "a"},
		}, "circular dependency"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			s.Dependencies = tc.deps
			errs := ValidateImportSchema(s)
			assert.True(t, hasError(errs, tc.wantMsg), "expected error containing %q, got %v", tc.wantMsg, errs)
		})
	}
}

func TestValidateImportSchema_CollectsAllErrors(t *testing.T) {
	s := &ImportSchema{
		Items: []ItemImport{
			{Ref: "a"},
			{Ref: "a", Type: "bogus", Name: "B"},
		},
	}
	errs := ValidateImportSchema(s)
	assert.GreaterOrEqual(t, len(errs), 5)
}
