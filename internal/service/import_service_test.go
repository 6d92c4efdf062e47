package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/eap/internal/contract"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/importer"
	"github.com/alexanderramin/eap/internal/repository"
	"github.com/alexanderramin/eap/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int        { return &i }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func sampleSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		EAP: importer.EAPImport{ShortID: "casa01", Name: "Casa Térrea"},
		Items: []importer.ItemImport{
			{Ref: "fund", Type: "phase", Name: "Fundação", Budget: decPtr(1000)},
			{Ref: "esc", ParentRef: strPtr("fund"), Type: "task", Name: "Escavação", Budget: decPtr(400), Progress: intPtr(100),
				StartDate: strPtr("2025-01-01"), EndDate: strPtr("2025-01-05")},
			{Ref: "sap", ParentRef: strPtr("fund"), Type: "task", Name: "Sapatas", Budget: decPtr(600),
				StartDate: strPtr("2025-01-06"), EndDate: strPtr("2025-01-10")},
			{Ref: "est", Type: "phase", Name: "Estrutura"},
		},
		Dependencies: []importer.DependencyImport{
			{PredecessorRef: "esc", SuccessorRef: "sap"},
			{PredecessorRef: "sap", SuccessorRef: "est", Type: "SS", LagDays: -1},
		},
	}
}

func countRows(t *testing.T, s *services, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestImportService_ImportsSnapshot(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	res, err := s.imports.ImportEAPFromSchema(ctx, tester, sampleSchema())
	require.NoError(t, err)
	assert.Equal(t, 4, res.ItemCount)
	assert.Equal(t, 2, res.DependencyCount)
	assert.Equal(t, "CASA01", res.EAP.ShortID)
	assert.Equal(t, "Ana Souza", res.EAP.CreatedBy)

	items, err := repository.NewSQLiteItemRepo(s.db).ListByEAP(ctx, res.EAP.ID)
	require.NoError(t, err)
	codes := make(map[string]string)
	for _, it := range items {
		codes[it.Name] = it.Code
	}
	assert.Equal(t, map[string]string{
		"Fundação":  "1",
		"Escavação": "1.1",
		"Sapatas":   "1.2",
		"Estrutura": "2",
	}, codes)

	resp, err := s.wbs.Tree(ctx, contract.NewTreeRequest(res.EAP.ID))
	require.NoError(t, err)
	require.Len(t, resp.Rows, 4)
	assert.Equal(t, 40, resp.Rows[0].Progress)
	assert.Equal(t, domain.StatusCompleted, resp.Rows[1].Status)

	deps, err := repository.NewSQLiteDependencyRepo(s.db).ListByEAP(ctx, res.EAP.ID)
	require.NoError(t, err)
	require.Len(t, deps, 2)

	ev := s.observer.last()
	assert.Equal(t, "import-eap", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 4, ev.Fields["item_count"])
}

func TestImportService_ValidationErrorsAreJoined(t *testing.T) {
	s := newServices(t)
	schema := sampleSchema()
	schema.EAP.Name = ""
	schema.Items[1].Type = "milestone"
	schema.Dependencies[0].SuccessorRef = "ghost"

	_, err := s.imports.ImportEAPFromSchema(context.Background(), tester, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (3 errors)")
	assert.Contains(t, err.Error(), "eap.name is required")
	assert.Contains(t, err.Error(), `items[1].type: invalid value "milestone"`)
	assert.Contains(t, err.Error(), `dependencies[0].successor_ref: ref "ghost" not found in items`)
	assert.Zero(t, countRows(t, s, "eaps"))
}

func TestImportService_EngineRejectionRollsBack(t *testing.T) {
	s := newServices(t)
	schema := sampleSchema()
	schema.Dependencies = append(schema.Dependencies, importer.DependencyImport{PredecessorRef: "esc", SuccessorRef: "sap", Type: "FF"})

	_, err := s.imports.ImportEAPFromSchema(context.Background(), tester, schema)
	require.ErrorIs(t, err, domain.ErrDuplicateDependency)
	assert.Contains(t, err.Error(), "dependencies[2]")

	assert.Zero(t, countRows(t, s, "eaps"))
	assert.Zero(t, countRows(t, s, "wbs_items"))
	assert.Zero(t, countRows(t, s, "dependencies"))
	assert.False(t, s.observer.last().Success)
}

func TestImportService_WriteFailureRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	// Exec 1 inserts the EAP, exec 2 the first item.
	uow := &testutil.FailingWriteUoW{DB: database, FailAt: 3, Err: boom}
	svc := NewImportService(uow)

	_, err := svc.ImportEAPFromSchema(context.Background(), tester, sampleSchema())
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM eaps").Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM wbs_items").Scan(&n))
	assert.Zero(t, n)
}

func TestImportService_DuplicateShortID(t *testing.T) {
	s := newServices(t)
	s.newEAP(t, "CASA01")

	_, err := s.imports.ImportEAPFromSchema(context.Background(), tester, sampleSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `short ID "CASA01" already in use`)
	assert.Equal(t, 1, countRows(t, s, "eaps"))
	assert.Zero(t, countRows(t, s, "wbs_items"))
}

func TestImportService_ImportFromFile(t *testing.T) {
	s := newServices(t)
	path := filepath.Join(t.TempDir(), "casa.json")
	data := `{
  "eap": {"short_id": "REF01", "name": "Reforma"},
  "items": [
    {"ref": "a", "type": "deliverable", "name": "Cozinha", "budget": "2500.50"},
    {"ref": "b", "parent_ref": "a", "type": "task", "name": "Piso", "budget": 2500.50, "progress": 50, "status": "paused"}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	res, err := s.imports.ImportEAP(context.Background(), tester, path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ItemCount)

	rows, err := s.wbs.Tree(context.Background(), contract.NewTreeRequest(res.EAP.ID))
	require.NoError(t, err)
	require.Len(t, rows.Rows, 2)
	assert.Equal(t, 50, rows.Rows[0].Progress)
	assert.Equal(t, domain.StatusPaused, rows.Rows[1].Status)
	assert.Equal(t, "1.1", rows.Rows[1].Item.Code)

	_, err = s.imports.ImportEAP(context.Background(), tester, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "loading import file")
}
