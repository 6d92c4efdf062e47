package wbs

import (
	"testing"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testEAP = "eap-1"

// newTestEngine returns an empty engine.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(nil, nil)
	require.NoError(t, err)
	return e
}

// mustCreate creates an item through the engine so it receives a code.
func mustCreate(t *testing.T, e *Engine, name string, opts ...testutil.ItemOption) *domain.WBSItem {
	t.Helper()
	it := testutil.NewTestItem(testEAP, name, opts...)
	require.NoError(t, e.CreateItem(it))
	return it
}

func ids(items []*domain.WBSItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func rowIDs(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Item.ID)
	}
	return out
}
