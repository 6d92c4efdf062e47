package wbs

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCode_RootAndChildren(t *testing.T) {
	e := newTestEngine(t)

	a := mustCreate(t, e, "A", testutil.WithItemType(domain.ItemPhase))
	b := mustCreate(t, e, "B", testutil.WithItemType(domain.ItemPhase))
	a1 := mustCreate(t, e, "A1", testutil.WithParent(a.ID))
	a1x := mustCreate(t, e, "A1x", testutil.WithParent(a1.ID))

	assert.Equal(t, "1", a.Code)
	assert.Equal(t, "2", b.Code)
	assert.Equal(t, "1.1", a1.Code)
	assert.Equal(t, "1.1.1", a1x.Code)
}

func TestNextCode_ReusesGap(t *testing.T) {
	e := newTestEngine(t)
	parent := mustCreate(t, e, "Parent")
	mustCreate(t, e, "One", testutil.WithParent(parent.ID))
	two := mustCreate(t, e, "Two", testutil.WithParent(parent.ID))
	mustCreate(t, e, "Three", testutil.WithParent(parent.ID))

	_, err := e.DeleteItem(two.ID)
	require.NoError(t, err)

	again := mustCreate(t, e, "Again", testutil.WithParent(parent.ID))
	assert.Equal(t, "1.2", again.Code)
}

func TestNextCode_ReusesSmallestGapAtRoot(t *testing.T) {
	e := newTestEngine(t)
	var created []*domain.WBSItem
	for i := 0; i < 5; i++ {
		created = append(created, mustCreate(t, e, "root"))
	}
	_, err := e.DeleteItem(created[3].ID)
	require.NoError(t, err)
	_, err = e.DeleteItem(created[1].ID)
	require.NoError(t, err)

	code, err := e.Store().NextCode(nil)
	require.NoError(t, err)
	assert.Equal(t, "2", code)
}

func TestNextCode_InvalidParent(t *testing.T) {
	e := newTestEngine(t)
	missing := "missing"
	_, err := e.Store().NextCode(&missing)
	assert.ErrorIs(t, err, domain.ErrInvalidParent)

	it := testutil.NewTestItem(testEAP, "Orphan", testutil.WithParent(missing))
	assert.ErrorIs(t, e.CreateItem(it), domain.ErrInvalidParent)
	assert.Equal(t, 0, e.Store().Len())
}

// TestNextCode_SiblingsStayUnique exercises random create/delete sequences
// under one parent and checks that live sibling codes never collide.
func TestNextCode_SiblingsStayUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := newTestEngine(t)
	parent := mustCreate(t, e, "Parent")

	var live []string
	for step := 0; step < 300; step++ {
		if len(live) > 0 && rng.Intn(3) == 0 {
			i := rng.Intn(len(live))
			_, err := e.DeleteItem(live[i])
			require.NoError(t, err)
			live = append(live[:i], live[i+1:]...)
		} else {
			it := mustCreate(t, e, "child", testutil.WithParent(parent.ID))
			live = append(live, it.ID)
		}

		children, err := e.Store().Children(parent.ID)
		require.NoError(t, err)
		seen := make(map[string]bool, len(children))
		for _, c := range children {
			assert.False(t, seen[c.Code], "step %d: duplicate code %s", step, c.Code)
			seen[c.Code] = true
		}
	}
}

func TestCompareCodes(t *testing.T) {
	assert.Negative(t, CompareCodes("1.9", "1.10"))
	assert.Positive(t, CompareCodes("2", "1.5"))
	assert.Negative(t, CompareCodes("1", "1.1"))
	assert.Zero(t, CompareCodes("3.2.1", "3.2.1"))
}

func TestCheckCodes(t *testing.T) {
	a := testutil.NewTestItem(testEAP, "A", testutil.WithCode("1"))
	good := testutil.NewTestItem(testEAP, "Good", testutil.WithCode("1.1"), testutil.WithParent(a.ID))
	bad := testutil.NewTestItem(testEAP, "Bad", testutil.WithCode("2.1"), testutil.WithParent(a.ID))
	dup := testutil.NewTestItem(testEAP, "Dup", testutil.WithCode("1"))

	s, err := NewStore([]*domain.WBSItem{a, good})
	require.NoError(t, err)
	assert.Empty(t, s.CheckCodes())

	s, err = NewStore([]*domain.WBSItem{a, good, bad, dup})
	require.NoError(t, err)
	assert.Len(t, s.CheckCodes(), 2)
}
