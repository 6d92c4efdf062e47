package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/eap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEAPRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEAPRepo(db)
	ctx := context.Background()

	e := testutil.NewTestEAP("Obra Residencial", testutil.WithShortID("OBRA01"), testutil.WithCreatedBy("ana"))
	e.Description = "Casa térrea"
	require.NoError(t, repo.Create(ctx, e))

	fetched, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Obra Residencial", fetched.Name)
	assert.Equal(t, "OBRA01", fetched.ShortID)
	assert.Equal(t, "Casa térrea", fetched.Description)
	assert.Equal(t, "ana", fetched.CreatedBy)
	assert.Equal(t, e.CreatedAt.Unix(), fetched.CreatedAt.Unix())
}

func TestEAPRepo_GetByShortID_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEAPRepo(db)
	ctx := context.Background()

	e := testutil.NewTestEAP("Ponte", testutil.WithShortID("PONTE02"))
	require.NoError(t, repo.Create(ctx, e))

	fetched, err := repo.GetByShortID(ctx, "ponte02")
	require.NoError(t, err)
	assert.Equal(t, e.ID, fetched.ID)
}

func TestEAPRepo_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEAPRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "nonexistent"), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, testutil.NewTestEAP("ghost")), ErrNotFound)
}

func TestEAPRepo_DuplicateShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEAPRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestEAP("A", testutil.WithShortID("OBRA01"))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestEAP("B", testutil.WithShortID("OBRA01"))))

	// Empty short ids do not collide.
	require.NoError(t, repo.Create(ctx, testutil.NewTestEAP("C", testutil.WithShortID(""))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEAP("D", testutil.WithShortID(""))))
}

func TestEAPRepo_ListAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEAPRepo(db)
	ctx := context.Background()

	a := testutil.NewTestEAP("A")
	b := testutil.NewTestEAP("B")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	a.Name = "A renamed"
	require.NoError(t, repo.Update(ctx, a))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	names := []string{list[0].Name, list[1].Name}
	assert.ElementsMatch(t, []string{"A renamed", "B"}, names)
}
