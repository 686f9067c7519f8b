package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
	"github.com/leuz9/oolu-kpis-sub000/internal/testutil"
)

func TestObjectiveRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteObjectiveRepo(database)
	ctx := context.Background()

	o := testutil.NewTestObjective("Roundtrip",
		testutil.WithContributors("alice", "bob", "alice"))
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Title, got.Title)
	assert.Equal(t, domain.LevelCompany, got.Level)
	assert.Equal(t, []string{"alice", "bob"}, got.Contributors, "contributors are deduplicated")
	assert.Equal(t, int64(1), got.Version)
	assert.Nil(t, got.ParentID)
	assert.Nil(t, got.ArchivedAt)
}

func TestObjectiveRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteObjectiveRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObjectiveRepo_UpdateBumpsVersion(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteObjectiveRepo(database)
	ctx := context.Background()

	o := testutil.NewTestObjective("Versioned")
	require.NoError(t, repo.Create(ctx, o))

	o.Title = "Versioned v2"
	require.NoError(t, repo.Update(ctx, o))
	assert.Equal(t, int64(2), o.Version)

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Versioned v2", got.Title)
	assert.Equal(t, int64(2), got.Version)
}

// TestObjectiveRepo_StaleVersionConflicts simulates two readers racing: the
// second write carries a stale version and must fail without clobbering the
// first writer's change.
func TestObjectiveRepo_StaleVersionConflicts(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteObjectiveRepo(database)
	ctx := context.Background()

	o := testutil.NewTestObjective("Contended")
	require.NoError(t, repo.Create(ctx, o))

	first, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)

	first.Title = "First writer"
	require.NoError(t, repo.Update(ctx, first))

	second.Title = "Second writer"
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, ErrWriteConflict)

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "First writer", got.Title)
}

func TestObjectiveRepo_UpdateMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteObjectiveRepo(database)

	o := testutil.NewTestObjective("Ghost")
	o.Version = 1
	err := repo.Update(context.Background(), o)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObjectiveRepo_ListChildrenActiveOnly(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteObjectiveRepo(database)
	ctx := context.Background()

	parent := testutil.NewTestObjective("Parent")
	require.NoError(t, repo.Create(ctx, parent))

	active := testutil.NewTestObjective("Active child",
		testutil.WithLevel(domain.LevelDepartment),
		testutil.WithParent(parent.ID))
	require.NoError(t, repo.Create(ctx, active))

	archived := testutil.NewTestObjective("Archived child",
		testutil.WithLevel(domain.LevelDepartment),
		testutil.WithParent(parent.ID))
	require.NoError(t, repo.Create(ctx, archived))
	got, err := repo.GetByID(ctx, archived.ID)
	require.NoError(t, err)
	now := got.UpdatedAt
	got.ArchivedAt = &now
	got.Status = domain.StatusArchived
	require.NoError(t, repo.Update(ctx, got))

	children, err := repo.ListChildren(ctx, parent.ID, true)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, active.ID, children[0].ID)

	children, err = repo.ListChildren(ctx, parent.ID, false)
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestObjectiveRepo_HydratesKPIIDs(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteObjectiveRepo(database)
	kpis := NewSQLiteKPIRepo(database)
	links := NewSQLiteLinkRepo(database)
	ctx := context.Background()

	o := testutil.NewTestObjective("With KPIs")
	require.NoError(t, repo.Create(ctx, o))
	k := testutil.NewTestKPI("Metric")
	require.NoError(t, kpis.Create(ctx, k))
	require.NoError(t, links.Link(ctx, o.ID, k.ID))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{k.ID}, got.KPIIDs)

	listed, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string{k.ID}, listed[0].KPIIDs, "list hydrates edges too")
}
