package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
	"github.com/leuz9/oolu-kpis-sub000/internal/testutil"
)

func TestKPIRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteKPIRepo(database)
	ctx := context.Background()

	k := testutil.NewTestKPI("Signups", testutil.WithValueTarget(45, 100))
	k.Unit = "users"
	k.Recompute()
	require.NoError(t, repo.Create(ctx, k))

	got, err := repo.GetByID(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, "Signups", got.Name)
	assert.Equal(t, "users", got.Unit)
	assert.Equal(t, 45.0, got.Value)
	assert.Equal(t, 100.0, got.Target)
	assert.Equal(t, 45, got.Progress)
	assert.Equal(t, domain.StatusBehind, got.Status)
	assert.Equal(t, int64(1), got.Version)
	assert.Empty(t, got.ObjectiveIDs)
}

func TestKPIRepo_GetMissingReturnsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteKPIRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKPIRepo_UpdateBumpsVersion(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteKPIRepo(database)
	ctx := context.Background()

	k := testutil.NewTestKPI("Signups")
	require.NoError(t, repo.Create(ctx, k))

	k.Value = 70
	k.Recompute()
	require.NoError(t, repo.Update(ctx, k))
	assert.Equal(t, int64(2), k.Version)

	got, err := repo.GetByID(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, 70.0, got.Value)
	assert.Equal(t, int64(2), got.Version)
}

func TestKPIRepo_StaleVersionConflicts(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteKPIRepo(database)
	ctx := context.Background()

	k := testutil.NewTestKPI("Signups")
	require.NoError(t, repo.Create(ctx, k))

	first, err := repo.GetByID(ctx, k.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, k.ID)
	require.NoError(t, err)

	first.Value = 30
	first.Recompute()
	require.NoError(t, repo.Update(ctx, first))

	second.Value = 99
	second.Recompute()
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, ErrWriteConflict)

	got, err := repo.GetByID(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.Value, "the stale writer must not clobber the first write")
}

func TestKPIRepo_UpdateMissingReturnsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteKPIRepo(database)

	k := testutil.NewTestKPI("Ghost")
	k.Version = 1
	err := repo.Update(context.Background(), k)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKPIRepo_ListByObjective(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteKPIRepo(database)
	linkRepo := NewSQLiteLinkRepo(database)
	ctx := context.Background()

	o := testutil.NewTestObjective("Growth")
	require.NoError(t, NewSQLiteObjectiveRepo(database).Create(ctx, o))

	var linked []string
	for _, name := range []string{"Signups", "Revenue", "Churn"} {
		k := testutil.NewTestKPI(name)
		require.NoError(t, repo.Create(ctx, k))
		if name != "Churn" {
			require.NoError(t, linkRepo.Link(ctx, o.ID, k.ID))
			linked = append(linked, name)
		}
	}

	got, err := repo.ListByObjective(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	var names []string
	for _, k := range got {
		names = append(names, k.Name)
		assert.Equal(t, []string{o.ID}, k.ObjectiveIDs, "listed KPIs carry their back-references")
	}
	assert.ElementsMatch(t, linked, names)
}

func TestKPIRepo_ListHydratesObjectiveIDs(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteKPIRepo(database)
	linkRepo := NewSQLiteLinkRepo(database)
	ctx := context.Background()

	a := testutil.NewTestObjective("Growth")
	b := testutil.NewTestObjective("Retention")
	objRepo := NewSQLiteObjectiveRepo(database)
	require.NoError(t, objRepo.Create(ctx, a))
	require.NoError(t, objRepo.Create(ctx, b))

	shared := testutil.NewTestKPI("NPS")
	solo := testutil.NewTestKPI("MRR")
	require.NoError(t, repo.Create(ctx, shared))
	require.NoError(t, repo.Create(ctx, solo))

	require.NoError(t, linkRepo.Link(ctx, a.ID, shared.ID))
	require.NoError(t, linkRepo.Link(ctx, b.ID, shared.ID))
	require.NoError(t, linkRepo.Link(ctx, a.ID, solo.ID))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byName := map[string]*domain.KPI{}
	for _, k := range all {
		byName[k.Name] = k
	}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, byName["NPS"].ObjectiveIDs)
	assert.Equal(t, []string{a.ID}, byName["MRR"].ObjectiveIDs)
}
