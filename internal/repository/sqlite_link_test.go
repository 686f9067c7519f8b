package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leuz9/oolu-kpis-sub000/internal/testutil"
)

// seedEdgeEndpoints inserts an objective and a KPI so the edge table's
// foreign keys are satisfied.
func seedEdgeEndpoints(t *testing.T, database *sql.DB, objectiveID, kpiID string) {
	t.Helper()
	ctx := context.Background()

	o := testutil.NewTestObjective("Edge objective")
	o.ID = objectiveID
	require.NoError(t, NewSQLiteObjectiveRepo(database).Create(ctx, o))

	k := testutil.NewTestKPI("Edge metric")
	k.ID = kpiID
	require.NoError(t, NewSQLiteKPIRepo(database).Create(ctx, k))
}

func TestLinkRepo_LinkIsIdempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLinkRepo(database)
	ctx := context.Background()

	seedEdgeEndpoints(t, database, "obj-1", "kpi-1")

	require.NoError(t, repo.Link(ctx, "obj-1", "kpi-1"))
	require.NoError(t, repo.Link(ctx, "obj-1", "kpi-1"))

	kpiIDs, err := repo.KPIIDsFor(ctx, "obj-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"kpi-1"}, kpiIDs, "re-linking must not duplicate the edge")

	objIDs, err := repo.ObjectiveIDsFor(ctx, "kpi-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"obj-1"}, objIDs)
}

func TestLinkRepo_BothDirectionsSeeTheSameEdge(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLinkRepo(database)
	ctx := context.Background()

	seedEdgeEndpoints(t, database, "obj-1", "kpi-1")
	k2 := testutil.NewTestKPI("Second metric")
	k2.ID = "kpi-2"
	require.NoError(t, NewSQLiteKPIRepo(database).Create(ctx, k2))

	require.NoError(t, repo.Link(ctx, "obj-1", "kpi-1"))
	require.NoError(t, repo.Link(ctx, "obj-1", "kpi-2"))

	kpiIDs, err := repo.KPIIDsFor(ctx, "obj-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"kpi-1", "kpi-2"}, kpiIDs)

	for _, kpiID := range kpiIDs {
		objIDs, err := repo.ObjectiveIDsFor(ctx, kpiID)
		require.NoError(t, err)
		assert.Equal(t, []string{"obj-1"}, objIDs, "kpi %s must point back", kpiID)
	}
}

func TestLinkRepo_UnlinkRemovesFromBothDirections(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLinkRepo(database)
	ctx := context.Background()

	seedEdgeEndpoints(t, database, "obj-1", "kpi-1")
	require.NoError(t, repo.Link(ctx, "obj-1", "kpi-1"))
	require.NoError(t, repo.Unlink(ctx, "obj-1", "kpi-1"))

	kpiIDs, err := repo.KPIIDsFor(ctx, "obj-1")
	require.NoError(t, err)
	assert.Empty(t, kpiIDs)

	objIDs, err := repo.ObjectiveIDsFor(ctx, "kpi-1")
	require.NoError(t, err)
	assert.Empty(t, objIDs)
}

func TestLinkRepo_UnlinkMissingEdgeIsNoOp(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLinkRepo(database)
	ctx := context.Background()

	seedEdgeEndpoints(t, database, "obj-1", "kpi-1")

	require.NoError(t, repo.Unlink(ctx, "obj-1", "kpi-1"))
}

func TestLinkRepo_Exists(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLinkRepo(database)
	ctx := context.Background()

	seedEdgeEndpoints(t, database, "obj-1", "kpi-1")

	ok, err := repo.Exists(ctx, "obj-1", "kpi-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Link(ctx, "obj-1", "kpi-1"))

	ok, err = repo.Exists(ctx, "obj-1", "kpi-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
