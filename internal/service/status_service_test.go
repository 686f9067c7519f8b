package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leuz9/oolu-kpis-sub000/internal/contract"
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
	"github.com/leuz9/oolu-kpis-sub000/internal/testutil"
)

func TestGetStatus_BuildsTreeWithCounters(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	status := NewStatusService(env.objectiveRepo, env.kpiRepo, env.linkRepo)

	company := testutil.NewTestObjective("Company")
	require.NoError(t, env.objectives.Create(ctx, testActor, company))
	dept := testutil.NewTestObjective("Dept",
		testutil.WithLevel(domain.LevelDepartment),
		testutil.WithParent(company.ID))
	require.NoError(t, env.objectives.Create(ctx, testActor, dept))

	k := testutil.NewTestKPI("Metric", testutil.WithValueTarget(95, 100))
	require.NoError(t, env.kpis.Create(ctx, testActor, k))
	_, err := env.links.Link(ctx, testActor, dept.ID, k.ID)
	require.NoError(t, err)

	resp, err := status.GetStatus(ctx, contract.StatusRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.OnTrack)
	assert.Equal(t, 95, resp.AvgCompany)

	require.Len(t, resp.Roots, 1)
	root := resp.Roots[0]
	assert.Equal(t, company.ID, root.ID)
	assert.Equal(t, 95, root.Progress)
	require.Len(t, root.Children, 1)
	child := root.Children[0]
	assert.Equal(t, dept.ID, child.ID)
	require.Len(t, child.KPIs, 1)
	assert.Equal(t, "Metric", child.KPIs[0].Name)
}

func TestGetStatus_ArchivedExcludedByDefault(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	status := NewStatusService(env.objectiveRepo, env.kpiRepo, env.linkRepo)

	keep := testutil.NewTestObjective("Keep")
	require.NoError(t, env.objectives.Create(ctx, testActor, keep))
	gone := testutil.NewTestObjective("Gone")
	require.NoError(t, env.objectives.Create(ctx, testActor, gone))
	require.NoError(t, env.objectives.Archive(ctx, testActor, gone.ID))

	resp, err := status.GetStatus(ctx, contract.StatusRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 0, resp.Archived)
	require.Len(t, resp.Roots, 1)
	assert.Equal(t, keep.ID, resp.Roots[0].ID)

	resp, err = status.GetStatus(ctx, contract.StatusRequest{IncludeArchived: true})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Archived)
	assert.Len(t, resp.Roots, 2)
}

// TestGetStatus_OrphanedActiveChildSurfacesAsRoot keeps active children
// visible when their parent was archived and filtered out of the report.
func TestGetStatus_OrphanedActiveChildSurfacesAsRoot(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	status := NewStatusService(env.objectiveRepo, env.kpiRepo, env.linkRepo)

	company := testutil.NewTestObjective("Company")
	require.NoError(t, env.objectives.Create(ctx, testActor, company))
	dept := testutil.NewTestObjective("Dept",
		testutil.WithLevel(domain.LevelDepartment),
		testutil.WithParent(company.ID))
	require.NoError(t, env.objectives.Create(ctx, testActor, dept))
	require.NoError(t, env.objectives.Archive(ctx, testActor, company.ID))

	resp, err := status.GetStatus(ctx, contract.StatusRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Roots, 1)
	assert.Equal(t, dept.ID, resp.Roots[0].ID)
}
