package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
	"github.com/leuz9/oolu-kpis-sub000/internal/testutil"
)

const seedYAML = `objectives:
  - ref: co
    title: Grow the business
    level: company
    quarter: 3
    year: 2026
  - ref: sales
    parent_ref: co
    title: Grow sales
    level: department
    contributors: [alice]
    quarter: 3
    year: 2026
kpis:
  - ref: deals
    name: Deals closed
    unit: deals
    value: 4
    target: 10
links:
  - objective_ref: sales
    kpi_ref: deals
`

func TestLoadSeedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0644))

	schema, err := LoadSeedSchema(path)
	require.NoError(t, err)

	require.Len(t, schema.Objectives, 2)
	assert.Equal(t, "co", schema.Objectives[0].Ref)
	require.NotNil(t, schema.Objectives[1].ParentRef)
	assert.Equal(t, "co", *schema.Objectives[1].ParentRef)
	assert.Equal(t, []string{"alice"}, schema.Objectives[1].Contributors)

	require.Len(t, schema.KPIs, 1)
	assert.Equal(t, 10.0, schema.KPIs[0].Target)

	require.Len(t, schema.Links, 1)
	assert.Equal(t, "sales", schema.Links[0].ObjectiveRef)
	assert.Equal(t, "deals", schema.Links[0].KPIRef)
}

func TestLoadSeedSchema_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- nope"), 0644))

	_, err := LoadSeedSchema(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing seed file")
}

func TestPersist_WritesWholeTree(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	schema := validSeedSchema()
	require.Empty(t, ValidateSeedSchema(schema))
	tree, err := Convert(schema)
	require.NoError(t, err)

	require.NoError(t, Persist(ctx, uow, tree))

	objectives := repository.NewSQLiteObjectiveRepo(database)
	all, err := objectives.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	links := repository.NewSQLiteLinkRepo(database)
	kpiIDs, err := links.KPIIDsFor(ctx, tree.Links[0].ObjectiveID)
	require.NoError(t, err)
	assert.Equal(t, []string{tree.Links[0].KPIID}, kpiIDs)
}

func TestPersist_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	tree, err := Convert(validSeedSchema())
	require.NoError(t, err)
	// Duplicate id forces the second insert to fail mid-transaction.
	tree.Objectives[1].ID = tree.Objectives[0].ID

	err = Persist(ctx, uow, tree)
	require.Error(t, err)

	all, err := repository.NewSQLiteObjectiveRepo(database).List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all, "a failed import must leave nothing behind")
}
