package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Running migrations again must succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"objectives", "kpis", "objective_kpis", "notifications", "audit_events"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_objectives_parent",
		"idx_objectives_status",
		"idx_objective_kpis_kpi",
		"idx_notifications_user",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_ObjectiveCheckConstraints(t *testing.T) {
	db := openTestDB(t)

	// Invalid level should fail.
	_, err := db.Exec(`INSERT INTO objectives (id, title, level, created_at, updated_at)
		VALUES ('o1', 'Test', 'galaxy', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "invalid level should be rejected by CHECK constraint")

	// Out-of-range progress should fail.
	_, err = db.Exec(`INSERT INTO objectives (id, title, level, progress, created_at, updated_at)
		VALUES ('o1', 'Test', 'company', 120, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "progress above 100 should be rejected by CHECK constraint")

	// Valid row should succeed.
	_, err = db.Exec(`INSERT INTO objectives (id, title, level, created_at, updated_at)
		VALUES ('o1', 'Test', 'company', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
}

func TestMigrate_KPIZeroTargetRejected(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO kpis (id, name, target, created_at, updated_at)
		VALUES ('k1', 'Revenue', 0, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "zero target should be rejected by CHECK constraint")
}

func TestMigrate_LinkPrimaryKeyDeduplicates(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO objectives (id, title, level, created_at, updated_at)
		VALUES ('o1', 'Test', 'company', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO kpis (id, name, target, created_at, updated_at)
		VALUES ('k1', 'Revenue', 100, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO objective_kpis (objective_id, kpi_id, created_at)
		VALUES ('o1', 'k1', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO objective_kpis (objective_id, kpi_id, created_at)
		VALUES ('o1', 'k1', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "duplicate edge should violate the primary key")

	_, err = db.Exec(`INSERT OR IGNORE INTO objective_kpis (objective_id, kpi_id, created_at)
		VALUES ('o1', 'k1', '2025-01-01T00:00:00Z')`)
	assert.NoError(t, err, "INSERT OR IGNORE should absorb the duplicate")
}
