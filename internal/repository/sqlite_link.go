package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leuz9/oolu-kpis-sub000/internal/db"
)

// SQLiteLinkRepo implements LinkRepo over the objective_kpis edge table.
type SQLiteLinkRepo struct {
	db db.DBTX
}

// NewSQLiteLinkRepo creates a new SQLiteLinkRepo.
func NewSQLiteLinkRepo(db db.DBTX) *SQLiteLinkRepo {
	return &SQLiteLinkRepo{db: db}
}

// Link records the edge. Linking the same pair twice is a no-op; the
// primary key gives the edge set semantics.
func (r *SQLiteLinkRepo) Link(ctx context.Context, objectiveID, kpiID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO objective_kpis (objective_id, kpi_id, created_at) VALUES (?, ?, ?)`,
		objectiveID, kpiID, nowUTC())
	if err != nil {
		return fmt.Errorf("linking kpi to objective: %w", err)
	}
	return nil
}

// Unlink removes the edge. Removing an absent edge is a no-op.
func (r *SQLiteLinkRepo) Unlink(ctx context.Context, objectiveID, kpiID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM objective_kpis WHERE objective_id = ? AND kpi_id = ?`,
		objectiveID, kpiID)
	if err != nil {
		return fmt.Errorf("unlinking kpi from objective: %w", err)
	}
	return nil
}

func (r *SQLiteLinkRepo) Exists(ctx context.Context, objectiveID, kpiID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM objective_kpis WHERE objective_id = ? AND kpi_id = ?`,
		objectiveID, kpiID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("checking link existence: %w", err)
	}
	return true, nil
}

func (r *SQLiteLinkRepo) KPIIDsFor(ctx context.Context, objectiveID string) ([]string, error) {
	return r.edgeIDs(ctx,
		`SELECT kpi_id FROM objective_kpis WHERE objective_id = ? ORDER BY created_at, kpi_id`,
		objectiveID)
}

func (r *SQLiteLinkRepo) ObjectiveIDsFor(ctx context.Context, kpiID string) ([]string, error) {
	return r.edgeIDs(ctx,
		`SELECT objective_id FROM objective_kpis WHERE kpi_id = ? ORDER BY created_at, objective_id`,
		kpiID)
}

func (r *SQLiteLinkRepo) edgeIDs(ctx context.Context, query, arg string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing edge ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning edge id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
