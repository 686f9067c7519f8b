package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/leuz9/oolu-kpis-sub000/internal/db"
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// kpiColumns is the canonical SELECT column list for kpis.
const kpiColumns = `id, name, unit, value, target, progress, status, version, created_at, updated_at`

// SQLiteKPIRepo implements KPIRepo using a SQLite database.
type SQLiteKPIRepo struct {
	db db.DBTX
}

// NewSQLiteKPIRepo creates a new SQLiteKPIRepo.
func NewSQLiteKPIRepo(db db.DBTX) *SQLiteKPIRepo {
	return &SQLiteKPIRepo{db: db}
}

func (r *SQLiteKPIRepo) Create(ctx context.Context, k *domain.KPI) error {
	query := `INSERT INTO kpis (id, name, unit, value, target, progress, status, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if k.Version == 0 {
		k.Version = 1
	}
	_, err := r.db.ExecContext(ctx, query,
		k.ID,
		k.Name,
		k.Unit,
		k.Value,
		k.Target,
		k.Progress,
		string(k.Status),
		k.Version,
		k.CreatedAt.Format(time.RFC3339),
		k.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting kpi: %w", err)
	}
	return nil
}

func (r *SQLiteKPIRepo) GetByID(ctx context.Context, id string) (*domain.KPI, error) {
	query := `SELECT ` + kpiColumns + ` FROM kpis WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	k, err := scanKPIFrom(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("kpi: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning kpi: %w", err)
	}
	objectiveIDs, err := r.loadObjectiveIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	k.ObjectiveIDs = objectiveIDs
	return k, nil
}

func (r *SQLiteKPIRepo) List(ctx context.Context) ([]*domain.KPI, error) {
	query := `SELECT ` + kpiColumns + ` FROM kpis ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing kpis: %w", err)
	}
	defer rows.Close()
	kpis, err := r.scanKPIs(rows)
	if err != nil {
		return nil, err
	}
	if err := r.hydrateObjectiveIDs(ctx, kpis); err != nil {
		return nil, err
	}
	return kpis, nil
}

func (r *SQLiteKPIRepo) ListByObjective(ctx context.Context, objectiveID string) ([]*domain.KPI, error) {
	query := `SELECT k.id, k.name, k.unit, k.value, k.target, k.progress, k.status,
			k.version, k.created_at, k.updated_at
		FROM kpis k
		JOIN objective_kpis ok ON ok.kpi_id = k.id
		WHERE ok.objective_id = ?
		ORDER BY ok.created_at, k.id`
	rows, err := r.db.QueryContext(ctx, query, objectiveID)
	if err != nil {
		return nil, fmt.Errorf("listing kpis by objective: %w", err)
	}
	defer rows.Close()
	return r.scanKPIs(rows)
}

// Update persists value, target and the derived fields, conditioned on the
// version the caller read (see ObjectiveRepo.Update).
func (r *SQLiteKPIRepo) Update(ctx context.Context, k *domain.KPI) error {
	query := `UPDATE kpis SET
		name = ?, unit = ?, value = ?, target = ?, progress = ?, status = ?,
		version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		k.Name,
		k.Unit,
		k.Value,
		k.Target,
		k.Progress,
		string(k.Status),
		now.Format(time.RFC3339),
		k.ID,
		k.Version,
	)
	if err != nil {
		return fmt.Errorf("updating kpi: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating kpi: %w", err)
	}
	if affected == 0 {
		var found string
		err := r.db.QueryRowContext(ctx, `SELECT id FROM kpis WHERE id = ?`, k.ID).Scan(&found)
		if err == sql.ErrNoRows {
			return fmt.Errorf("kpi %s: %w", k.ID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("checking kpi existence: %w", err)
		}
		return fmt.Errorf("kpi %s: %w", k.ID, ErrWriteConflict)
	}
	k.Version++
	k.UpdatedAt = now
	return nil
}

func (r *SQLiteKPIRepo) loadObjectiveIDs(ctx context.Context, kpiID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT objective_id FROM objective_kpis WHERE kpi_id = ? ORDER BY created_at, objective_id`,
		kpiID)
	if err != nil {
		return nil, fmt.Errorf("loading linked objective ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning objective id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *SQLiteKPIRepo) hydrateObjectiveIDs(ctx context.Context, kpis []*domain.KPI) error {
	if len(kpis) == 0 {
		return nil
	}
	byID := make(map[string]*domain.KPI, len(kpis))
	for _, k := range kpis {
		byID[k.ID] = k
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT kpi_id, objective_id FROM objective_kpis ORDER BY created_at, objective_id`)
	if err != nil {
		return fmt.Errorf("loading kpi links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kpiID, objID string
		if err := rows.Scan(&kpiID, &objID); err != nil {
			return fmt.Errorf("scanning link row: %w", err)
		}
		if k, ok := byID[kpiID]; ok {
			k.ObjectiveIDs = append(k.ObjectiveIDs, objID)
		}
	}
	return rows.Err()
}

func (r *SQLiteKPIRepo) scanKPIs(rows *sql.Rows) ([]*domain.KPI, error) {
	var kpis []*domain.KPI
	for rows.Next() {
		k, err := scanKPIFrom(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning kpi: %w", err)
		}
		kpis = append(kpis, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kpis: %w", err)
	}
	return kpis, nil
}

func scanKPIFrom(scan func(dest ...any) error) (*domain.KPI, error) {
	var k domain.KPI
	var status, createdAt, updatedAt string

	err := scan(
		&k.ID, &k.Name, &k.Unit, &k.Value, &k.Target, &k.Progress, &status,
		&k.Version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	k.Status = domain.Status(status)
	k.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	k.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &k, nil
}
