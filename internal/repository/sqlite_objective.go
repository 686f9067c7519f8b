package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/leuz9/oolu-kpis-sub000/internal/db"
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// objectiveColumns is the canonical SELECT column list for objectives.
const objectiveColumns = `id, title, description, level, parent_id, status, progress,
		contributors, due_date, quarter, year, archived_at, version, created_at, updated_at`

// SQLiteObjectiveRepo implements ObjectiveRepo using a SQLite database.
type SQLiteObjectiveRepo struct {
	db db.DBTX
}

// NewSQLiteObjectiveRepo creates a new SQLiteObjectiveRepo. The handle may
// be a *sql.DB or a transaction obtained from a UnitOfWork.
func NewSQLiteObjectiveRepo(db db.DBTX) *SQLiteObjectiveRepo {
	return &SQLiteObjectiveRepo{db: db}
}

func (r *SQLiteObjectiveRepo) Create(ctx context.Context, o *domain.Objective) error {
	query := `INSERT INTO objectives (id, title, description, level, parent_id, status, progress,
		contributors, due_date, quarter, year, archived_at, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if o.Version == 0 {
		o.Version = 1
	}
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.Title,
		o.Description,
		string(o.Level),
		nullableStringToValue(o.ParentID),
		string(o.Status),
		o.Progress,
		idsToJSON(o.Contributors),
		nullableTimeToString(o.DueDate, dateLayout),
		o.Quarter,
		o.Year,
		nullableTimeToString(o.ArchivedAt, time.RFC3339),
		o.Version,
		o.CreatedAt.Format(time.RFC3339),
		o.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting objective: %w", err)
	}
	return nil
}

func (r *SQLiteObjectiveRepo) GetByID(ctx context.Context, id string) (*domain.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	o, err := r.scanObjective(row)
	if err != nil {
		return nil, err
	}
	kpiIDs, err := r.loadKPIIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	o.KPIIDs = kpiIDs
	return o, nil
}

func (r *SQLiteObjectiveRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives`
	if !includeArchived {
		query += ` WHERE status != 'archived'`
	}
	query += ` ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing objectives: %w", err)
	}
	defer rows.Close()
	objectives, err := r.scanObjectives(rows)
	if err != nil {
		return nil, err
	}
	if err := r.hydrateKPIIDs(ctx, objectives); err != nil {
		return nil, err
	}
	return objectives, nil
}

func (r *SQLiteObjectiveRepo) ListChildren(ctx context.Context, parentID string, activeOnly bool) ([]*domain.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE parent_id = ?`
	if activeOnly {
		query += ` AND status != 'archived'`
	}
	query += ` ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child objectives: %w", err)
	}
	defer rows.Close()
	children, err := r.scanObjectives(rows)
	if err != nil {
		return nil, err
	}
	if err := r.hydrateKPIIDs(ctx, children); err != nil {
		return nil, err
	}
	return children, nil
}

// Update persists all mutable fields, conditioned on the version the caller
// read. A concurrent writer bumps the version, which surfaces here as
// ErrWriteConflict so the caller can re-read and retry.
func (r *SQLiteObjectiveRepo) Update(ctx context.Context, o *domain.Objective) error {
	query := `UPDATE objectives SET
		title = ?, description = ?, level = ?, parent_id = ?, status = ?, progress = ?,
		contributors = ?, due_date = ?, quarter = ?, year = ?, archived_at = ?,
		version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		o.Title,
		o.Description,
		string(o.Level),
		nullableStringToValue(o.ParentID),
		string(o.Status),
		o.Progress,
		idsToJSON(o.Contributors),
		nullableTimeToString(o.DueDate, dateLayout),
		o.Quarter,
		o.Year,
		nullableTimeToString(o.ArchivedAt, time.RFC3339),
		now.Format(time.RFC3339),
		o.ID,
		o.Version,
	)
	if err != nil {
		return fmt.Errorf("updating objective: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating objective: %w", err)
	}
	if affected == 0 {
		return r.conflictOrMissing(ctx, o.ID)
	}
	o.Version++
	o.UpdatedAt = now
	return nil
}

// conflictOrMissing distinguishes a stale version from a missing row after
// a zero-row UPDATE.
func (r *SQLiteObjectiveRepo) conflictOrMissing(ctx context.Context, id string) error {
	var found string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM objectives WHERE id = ?`, id).Scan(&found)
	if err == sql.ErrNoRows {
		return fmt.Errorf("objective %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking objective existence: %w", err)
	}
	return fmt.Errorf("objective %s: %w", id, ErrWriteConflict)
}

func (r *SQLiteObjectiveRepo) loadKPIIDs(ctx context.Context, objectiveID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kpi_id FROM objective_kpis WHERE objective_id = ? ORDER BY created_at, kpi_id`,
		objectiveID)
	if err != nil {
		return nil, fmt.Errorf("loading linked kpi ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning kpi id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// hydrateKPIIDs fills KPIIDs for a batch of objectives with a single query
// over the edge table.
func (r *SQLiteObjectiveRepo) hydrateKPIIDs(ctx context.Context, objectives []*domain.Objective) error {
	if len(objectives) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Objective, len(objectives))
	for _, o := range objectives {
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT objective_id, kpi_id FROM objective_kpis ORDER BY created_at, kpi_id`)
	if err != nil {
		return fmt.Errorf("loading objective links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var objID, kpiID string
		if err := rows.Scan(&objID, &kpiID); err != nil {
			return fmt.Errorf("scanning link row: %w", err)
		}
		if o, ok := byID[objID]; ok {
			o.KPIIDs = append(o.KPIIDs, kpiID)
		}
	}
	return rows.Err()
}

func (r *SQLiteObjectiveRepo) scanObjective(row *sql.Row) (*domain.Objective, error) {
	o, err := scanObjectiveFrom(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("objective: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning objective: %w", err)
	}
	return o, nil
}

func (r *SQLiteObjectiveRepo) scanObjectives(rows *sql.Rows) ([]*domain.Objective, error) {
	var objectives []*domain.Objective
	for rows.Next() {
		o, err := scanObjectiveFrom(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning objective: %w", err)
		}
		objectives = append(objectives, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating objectives: %w", err)
	}
	return objectives, nil
}

// scanObjectiveFrom scans an objective from either a *sql.Row or *sql.Rows
// scan function.
func scanObjectiveFrom(scan func(dest ...any) error) (*domain.Objective, error) {
	var o domain.Objective
	var level, status, contributors, createdAt, updatedAt string
	var parentID, dueDate, archivedAt sql.NullString

	err := scan(
		&o.ID, &o.Title, &o.Description, &level, &parentID, &status, &o.Progress,
		&contributors, &dueDate, &o.Quarter, &o.Year, &archivedAt, &o.Version,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Level = domain.Level(level)
	o.Status = domain.Status(status)
	o.Contributors = idsFromJSON(contributors)
	if parentID.Valid {
		id := parentID.String
		o.ParentID = &id
	}
	o.DueDate = parseNullableTime(dueDate, dateLayout)
	o.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
	o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	o.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &o, nil
}
