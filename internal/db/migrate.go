package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS objectives (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		level        TEXT NOT NULL
		             CHECK(level IN ('company','department','individual')),
		parent_id    TEXT REFERENCES objectives(id),
		status       TEXT NOT NULL DEFAULT 'behind'
		             CHECK(status IN ('on-track','at-risk','behind','archived')),
		progress     INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		contributors TEXT NOT NULL DEFAULT '[]',
		due_date     TEXT,
		quarter      INTEGER NOT NULL DEFAULT 0,
		year         INTEGER NOT NULL DEFAULT 0,
		archived_at  TEXT,
		version      INTEGER NOT NULL DEFAULT 1,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_objectives_parent ON objectives(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_objectives_status ON objectives(status)`,

	`CREATE TABLE IF NOT EXISTS kpis (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		unit       TEXT NOT NULL DEFAULT '',
		value      REAL NOT NULL DEFAULT 0,
		target     REAL NOT NULL CHECK(target <> 0),
		progress   INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		status     TEXT NOT NULL DEFAULT 'behind'
		           CHECK(status IN ('on-track','at-risk','behind')),
		version    INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS objective_kpis (
		objective_id TEXT NOT NULL REFERENCES objectives(id) ON DELETE CASCADE,
		kpi_id       TEXT NOT NULL REFERENCES kpis(id) ON DELETE CASCADE,
		created_at   TEXT NOT NULL,
		PRIMARY KEY (objective_id, kpi_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_objective_kpis_kpi ON objective_kpis(kpi_id)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		title      TEXT NOT NULL,
		message    TEXT NOT NULL,
		type       TEXT NOT NULL,
		priority   TEXT NOT NULL DEFAULT 'medium'
		           CHECK(priority IN ('low','medium','high')),
		link       TEXT NOT NULL DEFAULT '',
		read_at    TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS audit_events (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		ts           TEXT NOT NULL,
		actor        TEXT NOT NULL,
		type         TEXT NOT NULL,
		payload_json TEXT NOT NULL
	)`,
}
