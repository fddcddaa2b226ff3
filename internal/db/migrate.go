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
	`CREATE TABLE IF NOT EXISTS boards (
		id              TEXT PRIMARY KEY,
		organization_id TEXT NOT NULL,
		name            TEXT NOT NULL,
		start_date      TEXT NOT NULL,
		due_date        TEXT,
		archived_at     TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_boards_org ON boards(organization_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                     TEXT PRIMARY KEY,
		board_id               TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		organization_id        TEXT NOT NULL,
		title                  TEXT NOT NULL,
		status                 TEXT NOT NULL DEFAULT 'todo'
		                       CHECK(status IN ('todo','in_progress','done','archived')),
		assignee_id            TEXT,
		priority               TEXT NOT NULL DEFAULT 'medium'
		                       CHECK(priority IN ('low','medium','high','urgent')),
		complexity_score       INTEGER NOT NULL DEFAULT 5,
		progress_pct           REAL NOT NULL DEFAULT 0,
		risk_score             REAL,
		dependency_count       INTEGER NOT NULL DEFAULT 0,
		requires_collaboration INTEGER NOT NULL DEFAULT 0,
		start_date             TEXT,
		completed_at           TEXT,
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_board ON tasks(board_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_org ON tasks(organization_id)`,

	`CREATE TABLE IF NOT EXISTS completed_items (
		id                   TEXT PRIMARY KEY,
		task_id              TEXT NOT NULL,
		assignee_id          TEXT,
		board_id             TEXT NOT NULL,
		organization_id      TEXT NOT NULL,
		complexity_score     INTEGER NOT NULL,
		priority             TEXT NOT NULL
		                     CHECK(priority IN ('low','medium','high','urgent')),
		actual_duration_days REAL NOT NULL CHECK(actual_duration_days >= 0),
		story_points         REAL,
		completed_at         TEXT NOT NULL,
		created_at           TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_completed_assignee ON completed_items(assignee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_completed_board ON completed_items(board_id)`,
	`CREATE INDEX IF NOT EXISTS idx_completed_org ON completed_items(organization_id)`,
	`CREATE INDEX IF NOT EXISTS idx_completed_at ON completed_items(completed_at)`,

	`CREATE TABLE IF NOT EXISTS predictions (
		task_id                  TEXT PRIMARY KEY REFERENCES tasks(id) ON DELETE CASCADE,
		predicted_date           TEXT NOT NULL,
		adjusted_days            REAL NOT NULL,
		confidence_score         REAL NOT NULL,
		confidence_interval_days REAL NOT NULL,
		sample_size              INTEGER NOT NULL,
		tier                     TEXT NOT NULL,
		method                   TEXT NOT NULL
		                         CHECK(method IN ('historical_analysis','rule_based_fallback')),
		factors                  TEXT NOT NULL,
		computed_at              TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS velocity_snapshots (
		id                     TEXT PRIMARY KEY,
		board_id               TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		week_start             TEXT NOT NULL,
		items_completed        INTEGER NOT NULL DEFAULT 0,
		story_points_completed REAL,
		team_size              INTEGER NOT NULL DEFAULT 0,
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL,
		UNIQUE(board_id, week_start)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_board ON velocity_snapshots(board_id)`,

	`CREATE TABLE IF NOT EXISTS burndown_curves (
		board_id        TEXT PRIMARY KEY REFERENCES boards(id) ON DELETE CASCADE,
		historical      TEXT NOT NULL,
		projected       TEXT NOT NULL,
		band_upper      TEXT NOT NULL,
		band_lower      TEXT NOT NULL,
		ideal           TEXT NOT NULL,
		mean_velocity   REAL NOT NULL,
		stddev_velocity REAL NOT NULL,
		risk_level      TEXT NOT NULL
		                CHECK(risk_level IN ('on_track','at_risk','critical')),
		too_short       INTEGER NOT NULL DEFAULT 0,
		computed_at     TEXT NOT NULL
	)`,
}
