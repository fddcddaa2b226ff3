package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paulavishek/prizmai/internal/db"
	"github.com/paulavishek/prizmai/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
// (board_id, week_start) is unique; Upsert rewrites a week's counts whenever
// it is called again for that week. Counts derive from immutable completion
// records, so rewriting an elapsed week is idempotent and only the current
// partial week ever changes value between refreshes.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(db db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: db}
}

func (r *SQLiteSnapshotRepo) Upsert(ctx context.Context, s *domain.VelocitySnapshot) error {
	query := `INSERT INTO velocity_snapshots (id, board_id, week_start,
		items_completed, story_points_completed, team_size, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(board_id, week_start) DO UPDATE SET
			items_completed = excluded.items_completed,
			story_points_completed = excluded.story_points_completed,
			team_size = excluded.team_size,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.BoardID,
		s.WeekStart.UTC().Format(time.RFC3339),
		s.ItemsCompleted,
		nullableFloatToValue(s.StoryPointsCompleted),
		s.TeamSize,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting velocity snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.VelocitySnapshot, error) {
	query := `SELECT id, board_id, week_start, items_completed, story_points_completed,
		team_size, created_at, updated_at
		FROM velocity_snapshots WHERE board_id = ? ORDER BY week_start`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing velocity snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*domain.VelocitySnapshot
	for rows.Next() {
		var s domain.VelocitySnapshot
		var weekStart, createdAt, updatedAt string
		var storyPoints sql.NullFloat64

		if err := rows.Scan(
			&s.ID, &s.BoardID, &weekStart, &s.ItemsCompleted, &storyPoints,
			&s.TeamSize, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning velocity snapshot row: %w", err)
		}

		s.WeekStart, _ = time.Parse(time.RFC3339, weekStart)
		s.StoryPointsCompleted = nullFloatPtr(storyPoints)
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		snaps = append(snaps, &s)
	}
	return snaps, rows.Err()
}
