package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paulavishek/prizmai/internal/db"
	"github.com/paulavishek/prizmai/internal/domain"
)

// completionColumns is the canonical SELECT column list for completed_items.
const completionColumns = `id, task_id, assignee_id, board_id, organization_id,
		complexity_score, priority, actual_duration_days, story_points,
		completed_at, created_at`

// SQLiteCompletionRepo implements CompletionRepo using a SQLite database.
type SQLiteCompletionRepo struct {
	db db.DBTX
}

// NewSQLiteCompletionRepo creates a new SQLiteCompletionRepo.
func NewSQLiteCompletionRepo(db db.DBTX) *SQLiteCompletionRepo {
	return &SQLiteCompletionRepo{db: db}
}

func (r *SQLiteCompletionRepo) Create(ctx context.Context, c *domain.CompletedItem) error {
	query := `INSERT INTO completed_items (id, task_id, assignee_id, board_id, organization_id,
		complexity_score, priority, actual_duration_days, story_points, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.TaskID,
		nullableStringToValue(c.AssigneeID),
		c.BoardID,
		c.OrganizationID,
		c.ComplexityScore,
		string(c.Priority),
		c.ActualDurationDays,
		nullableFloatToValue(c.StoryPoints),
		c.CompletedAt.Format(time.RFC3339),
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting completed item: %w", err)
	}
	return nil
}

func (r *SQLiteCompletionRepo) ListByAssignee(ctx context.Context, assigneeID string, f SimilarityFilter) ([]*domain.CompletedItem, error) {
	query := `SELECT ` + completionColumns + ` FROM completed_items
		WHERE assignee_id = ?` + similarityClause(f) + ` ORDER BY completed_at DESC`
	args := append([]any{assigneeID}, similarityArgs(f)...)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completions by assignee: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (r *SQLiteCompletionRepo) ListByBoard(ctx context.Context, boardID string, f SimilarityFilter) ([]*domain.CompletedItem, error) {
	query := `SELECT ` + completionColumns + ` FROM completed_items
		WHERE board_id = ?` + similarityClause(f) + ` ORDER BY completed_at DESC`
	args := append([]any{boardID}, similarityArgs(f)...)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completions by board: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (r *SQLiteCompletionRepo) ListByOrganization(ctx context.Context, orgID string, f SimilarityFilter) ([]*domain.CompletedItem, error) {
	query := `SELECT ` + completionColumns + ` FROM completed_items
		WHERE organization_id = ?` + similarityClause(f) + ` ORDER BY completed_at DESC`
	args := append([]any{orgID}, similarityArgs(f)...)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completions by organization: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (r *SQLiteCompletionRepo) ListByBoardInWindow(ctx context.Context, boardID string, from, to time.Time) ([]*domain.CompletedItem, error) {
	query := `SELECT ` + completionColumns + ` FROM completed_items
		WHERE board_id = ? AND completed_at >= ? AND completed_at < ?
		ORDER BY completed_at`
	rows, err := r.db.QueryContext(ctx, query,
		boardID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing completions in window: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (r *SQLiteCompletionRepo) CountByBoard(ctx context.Context, boardID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM completed_items WHERE board_id = ?`, boardID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting completions for board: %w", err)
	}
	return n, nil
}

// CompletionRateForAssignee reports completed records against total work ever
// assigned (open tasks plus completions). Both counts zero => no history.
func (r *SQLiteCompletionRepo) CompletionRateForAssignee(ctx context.Context, assigneeID string) (*CompletionRate, error) {
	var completed int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM completed_items WHERE assignee_id = ?`, assigneeID,
	).Scan(&completed)
	if err != nil {
		return nil, fmt.Errorf("counting completions for assignee: %w", err)
	}

	var open int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE assignee_id = ? AND status IN ('todo', 'in_progress')`,
		assigneeID,
	).Scan(&open)
	if err != nil {
		return nil, fmt.Errorf("counting open tasks for assignee: %w", err)
	}

	return &CompletionRate{
		AssigneeID: assigneeID,
		Completed:  completed,
		Assigned:   completed + open,
	}, nil
}

// similarityClause builds the complexity-band and priority predicates shared
// by the three tier queries.
func similarityClause(f SimilarityFilter) string {
	clause := ` AND complexity_score BETWEEN ? AND ?`
	if f.Priority != "" {
		clause += ` AND priority = ?`
	}
	return clause
}

func similarityArgs(f SimilarityFilter) []any {
	args := []any{f.Complexity - f.Band, f.Complexity + f.Band}
	if f.Priority != "" {
		args = append(args, string(f.Priority))
	}
	return args
}

func scanCompletions(rows *sql.Rows) ([]*domain.CompletedItem, error) {
	var items []*domain.CompletedItem
	for rows.Next() {
		var c domain.CompletedItem
		var priority, completedAt, createdAt string
		var assigneeID sql.NullString
		var storyPoints sql.NullFloat64

		if err := rows.Scan(
			&c.ID, &c.TaskID, &assigneeID, &c.BoardID, &c.OrganizationID,
			&c.ComplexityScore, &priority, &c.ActualDurationDays, &storyPoints,
			&completedAt, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning completed item row: %w", err)
		}

		c.Priority = domain.Priority(priority)
		c.AssigneeID = nullStringPtr(assigneeID)
		c.StoryPoints = nullFloatPtr(storyPoints)
		c.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		items = append(items, &c)
	}
	return items, rows.Err()
}
