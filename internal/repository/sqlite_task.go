package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paulavishek/prizmai/internal/db"
	"github.com/paulavishek/prizmai/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, board_id, organization_id, title, status, assignee_id,
		priority, complexity_score, progress_pct, risk_score, dependency_count,
		requires_collaboration, start_date, completed_at, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, board_id, organization_id, title, status, assignee_id,
		priority, complexity_score, progress_pct, risk_score, dependency_count,
		requires_collaboration, start_date, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.BoardID,
		t.OrganizationID,
		t.Title,
		string(t.Status),
		nullableStringToValue(t.AssigneeID),
		string(t.Priority),
		t.ComplexityScore,
		t.ProgressPct,
		nullableFloatToValue(t.RiskScore),
		t.DependencyCount,
		boolToInt(t.RequiresCollaboration),
		nullableTimeToString(t.StartDate, dateLayout),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	t, err := scanTaskRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE board_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by board: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListPendingByBoard(ctx context.Context, boardID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE board_id = ? AND status IN ('todo', 'in_progress')
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing pending tasks by board: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListPendingByOrganization skips tasks whose board has been archived.
func (r *SQLiteTaskRepo) ListPendingByOrganization(ctx context.Context, orgID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE organization_id = ? AND status IN ('todo', 'in_progress')
		AND board_id IN (SELECT id FROM boards WHERE archived_at IS NULL)
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing pending tasks by organization: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) CountOpenByAssignee(ctx context.Context, assigneeID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE assignee_id = ? AND status IN ('todo', 'in_progress')`,
		assigneeID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting open tasks for assignee: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) CountByBoard(ctx context.Context, boardID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE board_id = ?`, boardID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting tasks for board: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET board_id = ?, organization_id = ?, title = ?, status = ?,
		assignee_id = ?, priority = ?, complexity_score = ?, progress_pct = ?,
		risk_score = ?, dependency_count = ?, requires_collaboration = ?,
		start_date = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.BoardID,
		t.OrganizationID,
		t.Title,
		string(t.Status),
		nullableStringToValue(t.AssigneeID),
		string(t.Priority),
		t.ComplexityScore,
		t.ProgressPct,
		nullableFloatToValue(t.RiskScore),
		t.DependencyCount,
		boolToInt(t.RequiresCollaboration),
		nullableTimeToString(t.StartDate, dateLayout),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRowAffected(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRowAffected(res, "task", id)
}

// scanTaskRow scans a single task using the given scan function, allowing
// reuse across *sql.Row and *sql.Rows.
func scanTaskRow(scan func(dest ...any) error) (*domain.Task, error) {
	var t domain.Task
	var status, priority string
	var createdAt, updatedAt string
	var assigneeID, startDate, completedAt sql.NullString
	var riskScore sql.NullFloat64
	var requiresCollab int

	err := scan(
		&t.ID, &t.BoardID, &t.OrganizationID, &t.Title, &status, &assigneeID,
		&priority, &t.ComplexityScore, &t.ProgressPct, &riskScore, &t.DependencyCount,
		&requiresCollab, &startDate, &completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = domain.TaskStatus(status)
	t.Priority = domain.Priority(priority)
	t.AssigneeID = nullStringPtr(assigneeID)
	t.RiskScore = nullFloatPtr(riskScore)
	t.RequiresCollaboration = intToBool(requiresCollab)
	t.StartDate = parseNullableTime(startDate, dateLayout)
	t.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTaskRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
