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

// boardColumns is the canonical SELECT column list for boards.
const boardColumns = `id, organization_id, name, start_date, due_date,
		archived_at, created_at, updated_at`

// SQLiteBoardRepo implements BoardRepo using a SQLite database.
type SQLiteBoardRepo struct {
	db db.DBTX
}

// NewSQLiteBoardRepo creates a new SQLiteBoardRepo.
func NewSQLiteBoardRepo(db db.DBTX) *SQLiteBoardRepo {
	return &SQLiteBoardRepo{db: db}
}

func (r *SQLiteBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	query := `INSERT INTO boards (id, organization_id, name, start_date, due_date,
		archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.OrganizationID,
		b.Name,
		b.StartDate.Format(dateLayout),
		nullableTimeToString(b.DueDate, dateLayout),
		nullableTimeToString(b.ArchivedAt, time.RFC3339),
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanBoard(row)
}

func (r *SQLiteBoardRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()
	return r.scanBoards(rows)
}

func (r *SQLiteBoardRepo) ListByOrganization(ctx context.Context, orgID string) ([]*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards
		WHERE organization_id = ? AND archived_at IS NULL
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing boards by organization: %w", err)
	}
	defer rows.Close()
	return r.scanBoards(rows)
}

func (r *SQLiteBoardRepo) Update(ctx context.Context, b *domain.Board) error {
	query := `UPDATE boards SET organization_id = ?, name = ?, start_date = ?,
		due_date = ?, archived_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.OrganizationID,
		b.Name,
		b.StartDate.Format(dateLayout),
		nullableTimeToString(b.DueDate, dateLayout),
		nullableTimeToString(b.ArchivedAt, time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating board: %w", err)
	}
	return requireRowAffected(res, "board", b.ID)
}

func (r *SQLiteBoardRepo) Archive(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx,
		`UPDATE boards SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`,
		now, now, id)
	if err != nil {
		return fmt.Errorf("archiving board: %w", err)
	}
	return requireRowAffected(res, "board", id)
}

func (r *SQLiteBoardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return requireRowAffected(res, "board", id)
}

func (r *SQLiteBoardRepo) scanBoard(row *sql.Row) (*domain.Board, error) {
	var b domain.Board
	var startDate, createdAt, updatedAt string
	var dueDate, archivedAt sql.NullString

	err := row.Scan(
		&b.ID, &b.OrganizationID, &b.Name,
		&startDate, &dueDate, &archivedAt,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("board: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning board: %w", err)
	}

	b.StartDate, _ = time.Parse(dateLayout, startDate)
	b.DueDate = parseNullableTime(dueDate, dateLayout)
	b.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &b, nil
}

func (r *SQLiteBoardRepo) scanBoards(rows *sql.Rows) ([]*domain.Board, error) {
	var boards []*domain.Board
	for rows.Next() {
		var b domain.Board
		var startDate, createdAt, updatedAt string
		var dueDate, archivedAt sql.NullString

		if err := rows.Scan(
			&b.ID, &b.OrganizationID, &b.Name,
			&startDate, &dueDate, &archivedAt,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}

		b.StartDate, _ = time.Parse(dateLayout, startDate)
		b.DueDate = parseNullableTime(dueDate, dateLayout)
		b.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		boards = append(boards, &b)
	}
	return boards, rows.Err()
}
