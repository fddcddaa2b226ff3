package repository

import (
	"context"
	"time"

	"github.com/paulavishek/prizmai/internal/domain"
)

// SimilarityFilter narrows completed-item queries to records comparable to a
// pending task. Complexity matches within ±Band of Complexity; Priority is
// ignored when empty.
type SimilarityFilter struct {
	Complexity int
	Band       int
	Priority   domain.Priority
}

// CompletionRate is an assignee's historical completion ratio:
// completed records over total tasks ever assigned (completed + still open).
type CompletionRate struct {
	AssigneeID string
	Completed  int
	Assigned   int
}

type BoardRepo interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Board, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*domain.Board, error)
	Update(ctx context.Context, b *domain.Board) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Task, error)
	ListPendingByBoard(ctx context.Context, boardID string) ([]*domain.Task, error)
	ListPendingByOrganization(ctx context.Context, orgID string) ([]*domain.Task, error)
	CountOpenByAssignee(ctx context.Context, assigneeID string) (int, error)
	CountByBoard(ctx context.Context, boardID string) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// CompletionRepo is the read-mostly historical completion store. The
// forecasting engine only appends via task completion; records are never
// mutated afterwards.
type CompletionRepo interface {
	Create(ctx context.Context, c *domain.CompletedItem) error
	ListByAssignee(ctx context.Context, assigneeID string, f SimilarityFilter) ([]*domain.CompletedItem, error)
	ListByBoard(ctx context.Context, boardID string, f SimilarityFilter) ([]*domain.CompletedItem, error)
	ListByOrganization(ctx context.Context, orgID string, f SimilarityFilter) ([]*domain.CompletedItem, error)
	ListByBoardInWindow(ctx context.Context, boardID string, from, to time.Time) ([]*domain.CompletedItem, error)
	CountByBoard(ctx context.Context, boardID string) (int, error)
	CompletionRateForAssignee(ctx context.Context, assigneeID string) (*CompletionRate, error)
}

// PredictionRepo stores the single live PredictionResult per task. Put
// overwrites any prior value for the task.
type PredictionRepo interface {
	Get(ctx context.Context, taskID string) (*domain.PredictionResult, error)
	Put(ctx context.Context, p *domain.PredictionResult) error
	Delete(ctx context.Context, taskID string) error
}

type SnapshotRepo interface {
	Upsert(ctx context.Context, s *domain.VelocitySnapshot) error
	ListByBoard(ctx context.Context, boardID string) ([]*domain.VelocitySnapshot, error)
}

// CurveRepo stores the single live BurndownCurve per board.
type CurveRepo interface {
	Get(ctx context.Context, boardID string) (*domain.BurndownCurve, error)
	Put(ctx context.Context, c *domain.BurndownCurve) error
	Delete(ctx context.Context, boardID string) error
}
