package service

import (
	"context"

	"github.com/paulavishek/prizmai/internal/contract"
	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/importer"
)

type BoardService interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Board, error)
	Update(ctx context.Context, b *domain.Board) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// Complete marks the task done and appends its immutable completion
	// record with the duration derived from the start date.
	Complete(ctx context.Context, id string, storyPoints *float64) (*domain.CompletedItem, error)
	Delete(ctx context.Context, id string) error
}

type PredictionService interface {
	Predict(ctx context.Context, req contract.PredictRequest) (*contract.PredictionView, error)
}

type BurndownService interface {
	GetCurve(ctx context.Context, req contract.BurndownRequest) (*contract.BurndownView, error)
}

type RefreshService interface {
	Refresh(ctx context.Context, req contract.RefreshRequest) (*contract.RefreshSummary, error)
}

// ImportResult holds the outcome of a seed import.
type ImportResult struct {
	Organization    string
	BoardCount      int
	TaskCount       int
	CompletionCount int
}

type ImportService interface {
	ImportSeed(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSeedFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
