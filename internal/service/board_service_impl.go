package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/repository"
)

type boardService struct {
	boards repository.BoardRepo
	curves repository.CurveRepo
}

func NewBoardService(boards repository.BoardRepo, curves repository.CurveRepo) BoardService {
	return &boardService{boards: boards, curves: curves}
}

func (s *boardService) Create(ctx context.Context, b *domain.Board) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.StartDate.IsZero() {
		b.StartDate = now
	}
	return s.boards.Create(ctx, b)
}

func (s *boardService) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	return s.boards.GetByID(ctx, id)
}

func (s *boardService) List(ctx context.Context, includeArchived bool) ([]*domain.Board, error) {
	return s.boards.List(ctx, includeArchived)
}

func (s *boardService) Update(ctx context.Context, b *domain.Board) error {
	b.UpdatedAt = time.Now().UTC()
	if err := s.boards.Update(ctx, b); err != nil {
		return err
	}
	// Scope or due-date edits invalidate the cached curve.
	return s.curves.Delete(ctx, b.ID)
}

func (s *boardService) Archive(ctx context.Context, id string) error {
	return s.boards.Archive(ctx, id)
}

func (s *boardService) Delete(ctx context.Context, id string) error {
	return s.boards.Delete(ctx, id)
}
