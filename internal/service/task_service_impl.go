package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paulavishek/prizmai/internal/db"
	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/repository"
)

var (
	ErrTaskAlreadyComplete = errors.New("task is already complete")
	ErrTaskMissingStart    = errors.New("task has no start date")
)

type taskService struct {
	tasks repository.TaskRepo
	uow   db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, uow: uow}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Task, error) {
	return s.tasks.ListByBoard(ctx, boardID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

// Complete transitions a task to done and appends its completion record in
// one transaction. The actual duration is calendar days from the task's
// start date to now; the record is what future predictions learn from.
func (s *taskService) Complete(ctx context.Context, id string, storyPoints *float64) (*domain.CompletedItem, error) {
	now := time.Now().UTC()

	var record *domain.CompletedItem
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		completions := repository.NewSQLiteCompletionRepo(tx)
		predictions := repository.NewSQLitePredictionRepo(tx)

		task, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if task.Status == domain.TaskDone {
			return ErrTaskAlreadyComplete
		}
		if task.StartDate == nil {
			return ErrTaskMissingStart
		}

		duration := now.Sub(*task.StartDate).Hours() / 24
		if duration < 0 {
			return fmt.Errorf("task %s starts in the future", id)
		}

		task.Status = domain.TaskDone
		task.ProgressPct = 100
		task.CompletedAt = &now
		task.UpdatedAt = now
		if err := tasks.Update(ctx, task); err != nil {
			return err
		}

		record = &domain.CompletedItem{
			ID:                 uuid.New().String(),
			TaskID:             task.ID,
			AssigneeID:         task.AssigneeID,
			BoardID:            task.BoardID,
			OrganizationID:     task.OrganizationID,
			ComplexityScore:    task.ComplexityScore,
			Priority:           task.Priority,
			ActualDurationDays: duration,
			StoryPoints:        storyPoints,
			CompletedAt:        now,
			CreatedAt:          now,
		}
		if err := completions.Create(ctx, record); err != nil {
			return err
		}

		// A done task no longer has a live prediction.
		return predictions.Delete(ctx, task.ID)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
