package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/paulavishek/prizmai/internal/contract"
	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/repository"
)

type refreshService struct {
	boards     repository.BoardRepo
	tasks      repository.TaskRepo
	predictor  PredictionService
	burndowns  BurndownService
	observer   UseCaseObserver
}

func NewRefreshService(
	boards repository.BoardRepo,
	tasks repository.TaskRepo,
	predictor PredictionService,
	burndowns BurndownService,
	observers ...UseCaseObserver,
) RefreshService {
	return &refreshService{
		boards:    boards,
		tasks:     tasks,
		predictor: predictor,
		burndowns: burndowns,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Refresh recomputes every pending task's prediction and every scoped
// board's burndown curve. Task predictions run on a bounded worker pool;
// tasks that cannot be predicted are tallied as failures, never silently
// skipped.
func (s *refreshService) Refresh(ctx context.Context, req contract.RefreshRequest) (*contract.RefreshSummary, error) {
	started := time.Now()
	summary, err := s.refresh(ctx, req)

	fields := map[string]any{"board_id": req.BoardID, "organization_id": req.OrganizationID}
	if summary != nil {
		fields["total"] = summary.Total
		fields["updated"] = summary.Updated
		fields["failed"] = summary.Failed
	}
	observe(ctx, s.observer, "refresh", started, fields, err)
	return summary, err
}

func (s *refreshService) refresh(ctx context.Context, req contract.RefreshRequest) (*contract.RefreshSummary, error) {
	started := time.Now().UTC()
	workers := req.Workers
	if workers <= 0 {
		workers = 4
	}

	boards, err := s.scopedBoards(ctx, req)
	if err != nil {
		return nil, err
	}

	pending, err := s.scopedPending(ctx, req, boards)
	if err != nil {
		return nil, err
	}

	summary := &contract.RefreshSummary{
		Total:     len(pending),
		StartedAt: started,
	}

	taskCh := make(chan *domain.Task)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				predReq := contract.PredictRequest{TaskID: task.ID, Force: true, Now: req.Now}
				_, err := s.predictor.Predict(ctx, predReq)
				mu.Lock()
				if err != nil {
					summary.Failed++
					summary.Failures = append(summary.Failures, contract.TaskFailure{
						TaskID: task.ID,
						Reason: err.Error(),
					})
				} else {
					summary.Updated++
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, task := range pending {
		select {
		case taskCh <- task:
		case <-ctx.Done():
			break feed
		}
	}
	close(taskCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	for _, b := range boards {
		_, err := s.burndowns.GetCurve(ctx, contract.BurndownRequest{BoardID: b.ID, Force: true, Now: req.Now})
		if err != nil {
			// A board without recent throughput has no curve to refresh.
			var bErr *contract.BurndownError
			if errors.As(err, &bErr) && bErr.Code == contract.ErrInsufficientVelocity {
				continue
			}
			return summary, err
		}
		summary.BoardsRefreshed++
	}

	summary.Duration = time.Since(started)
	return summary, nil
}

func (s *refreshService) scopedBoards(ctx context.Context, req contract.RefreshRequest) ([]*domain.Board, error) {
	switch {
	case req.BoardID != "":
		b, err := s.boards.GetByID(ctx, req.BoardID)
		if err != nil {
			return nil, err
		}
		return []*domain.Board{b}, nil
	case req.OrganizationID != "":
		return s.boards.ListByOrganization(ctx, req.OrganizationID)
	default:
		return s.boards.List(ctx, false)
	}
}

func (s *refreshService) scopedPending(ctx context.Context, req contract.RefreshRequest, boards []*domain.Board) ([]*domain.Task, error) {
	if req.BoardID == "" && req.OrganizationID != "" {
		return s.tasks.ListPendingByOrganization(ctx, req.OrganizationID)
	}
	var pending []*domain.Task
	for _, b := range boards {
		tasks, err := s.tasks.ListPendingByBoard(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		pending = append(pending, tasks...)
	}
	return pending, nil
}
