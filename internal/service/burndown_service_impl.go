package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/paulavishek/prizmai/internal/config"
	"github.com/paulavishek/prizmai/internal/contract"
	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/forecast"
	"github.com/paulavishek/prizmai/internal/repository"
)

type burndownService struct {
	boards      repository.BoardRepo
	tasks       repository.TaskRepo
	completions repository.CompletionRepo
	snapshots   repository.SnapshotRepo
	curves      repository.CurveRepo
	params      config.Params
	observer    UseCaseObserver
}

func NewBurndownService(
	boards repository.BoardRepo,
	tasks repository.TaskRepo,
	completions repository.CompletionRepo,
	snapshots repository.SnapshotRepo,
	curves repository.CurveRepo,
	params config.Params,
	observers ...UseCaseObserver,
) BurndownService {
	return &burndownService{
		boards:      boards,
		tasks:       tasks,
		completions: completions,
		snapshots:   snapshots,
		curves:      curves,
		params:      params,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *burndownService) GetCurve(ctx context.Context, req contract.BurndownRequest) (*contract.BurndownView, error) {
	started := time.Now()
	view, err := s.getCurve(ctx, req)

	fields := map[string]any{"board_id": req.BoardID, "force": req.Force}
	if view != nil {
		fields["risk"] = string(view.RiskLevel)
		fields["recomputed"] = view.Recomputed
	}
	observe(ctx, s.observer, "burndown", started, fields, err)
	return view, err
}

func (s *burndownService) getCurve(ctx context.Context, req contract.BurndownRequest) (*contract.BurndownView, error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = req.Now.UTC()
	}

	board, err := s.boards.GetByID(ctx, req.BoardID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &contract.BurndownError{Code: contract.ErrBoardNotFound, Message: "board " + req.BoardID + " does not exist"}
		}
		return nil, err
	}

	maxAge := time.Duration(s.params.MaxAgeHours) * time.Hour
	if !req.Force {
		cached, err := s.curves.Get(ctx, board.ID)
		if err == nil && !cached.IsStale(now, maxAge) {
			return s.assembleView(board, cached, false), nil
		}
		if err != nil && !repository.IsNotFound(err) {
			return nil, err
		}
	}

	curve, err := s.rebuild(ctx, board, now)
	if err != nil {
		return nil, err
	}
	if err := s.curves.Put(ctx, curve); err != nil {
		return nil, err
	}
	return s.assembleView(board, curve, true), nil
}

// rebuild refreshes the weekly snapshots from completion history, then
// regenerates the projection and band from them.
func (s *burndownService) rebuild(ctx context.Context, board *domain.Board, now time.Time) (*domain.BurndownCurve, error) {
	from := forecast.WeekStart(now).AddDate(0, 0, -7*s.params.VelocityWindowWeeks)
	completions, err := s.completions.ListByBoardInWindow(ctx, board.ID, from, now)
	if err != nil {
		return nil, err
	}
	pending, err := s.tasks.ListPendingByBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	built := forecast.BuildSnapshots(forecast.SnapshotInput{
		BoardID:     board.ID,
		Completions: completions,
		TeamSize:    teamSize(pending, completions),
		WindowWeeks: s.params.VelocityWindowWeeks,
		Now:         now,
	})
	for i := range built {
		snap := built[i]
		snap.ID = uuid.New().String()
		snap.CreatedAt = now
		snap.UpdatedAt = now
		if err := s.snapshots.Upsert(ctx, &snap); err != nil {
			return nil, err
		}
	}

	snaps, err := s.snapshots.ListByBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	completedTotal, err := s.completions.CountByBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	curve, err := forecast.GenerateCurve(forecast.CurveInput{
		BoardID:    board.ID,
		TotalScope: float64(completedTotal + len(pending)),
		Snapshots:  snaps,
		DueDate:    board.DueDate,
		Now:        now,
		Params:     s.params,
	})
	if errors.Is(err, forecast.ErrDegenerateVelocity) {
		return nil, &contract.BurndownError{Code: contract.ErrInsufficientVelocity, Message: "board " + board.ID + " has no completed work in the recent window"}
	}
	if err != nil {
		return nil, err
	}
	return curve, nil
}

func (s *burndownService) assembleView(board *domain.Board, curve *domain.BurndownCurve, recomputed bool) *contract.BurndownView {
	view := &contract.BurndownView{
		BoardID:        board.ID,
		BoardName:      board.Name,
		DueDate:        board.DueDate,
		Historical:     curve.Historical,
		Projected:      curve.Projected,
		Band:           curve.Band,
		Ideal:          curve.Ideal,
		MeanVelocity:   curve.MeanVelocity,
		StdDevVelocity: curve.StdDevVelocity,
		RiskLevel:      curve.RiskLevel,
		TooShort:       curve.TooShort,
		ComputedAt:     curve.ComputedAt,
		Recomputed:     recomputed,
	}
	for _, pt := range curve.Projected {
		if pt.Remaining <= 0 {
			done := pt.Date
			view.ProjectedCompletion = &done
			break
		}
	}
	return view
}

// teamSize counts distinct assignees across the board's pending tasks and
// recent completions.
func teamSize(pending []*domain.Task, completions []*domain.CompletedItem) int {
	seen := make(map[string]bool)
	for _, t := range pending {
		if t.AssigneeID != nil {
			seen[*t.AssigneeID] = true
		}
	}
	for _, c := range completions {
		if c.AssigneeID != nil {
			seen[*c.AssigneeID] = true
		}
	}
	return len(seen)
}
