package service

import (
	"context"
	"math"
	"time"

	"github.com/paulavishek/prizmai/internal/config"
	"github.com/paulavishek/prizmai/internal/contract"
	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/forecast"
	"github.com/paulavishek/prizmai/internal/repository"
)

type predictionService struct {
	tasks       repository.TaskRepo
	boards      repository.BoardRepo
	completions repository.CompletionRepo
	predictions repository.PredictionRepo
	params      config.Params
	observer    UseCaseObserver
}

func NewPredictionService(
	tasks repository.TaskRepo,
	boards repository.BoardRepo,
	completions repository.CompletionRepo,
	predictions repository.PredictionRepo,
	params config.Params,
	observers ...UseCaseObserver,
) PredictionService {
	return &predictionService{
		tasks:       tasks,
		boards:      boards,
		completions: completions,
		predictions: predictions,
		params:      params,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *predictionService) Predict(ctx context.Context, req contract.PredictRequest) (*contract.PredictionView, error) {
	started := time.Now()
	view, err := s.predict(ctx, req)

	fields := map[string]any{"task_id": req.TaskID, "force": req.Force}
	if view != nil {
		fields["method"] = string(view.Method)
		fields["tier"] = string(view.Tier)
		fields["recomputed"] = view.Recomputed
	}
	observe(ctx, s.observer, "predict", started, fields, err)
	return view, err
}

func (s *predictionService) predict(ctx context.Context, req contract.PredictRequest) (*contract.PredictionView, error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = req.Now.UTC()
	}

	task, err := s.tasks.GetByID(ctx, req.TaskID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &contract.PredictError{Code: contract.ErrTaskNotFound, Message: "task " + req.TaskID + " does not exist"}
		}
		return nil, err
	}
	if task.Status == domain.TaskDone {
		return nil, &contract.PredictError{Code: contract.ErrTaskComplete, Message: "task " + req.TaskID + " is already complete"}
	}

	board, err := s.boards.GetByID(ctx, task.BoardID)
	if err != nil {
		return nil, err
	}

	if !req.Force {
		cached, err := s.predictions.Get(ctx, task.ID)
		if err == nil && !cached.IsStale(now, s.maxAge()) {
			return s.assembleView(task, board, cached, now, false), nil
		}
		if err != nil && !repository.IsNotFound(err) {
			return nil, err
		}
	}

	result, err := s.compute(ctx, task, now)
	if err != nil {
		return nil, err
	}
	if err := s.predictions.Put(ctx, result); err != nil {
		return nil, err
	}
	return s.assembleView(task, board, result, now, true), nil
}

// compute runs the full pipeline: feature extraction, tiered similarity
// lookup, estimation, confidence scoring.
func (s *predictionService) compute(ctx context.Context, task *domain.Task, now time.Time) (*domain.PredictionResult, error) {
	openCount := 0
	if task.AssigneeID != nil {
		n, err := s.tasks.CountOpenByAssignee(ctx, *task.AssigneeID)
		if err != nil {
			return nil, err
		}
		openCount = n
	}

	features, err := forecast.ExtractFeatures(task, openCount)
	if err != nil {
		return nil, &contract.PredictError{Code: contract.ErrMissingStartDate, Message: "task " + task.ID + " has no start date; no prediction is possible"}
	}

	records, tier, err := s.findComparable(ctx, task)
	if err != nil {
		return nil, err
	}

	var history forecast.AssigneeHistory
	if task.AssigneeID != nil {
		rate, err := s.completions.CompletionRateForAssignee(ctx, *task.AssigneeID)
		if err != nil {
			return nil, err
		}
		history = forecast.AssigneeHistory{Completed: rate.Completed, Assigned: rate.Assigned}
	}

	est := forecast.ComputeEstimate(forecast.EstimateInput{
		Features: features,
		Records:  records,
		Tier:     tier,
		History:  history,
		Now:      now,
		Params:   s.params,
	})
	conf := forecast.ComputeConfidence(forecast.ConfidenceInput{
		SampleSize:   est.SampleSize,
		MeanDays:     est.MeanDays,
		StdDevDays:   est.StdDevDays,
		Tier:         est.Tier,
		Method:       est.Method,
		EstimateDays: est.AdjustedDays,
		Params:       s.params,
	})

	return &domain.PredictionResult{
		TaskID:                 task.ID,
		PredictedDate:          est.PredictedDate,
		AdjustedDays:           est.AdjustedDays,
		ConfidenceScore:        conf.Score,
		ConfidenceIntervalDays: conf.IntervalDays,
		SampleSize:             est.SampleSize,
		Tier:                   est.Tier,
		Method:                 est.Method,
		Factors:                est.Factors,
		ComputedAt:             now,
	}, nil
}

// findComparable walks the similarity tiers from most to least specific and
// returns the first one with enough records. Each tier is a fresh query, not
// a merge with the previous one. The organization tier relaxes the priority
// match.
func (s *predictionService) findComparable(ctx context.Context, task *domain.Task) ([]*domain.CompletedItem, domain.SimilarityTier, error) {
	filter := repository.SimilarityFilter{
		Complexity: task.ComplexityScore,
		Band:       s.params.ComplexityBand,
		Priority:   task.Priority,
	}

	if task.AssigneeID != nil {
		records, err := s.completions.ListByAssignee(ctx, *task.AssigneeID, filter)
		if err != nil {
			return nil, domain.TierNone, err
		}
		if len(records) >= s.params.MinSamples {
			return records, domain.TierAssignee, nil
		}
	}

	records, err := s.completions.ListByBoard(ctx, task.BoardID, filter)
	if err != nil {
		return nil, domain.TierNone, err
	}
	if len(records) >= s.params.MinSamples {
		return records, domain.TierBoard, nil
	}

	orgFilter := filter
	orgFilter.Priority = ""
	records, err = s.completions.ListByOrganization(ctx, task.OrganizationID, orgFilter)
	if err != nil {
		return nil, domain.TierNone, err
	}
	if len(records) >= s.params.MinSamples {
		return records, domain.TierOrganization, nil
	}

	return nil, domain.TierNone, nil
}

func (s *predictionService) assembleView(task *domain.Task, board *domain.Board, result *domain.PredictionResult, now time.Time, recomputed bool) *contract.PredictionView {
	interval := time.Duration(result.ConfidenceIntervalDays * 24 * float64(time.Hour))
	view := &contract.PredictionView{
		TaskID:          task.ID,
		TaskTitle:       task.Title,
		PredictedDate:   result.PredictedDate,
		EarlyDate:       result.PredictedDate.Add(-interval),
		LateDate:        result.PredictedDate.Add(interval),
		ConfidenceScore: result.ConfidenceScore,
		ConfidencePct:   int(math.Round(result.ConfidenceScore * 100)),
		IntervalDays:    result.ConfidenceIntervalDays,
		BasedOnTasks:    result.SampleSize,
		Tier:            result.Tier,
		Method:          result.Method,
		BoardDueDate:    board.DueDate,
		Factors:         result.Factors,
		ComputedAt:      result.ComputedAt,
		Recomputed:      recomputed,
	}
	if board.DueDate != nil {
		view.IsLikelyLate = result.PredictedDate.After(*board.DueDate)
	} else {
		// No due date to miss; a cached prediction whose date has already
		// passed is still reported late, never clamped to the present.
		view.IsLikelyLate = result.PredictedDate.Before(now)
	}
	return view
}

func (s *predictionService) maxAge() time.Duration {
	return time.Duration(s.params.MaxAgeHours) * time.Hour
}
