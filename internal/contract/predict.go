package contract

import (
	"time"

	"github.com/paulavishek/prizmai/internal/domain"
)

type PredictRequest struct {
	TaskID string

	// Force recomputes even when a fresh prediction is cached.
	Force bool

	// Now overrides the clock; nil means time.Now().UTC().
	Now *time.Time
}

func NewPredictRequest(taskID string) PredictRequest {
	return PredictRequest{TaskID: taskID}
}

// PredictionView is the presentation-ready prediction for a single task.
type PredictionView struct {
	TaskID    string
	TaskTitle string

	PredictedDate time.Time
	// EarlyDate and LateDate bound the confidence interval around
	// PredictedDate.
	EarlyDate time.Time
	LateDate  time.Time

	ConfidenceScore float64
	ConfidencePct   int
	IntervalDays    float64

	BasedOnTasks int
	Tier         domain.SimilarityTier
	Method       domain.PredictionMethod

	// IsLikelyLate is set when the board has a due date and the predicted
	// completion lands after it.
	IsLikelyLate bool
	BoardDueDate *time.Time

	Factors []domain.Factor

	ComputedAt time.Time
	// Recomputed is false when a cached fresh prediction was served.
	Recomputed bool
}

type PredictErrorCode string

const (
	ErrTaskNotFound     PredictErrorCode = "TASK_NOT_FOUND"
	ErrTaskComplete     PredictErrorCode = "TASK_ALREADY_COMPLETE"
	ErrMissingStartDate PredictErrorCode = "MISSING_START_DATE"
	ErrPredictInternal  PredictErrorCode = "INTERNAL_ERROR"
)

type PredictError struct {
	Code    PredictErrorCode
	Message string
}

func (e *PredictError) Error() string {
	return string(e.Code) + ": " + e.Message
}
