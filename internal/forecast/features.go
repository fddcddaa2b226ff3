package forecast

import (
	"errors"
	"time"

	"github.com/paulavishek/prizmai/internal/domain"
)

// ErrInsufficientContext marks a task that cannot be predicted at all (no
// start date). Callers must skip prediction rather than emit a degenerate
// estimate.
var ErrInsufficientContext = errors.New("insufficient context for prediction")

// FeatureVector is the normalized input set derived from a pending task and
// its context.
type FeatureVector struct {
	// ComplexityNorm is the 1-10 complexity score scaled to (0, 1].
	ComplexityNorm  float64
	ComplexityScore int

	Priority       domain.Priority
	PriorityWeight int

	ProgressPct float64

	RiskScore    float64
	HasRiskScore bool

	DependencyCount       int
	RequiresCollaboration bool

	// TeamWorkload is the count of the assignee's other incomplete tasks.
	TeamWorkload int

	StartDate time.Time
}

// ExtractFeatures derives a FeatureVector from a task. openAssigneeTasks is
// the assignee's count of incomplete tasks including this one.
func ExtractFeatures(task *domain.Task, openAssigneeTasks int) (FeatureVector, error) {
	if task.StartDate == nil {
		return FeatureVector{}, ErrInsufficientContext
	}

	workload := openAssigneeTasks - 1
	if workload < 0 {
		workload = 0
	}

	fv := FeatureVector{
		ComplexityNorm:        float64(task.ComplexityScore) / 10.0,
		ComplexityScore:       task.ComplexityScore,
		Priority:              task.Priority,
		PriorityWeight:        task.Priority.Weight(),
		ProgressPct:           task.ProgressPct,
		DependencyCount:       task.DependencyCount,
		RequiresCollaboration: task.RequiresCollaboration,
		TeamWorkload:          workload,
		StartDate:             *task.StartDate,
	}
	if task.RiskScore != nil {
		fv.RiskScore = *task.RiskScore
		fv.HasRiskScore = true
	}
	return fv, nil
}
