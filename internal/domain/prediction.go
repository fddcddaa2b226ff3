package domain

import "time"

// FactorCode names one adjustment applied while producing a prediction.
type FactorCode string

const (
	FactorBaseHistorical   FactorCode = "BASE_HISTORICAL_MEAN"
	FactorBaseRule         FactorCode = "BASE_RULE_OF_THUMB"
	FactorPriority         FactorCode = "PRIORITY"
	FactorRisk             FactorCode = "RISK"
	FactorDependencies     FactorCode = "DEPENDENCIES"
	FactorCollaboration    FactorCode = "COLLABORATION"
	FactorAssigneeVelocity FactorCode = "ASSIGNEE_VELOCITY"
	FactorProgress         FactorCode = "REMAINING_PROGRESS"
	FactorMinimumFloor     FactorCode = "MINIMUM_FLOOR"
)

// Factor is one named contribution in a prediction's explainability
// breakdown. Multiplier is the value applied to the running estimate; for the
// base entries it is the base days themselves.
type Factor struct {
	Code       FactorCode
	Multiplier float64
	Message    string
}

// PredictionResult is the single live forecast for a task, overwritten in
// place on every recompute.
type PredictionResult struct {
	TaskID string

	PredictedDate          time.Time
	AdjustedDays           float64
	ConfidenceScore        float64
	ConfidenceIntervalDays float64
	SampleSize             int
	Tier                   SimilarityTier
	Method                 PredictionMethod

	// Factors is the ordered adjustment breakdown, base first.
	Factors []Factor

	ComputedAt time.Time
}

// IsStale reports whether the result is older than maxAge as of now.
func (p *PredictionResult) IsStale(now time.Time, maxAge time.Duration) bool {
	return now.Sub(p.ComputedAt) > maxAge
}
