package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/paulavishek/prizmai/internal/config"
	"github.com/paulavishek/prizmai/internal/domain"
)

// AssigneeHistory is the assignee's completion ratio input for the velocity
// factor. Assigned counts completed plus still-open tasks; zero Assigned
// means no history.
type AssigneeHistory struct {
	Completed int
	Assigned  int
}

// EstimateInput carries everything ComputeEstimate needs. Records are the
// comparable completions found by the similarity query; an empty slice (or
// fewer than Params.MinSamples) selects the rule-based fallback.
type EstimateInput struct {
	Features FeatureVector
	Records  []*domain.CompletedItem
	Tier     domain.SimilarityTier
	History  AssigneeHistory
	Now      time.Time
	Params   config.Params
}

// Estimate is the deterministic output of the adjustment pipeline, before
// confidence scoring.
type Estimate struct {
	BaseDays      float64
	AdjustedDays  float64
	PredictedDate time.Time

	Method     domain.PredictionMethod
	Tier       domain.SimilarityTier
	SampleSize int

	// MeanDays and StdDevDays describe the sampled durations; for the
	// rule-based method MeanDays is the base estimate and StdDevDays is 0.
	MeanDays   float64
	StdDevDays float64

	Factors []domain.Factor
}

// ComputeEstimate runs the two-tier estimation: historical mean when enough
// comparable records exist, complexity rule-of-thumb otherwise, then the
// fixed sequence of multiplicative adjustments. All multipliers are
// independent, so the order matters only for the explainability breakdown.
func ComputeEstimate(in EstimateInput) Estimate {
	est := Estimate{Tier: in.Tier}

	if len(in.Records) >= in.Params.MinSamples {
		durations := make([]float64, len(in.Records))
		for i, r := range in.Records {
			durations[i] = r.ActualDurationDays
		}
		est.Method = domain.MethodHistorical
		est.SampleSize = len(in.Records)
		est.MeanDays = Mean(durations)
		est.StdDevDays = StdDev(durations)
		est.BaseDays = est.MeanDays
		est.Factors = append(est.Factors, domain.Factor{
			Code:       domain.FactorBaseHistorical,
			Multiplier: est.BaseDays,
			Message:    fmt.Sprintf("mean duration of %d comparable completed tasks (%s tier)", est.SampleSize, in.Tier),
		})
	} else {
		est.Method = domain.MethodRuleBased
		est.Tier = domain.TierNone
		est.BaseDays = float64(in.Features.ComplexityScore) * in.Params.FallbackDaysPerComplexity
		est.MeanDays = est.BaseDays
		est.Factors = append(est.Factors, domain.Factor{
			Code:       domain.FactorBaseRule,
			Multiplier: est.BaseDays,
			Message:    fmt.Sprintf("complexity %d x %.1f days per point (insufficient history)", in.Features.ComplexityScore, in.Params.FallbackDaysPerComplexity),
		})
	}

	days := est.BaseDays
	adjustments := []func(FeatureVector, AssigneeHistory, config.Params) (float64, domain.Factor){
		adjustPriority,
		adjustRisk,
		adjustDependencies,
		adjustCollaboration,
		adjustAssigneeVelocity,
	}
	for _, f := range adjustments {
		mult, factor := f(in.Features, in.History, in.Params)
		days *= mult
		est.Factors = append(est.Factors, factor)
	}

	// Only the remaining share of the work is predicted.
	remaining := 1 - in.Features.ProgressPct/100
	days *= remaining
	est.Factors = append(est.Factors, domain.Factor{
		Code:       domain.FactorProgress,
		Multiplier: remaining,
		Message:    fmt.Sprintf("%.0f%% already complete", in.Features.ProgressPct),
	})

	if days < in.Params.MinAdjustedDays {
		days = in.Params.MinAdjustedDays
		est.Factors = append(est.Factors, domain.Factor{
			Code:       domain.FactorMinimumFloor,
			Multiplier: days,
			Message:    fmt.Sprintf("floored at %.1f days", in.Params.MinAdjustedDays),
		})
	}

	est.AdjustedDays = days
	est.PredictedDate = in.Now.Add(time.Duration(days * 24 * float64(time.Hour)))
	return est
}

func adjustPriority(fv FeatureVector, _ AssigneeHistory, p config.Params) (float64, domain.Factor) {
	mult := p.PriorityMultiplier(string(fv.Priority))
	return mult, domain.Factor{
		Code:       domain.FactorPriority,
		Multiplier: mult,
		Message:    fmt.Sprintf("%s priority", fv.Priority),
	}
}

func adjustRisk(fv FeatureVector, _ AssigneeHistory, p config.Params) (float64, domain.Factor) {
	mult := 1.0
	msg := "no elevated risk"
	if fv.HasRiskScore && fv.RiskScore > p.RiskThreshold {
		mult = 1 + (fv.RiskScore-p.RiskThreshold)*p.RiskSlope
		msg = fmt.Sprintf("risk score %.1f above threshold %.0f", fv.RiskScore, p.RiskThreshold)
	}
	return mult, domain.Factor{Code: domain.FactorRisk, Multiplier: mult, Message: msg}
}

func adjustDependencies(fv FeatureVector, _ AssigneeHistory, p config.Params) (float64, domain.Factor) {
	mult := 1 + p.DependencyOverhead*float64(fv.DependencyCount)
	return mult, domain.Factor{
		Code:       domain.FactorDependencies,
		Multiplier: mult,
		Message:    fmt.Sprintf("%d unresolved dependencies", fv.DependencyCount),
	}
}

func adjustCollaboration(fv FeatureVector, _ AssigneeHistory, p config.Params) (float64, domain.Factor) {
	mult := 1.0
	msg := "solo task"
	if fv.RequiresCollaboration {
		mult = p.CollaborationOverhead
		msg = "requires collaboration"
	}
	return mult, domain.Factor{Code: domain.FactorCollaboration, Multiplier: mult, Message: msg}
}

// adjustAssigneeVelocity applies the assignee's historical completion-rate
// ratio, clamped so sparse history cannot swing the estimate by more than the
// configured bounds. No history at all means a neutral 1.0.
func adjustAssigneeVelocity(_ FeatureVector, h AssigneeHistory, p config.Params) (float64, domain.Factor) {
	if h.Assigned == 0 {
		return 1.0, domain.Factor{
			Code:       domain.FactorAssigneeVelocity,
			Multiplier: 1.0,
			Message:    "no assignee history",
		}
	}
	ratio := float64(h.Completed) / float64(h.Assigned)
	mult := clampFloat(ratio, p.VelocityFactorFloor, p.VelocityFactorCeil)
	return mult, domain.Factor{
		Code:       domain.FactorAssigneeVelocity,
		Multiplier: mult,
		Message:    fmt.Sprintf("assignee completed %d of %d assigned tasks", h.Completed, h.Assigned),
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
