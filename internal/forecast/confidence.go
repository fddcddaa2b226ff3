package forecast

import (
	"math"

	"github.com/paulavishek/prizmai/internal/config"
	"github.com/paulavishek/prizmai/internal/domain"
)

// ConfidenceInput describes a finished estimate for confidence scoring.
type ConfidenceInput struct {
	SampleSize int
	MeanDays   float64
	StdDevDays float64
	Tier       domain.SimilarityTier
	Method     domain.PredictionMethod

	// EstimateDays sizes the heuristic interval for the rule-based method.
	EstimateDays float64

	Params config.Params
}

// ConfidenceResult is a 0-1 confidence score with its +/- day interval.
type ConfidenceResult struct {
	Score        float64
	IntervalDays float64
}

// ComputeConfidence scores an estimate from sample size, match specificity
// and dispersion. The score never reaches certainty and never drops below a
// floor that would make it useless; the rule-based fallback is additionally
// capped since it has no real samples behind it.
func ComputeConfidence(in ConfidenceInput) ConfidenceResult {
	p := in.Params

	score := p.ConfidenceBaseline
	score += p.SampleContribution(in.SampleSize)
	score += p.TierBonus(string(in.Tier))

	if denom := in.MeanDays + in.StdDevDays; denom > 0 {
		penalty := math.Min(p.MaxDispersionPenalty, in.StdDevDays/denom)
		score -= penalty
	}

	if in.Method == domain.MethodRuleBased && score > p.FallbackConfidenceCap {
		score = p.FallbackConfidenceCap
	}

	score = clampFloat(score, p.ConfidenceFloor, p.ConfidenceCeil)

	var interval float64
	if in.Method == domain.MethodHistorical {
		interval = in.StdDevDays * p.IntervalZ
	} else {
		interval = in.EstimateDays * p.FallbackSpreadPct
	}

	return ConfidenceResult{Score: score, IntervalDays: interval}
}
