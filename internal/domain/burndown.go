package domain

import "time"

// CurvePoint is one sample on a burndown trajectory.
type CurvePoint struct {
	Date      time.Time
	Remaining float64
}

// ConfidenceBand is the upper/lower envelope around the projected trajectory,
// aligned index-for-index with the projected points.
type ConfidenceBand struct {
	Upper []CurvePoint
	Lower []CurvePoint
}

// BurndownCurve is the single live burndown forecast for a board, overwritten
// on recompute.
type BurndownCurve struct {
	BoardID string

	Historical []CurvePoint
	Projected  []CurvePoint
	Band       ConfidenceBand
	Ideal      []CurvePoint

	MeanVelocity   float64
	StdDevVelocity float64
	RiskLevel      RiskLevel

	// TooShort marks a projection with fewer usable points than a chart
	// needs; the caller must present that explicitly.
	TooShort bool

	ComputedAt time.Time
}

// IsStale reports whether the curve is older than maxAge as of now.
func (c *BurndownCurve) IsStale(now time.Time, maxAge time.Duration) bool {
	return now.Sub(c.ComputedAt) > maxAge
}
