package forecast

import (
	"errors"
	"math"
	"time"

	"github.com/paulavishek/prizmai/internal/config"
	"github.com/paulavishek/prizmai/internal/domain"
)

// ErrDegenerateVelocity marks a board whose recent throughput is zero; no
// projection can be drawn from it and the caller must say so explicitly
// rather than render an empty chart.
var ErrDegenerateVelocity = errors.New("insufficient recent throughput to forecast")

// CurveInput holds everything GenerateCurve needs. TotalScope is the board's
// total scoped work in items (completed plus pending); Snapshots must be
// chronological as returned by the snapshot store.
type CurveInput struct {
	BoardID    string
	TotalScope float64
	Snapshots  []*domain.VelocitySnapshot
	DueDate    *time.Time
	Now        time.Time
	Params     config.Params
}

// GenerateCurve produces the full burndown structure: historical remaining
// work per week, a mean-velocity projection, a widening confidence band at
// the configured z, the ideal linear baseline, and a risk classification
// against the due date.
func GenerateCurve(in CurveInput) (*domain.BurndownCurve, error) {
	p := in.Params

	historical := historicalPoints(in)
	remaining := in.TotalScope
	lastDate := WeekStart(in.Now)
	if n := len(historical); n > 0 {
		remaining = historical[n-1].Remaining
		lastDate = historical[n-1].Date
	}

	velocities := WeeklyVelocities(in.Snapshots, in.Now, p.VelocityWindowWeeks)
	meanVel := Mean(velocities)
	stdVel := StdDev(velocities)

	if meanVel <= 0 {
		return nil, ErrDegenerateVelocity
	}

	// Velocity bounds for the band; a velocity cannot go negative.
	minVel := meanVel - p.BandZ*stdVel
	if minVel < 0 {
		minVel = 0
	}
	maxVel := meanVel + p.BandZ*stdVel

	curve := &domain.BurndownCurve{
		BoardID:        in.BoardID,
		Historical:     historical,
		MeanVelocity:   meanVel,
		StdDevVelocity: stdVel,
		ComputedAt:     in.Now,
	}

	// Project week by week until the work runs out or the horizon is hit.
	// The band trajectories start from the same point and drift apart as the
	// compounding velocity spread grows with the horizon.
	proj, upper, lower := remaining, remaining, remaining
	date := lastDate
	for i := 0; i < p.ProjectionHorizon && proj > 0; i++ {
		date = date.AddDate(0, 0, 7)
		proj = maxFloat(0, proj-meanVel)
		upper = maxFloat(0, upper-minVel)
		lower = maxFloat(0, lower-maxVel)

		curve.Projected = append(curve.Projected, domain.CurvePoint{Date: date, Remaining: proj})
		curve.Band.Upper = append(curve.Band.Upper, domain.CurvePoint{Date: date, Remaining: upper})
		curve.Band.Lower = append(curve.Band.Lower, domain.CurvePoint{Date: date, Remaining: lower})
	}

	curve.TooShort = len(curve.Projected) < p.MinProjectedPoints
	curve.Ideal = idealLine(historical, in.TotalScope, in.DueDate, in.Now)
	curve.RiskLevel = classifyRisk(remaining, lastDate, meanVel, maxVel, in.DueDate)
	return curve, nil
}

// historicalPoints computes remaining work at the end of each snapshot week
// by subtracting cumulative completions from total scope.
func historicalPoints(in CurveInput) []domain.CurvePoint {
	var points []domain.CurvePoint
	cumulative := 0.0
	for _, s := range in.Snapshots {
		cumulative += float64(s.ItemsCompleted)
		points = append(points, domain.CurvePoint{
			Date:      s.WeekStart,
			Remaining: maxFloat(0, in.TotalScope-cumulative),
		})
	}
	return points
}

// idealLine draws the linear reference trajectory from the curve's start to
// the due date, independent of actual velocity. Empty when the board has no
// due date.
func idealLine(historical []domain.CurvePoint, totalScope float64, dueDate *time.Time, now time.Time) []domain.CurvePoint {
	if dueDate == nil {
		return nil
	}
	start := WeekStart(now)
	if len(historical) > 0 {
		start = historical[0].Date
	}
	startRemaining := totalScope

	totalDays := dueDate.Sub(start).Hours() / 24
	if totalDays <= 0 {
		return []domain.CurvePoint{{Date: start, Remaining: startRemaining}, {Date: *dueDate, Remaining: 0}}
	}

	var line []domain.CurvePoint
	for d := start; !d.After(*dueDate); d = d.AddDate(0, 0, 7) {
		elapsed := d.Sub(start).Hours() / 24
		line = append(line, domain.CurvePoint{
			Date:      d,
			Remaining: startRemaining * (1 - elapsed/totalDays),
		})
	}
	// Always land exactly on the due date.
	if n := len(line); n == 0 || !line[n-1].Date.Equal(*dueDate) {
		line = append(line, domain.CurvePoint{Date: *dueDate, Remaining: 0})
	}
	return line
}

// classifyRisk compares the projected and optimistic zero-crossings against
// the due date. The crossings are computed analytically from the remaining
// work and the velocity bounds, independent of the charted horizon. No due
// date, or no work left, means nothing can be missed.
func classifyRisk(remaining float64, from time.Time, meanVel, maxVel float64, dueDate *time.Time) domain.RiskLevel {
	if dueDate == nil || remaining <= 0 {
		return domain.RiskOnTrack
	}

	if !crossingDate(from, remaining, meanVel).After(*dueDate) {
		return domain.RiskOnTrack
	}
	// Best case: the team sustains the top of the velocity band.
	if !crossingDate(from, remaining, maxVel).After(*dueDate) {
		return domain.RiskAtRisk
	}
	return domain.RiskCritical
}

// crossingDate returns the week-granular date at which remaining work hits
// zero at a steady velocity, matching the stepping of the projection.
func crossingDate(from time.Time, remaining, velocity float64) time.Time {
	weeks := int(math.Ceil(remaining / velocity))
	return from.AddDate(0, 0, 7*weeks)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
