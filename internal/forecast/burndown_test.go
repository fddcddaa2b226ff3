package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/paulavishek/prizmai/internal/config"
	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steadyBoard builds 8 elapsed weeks of snapshots with per-week completion
// counts [5 6 5 7 6 5 6 6] (46 items done), ending the Monday before now.
func steadyBoard(now time.Time) []*domain.VelocitySnapshot {
	counts := []int{5, 6, 5, 7, 6, 5, 6, 6}
	var snaps []*domain.VelocitySnapshot
	for i, c := range counts {
		snaps = append(snaps, &domain.VelocitySnapshot{
			BoardID:        "board-1",
			WeekStart:      WeekStart(now).AddDate(0, 0, -7*(len(counts)-i)),
			ItemsCompleted: c,
		})
	}
	return snaps
}

func TestGenerateCurve_SteadyVelocity(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	curve, err := GenerateCurve(CurveInput{
		BoardID:    "board-1",
		TotalScope: 86, // 46 completed + 40 pending
		Snapshots:  steadyBoard(now),
		Now:        now,
		Params:     config.Default(),
	})
	require.NoError(t, err)

	assert.InDelta(t, 5.75, curve.MeanVelocity, 1e-9)
	assert.InDelta(t, math.Sqrt(3.5/7), curve.StdDevVelocity, 1e-9)

	// Historical remaining after each week.
	require.Len(t, curve.Historical, 8)
	assert.Equal(t, 81.0, curve.Historical[0].Remaining)
	assert.Equal(t, 40.0, curve.Historical[7].Remaining)

	// 40 remaining at ~5.75/week burns down in 7 projected weeks.
	require.Len(t, curve.Projected, 7)
	assert.InDelta(t, 34.25, curve.Projected[0].Remaining, 1e-9)
	assert.Equal(t, 0.0, curve.Projected[6].Remaining)
	assert.Equal(t, time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC), curve.Projected[6].Date)

	// Projected dates continue weekly from the last historical week.
	assert.Equal(t, curve.Historical[7].Date.AddDate(0, 0, 7), curve.Projected[0].Date)

	assert.True(t, curve.TooShort, "7 projected points is below the usable minimum")
}

func TestGenerateCurve_BandOrderingAndWidening(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	curve, err := GenerateCurve(CurveInput{
		BoardID:    "board-1",
		TotalScope: 86,
		Snapshots:  steadyBoard(now),
		Now:        now,
		Params:     config.Default(),
	})
	require.NoError(t, err)

	require.Len(t, curve.Band.Upper, len(curve.Projected))
	require.Len(t, curve.Band.Lower, len(curve.Projected))

	for i := range curve.Projected {
		assert.GreaterOrEqual(t, curve.Band.Upper[i].Remaining, curve.Projected[i].Remaining, "point %d", i)
		assert.LessOrEqual(t, curve.Band.Lower[i].Remaining, curve.Projected[i].Remaining, "point %d", i)
	}

	// The band widens with the horizon until a trajectory bottoms out.
	width := func(i int) float64 {
		return curve.Band.Upper[i].Remaining - curve.Band.Lower[i].Remaining
	}
	for i := 0; i < 5; i++ {
		assert.Greater(t, width(i+1), width(i), "width at %d", i+1)
	}
}

func TestGenerateCurve_RiskLevels(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	generate := func(due time.Time) *domain.BurndownCurve {
		curve, err := GenerateCurve(CurveInput{
			BoardID:    "board-1",
			TotalScope: 86,
			Snapshots:  steadyBoard(now),
			DueDate:    &due,
			Now:        now,
			Params:     config.Default(),
		})
		require.NoError(t, err)
		return curve
	}

	// Projected completion is 2026-04-13; the optimistic trajectory lands
	// 2026-04-06.
	assert.Equal(t, domain.RiskOnTrack, generate(time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)).RiskLevel)
	assert.Equal(t, domain.RiskOnTrack, generate(time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)).RiskLevel)
	assert.Equal(t, domain.RiskAtRisk, generate(time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC)).RiskLevel)
	assert.Equal(t, domain.RiskCritical, generate(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)).RiskLevel)
}

func TestGenerateCurve_RiskZeroRemaining(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 28)

	// Scope fully burned down: 8 weeks of 5 completions against a scope of
	// 40 leaves nothing to project, which cannot be a missed due date.
	var snaps []*domain.VelocitySnapshot
	for i := 8; i >= 1; i-- {
		snaps = append(snaps, &domain.VelocitySnapshot{
			BoardID:        "board-1",
			WeekStart:      WeekStart(now).AddDate(0, 0, -7*i),
			ItemsCompleted: 5,
		})
	}

	curve, err := GenerateCurve(CurveInput{
		BoardID:    "board-1",
		TotalScope: 40,
		Snapshots:  snaps,
		DueDate:    &due,
		Now:        now,
		Params:     config.Default(),
	})
	require.NoError(t, err)

	assert.Empty(t, curve.Projected)
	assert.Equal(t, domain.RiskOnTrack, curve.RiskLevel)
}

func TestGenerateCurve_RiskDueDateBeyondHorizon(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	// 100 remaining at 5/week finishes in 20 weeks, past the 16-week chart
	// horizon but well before a due date 30 weeks out.
	var snaps []*domain.VelocitySnapshot
	for i := 8; i >= 1; i-- {
		snaps = append(snaps, &domain.VelocitySnapshot{
			BoardID:        "board-1",
			WeekStart:      WeekStart(now).AddDate(0, 0, -7*i),
			ItemsCompleted: 5,
		})
	}
	due := WeekStart(now).AddDate(0, 0, 7*30)

	curve, err := GenerateCurve(CurveInput{
		BoardID:    "board-1",
		TotalScope: 140,
		Snapshots:  snaps,
		DueDate:    &due,
		Now:        now,
		Params:     config.Default(),
	})
	require.NoError(t, err)

	require.Len(t, curve.Projected, 16)
	assert.Greater(t, curve.Projected[15].Remaining, 0.0)
	assert.Equal(t, domain.RiskOnTrack, curve.RiskLevel)
}

func TestGenerateCurve_NoDueDate(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	curve, err := GenerateCurve(CurveInput{
		BoardID:    "board-1",
		TotalScope: 86,
		Snapshots:  steadyBoard(now),
		Now:        now,
		Params:     config.Default(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RiskOnTrack, curve.RiskLevel)
	assert.Nil(t, curve.Ideal)
}

func TestGenerateCurve_IdealLine(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	due := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	curve, err := GenerateCurve(CurveInput{
		BoardID:    "board-1",
		TotalScope: 86,
		Snapshots:  steadyBoard(now),
		DueDate:    &due,
		Now:        now,
		Params:     config.Default(),
	})
	require.NoError(t, err)

	require.NotEmpty(t, curve.Ideal)
	first := curve.Ideal[0]
	last := curve.Ideal[len(curve.Ideal)-1]
	assert.Equal(t, curve.Historical[0].Date, first.Date)
	assert.Equal(t, 86.0, first.Remaining)
	assert.Equal(t, due, last.Date)
	assert.InDelta(t, 0, last.Remaining, 1e-9)

	for i := 1; i < len(curve.Ideal); i++ {
		assert.Less(t, curve.Ideal[i].Remaining, curve.Ideal[i-1].Remaining)
	}
}

func TestGenerateCurve_DegenerateVelocity(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	var idle []*domain.VelocitySnapshot
	for i := 8; i >= 1; i-- {
		idle = append(idle, &domain.VelocitySnapshot{
			BoardID:   "board-1",
			WeekStart: WeekStart(now).AddDate(0, 0, -7*i),
		})
	}

	_, err := GenerateCurve(CurveInput{
		BoardID:    "board-1",
		TotalScope: 40,
		Snapshots:  idle,
		Now:        now,
		Params:     config.Default(),
	})
	assert.ErrorIs(t, err, ErrDegenerateVelocity)

	_, err = GenerateCurve(CurveInput{
		BoardID:    "board-1",
		TotalScope: 40,
		Now:        now,
		Params:     config.Default(),
	})
	assert.ErrorIs(t, err, ErrDegenerateVelocity, "no snapshots at all")
}

func TestGenerateCurve_HorizonCap(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	params := config.Default()
	curve, err := GenerateCurve(CurveInput{
		BoardID:    "board-1",
		TotalScope: 200, // 154 still pending after 46 completions
		Snapshots:  steadyBoard(now),
		Now:        now,
		Params:     params,
	})
	require.NoError(t, err)

	require.Len(t, curve.Projected, params.ProjectionHorizon)
	assert.Greater(t, curve.Projected[len(curve.Projected)-1].Remaining, 0.0)
	assert.False(t, curve.TooShort)
}
