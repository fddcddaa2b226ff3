package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/paulavishek/prizmai/internal/contract"
	"github.com/paulavishek/prizmai/internal/domain"
)

func sampleBurndown(now time.Time) *contract.BurndownView {
	week := func(n int) time.Time { return now.AddDate(0, 0, 7*n) }
	done := week(3)
	return &contract.BurndownView{
		BoardID:   "board-1",
		BoardName: "Q2 Launch",
		Historical: []domain.CurvePoint{
			{Date: week(-2), Remaining: 30},
			{Date: week(-1), Remaining: 24},
			{Date: week(0), Remaining: 18},
		},
		Projected: []domain.CurvePoint{
			{Date: week(1), Remaining: 12},
			{Date: week(2), Remaining: 6},
			{Date: week(3), Remaining: 0},
		},
		Band: domain.ConfidenceBand{
			Upper: []domain.CurvePoint{
				{Date: week(1), Remaining: 14},
				{Date: week(2), Remaining: 10},
				{Date: week(3), Remaining: 6},
			},
			Lower: []domain.CurvePoint{
				{Date: week(1), Remaining: 10},
				{Date: week(2), Remaining: 2},
				{Date: week(3), Remaining: 0},
			},
		},
		MeanVelocity:        6.0,
		StdDevVelocity:      1.2,
		RiskLevel:           domain.RiskOnTrack,
		ProjectedCompletion: &done,
		ComputedAt:          now,
		Recomputed:          true,
	}
}

func TestFormatBurndown(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	out := FormatBurndown(sampleBurndown(now))

	assert.Contains(t, out, "Q2 Launch")
	assert.Contains(t, out, "ON TRACK")
	assert.Contains(t, out, "6.0 items/week")
	assert.Contains(t, out, "Mar 23, 2026")
	assert.Contains(t, out, "[10–14]")
	assert.Contains(t, out, "projected (mean velocity)")
	assert.NotContains(t, out, "low-confidence")
	assert.NotContains(t, out, "--force")
}

func TestFormatBurndown_DueDateAndRisk(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 10)
	v := sampleBurndown(now)
	v.DueDate = &due
	v.RiskLevel = domain.RiskCritical

	out := FormatBurndown(v)
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "Mar 12, 2026")
	assert.Contains(t, out, "in 10 days")
}

func TestFormatBurndown_TooShort(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	v := sampleBurndown(now)
	v.TooShort = true

	out := FormatBurndown(v)
	assert.Contains(t, out, "low-confidence")
}

func TestFormatBurndown_NoCompletion(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	v := sampleBurndown(now)
	v.ProjectedCompletion = nil

	out := FormatBurndown(v)
	assert.Contains(t, out, "beyond projection horizon")
}

func TestFormatBurndown_Cached(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	v := sampleBurndown(now)
	v.Recomputed = false

	out := FormatBurndown(v)
	assert.Contains(t, out, "cached curve")
}

func TestFormatRiskSummaryLine(t *testing.T) {
	out := FormatRiskSummaryLine("Q2 Launch", domain.RiskAtRisk, 4.5)
	assert.Contains(t, out, "AT RISK")
	assert.Contains(t, out, "Q2 Launch")
	assert.Contains(t, out, "4.5/wk")
}
