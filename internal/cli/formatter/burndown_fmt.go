package formatter

import (
	"fmt"
	"strings"

	"github.com/paulavishek/prizmai/internal/contract"
	"github.com/paulavishek/prizmai/internal/domain"
)

const chartWidth = 30

// FormatBurndown renders a burndown forecast: summary, risk, and a
// horizontal-bar chart of remaining scope over time with the confidence
// window on projected weeks.
func FormatBurndown(v *contract.BurndownView) string {
	var sb strings.Builder

	sb.WriteString(Header("Burndown: " + v.BoardName))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  %s  %s\n", Bold("Status:"), RiskIndicator(v.RiskLevel)))
	sb.WriteString(fmt.Sprintf("  %s %.1f items/week %s\n",
		Bold("Velocity:"), v.MeanVelocity, Dim(fmt.Sprintf("(σ %.1f)", v.StdDevVelocity))))

	if v.DueDate != nil {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			Bold("Due:"),
			v.DueDate.Format("Jan 2, 2006"),
			Dim("("+RelativeDateFrom(*v.DueDate, v.ComputedAt)+")")))
	}
	if v.ProjectedCompletion != nil {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			Bold("Projected completion:"),
			v.ProjectedCompletion.Format("Jan 2, 2006")))
	} else {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			Bold("Projected completion:"),
			Dim("beyond projection horizon")))
	}

	if v.TooShort {
		sb.WriteString(fmt.Sprintf("\n  %s\n",
			StyleYellow.Render("⚠ limited velocity history, projection is low-confidence")))
	}

	sb.WriteString("\n")
	sb.WriteString(formatCurveChart(v))

	sb.WriteString("\n")
	if v.Recomputed {
		sb.WriteString(Dim(fmt.Sprintf("  as of %s", v.ComputedAt.Format("Jan 2 15:04"))))
	} else {
		sb.WriteString(Dim(fmt.Sprintf("  cached curve from %s, use --force to rebuild",
			v.ComputedAt.Format("Jan 2 15:04"))))
	}
	sb.WriteString("\n")

	return sb.String()
}

func formatCurveChart(v *contract.BurndownView) string {
	max := 0.0
	for _, p := range v.Historical {
		if p.Remaining > max {
			max = p.Remaining
		}
	}
	for _, p := range v.Band.Upper {
		if p.Remaining > max {
			max = p.Remaining
		}
	}

	var sb strings.Builder
	for _, p := range v.Historical {
		sb.WriteString(fmt.Sprintf("  %s  %s %s\n",
			Dim(p.Date.Format("Jan 02")),
			RenderSparkBar(p.Remaining, max, chartWidth),
			fmt.Sprintf("%.0f", p.Remaining)))
	}
	for i, p := range v.Projected {
		window := ""
		if i < len(v.Band.Lower) && i < len(v.Band.Upper) {
			window = Dim(fmt.Sprintf(" [%.0f–%.0f]", v.Band.Lower[i].Remaining, v.Band.Upper[i].Remaining))
		}
		sb.WriteString(fmt.Sprintf("  %s  %s %s%s\n",
			Dim(p.Date.Format("Jan 02")),
			StyleBlue.Render(RenderSparkBar(p.Remaining, max, chartWidth)),
			fmt.Sprintf("%.0f", p.Remaining),
			window))
	}
	sb.WriteString(fmt.Sprintf("\n  %s %s   %s %s\n",
		"█", Dim("actual"), StyleBlue.Render("█"), Dim("projected (mean velocity)")))
	return sb.String()
}

// FormatRiskSummaryLine renders a one-line board summary for list output.
func FormatRiskSummaryLine(name string, risk domain.RiskLevel, velocity float64) string {
	return fmt.Sprintf("%s  %s  %s", RiskIndicator(risk), Bold(name),
		Dim(fmt.Sprintf("%.1f/wk", velocity)))
}
