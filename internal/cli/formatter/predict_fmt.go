package formatter

import (
	"fmt"
	"strings"

	"github.com/paulavishek/prizmai/internal/contract"
	"github.com/paulavishek/prizmai/internal/domain"
)

// FormatPrediction renders a prediction view for the terminal.
func FormatPrediction(v *contract.PredictionView) string {
	var sb strings.Builder

	sb.WriteString(Header("Forecast: " + v.TaskTitle))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  %s %s %s\n",
		Bold("Predicted completion:"),
		v.PredictedDate.Format("Mon, Jan 2 2006"),
		Dim("("+RelativeDateFrom(v.PredictedDate, v.ComputedAt)+")")))
	sb.WriteString(fmt.Sprintf("  %s %s – %s %s\n",
		Bold("Window:"),
		v.EarlyDate.Format("Jan 2"),
		v.LateDate.Format("Jan 2"),
		Dim(fmt.Sprintf("(±%s)", FormatDays(v.IntervalDays)))))
	sb.WriteString(fmt.Sprintf("  %s\n", ConfidencePill(v.ConfidencePct)))

	switch v.Method {
	case domain.MethodHistorical:
		sb.WriteString(fmt.Sprintf("  %s\n",
			Dim(fmt.Sprintf("based on %d similar completed tasks (%s tier)", v.BasedOnTasks, v.Tier))))
	default:
		sb.WriteString(fmt.Sprintf("  %s\n",
			StyleYellow.Render("no comparable history found, using rule-of-thumb estimate")))
	}

	if v.IsLikelyLate && v.BoardDueDate != nil {
		sb.WriteString(fmt.Sprintf("\n  %s %s\n",
			StyleRed.Render("⚠ likely late:"),
			fmt.Sprintf("board is due %s", v.BoardDueDate.Format("Jan 2, 2006"))))
	}

	if len(v.Factors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(formatFactors(v.Factors))
	}

	sb.WriteString("\n")
	if v.Recomputed {
		sb.WriteString(Dim(fmt.Sprintf("  as of %s", v.ComputedAt.Format("Jan 2 15:04"))))
	} else {
		sb.WriteString(Dim(fmt.Sprintf("  cached prediction from %s, use --force to recompute",
			v.ComputedAt.Format("Jan 2 15:04"))))
	}
	sb.WriteString("\n")

	return sb.String()
}

func formatFactors(factors []domain.Factor) string {
	rows := make([][]string, 0, len(factors))
	for _, f := range factors {
		value := fmt.Sprintf("×%.2f", f.Multiplier)
		if f.Code == domain.FactorBaseHistorical || f.Code == domain.FactorBaseRule {
			value = FormatDays(f.Multiplier)
		}
		rows = append(rows, []string{factorLabel(f.Code), value, Dim(f.Message)})
	}
	return RenderTable([]string{"FACTOR", "EFFECT", ""}, rows)
}

func factorLabel(code domain.FactorCode) string {
	switch code {
	case domain.FactorBaseHistorical:
		return "historical base"
	case domain.FactorBaseRule:
		return "rule-of-thumb base"
	case domain.FactorPriority:
		return "priority"
	case domain.FactorRisk:
		return "risk"
	case domain.FactorDependencies:
		return "dependencies"
	case domain.FactorCollaboration:
		return "collaboration"
	case domain.FactorAssigneeVelocity:
		return "assignee velocity"
	case domain.FactorProgress:
		return "remaining progress"
	case domain.FactorMinimumFloor:
		return "minimum floor"
	default:
		return strings.ToLower(string(code))
	}
}
