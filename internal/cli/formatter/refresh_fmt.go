package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/paulavishek/prizmai/internal/contract"
)

// FormatRefreshSummary renders the outcome of a batch forecast refresh.
func FormatRefreshSummary(s *contract.RefreshSummary) string {
	var sb strings.Builder

	sb.WriteString(Header("Refresh complete"))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  %s %s\n", Bold("Predictions:"),
		fmt.Sprintf("%d updated / %d total", s.Updated, s.Total)))
	sb.WriteString(fmt.Sprintf("  %s %d\n", Bold("Boards rebuilt:"), s.BoardsRefreshed))
	sb.WriteString(fmt.Sprintf("  %s %s\n", Bold("Took:"), s.Duration.Round(time.Millisecond)))

	if s.Failed > 0 {
		sb.WriteString(fmt.Sprintf("\n  %s\n", StyleYellow.Render(fmt.Sprintf("%d tasks could not be predicted:", s.Failed))))
		rows := make([][]string, 0, len(s.Failures))
		for _, f := range s.Failures {
			rows = append(rows, []string{shortID(f.TaskID), Dim(f.Reason)})
		}
		sb.WriteString(indent(RenderTable([]string{"TASK", "REASON"}, rows), "  "))
	}

	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
