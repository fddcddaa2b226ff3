package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RelativeDateFrom formats a date relative to the given reference time:
// "today", "tomorrow", "in 3 days", "2 weeks ago", falling back to the
// absolute date beyond roughly two months.
func RelativeDateFrom(t, now time.Time) string {
	day := func(x time.Time) time.Time {
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, time.UTC)
	}
	days := int(day(t).Sub(day(now)).Hours() / 24)

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1 && days < 14:
		return fmt.Sprintf("in %d days", days)
	case days >= 14 && days <= 60:
		return fmt.Sprintf("in %d weeks", days/7)
	case days < -1 && days > -14:
		return fmt.Sprintf("%d days ago", -days)
	case days <= -14 && days >= -60:
		return fmt.Sprintf("%d weeks ago", -days/7)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// RelativeDate formats a date relative to the current time.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RenderBox draws a rounded border box around the given content lines.
func RenderBox(title string, lines []string) string {
	content := strings.Join(lines, "\n")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1).
		Render(content)
	if title == "" {
		return box
	}
	return StyleHeader.Render(title) + "\n" + box
}

// FormatDays formats a day count with one decimal, dropping the trailing
// ".0" for whole values.
func FormatDays(days float64) string {
	s := fmt.Sprintf("%.1f", days)
	s = strings.TrimSuffix(s, ".0")
	return s + "d"
}
