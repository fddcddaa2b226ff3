package formatter

import (
	"fmt"
	"strings"
)

// RenderProgress renders a progress bar like "████████░░░░ 67%".
func RenderProgress(pct int, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := StyleGreen
	switch {
	case pct < 34:
		style = StyleRed
	case pct < 67:
		style = StyleYellow
	}
	return fmt.Sprintf("%s %d%%", style.Render(bar), pct)
}

// RenderSparkBar renders a horizontal bar scaled to value/max, used for the
// burndown history chart. Returns an empty bar when max is not positive.
func RenderSparkBar(value, max float64, width int) string {
	if max <= 0 || value < 0 {
		return strings.Repeat("░", width)
	}
	filled := int(value / max * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
