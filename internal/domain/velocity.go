package domain

import "time"

// VelocitySnapshot aggregates a board's completed throughput for one calendar
// week. Elapsed weeks are immutable; only the current partial week is
// recomputed on refresh.
type VelocitySnapshot struct {
	ID      string
	BoardID string

	// WeekStart is the Monday 00:00 UTC boundary of the window.
	WeekStart time.Time

	ItemsCompleted       int
	StoryPointsCompleted *float64
	TeamSize             int

	CreatedAt time.Time
	UpdatedAt time.Time
}
