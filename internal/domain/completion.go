package domain

import "time"

// CompletedItem is the immutable historical record of a finished task. The
// duration is derived from the task's start date at completion time, never
// supplied directly.
type CompletedItem struct {
	ID             string
	TaskID         string
	AssigneeID     *string
	BoardID        string
	OrganizationID string

	ComplexityScore int
	Priority        Priority

	// ActualDurationDays is elapsed calendar days from start to completion.
	ActualDurationDays float64

	// StoryPoints is carried through to velocity snapshots when present.
	StoryPoints *float64

	CompletedAt time.Time
	CreatedAt   time.Time
}
