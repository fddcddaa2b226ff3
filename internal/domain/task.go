package domain

import (
	"errors"
	"time"
)

// Task is a pending work item as read at prediction time. Completed tasks are
// represented separately as CompletedItem records; a task transitions there
// when it reaches 100% progress.
type Task struct {
	ID             string
	BoardID        string
	OrganizationID string
	Title          string
	Status         TaskStatus

	AssigneeID *string
	Priority   Priority

	// ComplexityScore is a 1-10 estimate supplied by the surrounding system.
	ComplexityScore int

	// ProgressPct is 0-100.
	ProgressPct float64

	// RiskScore is a 0-10 assessment; nil when never assessed.
	RiskScore *float64

	DependencyCount       int
	RequiresCollaboration bool

	// StartDate is required for prediction; a task without one yields
	// "no prediction possible", never a degenerate estimate.
	StartDate *time.Time

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrComplexityOutOfRange = errors.New("complexity score must be between 1 and 10")
	ErrProgressOutOfRange   = errors.New("progress must be between 0 and 100")
	ErrInvalidPriority      = errors.New("invalid priority")
)

// Validate checks field ranges on a task before persistence.
func (t *Task) Validate() error {
	if t.ComplexityScore < 1 || t.ComplexityScore > 10 {
		return ErrComplexityOutOfRange
	}
	if t.ProgressPct < 0 || t.ProgressPct > 100 {
		return ErrProgressOutOfRange
	}
	if !ValidPriorities[string(t.Priority)] {
		return ErrInvalidPriority
	}
	return nil
}
