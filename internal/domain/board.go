package domain

import "time"

// Board is a container for tasks within an organization. Its due date anchors
// the burndown ideal line and risk classification.
type Board struct {
	ID             string
	OrganizationID string
	Name           string

	StartDate time.Time
	DueDate   *time.Time

	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
