package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paulavishek/prizmai/internal/domain"
)

// GeneratedSeed holds the converted domain objects ready for persistence.
type GeneratedSeed struct {
	Boards      []*domain.Board
	Tasks       []*domain.Task
	Completions []*domain.CompletedItem
}

// Convert transforms a validated ImportSchema into domain objects. Call
// ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*GeneratedSeed, error) {
	now := time.Now().UTC()
	orgID := schema.Organization

	boardIDs := make(map[string]string) // ref -> UUID

	boards := make([]*domain.Board, 0, len(schema.Boards))
	for _, b := range schema.Boards {
		startDate, err := time.Parse("2006-01-02", b.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing board %q start_date: %w", b.Ref, err)
		}

		realID := uuid.New().String()
		boardIDs[b.Ref] = realID

		boards = append(boards, &domain.Board{
			ID:             realID,
			OrganizationID: orgID,
			Name:           b.Name,
			StartDate:      startDate,
			DueDate:        parseOptionalDate(b.DueDate),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	tasks := make([]*domain.Task, 0, len(schema.Tasks))
	for _, t := range schema.Tasks {
		boardID, ok := boardIDs[t.BoardRef]
		if !ok {
			return nil, fmt.Errorf("board_ref %q not found for task %q", t.BoardRef, t.Ref)
		}

		status := t.Status
		if status == "" {
			status = string(domain.TaskTodo)
		}
		priority := t.Priority
		if priority == "" {
			priority = string(domain.PriorityMedium)
		}

		var progress float64
		if t.ProgressPct != nil {
			progress = *t.ProgressPct
		}

		tasks = append(tasks, &domain.Task{
			ID:                    uuid.New().String(),
			BoardID:               boardID,
			OrganizationID:        orgID,
			Title:                 t.Title,
			Status:                domain.TaskStatus(status),
			AssigneeID:            t.Assignee,
			Priority:              domain.Priority(priority),
			ComplexityScore:       t.Complexity,
			ProgressPct:           progress,
			RiskScore:             t.RiskScore,
			DependencyCount:       t.DependencyCount,
			RequiresCollaboration: t.RequiresCollaboration,
			StartDate:             parseOptionalDate(t.StartDate),
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	}

	completions := make([]*domain.CompletedItem, 0, len(schema.Completions))
	for i, c := range schema.Completions {
		boardID, ok := boardIDs[c.BoardRef]
		if !ok {
			return nil, fmt.Errorf("board_ref %q not found for completions[%d]", c.BoardRef, i)
		}

		completedAt, err := time.Parse("2006-01-02", c.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing completions[%d].completed_at: %w", i, err)
		}

		completions = append(completions, &domain.CompletedItem{
			ID:                 uuid.New().String(),
			AssigneeID:         c.Assignee,
			BoardID:            boardID,
			OrganizationID:     orgID,
			ComplexityScore:    c.Complexity,
			Priority:           domain.Priority(c.Priority),
			ActualDurationDays: c.DurationDays,
			StoryPoints:        c.StoryPoints,
			CompletedAt:        completedAt,
			CreatedAt:          now,
		})
	}

	return &GeneratedSeed{Boards: boards, Tasks: tasks, Completions: completions}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
