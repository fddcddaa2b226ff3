package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulavishek/prizmai/internal/domain"
)

// Board options
type BoardOption func(*domain.Board)

func WithBoardDueDate(d time.Time) BoardOption {
	return func(b *domain.Board) {
		b.DueDate = &d
	}
}

func WithBoardStartDate(d time.Time) BoardOption {
	return func(b *domain.Board) {
		b.StartDate = d
	}
}

func WithBoardOrg(orgID string) BoardOption {
	return func(b *domain.Board) {
		b.OrganizationID = orgID
	}
}

func NewTestBoard(name string, opts ...BoardOption) *domain.Board {
	now := time.Now().UTC()
	b := &domain.Board{
		ID:             uuid.New().String(),
		OrganizationID: "org-" + uuid.New().String()[:8],
		Name:           name,
		StartDate:      now.AddDate(0, -2, 0),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Task options
type TaskOption func(*domain.Task)

func WithAssignee(id string) TaskOption {
	return func(t *domain.Task) {
		t.AssigneeID = &id
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithComplexity(score int) TaskOption {
	return func(t *domain.Task) {
		t.ComplexityScore = score
	}
}

func WithProgress(pct float64) TaskOption {
	return func(t *domain.Task) {
		t.ProgressPct = pct
	}
}

func WithRiskScore(score float64) TaskOption {
	return func(t *domain.Task) {
		t.RiskScore = &score
	}
}

func WithDependencies(count int) TaskOption {
	return func(t *domain.Task) {
		t.DependencyCount = count
	}
}

func WithCollaboration() TaskOption {
	return func(t *domain.Task) {
		t.RequiresCollaboration = true
	}
}

func WithStartDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = &d
	}
}

func WithNoStartDate() TaskOption {
	return func(t *domain.Task) {
		t.StartDate = nil
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

// NewTestTask creates a pending task on the given board with a start date one
// week in the past. Override via options.
func NewTestTask(board *domain.Board, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -7)
	task := &domain.Task{
		ID:              uuid.New().String(),
		BoardID:         board.ID,
		OrganizationID:  board.OrganizationID,
		Title:           title,
		Status:          domain.TaskTodo,
		Priority:        domain.PriorityMedium,
		ComplexityScore: 5,
		StartDate:       &start,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// Completion options
type CompletionOption func(*domain.CompletedItem)

func WithCompletionAssignee(id string) CompletionOption {
	return func(c *domain.CompletedItem) {
		c.AssigneeID = &id
	}
}

func WithCompletionPriority(p domain.Priority) CompletionOption {
	return func(c *domain.CompletedItem) {
		c.Priority = p
	}
}

func WithCompletionComplexity(score int) CompletionOption {
	return func(c *domain.CompletedItem) {
		c.ComplexityScore = score
	}
}

func WithDuration(days float64) CompletionOption {
	return func(c *domain.CompletedItem) {
		c.ActualDurationDays = days
	}
}

func WithCompletedAt(t time.Time) CompletionOption {
	return func(c *domain.CompletedItem) {
		c.CompletedAt = t
	}
}

// NewTestCompletion creates a historical completion record on the given board
// with medium priority, complexity 5 and a 5-day duration. Override via
// options.
func NewTestCompletion(board *domain.Board, opts ...CompletionOption) *domain.CompletedItem {
	now := time.Now().UTC()
	c := &domain.CompletedItem{
		ID:                 uuid.New().String(),
		TaskID:             uuid.New().String(),
		BoardID:            board.ID,
		OrganizationID:     board.OrganizationID,
		ComplexityScore:    5,
		Priority:           domain.PriorityMedium,
		ActualDurationDays: 5,
		CompletedAt:        now.AddDate(0, 0, -3),
		CreatedAt:          now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
