package importer

import (
	"testing"
	"time"

	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_FullSchema(t *testing.T) {
	schema := &ImportSchema{
		Organization: "acme",
		Boards: []BoardImport{
			{Ref: "b1", Name: "Platform", StartDate: "2026-01-05", DueDate: ptrStr("2026-06-01")},
		},
		Tasks: []TaskImport{
			{Ref: "t1", BoardRef: "b1", Title: "Build pipeline", Priority: "high", Complexity: 7, ProgressPct: ptrFloat(40), StartDate: ptrStr("2026-02-10"), Assignee: ptrStr("user-1")},
		},
		Completions: []CompletionImport{
			{BoardRef: "b1", Assignee: ptrStr("user-1"), Priority: "medium", Complexity: 5, DurationDays: 6.5, CompletedAt: "2026-02-14"},
		},
	}

	seed, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, seed.Boards, 1)
	require.Len(t, seed.Tasks, 1)
	require.Len(t, seed.Completions, 1)

	board := seed.Boards[0]
	assert.NotEmpty(t, board.ID)
	assert.Equal(t, "acme", board.OrganizationID)
	assert.Equal(t, "Platform", board.Name)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), board.StartDate)
	require.NotNil(t, board.DueDate)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *board.DueDate)

	task := seed.Tasks[0]
	assert.Equal(t, board.ID, task.BoardID, "board refs resolve to generated IDs")
	assert.Equal(t, "acme", task.OrganizationID)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.TaskTodo, task.Status)
	assert.Equal(t, 40.0, task.ProgressPct)
	require.NotNil(t, task.AssigneeID)
	assert.Equal(t, "user-1", *task.AssigneeID)
	assert.NoError(t, task.Validate())

	completion := seed.Completions[0]
	assert.Equal(t, board.ID, completion.BoardID)
	assert.Equal(t, 6.5, completion.ActualDurationDays)
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), completion.CompletedAt)
}

func TestConvert_Defaults(t *testing.T) {
	seed, err := Convert(validMinimalSchema())
	require.NoError(t, err)

	task := seed.Tasks[0]
	assert.Equal(t, domain.TaskTodo, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Zero(t, task.ProgressPct)
	assert.Nil(t, task.AssigneeID)
	assert.Nil(t, task.StartDate)
	assert.Nil(t, task.RiskScore)
}

func TestConvert_UnknownBoardRef(t *testing.T) {
	schema := validMinimalSchema()
	schema.Tasks[0].BoardRef = "ghost"

	_, err := Convert(schema)
	assert.ErrorContains(t, err, `board_ref "ghost" not found`)
}
