package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paulavishek/prizmai/internal/contract"
	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/forecast"
	"github.com/paulavishek/prizmai/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedWeeklyCompletions writes `perWeek[i]` completion records into week i of
// the window, oldest first, ending the week before now.
func seedWeeklyCompletions(t *testing.T, ctx context.Context, r testRepos, board *domain.Board, now time.Time, perWeek []int) {
	t.Helper()
	for i, n := range perWeek {
		weekStart := forecast.WeekStart(now).AddDate(0, 0, -7*(len(perWeek)-i))
		seedCompletions(t, ctx, r.completions, board, n,
			testutil.WithCompletedAt(weekStart.Add(24*time.Hour)))
	}
}

func TestBurndown_SteadyThroughput(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	board := testutil.NewTestBoard("Steady", testutil.WithBoardDueDate(now.AddDate(0, 0, 60)))
	require.NoError(t, r.boards.Create(ctx, board))
	seedWeeklyCompletions(t, ctx, r, board, now, []int{5, 6, 5, 7, 6, 5, 6, 6})
	for i := 0; i < 12; i++ {
		require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(board, "Pending")))
	}

	svc := newBurndownService(r)
	view, err := svc.GetCurve(ctx, contract.BurndownRequest{BoardID: board.ID, Now: &now})
	require.NoError(t, err)

	assert.InDelta(t, 5.75, view.MeanVelocity, 1e-9)
	assert.Equal(t, domain.RiskOnTrack, view.RiskLevel)
	assert.True(t, view.Recomputed)

	// Scope is 46 completed plus 12 pending; remaining ends at 12 and the
	// projection steps down from there.
	require.NotEmpty(t, view.Historical)
	assert.Equal(t, 12.0, view.Historical[len(view.Historical)-1].Remaining)
	require.NotEmpty(t, view.Projected)
	assert.Less(t, view.Projected[0].Remaining, 12.0)

	require.NotNil(t, view.ProjectedCompletion)
	require.NotEmpty(t, view.Ideal)

	// Snapshots were persisted for the whole window plus the partial week.
	snaps, err := r.snapshots.ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Len(t, snaps, 9)
}

func TestBurndown_CachedUntilStale(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	board := testutil.NewTestBoard("Board")
	require.NoError(t, r.boards.Create(ctx, board))
	seedWeeklyCompletions(t, ctx, r, board, now, []int{3, 4, 3, 4})
	require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(board, "Pending")))

	svc := newBurndownService(r)

	first, err := svc.GetCurve(ctx, contract.BurndownRequest{BoardID: board.ID, Now: &now})
	require.NoError(t, err)
	assert.True(t, first.Recomputed)

	later := now.Add(3 * time.Hour)
	second, err := svc.GetCurve(ctx, contract.BurndownRequest{BoardID: board.ID, Now: &later})
	require.NoError(t, err)
	assert.False(t, second.Recomputed)
	assert.Equal(t, first.ComputedAt, second.ComputedAt)

	stale := now.Add(25 * time.Hour)
	third, err := svc.GetCurve(ctx, contract.BurndownRequest{BoardID: board.ID, Now: &stale})
	require.NoError(t, err)
	assert.True(t, third.Recomputed)
}

func TestBurndown_ForceRecomputes(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	board := testutil.NewTestBoard("Board")
	require.NoError(t, r.boards.Create(ctx, board))
	seedWeeklyCompletions(t, ctx, r, board, now, []int{3, 4, 3, 4})

	svc := newBurndownService(r)
	_, err := svc.GetCurve(ctx, contract.BurndownRequest{BoardID: board.ID, Now: &now})
	require.NoError(t, err)

	later := now.Add(time.Hour)
	view, err := svc.GetCurve(ctx, contract.BurndownRequest{BoardID: board.ID, Force: true, Now: &later})
	require.NoError(t, err)
	assert.True(t, view.Recomputed)
	assert.Equal(t, later, view.ComputedAt)
}

func TestBurndown_InsufficientVelocity(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	board := testutil.NewTestBoard("Idle")
	require.NoError(t, r.boards.Create(ctx, board))
	require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(board, "Pending")))

	svc := newBurndownService(r)
	_, err := svc.GetCurve(ctx, contract.BurndownRequest{BoardID: board.ID, Now: &now})

	var bErr *contract.BurndownError
	require.True(t, errors.As(err, &bErr))
	assert.Equal(t, contract.ErrInsufficientVelocity, bErr.Code)
}

func TestBurndown_BoardNotFound(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	svc := newBurndownService(r)
	_, err := svc.GetCurve(ctx, contract.NewBurndownRequest("ghost"))

	var bErr *contract.BurndownError
	require.True(t, errors.As(err, &bErr))
	assert.Equal(t, contract.ErrBoardNotFound, bErr.Code)
}

func TestBurndown_NoDueDateStaysOnTrack(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	board := testutil.NewTestBoard("No Due Date")
	board.DueDate = nil
	require.NoError(t, r.boards.Create(ctx, board))
	seedWeeklyCompletions(t, ctx, r, board, now, []int{2, 2, 2, 2})
	for i := 0; i < 50; i++ {
		require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(board, "Pending")))
	}

	view, err := newBurndownService(r).GetCurve(ctx, contract.BurndownRequest{BoardID: board.ID, Now: &now})
	require.NoError(t, err)
	assert.Equal(t, domain.RiskOnTrack, view.RiskLevel)
	assert.Nil(t, view.Ideal)
}
