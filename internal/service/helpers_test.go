package service

import (
	"context"
	"testing"
	"time"

	"github.com/paulavishek/prizmai/internal/config"
	"github.com/paulavishek/prizmai/internal/db"
	"github.com/paulavishek/prizmai/internal/domain"
	"github.com/paulavishek/prizmai/internal/repository"
	"github.com/paulavishek/prizmai/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	boards      repository.BoardRepo
	tasks       repository.TaskRepo
	completions repository.CompletionRepo
	predictions repository.PredictionRepo
	snapshots   repository.SnapshotRepo
	curves      repository.CurveRepo
	uow         db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	database := testutil.NewTestDB(t)
	return testRepos{
		boards:      repository.NewSQLiteBoardRepo(database),
		tasks:       repository.NewSQLiteTaskRepo(database),
		completions: repository.NewSQLiteCompletionRepo(database),
		predictions: repository.NewSQLitePredictionRepo(database),
		snapshots:   repository.NewSQLiteSnapshotRepo(database),
		curves:      repository.NewSQLiteCurveRepo(database),
		uow:         testutil.NewTestUoW(database),
	}
}

func newPredictionService(r testRepos) PredictionService {
	return NewPredictionService(r.tasks, r.boards, r.completions, r.predictions, config.Default())
}

func newBurndownService(r testRepos) BurndownService {
	return NewBurndownService(r.boards, r.tasks, r.completions, r.snapshots, r.curves, config.Default())
}

// seedCompletions inserts n copies of a completion fixture on the board.
func seedCompletions(t *testing.T, ctx context.Context, repo repository.CompletionRepo, board *domain.Board, n int, opts ...testutil.CompletionOption) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Create(ctx, testutil.NewTestCompletion(board, opts...)))
	}
}

func timePtr(t time.Time) *time.Time { return &t }
