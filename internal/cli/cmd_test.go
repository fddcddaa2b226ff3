package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulavishek/prizmai/internal/config"
	"github.com/paulavishek/prizmai/internal/db"
	"github.com/paulavishek/prizmai/internal/repository"
	"github.com/paulavishek/prizmai/internal/service"
	"github.com/paulavishek/prizmai/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	boardRepo := repository.NewSQLiteBoardRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	completionRepo := repository.NewSQLiteCompletionRepo(database)
	predictionRepo := repository.NewSQLitePredictionRepo(database)
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	curveRepo := repository.NewSQLiteCurveRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	params := config.Default()
	predictionSvc := service.NewPredictionService(taskRepo, boardRepo, completionRepo, predictionRepo, params)
	burndownSvc := service.NewBurndownService(boardRepo, taskRepo, completionRepo, snapshotRepo, curveRepo, params)

	return &App{
		Boards:      service.NewBoardService(boardRepo, curveRepo),
		Tasks:       service.NewTaskService(taskRepo, uow),
		Predictions: predictionSvc,
		Burndowns:   burndownSvc,
		Refresher:   service.NewRefreshService(boardRepo, taskRepo, predictionSvc, burndownSvc),
		Importer:    service.NewImportService(uow),
	}
}

// executeCmd runs a cobra command and captures cobra's own output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedBoard(t *testing.T, app *App, name string) string {
	t.Helper()
	b := testutil.NewTestBoard(name)
	require.NoError(t, app.Boards.Create(context.Background(), b))
	return b.ID
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "prizmai")
}

func TestBoardCreateCmd(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "board", "create", "--name", "Q2 Launch", "--due", "2026-06-30")
	require.NoError(t, err)

	boards, err := app.Boards.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "Q2 Launch", boards[0].Name)
	require.NotNil(t, boards[0].DueDate)
}

func TestBoardCreateCmd_InvalidDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "board", "create", "--name", "Bad", "--due", "June 30")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid due date")
}

func TestBoardCreateCmd_RequiresName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "board", "create")
	assert.Error(t, err)
}

func TestBoardListCmd_Empty(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "board", "list")
	require.NoError(t, err)
}

func TestBoardRemoveCmd_RequiresForce(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app, "Doomed")

	_, err := executeCmd(t, app, "board", "remove", "Doomed")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = executeCmd(t, app, "board", "remove", "Doomed", "--force")
	require.NoError(t, err)

	boards, err := app.Boards.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestTaskAddCmd_ResolvesBoardByName(t *testing.T) {
	app := testApp(t)
	boardID := seedBoard(t, app, "Q2 Launch")

	_, err := executeCmd(t, app, "task", "add",
		"--board", "q2 launch",
		"--title", "Implement OAuth",
		"--assignee", "alice",
		"--priority", "high",
		"--complexity", "7",
		"--start", "2026-03-01",
	)
	require.NoError(t, err)

	tasks, err := app.Tasks.ListByBoard(context.Background(), boardID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Implement OAuth", tasks[0].Title)
	assert.Equal(t, 7, tasks[0].ComplexityScore)
	require.NotNil(t, tasks[0].StartDate)
}

func TestTaskAddCmd_UnknownBoard(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "task", "add", "--board", "nope", "--title", "x")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "board not found")
}

func TestTaskAddCmd_InvalidComplexity(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app, "Q2 Launch")

	_, err := executeCmd(t, app, "task", "add",
		"--board", "Q2 Launch", "--title", "x", "--complexity", "11")
	assert.Error(t, err)
}

func TestTaskCompleteCmd(t *testing.T) {
	app := testApp(t)
	boardID := seedBoard(t, app, "Q2 Launch")

	ctx := context.Background()
	b, err := app.Boards.GetByID(ctx, boardID)
	require.NoError(t, err)
	task := testutil.NewTestTask(b, "Ship it",
		testutil.WithStartDate(time.Now().UTC().AddDate(0, 0, -4)))
	require.NoError(t, app.Tasks.Create(ctx, task))

	_, err = executeCmd(t, app, "task", "complete", task.ID, "--points", "5")
	require.NoError(t, err)

	got, err := app.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
}

func TestTaskCompleteCmd_PrefixResolution(t *testing.T) {
	app := testApp(t)
	boardID := seedBoard(t, app, "Q2 Launch")

	ctx := context.Background()
	b, err := app.Boards.GetByID(ctx, boardID)
	require.NoError(t, err)
	task := testutil.NewTestTask(b, "Ship it",
		testutil.WithStartDate(time.Now().UTC().AddDate(0, 0, -1)))
	require.NoError(t, app.Tasks.Create(ctx, task))

	_, err = executeCmd(t, app, "task", "complete", task.ID[:8])
	require.NoError(t, err)
}

func TestPredictCmd_RuleBasedFallback(t *testing.T) {
	app := testApp(t)
	boardID := seedBoard(t, app, "Q2 Launch")

	ctx := context.Background()
	b, err := app.Boards.GetByID(ctx, boardID)
	require.NoError(t, err)
	task := testutil.NewTestTask(b, "Fresh work",
		testutil.WithStartDate(time.Now().UTC()))
	require.NoError(t, app.Tasks.Create(ctx, task))

	_, err = executeCmd(t, app, "predict", task.ID)
	require.NoError(t, err)
}

func TestPredictCmd_UnknownTask(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "predict", "nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "task not found")
}

func TestBurndownCmd_InsufficientVelocity(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app, "Quiet Board")

	_, err := executeCmd(t, app, "burndown", "Quiet Board")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "INSUFFICIENT_VELOCITY")
}

func TestRefreshCmd_EmptyDB(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "refresh")
	require.NoError(t, err)
}

func TestImportCmd(t *testing.T) {
	app := testApp(t)

	seed := `{
		"organization": "acme",
		"boards": [{"ref": "b1", "name": "Imported", "start_date": "2026-01-05"}],
		"tasks": [{"ref": "t1", "board_ref": "b1", "title": "First", "complexity": 5, "start_date": "2026-02-01"}],
		"completions": []
	}`
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	_, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)

	boards, err := app.Boards.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "Imported", boards[0].Name)
}

func TestImportCmd_MissingFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "import", "/nonexistent/seed.json")
	assert.Error(t, err)
}

func TestRefreshCmd_ScopedToBoard(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app, "Q2 Launch")

	_, err := executeCmd(t, app, "refresh", "--board", "Q2 Launch", "--workers", "2")
	require.NoError(t, err)
}

func TestRefreshCmd_ScopedToOrganization(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app, "Q2 Launch")

	_, err := executeCmd(t, app, "refresh", "--org", "default")
	require.NoError(t, err)
}
