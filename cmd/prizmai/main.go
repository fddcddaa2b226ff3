package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/paulavishek/prizmai/internal/cli"
	"github.com/paulavishek/prizmai/internal/config"
	"github.com/paulavishek/prizmai/internal/db"
	"github.com/paulavishek/prizmai/internal/repository"
	"github.com/paulavishek/prizmai/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.prizmai/prizmai.db
	dbPath := os.Getenv("PRIZMAI_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".prizmai", "prizmai.db")
	}

	// Forecasting parameters: built-in defaults, overridable from a YAML file.
	params, err := config.Load(os.Getenv("PRIZMAI_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	boardRepo := repository.NewSQLiteBoardRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	completionRepo := repository.NewSQLiteCompletionRepo(database)
	predictionRepo := repository.NewSQLitePredictionRepo(database)
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	curveRepo := repository.NewSQLiteCurveRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging goes to stderr when PRIZMAI_LOG is set.
	var observers []service.UseCaseObserver
	if os.Getenv("PRIZMAI_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	predictionSvc := service.NewPredictionService(taskRepo, boardRepo, completionRepo, predictionRepo, params, observers...)
	burndownSvc := service.NewBurndownService(boardRepo, taskRepo, completionRepo, snapshotRepo, curveRepo, params, observers...)

	app := &cli.App{
		Boards:      service.NewBoardService(boardRepo, curveRepo),
		Tasks:       service.NewTaskService(taskRepo, uow),
		Predictions: predictionSvc,
		Burndowns:   burndownSvc,
		Refresher:   service.NewRefreshService(boardRepo, taskRepo, predictionSvc, burndownSvc, observers...),
		Importer:    service.NewImportService(uow),
	}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
