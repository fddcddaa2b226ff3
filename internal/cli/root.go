package cli

import (
	"github.com/paulavishek/prizmai/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Boards      service.BoardService
	Tasks       service.TaskService
	Predictions service.PredictionService
	Burndowns   service.BurndownService
	Refresher   service.RefreshService
	Importer    service.ImportService

	// IsInteractive reports whether the CLI is attached to a terminal;
	// destructive commands prompt instead of demanding --force when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "prizmai" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "prizmai",
		Short: "Completion-date forecasting for boards and tasks",
	}

	root.AddCommand(
		newBoardCmd(app),
		newTaskCmd(app),
		newPredictCmd(app),
		newBurndownCmd(app),
		newRefreshCmd(app),
		newImportCmd(app),
	)

	return root
}
