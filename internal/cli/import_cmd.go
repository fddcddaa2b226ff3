package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import boards, tasks and completion history from a JSON seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Importer.ImportSeed(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported organization %q: %d boards, %d tasks, %d completion records\n",
				result.Organization, result.BoardCount, result.TaskCount, result.CompletionCount)
			return nil
		},
	}

	return cmd
}
