package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paulavishek/prizmai/internal/cli/formatter"
	"github.com/paulavishek/prizmai/internal/contract"
)

func newPredictCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "predict <task>",
		Short: "Forecast when a task will be completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			req := contract.NewPredictRequest(id)
			req.Force = force

			view, err := app.Predictions.Predict(ctx, req)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatPrediction(view))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Recompute even when a fresh prediction is cached")

	return cmd
}
