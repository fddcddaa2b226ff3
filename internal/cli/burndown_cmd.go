package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paulavishek/prizmai/internal/cli/formatter"
	"github.com/paulavishek/prizmai/internal/contract"
)

func newBurndownCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "burndown <board>",
		Short: "Chart a board's burndown with a velocity projection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}

			req := contract.NewBurndownRequest(id)
			req.Force = force

			view, err := app.Burndowns.GetCurve(ctx, req)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatBurndown(view))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Rebuild even when a fresh curve is cached")

	return cmd
}
