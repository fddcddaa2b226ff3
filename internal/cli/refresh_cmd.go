package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/paulavishek/prizmai/internal/cli/formatter"
	"github.com/paulavishek/prizmai/internal/contract"
)

func newRefreshCmd(app *App) *cobra.Command {
	var (
		board    string
		org      string
		workers  int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute predictions and burndown curves in batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			req := contract.NewRefreshRequest()
			if workers > 0 {
				req.Workers = workers
			}
			if board != "" {
				id, err := resolveBoardID(ctx, app, board)
				if err != nil {
					return err
				}
				req.BoardID = id
			}
			req.OrganizationID = org

			if interval <= 0 {
				return runRefreshOnce(ctx, app, req)
			}

			// Periodic mode: refresh immediately, then on every tick until
			// interrupted.
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := runRefreshOnce(ctx, app, req); err != nil {
				return err
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			fmt.Println(formatter.Dim(fmt.Sprintf("refreshing every %s, press Ctrl-C to stop", interval)))
			for {
				select {
				case <-ctx.Done():
					fmt.Println("\nStopped")
					return nil
				case <-ticker.C:
					if err := runRefreshOnce(ctx, app, req); err != nil {
						if ctx.Err() != nil {
							fmt.Println("\nStopped")
							return nil
						}
						fmt.Fprintf(os.Stderr, "refresh failed: %v\n", err)
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Limit the refresh to one board")
	cmd.Flags().StringVar(&org, "org", "", "Limit the refresh to one organization's boards")
	cmd.Flags().IntVar(&workers, "workers", 0, "Prediction worker count (default 4)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Re-run continuously at this interval (e.g. 30m)")

	return cmd
}

func runRefreshOnce(ctx context.Context, app *App, req contract.RefreshRequest) error {
	summary, err := app.Refresher.Refresh(ctx, req)
	if err != nil {
		return err
	}
	fmt.Print(formatter.FormatRefreshSummary(summary))
	return nil
}
