package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/paulavishek/prizmai/internal/cli/formatter"
	"github.com/paulavishek/prizmai/internal/domain"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		newBoardCreateCmd(app),
		newBoardListCmd(app),
		newBoardShowCmd(app),
		newBoardArchiveCmd(app),
		newBoardRemoveCmd(app),
	)

	return cmd
}

func newBoardCreateCmd(app *App) *cobra.Command {
	var name, org, start, due string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := &domain.Board{
				Name:           name,
				OrganizationID: org,
			}

			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				b.StartDate = startDate
			}
			if due != "" {
				dueDate, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				b.DueDate = &dueDate
			}

			if err := app.Boards.Create(context.Background(), b); err != nil {
				return err
			}

			fmt.Printf("Created board %s [%s]\n", b.Name, b.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name")
	cmd.Flags().StringVar(&org, "org", "default", "Organization the board belongs to")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBoardListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := app.Boards.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(boards) == 0 {
				fmt.Println("No boards yet. Create one with: prizmai board create --name <name>")
				return nil
			}

			rows := make([][]string, 0, len(boards))
			for _, b := range boards {
				due := "-"
				if b.DueDate != nil {
					due = b.DueDate.Format("2006-01-02")
				}
				status := "active"
				if b.ArchivedAt != nil {
					status = formatter.Dim("archived")
				}
				rows = append(rows, []string{
					b.ID[:8],
					b.Name,
					b.StartDate.Format("2006-01-02"),
					due,
					status,
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "START", "DUE", "STATUS"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived boards")

	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <board>",
		Short: "Show board details and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			b, err := app.Boards.GetByID(ctx, id)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByBoard(ctx, b.ID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(b.Name))
			fmt.Printf("  %s %s\n", formatter.Bold("Started:"), b.StartDate.Format("Jan 2, 2006"))
			if b.DueDate != nil {
				fmt.Printf("  %s %s\n", formatter.Bold("Due:"), b.DueDate.Format("Jan 2, 2006"))
			}
			fmt.Println()

			if len(tasks) == 0 {
				fmt.Println(formatter.Dim("  no pending tasks"))
				return nil
			}
			fmt.Print(renderTaskTable(tasks))
			return nil
		},
	}

	return cmd
}

func newBoardArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <board>",
		Short: "Archive a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Boards.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Println("Board archived")
			return nil
		},
	}

	return cmd
}

func newBoardRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <board>",
		Short: "Delete a board and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("deleting a board removes its tasks; re-run with --force to confirm")
				}
				fmt.Print("Delete this board and all its tasks? [y/N] ")
				var answer string
				_, _ = fmt.Scanln(&answer)
				if !strings.EqualFold(answer, "y") {
					fmt.Println("Aborted")
					return nil
				}
			}
			ctx := context.Background()
			id, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Boards.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Board deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion")

	return cmd
}
