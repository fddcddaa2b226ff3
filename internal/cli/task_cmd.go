package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/paulavishek/prizmai/internal/cli/formatter"
	"github.com/paulavishek/prizmai/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskCompleteCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		board, title, assignee, priority, start string
		complexity, deps                        int
		progress, risk                          float64
		collab                                  bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			b, err := app.Boards.GetByID(ctx, boardID)
			if err != nil {
				return err
			}

			t := &domain.Task{
				BoardID:               b.ID,
				OrganizationID:        b.OrganizationID,
				Title:                 title,
				Priority:              domain.Priority(priority),
				ComplexityScore:       complexity,
				ProgressPct:           progress,
				DependencyCount:       deps,
				RequiresCollaboration: collab,
			}
			if assignee != "" {
				t.AssigneeID = &assignee
			}
			if cmd.Flags().Changed("risk") {
				t.RiskScore = &risk
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				t.StartDate = &startDate
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Added task %s [%s]\n", t.Title, t.ID[:8])
			if t.StartDate == nil {
				fmt.Println(formatter.Dim("note: no start date set, predictions need one"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board name or ID")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee identifier")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (low|medium|high|urgent)")
	cmd.Flags().IntVar(&complexity, "complexity", 5, "Complexity score 1-10")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Progress percent 0-100")
	cmd.Flags().Float64Var(&risk, "risk", 0, "Risk score 0-10")
	cmd.Flags().IntVar(&deps, "deps", 0, "Number of blocking dependencies")
	cmd.Flags().BoolVar(&collab, "collab", false, "Requires cross-person collaboration")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks on a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByBoard(ctx, boardID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks on this board")
				return nil
			}
			fmt.Print(renderTaskTable(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board name or ID")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func renderTaskTable(tasks []*domain.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		assignee := "-"
		if t.AssigneeID != nil {
			assignee = *t.AssigneeID
		}
		rows = append(rows, []string{
			t.ID[:8],
			t.Title,
			string(t.Status),
			string(t.Priority),
			assignee,
			formatter.RenderProgress(int(t.ProgressPct), 10),
		})
	}
	return formatter.RenderTable([]string{"ID", "TITLE", "STATUS", "PRIORITY", "ASSIGNEE", "PROGRESS"}, rows)
}

func newTaskCompleteCmd(app *App) *cobra.Command {
	var points float64

	cmd := &cobra.Command{
		Use:   "complete <task>",
		Short: "Mark a task done and record its completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var sp *float64
			if cmd.Flags().Changed("points") {
				sp = &points
			}

			rec, err := app.Tasks.Complete(ctx, id, sp)
			if err != nil {
				return err
			}

			fmt.Printf("Completed in %s\n", formatter.FormatDays(rec.ActualDurationDays))
			return nil
		},
	}

	cmd.Flags().Float64Var(&points, "points", 0, "Story points delivered")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <task>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Task deleted")
			return nil
		},
	}

	return cmd
}
