package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/clierr"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/task"
)

var moveCmd = &cobra.Command{
	Use:   "move ID[,ID,...] [STATUS]",
	Short: "Move a task to a different column",
	Long: `Changes the column of a task. Provide the new status directly, or use
--next/--prev to step along the Todo > In Progress > Done order.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.RangeArgs(1, 2), //nolint:mnd // 1 or 2 positional args
	RunE: runMove,
}

func init() {
	moveCmd.Flags().Bool("next", false, "move to next column")
	moveCmd.Flags().Bool("prev", false, "move to previous column")
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()

	// Single ID: full output.
	if len(ids) == 1 {
		return moveSingleTask(ctx, a, ids[0], cmd, args)
	}

	// Batch mode.
	return runBatch(ids, func(id int64) error {
		_, err := executeMove(ctx, a, id, cmd, args)
		return err
	})
}

// moveResult wraps a task with a changed flag for JSON output.
type moveResult struct {
	task.Task
	Changed bool `json:"changed"`
}

// moveSingleTask handles a single task move with full output.
func moveSingleTask(ctx context.Context, a *app, id int64, cmd *cobra.Command, args []string) error {
	changed, err := executeMove(ctx, a, id, cmd, args)
	if err != nil {
		return err
	}

	t, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundErr(id, err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, moveResult{Task: t, Changed: changed})
	}
	if !changed {
		output.Messagef(os.Stdout, "Task #%d is already at %s", t.ID, t.Status)
		return nil
	}
	output.Messagef(os.Stdout, "Moved task #%d to %s (score %.2f)", t.ID, t.Status, t.PriorityScore)
	return nil
}

// executeMove runs the requested column change through the controller.
// Stepping past the first or last column is a boundary error; moving to
// a column the task already occupies succeeds without a write.
func executeMove(ctx context.Context, a *app, id int64, cmd *cobra.Command, args []string) (bool, error) {
	next, _ := cmd.Flags().GetBool("next")
	prev, _ := cmd.Flags().GetBool("prev")

	switch {
	case len(args) == 2: //nolint:mnd // positional arg
		target, err := task.ParseStatus(args[1])
		if err != nil {
			return false, err
		}
		changed, err := a.ctrl.MoveTo(ctx, id, target)
		return changed, notFoundErr(id, err)
	case next:
		changed, err := a.ctrl.Advance(ctx, id)
		if err != nil {
			return false, notFoundErr(id, err)
		}
		if !changed {
			return false, task.ValidateBoundaryError(id, task.StatusDone, "last")
		}
		return true, nil
	case prev:
		changed, err := a.ctrl.Retreat(ctx, id)
		if err != nil {
			return false, notFoundErr(id, err)
		}
		if !changed {
			return false, task.ValidateBoundaryError(id, task.StatusTodo, "first")
		}
		return true, nil
	default:
		return false, clierr.New(clierr.InvalidInput, "provide a target status or use --next/--prev")
	}
}
