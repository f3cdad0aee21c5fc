package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a task",
	Long: `Updates fields of an existing task. Only the provided flags change;
everything else is kept. The priority score is recomputed from the
resulting attributes. Use --due "" to clear the due date.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().StringP("description", "d", "", "new description (markdown)")
	editCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "body" {
			name = "description"
		}
		return pflag.NormalizedName(name)
	})
	editCmd.Flags().String("status", "", "move to column (todo, in-progress, done)")
	editCmd.Flags().String("due", "", "due date (YYYY-MM-DD, empty to clear)")
	editCmd.Flags().Float64("effort", 0, "estimated effort in hours")
	editCmd.Flags().Int("impact", 0, "impact score 1-10")
	editCmd.Flags().Int("urgency", 0, "urgency score 1-10")
	editCmd.Flags().String("category", "", "category name or ID")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return task.ValidateTaskID(args[0])
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()

	t, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundErr(id, err)
	}

	a.ctrl.StartEdit(t)

	if v, _ := cmd.Flags().GetString("title"); cmd.Flags().Changed("title") {
		a.ctrl.UpdateDraft(func(d *task.Draft) { d.Title = v })
	}
	if v, _ := cmd.Flags().GetString("status"); cmd.Flags().Changed("status") {
		status, err := task.ParseStatus(v)
		if err != nil {
			a.ctrl.CancelEdit()
			return err
		}
		a.ctrl.UpdateDraft(func(d *task.Draft) { d.Anchor = status })
	}
	if err := applyDraftFlags(ctx, cmd, a); err != nil {
		a.ctrl.CancelEdit()
		return err
	}

	if err := a.ctrl.Save(ctx); err != nil {
		return notFoundErr(id, err)
	}

	updated, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundErr(id, err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, updated)
	}
	output.Messagef(os.Stdout, "Updated task #%d: %s (score %.2f)",
		updated.ID, updated.Title, updated.PriorityScore)
	return nil
}
