package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/internal/clierr"
	"github.com/taskdeck/taskdeck/internal/date"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/task"
)

var createCmd = &cobra.Command{
	Use:     "create [TITLE]",
	Aliases: []string{"add"},
	Short:   "Create a new task",
	Long: `Creates a new task with the given title and optional fields. The
priority score is computed from effort, impact, urgency, and due date.

Title can be provided as a positional argument or via --title flag.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	createCmd.Flags().StringP("description", "d", "", "task description (markdown)")
	createCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "body" {
			name = "description"
		}
		return pflag.NormalizedName(name)
	})
	createCmd.Flags().String("status", "", "starting column (todo, in-progress, done; default todo)")
	createCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	createCmd.Flags().Float64("effort", 0, "estimated effort in hours (default from config)")
	createCmd.Flags().Int("impact", 0, "impact score 1-10 (default from config)")
	createCmd.Flags().Int("urgency", 0, "urgency score 1-10 (default from config)")
	createCmd.Flags().String("category", "", "category name or ID")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	title, err := resolveCreateTitle(cmd, args)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()

	anchor := task.StatusTodo
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		anchor, err = task.ParseStatus(v)
		if err != nil {
			return err
		}
	}

	a.ctrl.StartCreate(anchor)
	a.ctrl.UpdateDraft(func(d *task.Draft) {
		d.Title = title
		d.EffortHours = a.cfg.Defaults.Effort
		d.ImpactScore = a.cfg.Defaults.Impact
		d.UrgencyScore = a.cfg.Defaults.Urgency
		d.CategoryID = a.cfg.Defaults.Category
	})

	if err := applyDraftFlags(ctx, cmd, a); err != nil {
		a.ctrl.CancelEdit()
		return err
	}

	if err := a.ctrl.Save(ctx); err != nil {
		return err
	}

	t, err := savedTask(a)
	if err != nil {
		return err
	}
	return outputCreateResult(a, t)
}

// savedTask returns the row the controller just persisted, looked up by
// the ID the save path recorded.
func savedTask(a *app) (*task.Task, error) {
	t, ok := a.ctrl.Snapshot().Task(a.ctrl.LastSavedID())
	if !ok {
		return nil, clierr.New(clierr.InternalError, "created task missing after reload")
	}
	return &t, nil
}

func outputCreateResult(a *app, t *task.Task) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Created task #%d: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  Status: %s | Score: %.2f", t.Status, t.PriorityScore)
	if t.DueDate != nil {
		output.Messagef(os.Stdout, "  Due: %s", t.DueDate)
	}
	return nil
}

// resolveCreateTitle returns the task title from either the positional arg or --title flag.
func resolveCreateTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", errors.New("title is required: provide it as an argument or with --title")
	}
}

// applyDraftFlags copies the optional create/edit flags onto the open draft.
func applyDraftFlags(ctx context.Context, cmd *cobra.Command, a *app) error {
	if v, _ := cmd.Flags().GetString("description"); cmd.Flags().Changed("description") {
		a.ctrl.UpdateDraft(func(d *task.Draft) { d.Description = v })
	}
	if v, _ := cmd.Flags().GetString("due"); cmd.Flags().Changed("due") {
		if v == "" {
			a.ctrl.UpdateDraft(func(d *task.Draft) { d.DueDate = nil })
		} else {
			parsed, err := date.Parse(v)
			if err != nil {
				return task.ValidateDate("due", v, err)
			}
			a.ctrl.UpdateDraft(func(d *task.Draft) { d.DueDate = &parsed })
		}
	}
	if v, _ := cmd.Flags().GetFloat64("effort"); cmd.Flags().Changed("effort") {
		if v <= 0 {
			return clierr.Newf(clierr.InvalidInput, "effort must be a positive number of hours")
		}
		a.ctrl.UpdateDraft(func(d *task.Draft) { d.EffortHours = v })
	}
	if v, _ := cmd.Flags().GetInt("impact"); cmd.Flags().Changed("impact") {
		if err := validateScoreFlag("impact", v); err != nil {
			return err
		}
		a.ctrl.UpdateDraft(func(d *task.Draft) { d.ImpactScore = v })
	}
	if v, _ := cmd.Flags().GetInt("urgency"); cmd.Flags().Changed("urgency") {
		if err := validateScoreFlag("urgency", v); err != nil {
			return err
		}
		a.ctrl.UpdateDraft(func(d *task.Draft) { d.UrgencyScore = v })
	}
	if v, _ := cmd.Flags().GetString("category"); cmd.Flags().Changed("category") {
		cats, err := a.repo.Categories(ctx)
		if err != nil {
			return err
		}
		id, err := resolveCategory(cats, v)
		if err != nil {
			return err
		}
		a.ctrl.UpdateDraft(func(d *task.Draft) { d.CategoryID = id })
	}
	return nil
}

func validateScoreFlag(name string, v int) error {
	if v < 1 || v > 10 {
		return clierr.Newf(clierr.InvalidInput, "%s must be between 1 and 10", name)
	}
	return nil
}
