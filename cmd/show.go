package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays full details of a single task including its markdown description.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Bool("raw", false, "print the description without markdown rendering")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	cats, err := a.repo.Categories(ctx)
	if err != nil {
		return err
	}
	names := output.CategoryNames(cats)

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	if format == output.FormatCompact {
		output.TaskDetailCompact(os.Stdout, &t, names)
		return nil
	}

	raw, _ := cmd.Flags().GetBool("raw")
	if !raw && !flagNoColor && t.Description != "" {
		// Render the description as markdown; the rest of the detail
		// block stays plain.
		rendered, err := renderMarkdown(t.Description)
		if err == nil {
			t.Description = rendered
		}
	}

	output.TaskDetail(os.Stdout, &t, names)
	return nil
}

func renderMarkdown(src string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80), //nolint:mnd // detail view wrap width
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
