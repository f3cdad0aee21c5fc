package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/board"
	"github.com/taskdeck/taskdeck/internal/output"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"summary"},
	Short:   "Show a board overview",
	Long: `Displays per-column counts, overdue counts, the top waiting score,
and a per-category breakdown.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()

	tasks, err := a.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	cats, err := a.repo.Categories(ctx)
	if err != nil {
		return err
	}

	overview := board.Summary(tasks, cats, time.Now())

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, overview)
	}
	if format == output.FormatCompact {
		output.OverviewCompact(os.Stdout, overview)
		return nil
	}

	output.OverviewTable(os.Stdout, overview)
	return nil
}
