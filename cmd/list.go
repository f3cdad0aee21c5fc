package cmd

import (
	"context"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/board"
	"github.com/taskdeck/taskdeck/internal/clierr"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering, sorting, and output format control.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringSlice("status", nil, "filter by status (comma-separated)")
	listCmd.Flags().String("category", "", "filter by category name or ID")
	listCmd.Flags().StringP("search", "s", "", "search tasks by title or description (case-insensitive)")
	listCmd.Flags().Bool("overdue", false, "show only overdue tasks")
	listCmd.Flags().Int("due-within", 0, "show only tasks due within N days")
	listCmd.Flags().String("sort", "score", "sort field ("+strings.Join(board.ValidSortFields(), ", ")+")")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().String("group-by", "", "group results by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	statuses, _ := cmd.Flags().GetStringSlice("status")
	category, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")
	overdue, _ := cmd.Flags().GetBool("overdue")
	dueWithin, _ := cmd.Flags().GetInt("due-within")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")
	groupBy, _ := cmd.Flags().GetString("group-by")

	if sortBy != "" && !slices.Contains(board.ValidSortFields(), sortBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --sort field %q; valid: %s",
			sortBy, strings.Join(board.ValidSortFields(), ", "))
	}
	if groupBy != "" && !slices.Contains(board.ValidGroupByFields(), groupBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(board.ValidGroupByFields(), ", "))
	}

	filter := board.FilterOptions{
		Search:    search,
		Overdue:   overdue,
		DueWithin: dueWithin,
		Now:       time.Now(),
	}
	for _, s := range statuses {
		parsed, err := task.ParseStatus(s)
		if err != nil {
			return err
		}
		filter.Statuses = append(filter.Statuses, parsed)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()

	cats, err := a.repo.Categories(ctx)
	if err != nil {
		return err
	}
	if category != "" {
		filter.CategoryID, err = resolveCategory(cats, category)
		if err != nil {
			return err
		}
	}

	tasks, err := board.List(ctx, a.repo, board.ListOptions{
		Filter:  filter,
		SortBy:  sortBy,
		Reverse: reverse,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	if groupBy != "" {
		return outputGroupedList(tasks, groupBy, cats)
	}
	return outputTaskList(tasks, cats)
}

func outputGroupedList(tasks []task.Task, groupBy string, cats []task.Category) error {
	grouped := board.GroupBy(tasks, groupBy, cats)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, grouped)
	}
	output.GroupedTable(os.Stdout, grouped)
	return nil
}

func outputTaskList(tasks []task.Task, cats []task.Category) error {
	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}

	names := output.CategoryNames(cats)
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks, names)
		return nil
	}

	output.TaskTable(os.Stdout, tasks, names)
	return nil
}
