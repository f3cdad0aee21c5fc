package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/output"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	Long:  `Lists the fixed task categories. Categories are seeded with the database.`,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cats, err := a.repo.Categories(context.Background())
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, cats)
	}

	output.CategoryTable(os.Stdout, cats)
	return nil
}
