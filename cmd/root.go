// Package cmd implements the taskdeck CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/board"
	"github.com/taskdeck/taskdeck/internal/clierr"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/controller"
	"github.com/taskdeck/taskdeck/internal/logutils"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/priority"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
	"github.com/taskdeck/taskdeck/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON     bool
	flagTable    bool
	flagCompact  bool
	flagConfig   string
	flagDB       string
	flagNoColor  bool
	flagLogLevel string
	flagLogFile  string
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Priority-driven kanban task tracker",
	Long: `taskdeck keeps your tasks on a three-column board (Todo, In Progress,
Done) and orders each column by a computed priority score. Just run
taskdeck to open the interactive board, or use the subcommands for
scripting.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to task database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "log file path (default in data dir)")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError. Exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("TASKDECK_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error: wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// app bundles everything a command needs: config, the open store, and
// a controller wired to it. Close must be called when done.
type app struct {
	cfg  *config.Config
	db   *sqlite.DB
	repo *sqlite.TaskStore
	ctrl *controller.Controller
	log  zerolog.Logger

	closers []func()
}

// openApp loads the config, opens the database, and builds a controller.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logFile := flagLogFile
	if logFile == "" {
		logFile = filepath.Join(config.DefaultDataDir(), config.LogFileName)
	}
	log, closeLog, err := logutils.New(flagLogLevel, logFile)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		closeLog()
		return nil, clierr.Newf(clierr.StorageError, "opening database: %v", err)
	}

	repo := sqlite.NewTaskStore(db)
	engine := priority.New(cfg.Priority)

	a := &app{
		cfg:  cfg,
		db:   db,
		repo: repo,
		ctrl: controller.New(repo, engine, log),
		log:  log,
	}
	a.closers = append(a.closers, func() { _ = db.Close() }, closeLog)
	return a, nil
}

// Close releases the database and log file.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// loadConfig loads the config file, applying the --db override.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.Database.Path = flagDB
	}
	return cfg, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// parseIDs splits a comma-separated ID string into deduplicated IDs.
func parseIDs(arg string) ([]int64, error) {
	return board.ParseIDs(arg)
}

// notFoundErr converts store.ErrNotFound into a coded CLI error.
func notFoundErr(id int64, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return clierr.Newf(clierr.TaskNotFound, "task #%d not found", id).
			WithDetails(map[string]any{"id": id})
	}
	return err
}

// resolveCategory maps a --category value (ID or name, case-insensitive)
// onto a seeded category.
func resolveCategory(cats []task.Category, value string) (int64, error) {
	for _, c := range cats {
		if strings.EqualFold(c.Name, value) {
			return c.ID, nil
		}
	}
	for _, c := range cats {
		if value == fmt.Sprintf("%d", c.ID) {
			return c.ID, nil
		}
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return 0, clierr.Newf(clierr.InvalidCategory, "unknown category %q; valid: %s",
		value, strings.Join(names, ", "))
}

// runBatch executes fn for each ID and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []int64, fn func(int64) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		err := fn(id)
		if err != nil {
			anyFailed = true
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: cliErr.Message, Code: cliErr.Code})
			} else {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: err.Error()})
			}
		} else {
			results = append(results, output.BatchResult{ID: id, OK: true})
		}
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: task #%d: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
