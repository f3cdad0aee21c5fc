package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/clierr"
	"github.com/taskdeck/taskdeck/internal/controller"
	"github.com/taskdeck/taskdeck/internal/filelock"
	"github.com/taskdeck/taskdeck/internal/tui"
	"github.com/taskdeck/taskdeck/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()

	// One interactive instance per database. SQLite serializes the
	// writes either way, but two boards editing the same draft buffer
	// is only confusing.
	unlock, err := filelock.TryLock(a.cfg.Database.Path + ".lock")
	if err != nil {
		if errors.Is(err, filelock.ErrLocked) {
			return clierr.New(clierr.Busy,
				"another taskdeck board is already open for this database")
		}
		return fmt.Errorf("acquiring instance lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	cats, err := a.repo.Categories(ctx)
	if err != nil {
		return err
	}

	model := tui.NewBoard(a.cfg, a.ctrl, cats)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Forward controller snapshots into the event loop.
	a.ctrl.OnChange(func(snap controller.Snapshot) {
		p.Send(tui.SnapshotMsg(snap))
	})

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go startTUIWatcher(watchCtx, a, p)

	_, err = p.Run()
	return err
}

// startTUIWatcher refreshes the board when another process writes the
// database.
func startTUIWatcher(ctx context.Context, a *app, p *tea.Program) {
	w, err := watcher.New(a.cfg.Database.Path, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("file watcher unavailable; live refresh disabled")
		return // non-fatal: the board works without live refresh
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		a.log.Warn().Err(err).Msg("file watcher error")
	})
}
