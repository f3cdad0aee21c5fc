// Package tui implements the interactive three-column board.
package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/controller"
	"github.com/taskdeck/taskdeck/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewList
	viewForm
	viewConfirmDelete
)

// Key and layout constants.
const (
	keyEsc = "esc"

	boardChrome  = 2 // blank line + status bar below the column area
	errorChrome  = 1 // extra line when error toast is displayed
	tickInterval = 30 * time.Second // how often age labels refresh
)

// Board is the top-level bubbletea model. All task state lives in the
// controller; the model only holds a snapshot plus cursor and scroll
// positions.
type Board struct {
	cfg       *config.Config
	ctrl      *controller.Controller
	cats      []task.Category
	snap      controller.Snapshot
	columns   []column
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	err       error
	form      form
	now       func() time.Time // clock for age display; defaults to time.Now

	// Delete confirmation.
	deleteID    int64
	deleteTitle string
}

// column groups tasks belonging to a single status.
type column struct {
	status    task.Status
	tasks     []task.Task
	scrollOff int // first visible row index
}

// NewBoard creates a new Board model. The controller must already be
// wired to forward snapshot changes as SnapshotMsg values.
func NewBoard(cfg *config.Config, ctrl *controller.Controller, cats []task.Category) *Board {
	b := &Board{cfg: cfg, ctrl: ctrl, cats: cats, now: time.Now}
	b.applySnapshot(ctrl.Snapshot())
	return b
}

// SetNow overrides the clock used for age display (for testing).
func (b *Board) SetNow(fn func() time.Time) {
	b.now = fn
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return tea.Batch(b.opCmd(func(ctx context.Context) error {
		return b.ctrl.Load(ctx)
	}), tickCmd())
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.form.setWidth(msg.Width)
		return b, nil
	case SnapshotMsg:
		b.applySnapshot(controller.Snapshot(msg))
		return b, nil
	case ReloadMsg:
		return b, b.opCmd(func(ctx context.Context) error {
			return b.ctrl.Load(ctx)
		})
	case opDoneMsg:
		if msg.err != nil && msg.err != controller.ErrBusy {
			b.err = msg.err
		}
		return b, nil
	case TickMsg:
		return b, tickCmd()
	}

	if b.view == viewForm {
		var cmd tea.Cmd
		b.form, cmd = b.form.update(msg)
		return b, cmd
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewForm:
		return b.form.view()
	case viewConfirmDelete:
		return b.viewDeleteConfirm()
	case viewList:
		return b.viewList()
	default:
		return b.viewBoard()
	}
}

// applySnapshot rebuilds the columns from a controller snapshot,
// preserving cursor and scroll positions where possible.
func (b *Board) applySnapshot(snap controller.Snapshot) {
	b.snap = snap

	scroll := make(map[task.Status]int, len(b.columns))
	for _, c := range b.columns {
		scroll[c.status] = c.scrollOff
	}

	b.columns = []column{
		{status: task.StatusTodo, tasks: snap.Todo, scrollOff: scroll[task.StatusTodo]},
		{status: task.StatusInProgress, tasks: snap.InProgress, scrollOff: scroll[task.StatusInProgress]},
		{status: task.StatusDone, tasks: snap.Done, scrollOff: scroll[task.StatusDone]},
	}

	if snap.Draft == nil && b.view == viewForm {
		b.view = viewBoard
	}

	b.clampRow()
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.view {
	case viewBoard, viewList:
		return b.handleBoardKey(msg)
	case viewForm:
		return b.handleFormKey(msg)
	case viewConfirmDelete:
		return b.handleDeleteKey(msg)
	}

	return b, nil
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return b, tea.Quit
	case "h", "left":
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case "l", "right":
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case "j", "down":
		col := b.currentColumn()
		if col != nil && b.activeRow < len(col.tasks)-1 {
			b.activeRow++
			b.ensureVisible()
		}
	case "k", "up":
		if b.activeRow > 0 {
			b.activeRow--
			b.ensureVisible()
		}
	case ">", "L":
		return b.moveSelected(b.ctrl.Advance)
	case "<", "H":
		return b.moveSelected(b.ctrl.Retreat)
	case "1", "2", "3":
		n, _ := strconv.Atoi(msg.String())
		target := task.Statuses()[n-1]
		if t := b.selectedTask(); t != nil {
			id := t.ID
			return b, b.opCmd(func(ctx context.Context) error {
				_, err := b.ctrl.MoveTo(ctx, id, target)
				return err
			})
		}
	case "n":
		return b.startCreate()
	case "e", "enter":
		return b.startEdit()
	case "d":
		b.handleDeleteStart()
	case "v":
		if b.view == viewBoard {
			b.view = viewList
		} else {
			b.view = viewBoard
		}
	case "r":
		return b, b.opCmd(func(ctx context.Context) error {
			return b.ctrl.Load(ctx)
		})
	}
	return b, nil
}

func (b *Board) moveSelected(op func(context.Context, int64) (bool, error)) (tea.Model, tea.Cmd) {
	t := b.selectedTask()
	if t == nil {
		return b, nil
	}
	id := t.ID
	return b, b.opCmd(func(ctx context.Context) error {
		_, err := op(ctx, id)
		return err
	})
}

func (b *Board) startCreate() (tea.Model, tea.Cmd) {
	col := b.currentColumn()
	anchor := task.StatusTodo
	if col != nil {
		anchor = col.status
	}
	b.ctrl.StartCreate(anchor)
	b.openForm()
	return b, b.form.focusCmd()
}

func (b *Board) startEdit() (tea.Model, tea.Cmd) {
	t := b.selectedTask()
	if t == nil {
		return b, nil
	}
	b.ctrl.StartEdit(*t)
	b.openForm()
	return b, b.form.focusCmd()
}

func (b *Board) openForm() {
	if d := b.ctrl.Snapshot().Draft; d != nil {
		b.form = newForm(*d, b.width)
		b.view = viewForm
	}
}

func (b *Board) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		b.ctrl.CancelEdit()
		b.view = viewBoard
		return b, nil
	case "enter":
		apply, err := b.form.draftUpdate()
		if err != nil {
			b.form.err = err
			return b, nil
		}
		b.ctrl.UpdateDraft(apply)
		return b, b.opCmd(func(ctx context.Context) error {
			err := b.ctrl.Save(ctx)
			if err != nil && err != controller.ErrBusy {
				// Leave the form open; the controller kept the draft.
				return err
			}
			return nil
		})
	}

	var cmd tea.Cmd
	b.form, cmd = b.form.update(msg)
	return b, cmd
}

func (b *Board) handleDeleteStart() {
	if t := b.selectedTask(); t != nil {
		b.deleteID = t.ID
		b.deleteTitle = t.Title
		b.view = viewConfirmDelete
	}
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		b.view = viewBoard
		id := b.deleteID
		return b, b.opCmd(func(ctx context.Context) error {
			return b.ctrl.Delete(ctx, id)
		})
	case "n", "N", keyEsc, "q":
		b.view = viewBoard
	}
	return b, nil
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) selectedTask() *task.Task {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		return nil
	}
	if b.activeRow >= 0 && b.activeRow < len(col.tasks) {
		return &col.tasks[b.activeRow]
	}
	return nil
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.tasks) {
		b.activeRow = len(col.tasks) - 1
	}
	b.ensureVisible()
}

// chromeHeight returns the number of lines consumed by non-card elements below
// the column area: blank line + status bar (+ error line when an error is shown).
func (b *Board) chromeHeight() int {
	h := boardChrome
	if b.err != nil {
		h += errorChrome
	}
	return h
}

// visibleCardsForColumn returns the number of cards that fit in the column,
// accounting for scroll indicator lines ("↑ N more" / "↓ N more") that
// consume vertical space.
func (b *Board) visibleCardsForColumn(col *column, width int) int {
	budget := b.height - b.chromeHeight()
	if budget < 1 {
		return 1
	}

	// Always need 1 line for column header.
	avail := budget - 1

	// Check if up indicator is needed.
	if col.scrollOff > 0 {
		avail--
	}

	// Compute cards assuming no down indicator.
	n := b.fitCardsInHeight(col, avail, width)

	// Check if down indicator is needed.
	if col.scrollOff+n < len(col.tasks) {
		// Re-compute with 1 fewer line for the down indicator.
		n = b.fitCardsInHeight(col, avail-1, width)
		if n < 1 {
			n = 1
		}
	}

	return n
}

// ensureVisible adjusts the active column's scroll offset so the
// selected row is within the visible window.
func (b *Board) ensureVisible() {
	col := b.currentColumn()
	if col == nil {
		return
	}
	w := b.columnWidth()

	for range len(col.tasks) + 1 {
		maxVis := b.visibleCardsForColumn(col, w)

		switch {
		case b.activeRow >= col.scrollOff+maxVis:
			// Scroll down: selected row is below visible window.
			col.scrollOff = b.activeRow - maxVis + 1
		case b.activeRow < col.scrollOff:
			// Scroll up: selected row is above visible window.
			col.scrollOff = b.activeRow
		default:
			return // selected row is visible
		}
	}
}

func (b *Board) fitCardsInHeight(col *column, avail, width int) int {
	if len(col.tasks) == 0 {
		return 1
	}
	if avail < 1 {
		return 1
	}

	used := 0
	count := 0
	for i := col.scrollOff; i < len(col.tasks); i++ {
		cardLines := b.cardHeight(&col.tasks[i], width)
		if count > 0 && used+cardLines > avail {
			break
		}
		count++
		used += cardLines
		if used >= avail {
			break
		}
	}

	if count < 1 {
		return 1
	}
	return count
}

// --- Messages ---

// SnapshotMsg carries a fresh controller snapshot into the model. The
// program wiring forwards controller change callbacks as this message.
type SnapshotMsg controller.Snapshot

// ReloadMsg is sent by the file watcher when another process touched
// the database.
type ReloadMsg struct{}

// TickMsg is sent periodically to refresh age labels.
type TickMsg struct{}

type opDoneMsg struct{ err error }

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

// opCmd runs a controller operation off the UI goroutine. The resulting
// snapshot arrives separately via SnapshotMsg.
func (b *Board) opCmd(op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: op(context.Background())}
	}
}
