package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/controller"
	"github.com/taskdeck/taskdeck/internal/priority"
	"github.com/taskdeck/taskdeck/internal/task"
)

func testBoard(t *testing.T, snap controller.Snapshot) *Board {
	t.Helper()
	ctrl := controller.New(nil, priority.New(priority.DefaultWeights()), zerolog.Nop())
	cfg := config.NewDefault()
	b := NewBoard(cfg, ctrl, []task.Category{
		{ID: 1, Name: "Inbox", Color: "#808080"},
		{ID: 2, Name: "Work", Color: "#0078D4"},
	})
	b.applySnapshot(snap)
	b.width = 120
	b.height = 40
	b.SetNow(func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) })
	return b
}

func snapshotWith(tasks ...task.Task) controller.Snapshot {
	var s controller.Snapshot
	s.All = tasks
	for _, t := range tasks {
		switch t.Status {
		case task.StatusTodo:
			s.Todo = append(s.Todo, t)
		case task.StatusInProgress:
			s.InProgress = append(s.InProgress, t)
		case task.StatusDone:
			s.Done = append(s.Done, t)
		}
	}
	return s
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigation(t *testing.T) {
	b := testBoard(t, snapshotWith(
		task.Task{ID: 1, Title: "a", Status: task.StatusTodo, CategoryID: 1},
		task.Task{ID: 2, Title: "b", Status: task.StatusTodo, CategoryID: 1},
		task.Task{ID: 3, Title: "c", Status: task.StatusInProgress, CategoryID: 2},
	))

	require.NotNil(t, b.selectedTask())
	assert.Equal(t, int64(1), b.selectedTask().ID)

	b.Update(keyMsg("j"))
	assert.Equal(t, int64(2), b.selectedTask().ID)

	// Moving right clamps the row to the shorter column.
	b.Update(keyMsg("l"))
	assert.Equal(t, int64(3), b.selectedTask().ID)

	// Rightmost column is empty; cursor lands on no task.
	b.Update(keyMsg("l"))
	assert.Nil(t, b.selectedTask())

	b.Update(keyMsg("h"))
	b.Update(keyMsg("h"))
	assert.Equal(t, int64(1), b.selectedTask().ID)
}

func TestViewRendersColumns(t *testing.T) {
	b := testBoard(t, snapshotWith(
		task.Task{ID: 1, Title: "Renew passport", Status: task.StatusTodo, PriorityScore: 9.5, CategoryID: 1},
		task.Task{ID: 2, Title: "Ship feature", Status: task.StatusInProgress, PriorityScore: 14.2, CategoryID: 2},
	))

	out := b.View()
	assert.Contains(t, out, "Todo (1)")
	assert.Contains(t, out, "In Progress (1)")
	assert.Contains(t, out, "Done (0)")
	assert.Contains(t, out, "Renew passport")
	assert.Contains(t, out, "Ship feature")
}

func TestListViewCycle(t *testing.T) {
	b := testBoard(t, snapshotWith(
		task.Task{ID: 1, Title: "only one", Status: task.StatusTodo, CategoryID: 1},
	))

	b.Update(keyMsg("v"))
	assert.Equal(t, viewList, b.view)
	assert.Contains(t, b.View(), "only one")

	b.Update(keyMsg("v"))
	assert.Equal(t, viewBoard, b.view)
}

func TestDeleteConfirm(t *testing.T) {
	b := testBoard(t, snapshotWith(
		task.Task{ID: 7, Title: "doomed", Status: task.StatusTodo, CategoryID: 1},
	))

	b.Update(keyMsg("d"))
	assert.Equal(t, viewConfirmDelete, b.view)
	assert.Contains(t, b.View(), "doomed")

	// 'n' backs out without a command.
	_, cmd := b.Update(keyMsg("n"))
	assert.Equal(t, viewBoard, b.view)
	assert.Nil(t, cmd)
}

func TestSnapshotPreservesCursor(t *testing.T) {
	b := testBoard(t, snapshotWith(
		task.Task{ID: 1, Title: "a", Status: task.StatusTodo, CategoryID: 1},
		task.Task{ID: 2, Title: "b", Status: task.StatusTodo, CategoryID: 1},
	))
	b.Update(keyMsg("j"))
	require.Equal(t, 1, b.activeRow)

	// One task removed: the cursor clamps to the remaining row.
	b.Update(SnapshotMsg(snapshotWith(
		task.Task{ID: 1, Title: "a", Status: task.StatusTodo, CategoryID: 1},
	)))
	assert.Equal(t, 0, b.activeRow)
}

func TestWrapTitle(t *testing.T) {
	lines := wrapTitle("one two three four five", 9, 2)
	require.Len(t, lines, 2)
	assert.Equal(t, "one two", lines[0])
	// Remaining words collapse onto the truncated last line.
	assert.Contains(t, lines[1], "three")

	assert.Equal(t, []string{"short"}, wrapTitle("short", 20, 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hello w...", truncate("hello world and more", 10))
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "<1m", humanDuration(30*time.Second))
	assert.Equal(t, "5m", humanDuration(5*time.Minute))
	assert.Equal(t, "3h", humanDuration(3*time.Hour))
	assert.Equal(t, "2d", humanDuration(48*time.Hour))
	assert.Equal(t, "2w", humanDuration(15*24*time.Hour))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "12.4", formatScore(12.4))
	assert.Equal(t, "12", formatScore(12.0))
	assert.Equal(t, "0", formatScore(0))
}
