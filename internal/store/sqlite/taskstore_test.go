package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/date"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

func newTestStore(t *testing.T) *TaskStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTaskStore(db)
}

func TestTaskStoreAdd(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s.SetNow(func() time.Time { return fixed })

	tk := task.Task{
		Title:         "Write quarterly report",
		Description:   "Numbers from finance first",
		EffortHours:   3,
		ImpactScore:   8,
		UrgencyScore:  6,
		PriorityScore: 12.4,
		Status:        task.StatusTodo,
	}
	require.NoError(t, s.Add(ctx, &tk))

	assert.NotZero(t, tk.ID)
	assert.Equal(t, fixed, tk.CreatedAt)
	assert.Equal(t, fixed, tk.UpdatedAt)
	assert.Equal(t, int64(task.InboxCategoryID), tk.CategoryID)

	got, err := s.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write quarterly report", got.Title)
	assert.Equal(t, 12.4, got.PriorityScore)
	assert.True(t, got.CreatedAt.Equal(fixed))
	assert.Nil(t, got.DueDate)
}

func TestTaskStoreDueDateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	due := date.New(2026, time.April, 1)
	tk := task.Task{Title: "File taxes", DueDate: &due, EffortHours: 2}
	require.NoError(t, s.Add(ctx, &tk))

	got, err := s.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2026-04-01", got.DueDate.String())
}

func TestTaskStoreGetAllOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, tc := range []struct {
		title string
		score float64
	}{
		{"low", 1.5},
		{"high", 20},
		{"mid", 7.25},
	} {
		tk := task.Task{Title: tc.title, PriorityScore: tc.score, EffortHours: 1}
		require.NoError(t, s.Add(ctx, &tk))
	}

	tasks, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "high", tasks[0].Title)
	assert.Equal(t, "mid", tasks[1].Title)
	assert.Equal(t, "low", tasks[2].Title)
}

func TestTaskStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return created })

	tk := task.Task{Title: "Draft", EffortHours: 1, Status: task.StatusTodo}
	require.NoError(t, s.Add(ctx, &tk))

	updated := created.Add(48 * time.Hour)
	s.SetNow(func() time.Time { return updated })

	tk.Title = "Draft v2"
	tk.Status = task.StatusInProgress
	tk.PriorityScore = 9.9
	require.NoError(t, s.Update(ctx, &tk))
	assert.Equal(t, updated, tk.UpdatedAt)

	got, err := s.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", got.Title)
	assert.Equal(t, task.StatusInProgress, got.Status)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(updated))
}

func TestTaskStoreUpdateMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tk := task.Task{ID: 12345, Title: "Ghost", EffortHours: 1}
	err := s.Update(ctx, &tk)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// An update must never create a row.
	tasks, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tk := task.Task{Title: "Short-lived", EffortHours: 1}
	require.NoError(t, s.Add(ctx, &tk))
	require.NoError(t, s.Delete(ctx, tk.ID))

	_, err := s.GetByID(ctx, tk.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(ctx, tk.ID))
}

func TestTaskStoreGetByIDMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetByID(context.Background(), 42)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestTaskStoreCategories(t *testing.T) {
	s := newTestStore(t)

	cats, err := s.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "Inbox", cats[0].Name)
	assert.Equal(t, "Work", cats[1].Name)
	assert.Equal(t, "Personal", cats[2].Name)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.db")
	db, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
