package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/date"
	"github.com/taskdeck/taskdeck/internal/task"
)

func sampleTasks() []task.Task {
	overdue := date.New(2026, time.February, 1)
	soon := date.New(2026, time.March, 16)
	return []task.Task{
		{ID: 1, Title: "Renew passport", Status: task.StatusTodo, PriorityScore: 9.5, CategoryID: 3, DueDate: &overdue},
		{ID: 2, Title: "Write design doc", Description: "storage layer", Status: task.StatusInProgress, PriorityScore: 14.2, CategoryID: 2},
		{ID: 3, Title: "Water plants", Status: task.StatusDone, PriorityScore: 2.1, CategoryID: 3},
		{ID: 4, Title: "Review storage PR", Status: task.StatusTodo, PriorityScore: 11.8, CategoryID: 2, DueDate: &soon},
	}
}

func testNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestFilter(t *testing.T) {
	tasks := sampleTasks()

	t.Run("by status", func(t *testing.T) {
		got := Filter(tasks, FilterOptions{Statuses: []task.Status{task.StatusTodo}})
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(4), got[1].ID)
	})

	t.Run("by category", func(t *testing.T) {
		got := Filter(tasks, FilterOptions{CategoryID: 2})
		assert.Len(t, got, 2)
	})

	t.Run("search matches description", func(t *testing.T) {
		got := Filter(tasks, FilterOptions{Search: "STORAGE"})
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("overdue excludes done", func(t *testing.T) {
		got := Filter(tasks, FilterOptions{Overdue: true, Now: testNow()})
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("due within", func(t *testing.T) {
		got := Filter(tasks, FilterOptions{DueWithin: 3, Now: testNow()})
		assert.Len(t, got, 2) // the overdue task and the one due tomorrow
	})

	t.Run("no criteria returns all", func(t *testing.T) {
		assert.Len(t, Filter(tasks, FilterOptions{}), 4)
	})
}

func TestSort(t *testing.T) {
	t.Run("default score descending", func(t *testing.T) {
		tasks := sampleTasks()
		Sort(tasks, "score", false)
		assert.Equal(t, int64(2), tasks[0].ID)
		assert.Equal(t, int64(4), tasks[1].ID)
		assert.Equal(t, int64(3), tasks[3].ID)
	})

	t.Run("due date with nils last", func(t *testing.T) {
		tasks := sampleTasks()
		Sort(tasks, "due", false)
		assert.Equal(t, int64(1), tasks[0].ID)
		assert.Equal(t, int64(4), tasks[1].ID)
		assert.Nil(t, tasks[2].DueDate)
	})

	t.Run("reverse", func(t *testing.T) {
		tasks := sampleTasks()
		Sort(tasks, "id", true)
		assert.Equal(t, int64(4), tasks[0].ID)
	})
}

func TestSummary(t *testing.T) {
	cats := []task.Category{
		{ID: 1, Name: "Inbox"}, {ID: 2, Name: "Work"}, {ID: 3, Name: "Personal"},
	}
	ov := Summary(sampleTasks(), cats, testNow())

	assert.Equal(t, 4, ov.TotalTasks)
	require.Len(t, ov.Statuses, 3)

	todo := ov.Statuses[0]
	assert.Equal(t, "todo", todo.Status)
	assert.Equal(t, 2, todo.Count)
	assert.Equal(t, 1, todo.Overdue)
	assert.Equal(t, 11.8, todo.TopScore)

	require.Len(t, ov.Categories, 3)
	assert.Equal(t, CategoryCount{Category: "Inbox", Count: 0}, ov.Categories[0])
	assert.Equal(t, CategoryCount{Category: "Work", Count: 2}, ov.Categories[1])
}

func TestGroupBy(t *testing.T) {
	cats := []task.Category{
		{ID: 1, Name: "Inbox"}, {ID: 2, Name: "Work"}, {ID: 3, Name: "Personal"},
	}

	g := GroupBy(sampleTasks(), "category", cats)
	require.Len(t, g.Groups, 2)
	assert.Equal(t, "Work", g.Groups[0].Key)
	assert.Equal(t, 2, g.Groups[0].Total)
	assert.Equal(t, "Personal", g.Groups[1].Key)

	byStatus := GroupBy(sampleTasks(), "status", cats)
	require.Len(t, byStatus.Groups, 3)
	assert.Equal(t, "todo", byStatus.Groups[0].Key)
}

func TestParseIDs(t *testing.T) {
	t.Run("deduplicates and trims", func(t *testing.T) {
		ids, err := ParseIDs("3, 1,3,,2")
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1, 2}, ids)
	})

	t.Run("rejects non-numeric", func(t *testing.T) {
		_, err := ParseIDs("1,abc")
		assert.Error(t, err)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseIDs(" , ")
		assert.Error(t, err)
	})
}
