package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck/internal/date"
	"github.com/taskdeck/taskdeck/internal/task"
)

func TestDetect(t *testing.T) {
	t.Setenv("TASKDECK_OUTPUT", "")

	assert.Equal(t, FormatJSON, Detect(true, false, false))
	assert.Equal(t, FormatTable, Detect(false, true, false))
	assert.Equal(t, FormatCompact, Detect(false, false, true))
	assert.Equal(t, FormatJSON, Detect(true, true, true), "json wins over other flags")
	assert.Equal(t, FormatTable, Detect(false, false, false))
}

func TestDetectEnv(t *testing.T) {
	tests := map[string]Format{
		"json":    FormatJSON,
		"compact": FormatCompact,
		"oneline": FormatCompact,
		"table":   FormatTable,
		"bogus":   FormatTable,
	}
	for env, want := range tests {
		t.Run(env, func(t *testing.T) {
			t.Setenv("TASKDECK_OUTPUT", env)
			assert.Equal(t, want, Detect(false, false, false))
		})
	}

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv("TASKDECK_OUTPUT", "json")
		assert.Equal(t, FormatCompact, Detect(false, false, true))
	})
}

func TestCategoryNames(t *testing.T) {
	names := CategoryNames([]task.Category{
		{ID: 1, Name: "Inbox"},
		{ID: 2, Name: "Work"},
	})
	assert.Equal(t, map[int64]string{1: "Inbox", 2: "Work"}, names)
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{
		0:      "0",
		50:     "50",
		28.87:  "28.87",
		75.5:   "75.5",
		158.11: "158.11",
	}
	for input, want := range tests {
		assert.Equal(t, want, formatScore(input))
	}
}

func TestTaskCompactLine(t *testing.T) {
	due := date.New(2026, time.April, 1)
	tasks := []task.Task{
		{
			ID:            12,
			Title:         "Ship release",
			PriorityScore: 75.5,
			Status:        task.StatusInProgress,
			CategoryID:    2,
			DueDate:       &due,
		},
		{
			ID:            3,
			Title:         "Water plants",
			PriorityScore: 10,
			Status:        task.StatusTodo,
		},
	}
	catNames := map[int64]string{2: "Work"}

	var buf bytes.Buffer
	TaskCompact(&buf, tasks, catNames)

	lines := buf.String()
	assert.Contains(t, lines, "#12 [in-progress/75.5] Ship release (Work) due:2026-04-01")
	assert.Contains(t, lines, "#3 [todo/10] Water plants")
}

func TestTaskDetailCompact(t *testing.T) {
	created := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	tk := &task.Task{
		ID:            5,
		Title:         "Review PR",
		Description:   "line one\nline two",
		EffortHours:   1.5,
		ImpactScore:   7,
		UrgencyScore:  4,
		PriorityScore: 47.51,
		Status:        task.StatusTodo,
		CreatedAt:     created,
		UpdatedAt:     created,
	}

	var buf bytes.Buffer
	TaskDetailCompact(&buf, tk, nil)

	out := buf.String()
	assert.Contains(t, out, "effort:1.5h impact:7 urgency:4")
	assert.Contains(t, out, "created:2026-03-01")
	assert.Contains(t, out, "  line one")
	assert.Contains(t, out, "  line two")
}
