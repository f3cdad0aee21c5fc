package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/clierr"
	"github.com/taskdeck/taskdeck/internal/date"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft(StatusInProgress)

	assert.Nil(t, d.ID)
	assert.Equal(t, DefaultEffortHours, d.EffortHours)
	assert.Equal(t, DefaultImpact, d.ImpactScore)
	assert.Equal(t, DefaultUrgency, d.UrgencyScore)
	assert.Equal(t, int64(InboxCategoryID), d.CategoryID)
	assert.Equal(t, StatusInProgress, d.Anchor)
}

func TestDraftOf(t *testing.T) {
	due := date.New(2026, time.April, 1)
	tk := &Task{
		ID:           7,
		Title:        "Write report",
		Description:  "quarterly numbers",
		DueDate:      &due,
		EffortHours:  2.5,
		ImpactScore:  8,
		UrgencyScore: 3,
		Status:       StatusInProgress,
		CategoryID:   2,
	}

	d := DraftOf(tk)

	require.NotNil(t, d.ID)
	assert.Equal(t, int64(7), *d.ID)
	assert.Equal(t, tk.Title, d.Title)
	assert.Equal(t, tk.Description, d.Description)
	assert.Equal(t, tk.DueDate, d.DueDate)
	assert.Equal(t, tk.EffortHours, d.EffortHours)
	assert.Equal(t, tk.CategoryID, d.CategoryID)
	assert.Equal(t, StatusInProgress, d.Anchor)
}

func TestDraftApplyForcesAnchor(t *testing.T) {
	tk := &Task{
		ID:     7,
		Title:  "Write report",
		Status: StatusDone, // moved underneath the open form
	}
	d := DraftOf(tk)
	d.Anchor = StatusInProgress
	d.Title = "Write the report"

	d.Apply(tk)

	assert.Equal(t, "Write the report", tk.Title)
	assert.Equal(t, StatusInProgress, tk.Status, "save lands in the column the form was opened in")
	assert.Equal(t, int64(7), tk.ID)
}

func TestDraftApplyKeepsCategoryWhenUnset(t *testing.T) {
	tk := &Task{ID: 3, Title: "x", CategoryID: 2}
	d := Draft{Title: "x", Anchor: StatusTodo}

	d.Apply(tk)

	assert.Equal(t, int64(2), tk.CategoryID)
}

func TestDraftTask(t *testing.T) {
	d := NewDraft(StatusTodo)
	d.Title = "New thing"

	tk := d.Task()

	assert.False(t, tk.Saved())
	assert.Equal(t, "New thing", tk.Title)
	assert.Equal(t, StatusTodo, tk.Status)
	assert.Equal(t, int64(InboxCategoryID), tk.CategoryID)
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	past := date.New(2026, time.March, 10)
	today := date.New(2026, time.March, 15)
	future := date.New(2026, time.March, 20)

	tests := map[string]struct {
		task Task
		want bool
	}{
		"no due date":  {Task{Status: StatusTodo}, false},
		"due in past":  {Task{Status: StatusTodo, DueDate: &past}, true},
		"due today":    {Task{Status: StatusTodo, DueDate: &today}, false},
		"due later":    {Task{Status: StatusTodo, DueDate: &future}, false},
		"done is done": {Task{Status: StatusDone, DueDate: &past}, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.task.Overdue(now))
		})
	}
}

func TestValidateTitle(t *testing.T) {
	tk := &Task{Title: "   "}
	err := tk.Validate()
	require.Error(t, err)

	var cerr *clierr.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, clierr.InvalidInput, cerr.Code)

	tk.Title = "ok"
	assert.NoError(t, tk.Validate())
}

func TestDraftValidate(t *testing.T) {
	d := NewDraft(StatusTodo)
	assert.Error(t, d.Validate())

	d.Title = "has a title"
	assert.NoError(t, d.Validate())
}

func TestValidateBoundaryError(t *testing.T) {
	err := ValidateBoundaryError(4, StatusDone, "last")
	assert.Equal(t, clierr.BoundaryError, err.Code)
	assert.Contains(t, err.Message, "#4")
	assert.Contains(t, err.Message, "done")
}
