package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/task"
)

func TestFormDraftUpdate(t *testing.T) {
	f := newForm(task.NewDraft(task.StatusTodo), 80)
	f.inputs[fieldTitle].SetValue("  Plan sprint  ")
	f.inputs[fieldDue].SetValue("2026-04-01")
	f.inputs[fieldEffort].SetValue("2.5")
	f.inputs[fieldImpact].SetValue("8")
	f.inputs[fieldUrgency].SetValue("3")

	apply, err := f.draftUpdate()
	require.NoError(t, err)

	d := task.NewDraft(task.StatusTodo)
	apply(&d)
	assert.Equal(t, "Plan sprint", d.Title)
	require.NotNil(t, d.DueDate)
	assert.Equal(t, "2026-04-01", d.DueDate.String())
	assert.Equal(t, 2.5, d.EffortHours)
	assert.Equal(t, 8, d.ImpactScore)
	assert.Equal(t, 3, d.UrgencyScore)
}

func TestFormDraftUpdateDefaults(t *testing.T) {
	f := newForm(task.NewDraft(task.StatusTodo), 80)
	f.inputs[fieldTitle].SetValue("bare minimum")
	f.inputs[fieldEffort].SetValue("")
	f.inputs[fieldImpact].SetValue("")
	f.inputs[fieldUrgency].SetValue("")

	apply, err := f.draftUpdate()
	require.NoError(t, err)

	var d task.Draft
	apply(&d)
	assert.Nil(t, d.DueDate)
	assert.Equal(t, task.DefaultEffortHours, d.EffortHours)
	assert.Equal(t, task.DefaultImpact, d.ImpactScore)
	assert.Equal(t, task.DefaultUrgency, d.UrgencyScore)
}

func TestFormDraftUpdateRejectsBadInput(t *testing.T) {
	for name, set := range map[string]func(*form){
		"bad date":       func(f *form) { f.inputs[fieldDue].SetValue("tomorrow") },
		"zero effort":    func(f *form) { f.inputs[fieldEffort].SetValue("0") },
		"impact too big": func(f *form) { f.inputs[fieldImpact].SetValue("11") },
		"urgency letter": func(f *form) { f.inputs[fieldUrgency].SetValue("x") },
	} {
		t.Run(name, func(t *testing.T) {
			f := newForm(task.NewDraft(task.StatusTodo), 80)
			f.inputs[fieldTitle].SetValue("ok")
			set(&f)
			_, err := f.draftUpdate()
			assert.Error(t, err)
		})
	}
}

func TestFormPrefillsFromExistingTask(t *testing.T) {
	tk := task.Task{ID: 5, Title: "Existing", EffortHours: 4, ImpactScore: 7,
		UrgencyScore: 2, Status: task.StatusInProgress}
	f := newForm(task.DraftOf(&tk), 80)

	assert.True(t, f.editing)
	assert.Equal(t, task.StatusInProgress, f.anchor)
	assert.Equal(t, "Existing", f.inputs[fieldTitle].Value())
	assert.Equal(t, "4", f.inputs[fieldEffort].Value())
	assert.Contains(t, f.view(), "Edit task")
}
