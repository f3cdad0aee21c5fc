// Package task defines the task and category domain types.
package task

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/date"
)

// Default attribute values for new tasks.
const (
	DefaultImpact      = 5
	DefaultUrgency     = 5
	DefaultEffortHours = 1.0

	// InboxCategoryID is the seeded category new tasks default to.
	InboxCategoryID = 1
)

// Task is a single kanban card. ID is zero until the task is first
// persisted; the store assigns it and it never changes afterwards.
type Task struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	DueDate       *date.Date `json:"due_date,omitempty"`
	EffortHours   float64    `json:"effort_hours"`
	ImpactScore   int        `json:"impact_score"`
	UrgencyScore  int        `json:"urgency_score"`
	PriorityScore float64    `json:"priority_score"`
	Status        Status     `json:"status"`
	CategoryID    int64      `json:"category_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Saved reports whether the task has been persisted.
func (t *Task) Saved() bool {
	return t.ID != 0
}

// Overdue reports whether the task has a due date in the past and is not done.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != StatusDone && t.DueDate.DaysUntil(now) < 0
}

// Category is a fixed grouping for tasks. The store seeds Inbox, Work,
// and Personal; there is no UI for managing them.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

// Draft is the single editing buffer for a task being created or edited.
// ID is nil for a new task. Anchor is the board column the edit form was
// opened in; on save the task's status is forced to it regardless of any
// stale status the buffer picked up.
type Draft struct {
	ID           *int64
	Title        string
	Description  string
	DueDate      *date.Date
	EffortHours  float64
	ImpactScore  int
	UrgencyScore int
	CategoryID   int64
	Anchor       Status
}

// NewDraft returns a fresh draft anchored to the given column with the
// default attribute values.
func NewDraft(anchor Status) Draft {
	return Draft{
		EffortHours:  DefaultEffortHours,
		ImpactScore:  DefaultImpact,
		UrgencyScore: DefaultUrgency,
		CategoryID:   InboxCategoryID,
		Anchor:       anchor,
	}
}

// DraftOf returns a draft pre-populated from an existing task, anchored
// to the task's current column.
func DraftOf(t *Task) Draft {
	id := t.ID
	return Draft{
		ID:           &id,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      t.DueDate,
		EffortHours:  t.EffortHours,
		ImpactScore:  t.ImpactScore,
		UrgencyScore: t.UrgencyScore,
		CategoryID:   t.CategoryID,
		Anchor:       t.Status,
	}
}

// Apply copies the draft's mutable fields onto a task. Status is set to
// the anchor column; identity, score, and timestamps are left alone.
func (d Draft) Apply(t *Task) {
	t.Title = d.Title
	t.Description = d.Description
	t.DueDate = d.DueDate
	t.EffortHours = d.EffortHours
	t.ImpactScore = d.ImpactScore
	t.UrgencyScore = d.UrgencyScore
	if d.CategoryID != 0 {
		t.CategoryID = d.CategoryID
	}
	t.Status = d.Anchor
}

// Task builds a new unsaved task from the draft.
func (d Draft) Task() Task {
	var t Task
	d.Apply(&t)
	if t.CategoryID == 0 {
		t.CategoryID = InboxCategoryID
	}
	return t
}
