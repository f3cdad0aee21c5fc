package task

import (
	"encoding/json"
	"strings"

	"github.com/taskdeck/taskdeck/internal/clierr"
)

// Status identifies the board column a task lives in.
type Status int

// Board columns, in workflow order.
const (
	StatusTodo Status = iota
	StatusInProgress
	StatusDone
)

// Statuses returns all statuses in workflow order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

var statusNames = map[Status]string{
	StatusTodo:       "todo",
	StatusInProgress: "in-progress",
	StatusDone:       "done",
}

var statusTitles = map[Status]string{
	StatusTodo:       "Todo",
	StatusInProgress: "In Progress",
	StatusDone:       "Done",
}

// String returns the canonical lowercase name used on the CLI and in JSON.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Title returns the display name used for board column headers.
func (s Status) Title() string {
	if title, ok := statusTitles[s]; ok {
		return title
	}
	return "Unknown"
}

// Valid reports whether s is one of the three board statuses.
func (s Status) Valid() bool {
	return s >= StatusTodo && s <= StatusDone
}

// Next returns the following status in the workflow.
// Returns false when s is already at the last column.
func (s Status) Next() (Status, bool) {
	if s >= StatusDone {
		return s, false
	}
	return s + 1, true
}

// Prev returns the preceding status in the workflow.
// Returns false when s is already at the first column.
func (s Status) Prev() (Status, bool) {
	if s <= StatusTodo {
		return s, false
	}
	return s - 1, true
}

// ParseStatus converts a CLI status name into a Status.
// Accepts "todo", "in-progress" (also "inprogress", "in_progress"), "done".
func ParseStatus(name string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "todo":
		return StatusTodo, nil
	case "in-progress", "inprogress", "in_progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	default:
		return StatusTodo, clierr.Newf(clierr.InvalidStatus, "invalid status %q", name).
			WithDetails(map[string]any{
				"status":  name,
				"allowed": []string{"todo", "in-progress", "done"},
			})
	}
}

// MarshalJSON implements json.Marshaler, encoding the status by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
