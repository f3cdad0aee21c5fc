// Package board provides board-level operations on task collections.
package board

import (
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Statuses   []task.Status
	CategoryID int64  // 0 = no filter
	Search     string // case-insensitive substring match across title and description
	Overdue    bool   // only tasks past their due date and not done
	DueWithin  int    // only tasks due within N days (0 = no filter)
	Now        time.Time
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []task.Task, opts FilterOptions) []task.Task {
	var result []task.Task
	for i := range tasks {
		if matchesFilter(&tasks[i], opts) {
			result = append(result, tasks[i])
		}
	}
	return result
}

func matchesFilter(t *task.Task, opts FilterOptions) bool {
	if len(opts.Statuses) > 0 && !containsStatus(opts.Statuses, t.Status) {
		return false
	}
	if opts.CategoryID != 0 && t.CategoryID != opts.CategoryID {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	if opts.Overdue && !t.Overdue(opts.Now) {
		return false
	}
	if opts.DueWithin > 0 {
		if t.DueDate == nil {
			return false
		}
		if t.DueDate.DaysUntil(opts.Now) > opts.DueWithin {
			return false
		}
	}
	return true
}

// matchesSearch performs case-insensitive substring matching across
// title and description.
func matchesSearch(t *task.Task, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

func containsStatus(statuses []task.Status, s task.Status) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}
