package board

import (
	"sort"

	"github.com/taskdeck/taskdeck/internal/task"
)

const (
	fieldScore  = "score"
	fieldStatus = "status"
)

// Sort sorts tasks by the given field. The default field is "score",
// descending, matching the store's natural order.
func Sort(tasks []task.Task, field string, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		less := compareTasks(&tasks[i], &tasks[j], field)
		if reverse {
			return !less
		}
		return less
	})
}

func compareTasks(a, b *task.Task, field string) bool {
	switch field {
	case "id":
		return a.ID < b.ID
	case fieldStatus:
		return a.Status < b.Status
	case "title":
		return a.Title < b.Title
	case "created":
		return a.CreatedAt.Before(b.CreatedAt)
	case "updated":
		return a.UpdatedAt.Before(b.UpdatedAt)
	case "due":
		return compareDue(a, b)
	default: // score, highest first
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		return a.ID < b.ID
	}
}

func compareDue(a, b *task.Task) bool {
	if a.DueDate == nil && b.DueDate == nil {
		return false
	}
	if a.DueDate == nil {
		return false // nil sorts last
	}
	if b.DueDate == nil {
		return true
	}
	return a.DueDate.Before(b.DueDate.Time)
}

// ValidSortFields returns the accepted --sort field names.
func ValidSortFields() []string {
	return []string{fieldScore, "id", "title", fieldStatus, "created", "updated", "due"}
}
