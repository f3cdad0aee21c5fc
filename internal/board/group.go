package board

import (
	"sort"

	"github.com/taskdeck/taskdeck/internal/task"
)

// GroupedSummary holds tasks grouped by a field.
type GroupedSummary struct {
	Groups []GroupSummary `json:"groups"`
}

// GroupSummary is one group within a grouped view.
type GroupSummary struct {
	Key      string          `json:"key"`
	Statuses []StatusSummary `json:"statuses"`
	Total    int             `json:"total"`
}

// GroupBy groups tasks by the specified field ("category" or "status")
// and returns per-group status counts.
func GroupBy(tasks []task.Task, field string, cats []task.Category) GroupedSummary {
	catNames := make(map[int64]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}

	groups := make(map[string][]task.Task)
	for _, t := range tasks {
		key := groupKey(&t, field, catNames)
		groups[key] = append(groups[key], t)
	}

	keys := sortGroupKeys(groups, field, cats)

	result := GroupedSummary{Groups: make([]GroupSummary, 0, len(keys))}
	for _, key := range keys {
		groupTasks := groups[key]
		result.Groups = append(result.Groups, GroupSummary{
			Key:      key,
			Statuses: groupStatusSummary(groupTasks),
			Total:    len(groupTasks),
		})
	}
	return result
}

func groupKey(t *task.Task, field string, catNames map[int64]string) string {
	switch field {
	case "category":
		if name, ok := catNames[t.CategoryID]; ok {
			return name
		}
		return "(uncategorized)"
	case fieldStatus:
		return t.Status.String()
	default:
		return "(all)"
	}
}

func sortGroupKeys(groups map[string][]task.Task, field string, cats []task.Category) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}

	switch field {
	case fieldStatus:
		order := make(map[string]int, 3)
		for i, s := range task.Statuses() {
			order[s.String()] = i
		}
		sort.SliceStable(keys, func(i, j int) bool {
			return order[keys[i]] < order[keys[j]]
		})
	case "category":
		order := make(map[string]int, len(cats))
		for i, c := range cats {
			order[c.Name] = i
		}
		sort.SliceStable(keys, func(i, j int) bool {
			return order[keys[i]] < order[keys[j]]
		})
	default:
		sort.Strings(keys)
	}
	return keys
}

func groupStatusSummary(tasks []task.Task) []StatusSummary {
	counts := make(map[task.Status]int)
	for _, t := range tasks {
		counts[t.Status]++
	}
	statuses := make([]StatusSummary, 0, 3)
	for _, s := range task.Statuses() {
		statuses = append(statuses, StatusSummary{
			Status: s.String(),
			Count:  counts[s],
		})
	}
	return statuses
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{"category", "status"}
}
