package board

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/clierr"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

// ListOptions controls how tasks are listed.
type ListOptions struct {
	Filter  FilterOptions
	SortBy  string
	Reverse bool
	Limit   int
}

// List loads all tasks from the store and applies filters and sorting.
func List(ctx context.Context, repo store.TaskRepository, opts ListOptions) ([]task.Task, error) {
	all, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	tasks := Filter(all, opts.Filter)

	sortField := opts.SortBy
	if sortField == "" {
		sortField = fieldScore
	}
	Sort(tasks, sortField, opts.Reverse)

	if opts.Limit > 0 && len(tasks) > opts.Limit {
		tasks = tasks[:opts.Limit]
	}

	return tasks, nil
}

// StatusSummary holds metrics for a single status column.
type StatusSummary struct {
	Status   string  `json:"status"`
	Count    int     `json:"count"`
	Overdue  int     `json:"overdue"`
	TopScore float64 `json:"top_score"`
}

// CategoryCount holds a count for a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Overview is the aggregate board overview.
type Overview struct {
	TotalTasks int             `json:"total_tasks"`
	Statuses   []StatusSummary `json:"statuses"`
	Categories []CategoryCount `json:"categories,omitempty"`
}

// Summary computes a board overview: per-column counts, overdue counts,
// and the highest score waiting in each column.
func Summary(tasks []task.Task, cats []task.Category, now time.Time) Overview {
	statuses := task.Statuses()
	statusMap := make(map[task.Status]*StatusSummary, len(statuses))
	for _, s := range statuses {
		statusMap[s] = &StatusSummary{Status: s.String()}
	}

	catNames := make(map[int64]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}
	catCounts := make(map[int64]int)

	for i := range tasks {
		t := &tasks[i]
		if ss, ok := statusMap[t.Status]; ok {
			ss.Count++
			if t.Overdue(now) {
				ss.Overdue++
			}
			if t.PriorityScore > ss.TopScore {
				ss.TopScore = t.PriorityScore
			}
		}
		catCounts[t.CategoryID]++
	}

	out := Overview{TotalTasks: len(tasks)}
	for _, s := range statuses {
		out.Statuses = append(out.Statuses, *statusMap[s])
	}
	for _, c := range cats {
		out.Categories = append(out.Categories, CategoryCount{
			Category: catNames[c.ID],
			Count:    catCounts[c.ID],
		})
	}
	return out
}

// ParseIDs splits a comma-separated ID string into deduplicated IDs.
func ParseIDs(arg string) ([]int64, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[int64]bool, len(parts))
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, task.ValidateTaskID(p)
		}
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidTaskID, "no valid task IDs provided")
	}
	return ids, nil
}
