package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taskdeck/taskdeck/internal/board"
	"github.com/taskdeck/taskdeck/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []task.Task, catNames map[int64]string) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for i := range tasks {
		fmt.Fprintln(w, formatTaskLine(&tasks[i], catNames))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task, catNames map[int64]string) {
	line := formatTaskLine(t, catNames)
	line += " effort:" + formatScore(t.EffortHours) + "h" +
		" impact:" + strconv.Itoa(t.ImpactScore) +
		" urgency:" + strconv.Itoa(t.UrgencyScore)
	fmt.Fprintln(w, line)

	fmt.Fprintln(w, "  created:"+t.CreatedAt.Format("2006-01-02")+
		" updated:"+t.UpdatedAt.Format("2006-01-02"))

	if t.Description != "" {
		for _, descLine := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+descLine)
		}
	}
}

// OverviewCompact renders a board summary in compact format.
func OverviewCompact(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "%d tasks\n", s.TotalTasks)

	for _, ss := range s.Statuses {
		line := "  " + ss.Status + ": " + strconv.Itoa(ss.Count)
		if ss.Overdue > 0 {
			line += " (" + strconv.Itoa(ss.Overdue) + " overdue)"
		}
		fmt.Fprintln(w, line)
	}

	if len(s.Categories) > 0 {
		parts := make([]string, 0, len(s.Categories))
		for _, cc := range s.Categories {
			parts = append(parts, cc.Category+"="+strconv.Itoa(cc.Count))
		}
		fmt.Fprintln(w, "Category: "+strings.Join(parts, " "))
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task, catNames map[int64]string) string {
	line := "#" + strconv.FormatInt(t.ID, 10) +
		" [" + t.Status.String() + "/" + formatScore(t.PriorityScore) + "] " + t.Title

	if name := catNames[t.CategoryID]; name != "" {
		line += " (" + name + ")"
	}
	if t.DueDate != nil {
		line += " due:" + t.DueDate.String()
	}

	return line
}
