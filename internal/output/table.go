package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/board"
	"github.com/taskdeck/taskdeck/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Status colors aligned with TUI column-header palette.
	statusStyles = map[string]lipgloss.Style{
		"todo":        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		"in-progress": lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"done":        lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	statusStyles = map[string]lipgloss.Style{}
	scoreStyle = lipgloss.NewStyle()
	categoryStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []task.Task, catNames map[int64]string) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, scoreW, statusW, titleW, catW, dueW := 4, 7, 8, 7, 10, 12
	for i := range tasks {
		t := &tasks[i]
		idW = max(idW, len(strconv.FormatInt(t.ID, 10))+pad)
		statusW = max(statusW, len(t.Status.String())+pad)
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
		catW = max(catW, len(catNames[t.CategoryID])+pad)
	}

	// Print header.
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s",
		idW, "ID", scoreW, "SCORE", statusW, "STATUS",
		titleW, "TITLE", catW, "CATEGORY", dueW, "DUE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	// Print rows.
	for i := range tasks {
		t := &tasks[i]
		title := t.Title
		const maxTitle = 48
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}
		cat := catNames[t.CategoryID]
		if cat == "" {
			cat = dimStyle.Render("--")
		} else {
			cat = categoryStyle.Render(cat)
		}
		due := dimStyle.Render("--")
		if t.DueDate != nil {
			due = t.DueDate.String()
		}

		row := fmt.Sprintf("%-*d %s %s %s %s %s",
			idW, t.ID,
			padRight(scoreStyle.Render(formatScore(t.PriorityScore)), scoreW),
			padRight(styledValue(t.Status.String(), statusStyles), statusW),
			padRight(title, titleW),
			padRight(cat, catW),
			due)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t *task.Task, catNames map[int64]string) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	printField(w, "Status", styledValue(t.Status.String(), statusStyles))
	printField(w, "Score", scoreStyle.Render(formatScore(t.PriorityScore)))
	printField(w, "Impact", strconv.Itoa(t.ImpactScore))
	printField(w, "Urgency", strconv.Itoa(t.UrgencyScore))
	printField(w, "Effort", formatScore(t.EffortHours)+"h")
	printField(w, "Category", stringOrDash(catNames[t.CategoryID]))
	if t.DueDate != nil {
		printField(w, "Due", t.DueDate.String())
	} else {
		printField(w, "Due", dimStyle.Render("--"))
	}
	printField(w, "Created", t.CreatedAt.Format("2006-01-02 15:04"))
	printField(w, "Updated", t.UpdatedAt.Format("2006-01-02 15:04"))

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}
}

// OverviewTable renders a board summary as a formatted dashboard.
func OverviewTable(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "Total: %d tasks\n\n", s.TotalTasks)

	header := fmt.Sprintf("%-16s %6s %8s %10s", "STATUS", "COUNT", "OVERDUE", "TOP SCORE")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, ss := range s.Statuses {
		overdue := strconv.Itoa(ss.Overdue)
		if ss.Overdue > 0 {
			overdue = overdueStyle.Render(overdue)
		}
		top := dimStyle.Render("--")
		if ss.Count > 0 {
			top = formatScore(ss.TopScore)
		}
		const statusColW = 16
		fmt.Fprintf(w, "%s %6d %s %s\n",
			padRight(styledValue(ss.Status, statusStyles), statusColW),
			ss.Count, padLeft(overdue, 8), padLeft(top, 10)) //nolint:mnd // column widths
	}

	if len(s.Categories) > 0 {
		fmt.Fprintln(w)
		catHeader := fmt.Sprintf("%-16s %6s", "CATEGORY", "COUNT")
		fmt.Fprintln(w, headerStyle.Render(catHeader))
		for _, cc := range s.Categories {
			fmt.Fprintf(w, "%s %6d\n",
				padRight(categoryStyle.Render(cc.Category), 16), cc.Count) //nolint:mnd // column width
		}
	}
}

// GroupedTable renders a grouped board view with per-group status breakdowns.
func GroupedTable(w io.Writer, gs board.GroupedSummary) {
	if len(gs.Groups) == 0 {
		fmt.Fprintln(os.Stderr, "No groups found.")
		return
	}

	for i, g := range gs.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := fmt.Sprintf("%s (%d tasks)", g.Key, g.Total)
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))

		for _, ss := range g.Statuses {
			if ss.Count == 0 {
				continue
			}
			const groupStatusW = 16
			fmt.Fprintf(w, "  %s %d\n",
				padRight(styledValue(ss.Status, statusStyles), groupStatusW), ss.Count)
		}
	}
}

// CategoryTable renders the category list.
func CategoryTable(w io.Writer, cats []task.Category) {
	header := fmt.Sprintf("%-4s %-12s %-8s", "ID", "NAME", "COLOR")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, c := range cats {
		fmt.Fprintf(w, "%-4d %s %s\n",
			c.ID, padRight(categoryStyle.Render(c.Name), 12), c.Color) //nolint:mnd // column width
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// formatScore renders a score with up to two decimals, trimming zeros.
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func padLeft(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return strings.Repeat(" ", width-visible) + s
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
