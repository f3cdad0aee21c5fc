package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/task"
)

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginBottom(0)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1).
			MarginBottom(0)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	scoreStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	overdueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dueStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	selectedListStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

// categoryColor returns the category's configured color, if any.
func (b *Board) categoryColor(id int64) (lipgloss.Color, bool) {
	for _, c := range b.cats {
		if c.ID == id && c.Color != "" {
			return lipgloss.Color(c.Color), true
		}
	}
	return "", false
}

func (b *Board) categoryName(id int64) string {
	for _, c := range b.cats {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// --- View rendering ---

func (b *Board) viewBoard() string {
	colWidth := b.columnWidth()

	renderedCols := make([]string, len(b.columns))
	for i, col := range b.columns {
		renderedCols[i] = b.renderColumn(i, col, colWidth)
	}

	boardView := lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)

	// Ensure the board view fits within the available height. At very small
	// terminal sizes, a single card can exceed the budget. Clamp from the
	// bottom (keeping headers at the top) and pad if needed.
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	statusBar := b.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", statusBar)
}

// viewList renders all tasks as one flat list ordered by score, the
// alternate view cycled with 'v'.
func (b *Board) viewList() string {
	var lines []string
	header := fmt.Sprintf("%-5s %-7s %-12s %s", "ID", "SCORE", "STATUS", "TITLE")
	lines = append(lines, columnHeaderStyle.Width(b.width).Render(truncate(header, b.width-2)))

	selected := b.selectedTask()
	for i := range b.snap.All {
		t := &b.snap.All[i]
		line := fmt.Sprintf("%-5d %s %s %s",
			t.ID,
			padVisible(scoreStyle.Render(formatScore(t.PriorityScore)), 7),
			padVisible(t.Status.String(), 12),
			truncate(t.Title, b.width-28))
		if selected != nil && t.ID == selected.ID {
			line = selectedListStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	body := strings.Join(lines, "\n")
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := len(lines)
		if actual < targetHeight {
			body += strings.Repeat("\n", targetHeight-actual)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", b.renderStatusBar())
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	// Total rendered width = w * numColumns (JoinHorizontal adds no gaps).
	w := b.width / len(b.columns)
	const maxColWidth = 75
	if w > maxColWidth {
		w = maxColWidth
	}
	return w
}

func (b *Board) renderColumn(colIdx int, col column, width int) string {
	// Header.
	headerText := fmt.Sprintf("%s (%d)", col.status.Title(), len(col.tasks))
	const headerPad = 2
	headerText = truncate(headerText, width-headerPad)

	var header string
	if colIdx == b.activeCol {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	} else {
		header = columnHeaderStyle.Width(width).Render(headerText)
	}

	// Determine visible card range.
	maxVis := b.visibleCardsForColumn(&col, width)
	start := col.scrollOff
	end := start + maxVis
	if end > len(col.tasks) {
		end = len(col.tasks)
	}
	if start > len(col.tasks) {
		start = len(col.tasks)
	}

	parts := []string{header}

	// Show "↑ N more" indicator if scrolled down.
	if start > 0 {
		indicator := fmt.Sprintf("  ↑ %d more", start)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	// Render visible cards.
	if len(col.tasks) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
	} else {
		for rowIdx := start; rowIdx < end; rowIdx++ {
			active := colIdx == b.activeCol && rowIdx == b.activeRow
			parts = append(parts, b.renderCard(&col.tasks[rowIdx], active, width))
		}
	}

	// Show "↓ N more" indicator if more cards below.
	if end < len(col.tasks) {
		remaining := len(col.tasks) - end
		indicator := fmt.Sprintf("  ↓ %d more", remaining)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(t *task.Task, active bool, width int) string {
	contentLines := b.cardContentLines(t, width)
	content := strings.Join(contentLines, "\n")

	// Border color follows the category color.
	style := cardStyle
	if color, ok := b.categoryColor(t.CategoryID); ok {
		style = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1)
	}
	if active {
		style = activeCardStyle
	}

	return style.Width(width - 2).Render(content) //nolint:mnd // border width
}

func (b *Board) cardHeight(t *task.Task, width int) int {
	contentLines := b.cardContentLines(t, width)
	return len(contentLines) + 2 //nolint:mnd // top and bottom borders
}

func (b *Board) cardContentLines(t *task.Task, width int) []string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := width - cardChrome
	if cardWidth < 1 {
		cardWidth = 1
	}

	var contentLines []string

	// Title, wrapped up to the configured number of lines.
	contentLines = append(contentLines,
		wrapTitle(t.Title, cardWidth, b.cfg.TitleLines())...)

	// Score plus due date or age.
	meta := scoreStyle.Render(formatScore(t.PriorityScore))
	if t.DueDate != nil {
		due := "due " + t.DueDate.String()
		if t.Overdue(b.now()) {
			meta += "  " + overdueStyle.Render(due+" !")
		} else {
			meta += "  " + dueStyle.Render(due)
		}
	} else {
		meta += "  " + dimStyle.Render(humanDuration(b.now().Sub(t.UpdatedAt)))
	}
	contentLines = append(contentLines, truncate(meta, cardWidth))

	// Category line, colored per category.
	if name := b.categoryName(t.CategoryID); name != "" {
		style := dimStyle
		if color, ok := b.categoryColor(t.CategoryID); ok {
			style = lipgloss.NewStyle().Foreground(color)
		}
		contentLines = append(contentLines, style.Render(truncate(name, cardWidth)))
	}

	return contentLines
}

// wrapTitle splits a title across maxLines lines, word-wrapping at word
// boundaries. Each line is at most maxWidth characters.
func wrapTitle(title string, maxWidth, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	if lipgloss.Width(title) <= maxWidth || maxLines == 1 {
		return []string{truncate(title, maxWidth)}
	}

	words := strings.Fields(title)
	lines := make([]string, 0, maxLines)
	var current strings.Builder

	for i, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if lipgloss.Width(current.String())+1+lipgloss.Width(word) <= maxWidth {
			current.WriteByte(' ')
			current.WriteString(word)
		} else {
			lines = append(lines, truncate(current.String(), maxWidth))
			current.Reset()
			current.WriteString(word)
			if len(lines) == maxLines-1 {
				// Last line: append all remaining words.
				for _, w := range words[i+1:] {
					current.WriteByte(' ')
					current.WriteString(w)
				}
				break
			}
		}
	}
	if current.Len() > 0 {
		lines = append(lines, truncate(current.String(), maxWidth))
	}
	return lines
}

func (b *Board) renderStatusBar() string {
	msg := b.snap.Message
	if msg != "" {
		msg = " | " + msg
	}
	status := fmt.Sprintf(" %d tasks%s | n:new e:edit d:del </>:move v:view q:quit",
		len(b.snap.All), msg)
	status = truncate(status, b.width)

	if b.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+b.err.Error(), b.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}

	return statusBarStyle.Render(status)
}

func (b *Board) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  #%d: %s", b.deleteID, b.deleteTitle) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

// formatScore renders a score with up to two decimals, trimming zeros.
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// padVisible pads s with spaces to the given visible width, accounting
// for ANSI escape codes.
func padVisible(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	// Trim runes from the end until the display width fits.
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}

// humanDuration formats a duration as a compact human-readable string.
// Examples: "<1m", "5m", "2h", "3d", "2w", "3mo", "1y".
func humanDuration(d time.Duration) string {
	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)

	switch {
	case d < time.Minute:
		return "<1m"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m"
	case d < day:
		return strconv.Itoa(int(d.Hours())) + "h"
	case d < week:
		return strconv.Itoa(int(d/day)) + "d"
	case d < month:
		return strconv.Itoa(int(d/week)) + "w"
	case d < year:
		return strconv.Itoa(int(d/month)) + "mo"
	default:
		return strconv.Itoa(int(d/year)) + "y"
	}
}
