package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/clierr"
	"github.com/taskdeck/taskdeck/internal/date"
	"github.com/taskdeck/taskdeck/internal/task"
)

// Form field indexes, in tab order.
const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldEffort
	fieldImpact
	fieldUrgency
	fieldCount
)

var formLabels = [fieldCount]string{
	"Title",
	"Description",
	"Due (YYYY-MM-DD)",
	"Effort (hours)",
	"Impact (1-10)",
	"Urgency (1-10)",
}

// form is the task editing dialog. It collects raw text; parsing
// happens on submit so partial input never blocks typing.
type form struct {
	inputs  [fieldCount]textinput.Model
	focused int
	editing bool // true when editing an existing task
	anchor  task.Status
	err     error
	width   int
}

func newForm(d task.Draft, width int) form {
	f := form{editing: d.ID != nil, anchor: d.Anchor, width: width}

	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].CharLimit = 120
	f.inputs[fieldDescription].CharLimit = 2000

	f.inputs[fieldTitle].SetValue(d.Title)
	f.inputs[fieldDescription].SetValue(d.Description)
	if d.DueDate != nil {
		f.inputs[fieldDue].SetValue(d.DueDate.String())
	}
	f.inputs[fieldEffort].SetValue(strconv.FormatFloat(d.EffortHours, 'f', -1, 64))
	f.inputs[fieldImpact].SetValue(strconv.Itoa(d.ImpactScore))
	f.inputs[fieldUrgency].SetValue(strconv.Itoa(d.UrgencyScore))

	f.inputs[fieldTitle].Focus()
	return f
}

func (f *form) setWidth(w int) {
	f.width = w
}

// focusCmd returns the blink command for the focused input.
func (f form) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.setFocus((f.focused + 1) % fieldCount)
			return f, nil
		case "shift+tab", "up":
			f.setFocus((f.focused + fieldCount - 1) % fieldCount)
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

func (f *form) setFocus(idx int) {
	f.inputs[f.focused].Blur()
	f.focused = idx
	f.inputs[f.focused].Focus()
}

// draftUpdate parses the form fields and returns a function that copies
// them onto the controller's draft. Parse errors surface before any
// draft mutation happens.
func (f form) draftUpdate() (func(*task.Draft), error) {
	title := strings.TrimSpace(f.inputs[fieldTitle].Value())
	description := strings.TrimSpace(f.inputs[fieldDescription].Value())

	var due *date.Date
	if v := strings.TrimSpace(f.inputs[fieldDue].Value()); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return nil, task.ValidateDate("due", v, err)
		}
		due = &d
	}

	effort := task.DefaultEffortHours
	if v := strings.TrimSpace(f.inputs[fieldEffort].Value()); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			return nil, clierr.Newf(clierr.InvalidInput, "invalid effort %q: expected a positive number", v)
		}
		effort = parsed
	}

	impact, err := parseScoreField("impact", f.inputs[fieldImpact].Value(), task.DefaultImpact)
	if err != nil {
		return nil, err
	}
	urgency, err := parseScoreField("urgency", f.inputs[fieldUrgency].Value(), task.DefaultUrgency)
	if err != nil {
		return nil, err
	}

	return func(d *task.Draft) {
		d.Title = title
		d.Description = description
		d.DueDate = due
		d.EffortHours = effort
		d.ImpactScore = impact
		d.UrgencyScore = urgency
	}, nil
}

func parseScoreField(name, raw string, fallback int) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 1 || parsed > 10 {
		return 0, clierr.Newf(clierr.InvalidInput, "invalid %s %q: expected 1-10", name, v)
	}
	return parsed, nil
}

func (f form) view() string {
	title := "New task"
	if f.editing {
		title = "Edit task"
	}
	title += " · " + f.anchor.Title()

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	sb.WriteString("\n\n")

	for i := range f.inputs {
		label := formLabels[i]
		if i == f.focused {
			label = selectedListStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		sb.WriteString(fmt.Sprintf("%s\n%s\n", label, f.inputs[i].View()))
	}

	if f.err != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(truncate(f.err.Error(), f.width-8)))
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("enter:save  esc:cancel  tab:next field"))

	return dialogStyle.Render(sb.String())
}
