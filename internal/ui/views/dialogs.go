package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"modgrip/internal/i18n"
	"modgrip/internal/tasks"
	"modgrip/internal/ui/state"
)

// DialogRenderer renders the overlay dialogs
type DialogRenderer struct {
	styles *Styles
	bar    progress.Model
}

// NewDialogRenderer creates a new dialog renderer
func NewDialogRenderer(styles *Styles) *DialogRenderer {
	return &DialogRenderer{
		styles: styles,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
	}
}

// TasksDialog is the data shown by the tasks dialog
type TasksDialog struct {
	Completed bool
	Index     int
	Tasks     []tasks.Task
}

// RenderTasks renders the active/completed task tabs with a progress bar per running task
func (d *DialogRenderer) RenderTasks(td TasksDialog, tr *i18n.Translator) string {
	var b strings.Builder

	b.WriteString(d.styles.DialogTitle.Render(tr.T("task_manager.title", nil)))
	b.WriteString("\n")

	active := d.styles.TabActive
	completed := d.styles.TabInactive
	if td.Completed {
		active, completed = completed, active
	}
	b.WriteString(active.Render(tr.T("task_manager.active_tab_name", nil)))
	b.WriteString("  ")
	b.WriteString(completed.Render(tr.T("task_manager.completed_tab_name", nil)))
	b.WriteString("\n\n")

	if len(td.Tasks) == 0 {
		b.WriteString(d.styles.Dim.Render(tr.T("task_manager.no_tasks_yet_msg", nil)))
	}

	tag := tr.Locale().Tag()
	for i, t := range td.Tasks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		title := t.Metadata.Title
		if i == td.Index {
			title = d.styles.Highlight.Render("› " + title)
		} else {
			title = "  " + title
		}
		b.WriteString(title)
		b.WriteString("\n  ")

		if !t.IsComplete() {
			b.WriteString(d.bar.ViewAs(tasks.Percent(t.Progress) / 100))
			b.WriteString("\n  ")
		}

		line := tasks.StatusLine(t, tag)
		switch t.Status.State {
		case tasks.StateFailed:
			if t.Status.Err != nil {
				line += "  " + t.Status.Err.Error()
			}
			line = d.styles.StatusError.Render(line)
		case tasks.StateSuccess:
			line = d.styles.StatusOK.Render(line)
		default:
			line = d.styles.Dim.Render(line)
		}
		b.WriteString(line)

		if t.Metadata.URL != "" {
			b.WriteString("\n  ")
			b.WriteString(d.styles.Dim.Render(tr.T("task_manager.source_label", nil) + ": " + t.Metadata.URL))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(d.styles.Help.Render(fmt.Sprintf("tab switch • c copy source • x %s • esc %s",
		strings.ToLower(tr.T("task_manager.clear_cache_btn", nil)),
		strings.ToLower(tr.T("global.phrases.close", nil)))))

	return b.String()
}

// RenderError renders the error dialog
func (d *DialogRenderer) RenderError(info *state.ErrorInfo, tr *i18n.Translator, width int) string {
	if info == nil {
		return ""
	}

	text := info.Message
	if info.Err != nil {
		if text != "" {
			text += ": "
		}
		text += info.Err.Error()
	}

	wrap := lipgloss.NewStyle().Width(width)
	lines := []string{
		d.styles.StatusError.Bold(true).Render(tr.T("error.title", nil)),
		"",
		wrap.Render(tr.T("error.deescalation_msg", nil)),
		"",
		wrap.Render(d.styles.Dim.Render(text)),
		"",
		wrap.Render(tr.T("error.report_msg", nil)),
		wrap.Render(tr.T("error.ignore_msg", nil)),
		"",
		d.styles.Help.Render("i " + strings.ToLower(tr.T("error.ignore_btn", nil)) + " • q quit"),
	}
	return strings.Join(lines, "\n")
}

// RenderConfirm renders a yes/no question
func (d *DialogRenderer) RenderConfirm(c *state.ConfirmState, tr *i18n.Translator) string {
	if c == nil {
		return ""
	}
	return d.styles.DialogTitle.Render(c.Title) + "\n" +
		c.Message + "\n\n" +
		d.styles.Help.Render(fmt.Sprintf("y %s • n %s",
			strings.ToLower(tr.T("global.phrases.confirm", nil)),
			strings.ToLower(tr.T("global.phrases.cancel", nil))))
}

// RenderSelect renders a dropdown. Radio dropdowns mark the checked option with a filled dot,
// multi dropdowns with a check box.
func (d *DialogRenderer) RenderSelect(s *state.SelectState, tr *i18n.Translator) string {
	var b strings.Builder

	title := s.Title
	if title == "" {
		title = tr.T("global.select_dropdown.default_fallback", nil)
	}
	b.WriteString(d.styles.DialogTitle.Render(title))
	b.WriteString("\n")

	for i, o := range s.Options {
		var mark string
		switch {
		case s.Multi && o.Checked:
			mark = "[x]"
		case s.Multi:
			mark = "[ ]"
		case o.Checked:
			mark = "(•)"
		default:
			mark = "( )"
		}
		if o.Checked {
			mark = d.styles.Checked.Render(mark)
		}

		label := o.Label
		if i == s.Index {
			label = d.styles.Highlight.Render(label)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(mark + " " + label)
	}

	return b.String()
}

// RenderSwitch renders a toggle switch as [on ] or [ off]
func (d *DialogRenderer) RenderSwitch(on bool) string {
	if on {
		return "[" + d.styles.SwitchOn.Render("on") + " ]"
	}
	return "[ " + d.styles.SwitchOff.Render("off") + "]"
}
