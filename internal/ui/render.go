package ui

import (
	"fmt"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/view"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("taskdeck"))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(m.filterSummary()))
	b.WriteString("\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n\n")

	if m.mode == modeForm && m.form != nil {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderList())
	}

	if m.mode == modeSearch {
		b.WriteString("\nSearch: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) filterSummary() string {
	parts := []string{"showing " + string(m.vw.Completion)}
	if m.vw.Priority != view.PriorityAll {
		parts = append(parts, "priority "+string(m.vw.Priority))
	}
	if m.vw.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.vw.Search))
	}
	return strings.Join(parts, " • ")
}

func (m Model) renderProgress() string {
	st := m.vw.Stats()
	plural := "s"
	if st.Total == 1 {
		plural = ""
	}
	return m.styles.Progress.Render(fmt.Sprintf("%d task%s • %d done • %d%% complete",
		st.Total, plural, st.Completed, st.Percent()))
}

func (m Model) renderList() string {
	window := m.vw.Window()
	if len(window) == 0 {
		if m.store.Len() == 0 {
			return "No tasks yet. Press 'a' to add one.\n"
		}
		return "No tasks match the current filters.\n"
	}

	var b strings.Builder
	for i, t := range window {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = m.styles.Cursor.Render(">")
		}

		checkbox := "[ ]"
		title := m.styles.TaskTitle.Render(t.Title)
		if t.Completed {
			checkbox = "[x]"
			title = m.styles.Done.Render(t.Title)
		}

		b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, checkbox,
			m.styles.priority(t.Priority).Render(string(t.Priority)), title))
		if t.DueDate != "" {
			b.WriteString(m.styles.Muted.Render("  due " + t.DueDate))
		}
		if t.Description != "" {
			b.WriteString(m.styles.Muted.Render("  " + snippet(t.Description, 40)))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Muted.Render(
		fmt.Sprintf("\nrendered %d of %d", m.vw.Rendered(), m.vw.TotalFiltered())))
	if m.vw.HasMore() {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  (%s: load more)", m.cfg.Keys.LoadMore)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	if m.form.taskID != 0 {
		b.WriteString(fmt.Sprintf("Edit task #%d\n\n", m.form.taskID))
	} else {
		b.WriteString("Add task\n\n")
	}
	values := []string{m.form.title, m.form.description, m.form.due, m.form.priority}
	for i, name := range formFields() {
		prefix := " "
		if i == m.form.index {
			prefix = m.styles.Cursor.Render(">")
		}
		val := values[i]
		if i == m.form.index {
			val = m.input.View()
		} else if strings.TrimSpace(val) == "" {
			val = m.styles.Muted.Render("(empty)")
		}
		b.WriteString(fmt.Sprintf("%s %-28s %s\n", prefix, name, val))
	}
	return b.String()
}

func (m Model) renderStatus() string {
	switch {
	case m.statusErr:
		return m.styles.Error.Render(m.status)
	case m.celebrate:
		return m.styles.Celebrate.Render(m.status)
	default:
		return m.styles.Status.Render(m.status)
	}
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s search • %s/%s filters • %s more • %s theme • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete, k.Search,
		k.FilterPriority, k.FilterComplete, k.LoadMore, k.Theme, k.Quit)
}

func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
