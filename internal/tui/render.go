package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

func (m BoardModel) View() string {
	theme := CurrentTheme
	var sections []string
	sections = append(sections, m.renderHeader())

	switch m.mode {
	case ModeCreate:
		sections = append(sections, theme.Input.Render("New task\n"+m.input.View()))
	case ModeSearch:
		sections = append(sections, theme.Input.Render("Filter\n"+m.search.View()))
	case ModeBrief:
		sections = append(sections, theme.Input.Render("Brief\n"+m.briefBox.View()))
	case ModeSprints:
		sections = append(sections, m.renderSprints())
	case ModeTrash:
		sections = append(sections, m.renderTrash())
	default:
		sections = append(sections, m.renderColumns())
		if m.showArchive {
			sections = append(sections, m.renderArchive())
		}
		if m.mode == ModeConfirmDelete {
			if t, ok := m.selected(); ok {
				sections = append(sections, theme.Error.Render(fmt.Sprintf("Delete %q? [y/n]", t.Title)))
			}
		}
	}

	sections = append(sections, m.renderFooter())
	return theme.Base.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m BoardModel) renderHeader() string {
	theme := CurrentTheme
	done, total := 0, 0
	active := m.activeSprint()
	for _, col := range m.columns {
		for _, t := range col {
			if !strings.EqualFold(t.Sprint, active) {
				continue
			}
			total += t.Points
			if t.Status == models.StatusDone {
				done += t.Points
			}
		}
	}
	for _, t := range m.archived {
		if strings.EqualFold(t.Sprint, active) {
			total += t.Points
			done += t.Points
		}
	}
	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}

	title := theme.Header.Render("SPRINTBOARD") + "  " + theme.Focused.Render(active)
	status := m.progress.ViewAs(ratio) + " " + theme.Dim.Render(FormatPoints(done, total))
	var extra []string
	if q := m.search.Value(); q != "" && m.mode != ModeSearch {
		extra = append(extra, theme.Highlight.Render("filter: "+q))
	}
	if m.eng.Loading() {
		extra = append(extra, theme.Dim.Render("loading..."))
	}
	line := title + "  " + status
	if len(extra) > 0 {
		line += "  " + strings.Join(extra, "  ")
	}
	return line + "\n"
}

func (m BoardModel) columnWidth() int {
	width := m.width - 4
	if width <= 0 {
		width = config.CompactModeThreshold * 2
	}
	w := width/len(models.Statuses) - 4
	if w < config.MinColumnWidth {
		w = config.MinColumnWidth
	}
	return w
}

func (m BoardModel) renderColumns() string {
	theme := CurrentTheme
	width := m.columnWidth()
	var cols []string
	for i, status := range models.Statuses {
		tasks := m.columns[i]
		header := fmt.Sprintf("%s (%d)", status, len(tasks))
		if i == m.focusedCol {
			header = theme.Focused.Render(header)
		} else {
			header = theme.Highlight.Render(header)
		}
		lines := []string{header}
		for j, t := range tasks {
			if j >= config.MaxVisibleTasks {
				lines = append(lines, theme.Dim.Render(fmt.Sprintf("+%d more", len(tasks)-j)))
				break
			}
			lines = append(lines, m.renderTask(t, width, i == m.focusedCol && j == m.focusedRow))
		}
		if len(tasks) == 0 {
			lines = append(lines, theme.Dim.Render("empty"))
		}
		style := theme.Column.Width(width)
		if i == m.focusedCol {
			style = style.BorderForeground(lipgloss.Color("205"))
		}
		cols = append(cols, style.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m BoardModel) renderTask(t models.Task, width int, focused bool) string {
	theme := CurrentTheme
	cursor := "  "
	if focused {
		cursor = theme.Focused.Render("> ")
	}
	title := truncate(t.Title, width-2)
	switch {
	case t.Pending:
		title = theme.Pending.Render(title)
	case t.Status == models.StatusDone:
		title = theme.DoneTask.Render(title)
	default:
		title = theme.Task.Render(title)
	}
	if m.width > 0 && m.width < config.CompactModeThreshold {
		return cursor + title
	}
	meta := fmt.Sprintf("%s %dpt %s", theme.priority(t.Priority).Render(string(t.Priority)), t.Points, designerName(t))
	if t.Status != models.StatusDone {
		if due := FormatDue(t.DueDate, m.now()); due != "" {
			meta += " " + due
		}
	}
	return cursor + title + "\n  " + truncate(meta, width-2)
}

func (m BoardModel) renderArchive() string {
	theme := CurrentTheme
	lines := []string{theme.Highlight.Render(fmt.Sprintf("Archive (%d)", len(m.archived)))}
	for _, t := range m.archived {
		completed := ""
		if t.CompletionDate != nil {
			completed = t.CompletionDate.Format(models.DateLayout)
		}
		lines = append(lines, theme.DoneTask.Render(fmt.Sprintf("  %s %s", completed, t.Title)))
	}
	return strings.Join(lines, "\n")
}

func (m BoardModel) renderSprints() string {
	theme := CurrentTheme
	lines := []string{theme.Highlight.Render("Sprints")}
	for i, s := range m.sprints {
		cursor := "  "
		if i == m.listIdx {
			cursor = theme.Focused.Render("> ")
		}
		label := fmt.Sprintf("%s  %s - %s", s.Name, s.StartDate.Format(models.DateLayout), s.EndDate.Format(models.DateLayout))
		if s.IsActive {
			label = theme.Focused.Render(label + "  (active)")
		}
		lines = append(lines, cursor+label)
	}
	if len(m.sprints) == 0 {
		lines = append(lines, theme.Dim.Render("  no sprints"))
	}
	return strings.Join(lines, "\n")
}

func (m BoardModel) renderTrash() string {
	theme := CurrentTheme
	lines := []string{theme.Highlight.Render("Recently deleted")}
	for i, t := range m.trash {
		cursor := "  "
		if i == m.listIdx {
			cursor = theme.Focused.Render("> ")
		}
		by := ""
		if t.Tombstone != nil {
			by = fmt.Sprintf(" (by %s, %s)", t.Tombstone.DeletedBy, t.Tombstone.DeletedAt.Format("Jan 2 15:04"))
		}
		lines = append(lines, cursor+t.Title+theme.Dim.Render(by))
	}
	if len(m.trash) == 0 {
		lines = append(lines, theme.Dim.Render("  nothing deleted"))
	}
	return strings.Join(lines, "\n")
}

func (m BoardModel) renderFooter() string {
	theme := CurrentTheme
	var lines []string
	if err := m.eng.Err(); err != nil {
		lines = append(lines, theme.Error.Render("sync error: "+err.Error()+"  [R]retry [x]dismiss"))
	}
	if m.message != "" {
		lines = append(lines, theme.Dim.Render(m.message))
	}
	lines = append(lines, theme.Dim.Render(m.keys.HelpFor(m.mode)))
	return "\n" + strings.Join(lines, "\n")
}
