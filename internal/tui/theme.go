package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Column    lipgloss.Style
	Task      lipgloss.Style
	DoneTask  lipgloss.Style
	Pending   lipgloss.Style
	Critical  lipgloss.Style
	High      lipgloss.Style
	Normal    lipgloss.Style
	Input     lipgloss.Style
	Error     lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("63"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Column:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1),
		Task:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		DoneTask:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		Critical:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		High:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Normal:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(60),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),
		Column:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
		Task:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		DoneTask:  lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Italic(true),
		Critical:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		High:      lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
		Normal:    lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(60),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// CurrentTheme holds the active theme.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}

func (t Theme) priority(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityCritical:
		return t.Critical
	case models.PriorityHigh:
		return t.High
	}
	return t.Normal
}
