package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/storage"
	"taskdeck/internal/task"
)

// Styles is the lipgloss palette for one theme. Switching themes swaps
// the whole set at once.
type Styles struct {
	Header    lipgloss.Style
	Cursor    lipgloss.Style
	TaskTitle lipgloss.Style
	Done      lipgloss.Style
	Muted     lipgloss.Style
	PrioLow   lipgloss.Style
	PrioMed   lipgloss.Style
	PrioHigh  lipgloss.Style
	Progress  lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Celebrate lipgloss.Style
	Help      lipgloss.Style
}

func newStyles(theme storage.Theme) Styles {
	if theme == storage.ThemeDark {
		return Styles{
			Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
			Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
			TaskTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("242")),
			Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			PrioLow:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			PrioMed:   lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
			PrioHigh:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Progress:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
			Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Celebrate: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219")),
			Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		}
	}
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("55")),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("55")),
		TaskTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("246")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		PrioLow:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		PrioMed:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		PrioHigh:  lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Progress:  lipgloss.NewStyle().Foreground(lipgloss.Color("26")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Celebrate: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("127")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	}
}

func (s Styles) priority(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return s.PrioHigh
	case task.PriorityLow:
		return s.PrioLow
	default:
		return s.PrioMed
	}
}
