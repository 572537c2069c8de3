package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// Theme defines the visual style of the form.
type Theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Cursor   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Button   lipgloss.Style
	Active   lipgloss.Style
	Result   lipgloss.Style
	Warm     lipgloss.Color
	Neutral  lipgloss.Color
	Cool     lipgloss.Color
	Primary  lipgloss.Color
	MutedFg  lipgloss.Color
	ErrorFg  lipgloss.Color
	BorderFg lipgloss.Color
}

// DefaultTheme is the default form theme.
var DefaultTheme = newTheme()

func newTheme() Theme {
	t := Theme{
		Warm:     lipgloss.Color("#ef4444"),
		Neutral:  lipgloss.Color("#10b981"),
		Cool:     lipgloss.Color("#3b82f6"),
		Primary:  lipgloss.Color("#7c3aed"),
		MutedFg:  lipgloss.Color("#737373"),
		ErrorFg:  lipgloss.Color("#ef4444"),
		BorderFg: lipgloss.Color("#404040"),
	}
	t.Title = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	t.Label = lipgloss.NewStyle().Bold(true)
	t.Focused = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	t.Cursor = lipgloss.NewStyle().Foreground(t.Primary)
	t.Muted = lipgloss.NewStyle().Foreground(t.MutedFg)
	t.Error = lipgloss.NewStyle().Foreground(t.ErrorFg)
	t.Button = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFg)
	t.Active = t.Button.BorderForeground(t.Primary).Bold(true)
	t.Result = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	return t
}

// SensationColor picks the accent for a result box.
func (t Theme) SensationColor(s domain.Sensation) lipgloss.Color {
	switch {
	case s > domain.Neutral:
		return t.Warm
	case s < domain.Neutral:
		return t.Cool
	default:
		return t.Neutral
	}
}
