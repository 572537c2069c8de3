package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Thermal Comfort (PMV)"))
	b.WriteString("\n")

	b.WriteString(m.label(FieldTemperature, "Temperature (°C)"))
	b.WriteString(" ")
	b.WriteString(m.temperature.View())
	b.WriteString("\n")
	b.WriteString(m.label(FieldHumidity, "Humidity (%)    "))
	b.WriteString(" ")
	b.WriteString(m.humidity.View())
	b.WriteString("\n\n")

	b.WriteString(m.label(FieldClothing, fmt.Sprintf("Clothing (%d selected, %s clo)",
		m.clothing.Len(), domain.FormatCLO(m.clothing.TotalCLO()))))
	b.WriteString("\n")
	b.WriteString(m.clothingList())
	b.WriteString("\n")

	b.WriteString(m.label(FieldActivity, "Activity"))
	b.WriteString("\n")
	b.WriteString(m.activityList())
	b.WriteString("\n")

	button := m.theme.Button
	if m.focus == FieldPredict {
		button = m.theme.Active
	}
	b.WriteString(button.Render("Predict"))
	b.WriteString("\n")

	switch {
	case m.running:
		b.WriteString(m.theme.Muted.Render("Predicting..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(m.theme.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.result != nil:
		b.WriteString(m.resultView(*m.result))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) label(f Field, text string) string {
	if m.focus == f {
		return m.theme.Focused.Render(text)
	}
	return m.theme.Label.Render(text)
}

func (m Model) clothingList() string {
	var rows []string
	end := min(len(m.garments), m.garmentOffset+m.listHeight)
	for i := m.garmentOffset; i < end; i++ {
		g := m.garments[i]
		box := "[ ]"
		if m.clothing.Contains(g) {
			box = "[x]"
		}
		row := fmt.Sprintf("%s %s %s", box, g.Name(), m.theme.Muted.Render(domain.FormatCLO(g.CLO())))
		rows = append(rows, m.cursorRow(m.focus == FieldClothing && i == m.garmentCursor, row))
	}
	return strings.Join(rows, "\n") + m.scrollHint(m.garmentOffset, end, len(m.garments))
}

func (m Model) activityList() string {
	var rows []string
	end := min(len(m.activities), m.activityOffset+m.listHeight)
	for i := m.activityOffset; i < end; i++ {
		a := m.activities[i]
		radio := "( )"
		if i == m.activity {
			radio = "(•)"
		}
		row := fmt.Sprintf("%s %s %s", radio, a.Name(), m.theme.Muted.Render(domain.FormatMET(a.MET())+" met"))
		rows = append(rows, m.cursorRow(m.focus == FieldActivity && i == m.activityCursor, row))
	}
	return strings.Join(rows, "\n") + m.scrollHint(m.activityOffset, end, len(m.activities))
}

func (m Model) cursorRow(active bool, row string) string {
	if active {
		return m.theme.Cursor.Render("> ") + row
	}
	return "  " + row
}

func (m Model) scrollHint(start, end, total int) string {
	if start == 0 && end == total {
		return ""
	}
	return "\n" + m.theme.Muted.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, total))
}

func (m Model) resultView(a domain.Assessment) string {
	s := a.Result.Sensation
	headline := fmt.Sprintf("PMV %s  %s %s", domain.FormatPMV(a.Result.Value), s.Marker(), s.String())
	detail := fmt.Sprintf("Total CLO %s · MET %s", domain.FormatCLO(a.Features.CLO), domain.FormatMET(a.Features.MET))
	return m.theme.Result.
		BorderForeground(m.theme.SensationColor(s)).
		Render(lipgloss.JoinVertical(lipgloss.Left, headline, detail))
}
