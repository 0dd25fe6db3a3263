package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayplan/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateEditEntry, constants.StateAddEvent, constants.StateEditAnchors:
		content = m.form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.items.View()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(m.header.View()),
		content,
		m.viewStatus(),
		m.help.View(m),
	))
}

func (m Model) viewStatus() string {
	line := m.status
	if m.conflictCount > 0 {
		warning := fmt.Sprintf("⚠ %d conflict(s) on this day", m.conflictCount)
		if line != "" {
			line += "  "
		}
		line += warning
	}
	return statusStyle.Render(line)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		dangerStyle.Render(fmt.Sprintf("Delete %q?", m.deleteTitle)),
		"",
		"[y] Yes",
		"[n] No",
	)
}
