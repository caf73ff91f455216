package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/leerkit/internal/ui/theme"
)

// Card wraps content in a rounded, centered box of the given width.
// Highlighted cards get the accent border.
func Card(content string, width int, highlighted bool) string {
	border := theme.Border
	if highlighted {
		border = theme.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}
