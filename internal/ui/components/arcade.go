package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/ui/theme"
)

// ContentWidth returns the shared inner width for stacked arcade boxes.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ArcadeButton renders one menu entry as a bordered button.
func ArcadeButton(item MenuItem, selected bool, width int) string {
	st := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	switch {
	case item.Disabled:
		label := item.Label
		if item.Note != "" {
			label += " · " + item.Note
		}
		return st.Foreground(theme.Border).BorderForeground(theme.Border).Render(label)
	case selected:
		return st.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + item.Label)
	default:
		return st.Foreground(theme.Text).BorderForeground(theme.Border).Render(item.Label)
	}
}

// ArcadeMenu renders every item of m as a stacked button.
func ArcadeMenu(m Menu, cw int) string {
	buttons := make([]string, len(m.Items))
	for i, item := range m.Items {
		buttons[i] = ArcadeButton(item, i == m.Selected, cw-2)
	}
	return lipgloss.JoinVertical(lipgloss.Center, buttons...)
}
