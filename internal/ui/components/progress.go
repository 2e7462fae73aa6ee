package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/ui/theme"
)

// ProgressBar is a horizontal bar with a fixed-width label column.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Percent    float64
	Caption    string
	Width      int
}

// View renders the bar. The fill colour follows the percentage: green from
// 80%, yellow from 50%, red below.
func (p ProgressBar) View() string {
	label := p.Label
	if p.LabelWidth > 0 {
		label = fmt.Sprintf("%-*s", p.LabelWidth, label)
	}
	head := lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	tail := ""
	if p.Caption != "" {
		tail = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Caption)
	}

	barWidth := max(p.Width-lipgloss.Width(head)-lipgloss.Width(tail), 4)
	filled := min(max(int(float64(barWidth)*p.Percent+0.5), 0), barWidth)

	return head +
		lipgloss.NewStyle().Background(fillColor(p.Percent)).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		tail
}

func fillColor(pct float64) color.Color {
	switch {
	case pct >= 0.8:
		return theme.Success
	case pct >= 0.5:
		return theme.ArcadeYellow
	default:
		return theme.Error
	}
}
