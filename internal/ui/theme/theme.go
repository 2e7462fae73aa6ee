// Package theme holds the colours and shared lipgloss styles of the TUI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette.
var (
	Primary   = lipgloss.Color("#8B5CF6") // purple
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// ShapeColors maps the colour words used in non-verbal options to terminal
// colours.
var ShapeColors = map[string]color.Color{
	"red":    lipgloss.Color("#EF4444"),
	"green":  lipgloss.Color("#22C55E"),
	"yellow": lipgloss.Color("#EAB308"),
	"blue":   lipgloss.Color("#3B82F6"),
}

// CategoryColor returns the accent for a question category name.
func CategoryColor(category string) color.Color {
	switch category {
	case "verbal":
		return lipgloss.Color("#60A5FA")
	case "quantitative":
		return lipgloss.Color("#34D399")
	case "non-verbal":
		return lipgloss.Color("#F472B6")
	default:
		return Secondary
	}
}

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Disabled = lipgloss.NewStyle().
			Foreground(Border)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Centered renders s with style st, centred across width.
func Centered(st lipgloss.Style, width int, s string) string {
	return st.Width(width).Align(lipgloss.Center).Render(s)
}
