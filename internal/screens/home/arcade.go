package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/ui/theme"
)

const arcadeTitleFull = ` ███████╗██████╗  █████╗ ██████╗ ██╗  ██╗██╗   ██╗
 ██╔════╝██╔══██╗██╔══██╗██╔══██╗██║ ██╔╝╚██╗ ██╔╝
 ███████╗██████╔╝███████║██████╔╝█████╔╝  ╚████╔╝
 ╚════██║██╔═══╝ ██╔══██║██╔══██╗██╔═██╗   ╚██╔╝
 ███████║██║     ██║  ██║██║  ██║██║  ██╗   ██║
 ╚══════╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝`

const arcadeTitleCompact = "S · P · A · R · K · Y"

func renderTitle(cw int, compact bool) string {
	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), cw, art)
}

// statsBar is the dashboard line above the menu.
type statsBar struct {
	streak   int
	badges   int
	correct  int
	dailyHit bool
}

func renderStatsBar(s statsBar, cw int, compact bool) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	correctStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			streakStyle.Render(fmt.Sprintf("🔥%d", s.streak)),
			badgeStyle.Render(fmt.Sprintf("★%d", s.badges)),
			correctStyle.Render(fmt.Sprintf("✓%d", s.correct)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			streakStyle.Render(fmt.Sprintf("🔥 %d DAY STREAK", s.streak)),
			badgeStyle.Render(fmt.Sprintf("★ %d BADGES", s.badges)),
			correctStyle.Render(fmt.Sprintf("✓ %d CORRECT", s.correct)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func renderNote(text string, cw int) string {
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), cw, text)
}

func renderOfflineBanner(cw int) string {
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.Accent), cw,
		"⚠ Offline question bank in use. Set an LLM API key for fresh questions.")
}
