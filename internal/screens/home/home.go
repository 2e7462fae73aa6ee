// Package home is the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screen"
	"github.com/abhisek/sparky/internal/screens/creative"
	"github.com/abhisek/sparky/internal/screens/grade"
	"github.com/abhisek/sparky/internal/screens/history"
	"github.com/abhisek/sparky/internal/screens/quiz"
	"github.com/abhisek/sparky/internal/screens/stats"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/ui/components"
	"github.com/abhisek/sparky/internal/ui/layout"
)

// Options carries what the menu needs besides the practice service.
type Options struct {
	Offline       bool
	LatestVersion string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	ctx    context.Context
	svc    *practice.Service
	opts   Options
	menu   components.Menu
	bar    statsBar
	mascot MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(ctx context.Context, svc *practice.Service, opts Options) *HomeScreen {
	h := &HomeScreen{ctx: ctx, svc: svc, opts: opts}
	h.menu = components.NewMenu(h.items())
	h.refresh()
	return h
}

func push(s func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd { return router.PushCmd(s()) }
}

func (h *HomeScreen) play(mode session.Mode) func() tea.Cmd {
	return push(func() screen.Screen { return quiz.New(h.ctx, h.svc, mode) })
}

func (h *HomeScreen) items() []components.MenuItem {
	daily := components.MenuItem{Label: "DAILY PUZZLE", Action: h.play(session.ModeDaily)}
	if h.svc.DailyDone() {
		daily.Disabled = true
		daily.Note = "solved today"
	}

	return []components.MenuItem{
		{Label: "VERBAL", Action: h.play(session.ModeVerbal)},
		{Label: "QUANTITATIVE", Action: h.play(session.ModeQuantitative)},
		{Label: "NON-VERBAL", Action: h.play(session.ModeNonVerbal)},
		{Label: "SMART PRACTICE", Action: h.play(session.ModeSmart)},
		daily,
		{Label: "CREATIVE", Action: push(func() screen.Screen { return creative.New(h.ctx, h.svc) })},
		{Label: "MY PROGRESS", Action: push(func() screen.Screen { return stats.New(h.ctx, h.svc) })},
		{Label: "HISTORY", Action: push(func() screen.Screen { return history.New(h.ctx, h.svc) })},
		{Label: "CHANGE GRADE", Action: push(func() screen.Screen { return grade.New(h.ctx, h.svc, nil) })},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (h *HomeScreen) refresh() {
	p := h.svc.Profile()
	done := h.svc.DailyDone()
	h.bar = statsBar{
		streak:   p.CurrentStreak,
		badges:   len(p.UnlockedAchievements),
		correct:  p.TotalCorrectAnswers,
		dailyHit: done,
	}
	h.mascot = mascotFor(p.CurrentStreak, done)
	h.menu.SetItems(h.items())
}

func (h *HomeScreen) Init() tea.Cmd { return nil }

func (h *HomeScreen) Title() string { return "Home" }

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.ResumedMsg); ok {
		h.refresh()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, RenderMascot(h.mascot)))
	}
	if h.opts.Offline {
		sections = append(sections, renderOfflineBanner(cw))
	}
	sections = append(sections, renderStatsBar(h.bar, cw, compact))
	if h.bar.dailyHit {
		sections = append(sections, renderNote("Daily puzzle solved. See you tomorrow!", cw))
	}
	if height >= 3*len(h.menu.Items)+20 {
		sections = append(sections, components.ArcadeMenu(h.menu, cw))
	} else {
		sections = append(sections, components.ArcadeCard(strings.TrimRight(h.menu.View(), "\n"), cw))
	}
	if h.opts.LatestVersion != "" {
		sections = append(sections, renderNote(fmt.Sprintf("New version %s available", h.opts.LatestVersion), cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
