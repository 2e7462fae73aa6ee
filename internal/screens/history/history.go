// Package history lists past quizzes.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screen"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/store"
	"github.com/abhisek/sparky/internal/ui/layout"
	"github.com/abhisek/sparky/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Events []store.SessionEvent
	Err    error
}

// HistoryScreen displays past sessions, newest first. Enter expands a row
// to show the badges it earned.
type HistoryScreen struct {
	ctx      context.Context
	svc      *practice.Service
	events   []store.SessionEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen.
func New(ctx context.Context, svc *practice.Service) *HistoryScreen {
	return &HistoryScreen{ctx: ctx, svc: svc, expanded: make(map[int]bool)}
}

func (s *HistoryScreen) Init() tea.Cmd {
	ctx, svc := s.ctx, s.svc
	return func() tea.Msg {
		events, err := svc.History(ctx, store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.PopCmd
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case s.errMsg != "":
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "\n\nError: "+s.errMsg)
	case !s.loaded:
		return theme.Centered(dim, width, "\n\n  Loading history...")
	case len(s.events) == 0:
		return theme.Centered(theme.Hint, width, "\n\n  No quizzes yet. Go play one!")
	}

	var rows []string
	for i, ev := range s.events {
		rows = append(rows, s.renderRow(i, ev))
		if s.expanded[i] {
			rows = append(rows, s.renderDetails(ev)...)
		}
	}

	// Keep the selected row on screen.
	start := 0
	if height > 2 && s.selected >= height-2 {
		start = s.selected - (height - 3)
	}
	rows = rows[min(start, len(rows)):]

	block := strings.Join(rows, "\n")
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *HistoryScreen) renderRow(i int, ev store.SessionEvent) string {
	name := ev.Mode
	if m, err := session.ParseMode(ev.Mode); err == nil {
		name = m.DisplayName()
	}
	result := fmt.Sprintf("%d/%d", ev.Correct, ev.Questions)
	if ev.Mode == string(session.ModeCreative) {
		result = "written"
	}
	status := theme.Correct.Render("done")
	if ev.Action == store.SessionAbandoned {
		status = lipgloss.NewStyle().Foreground(theme.TextDim).Render("stopped")
	}

	prefix := "  "
	st := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		prefix = "▸ "
		st = theme.Selected
	}
	line := fmt.Sprintf("%s%-16s %-20s %-8s %5s",
		prefix, ev.Timestamp.Local().Format("Jan 02 15:04"), name, result,
		fmt.Sprintf("%d:%02d", ev.DurationSecs/60, ev.DurationSecs%60))
	return st.Render(line) + "  " + status
}

func (s *HistoryScreen) renderDetails(ev store.SessionEvent) []string {
	if len(ev.Achievements) == 0 {
		return []string{theme.Hint.Render("      No new badges")}
	}
	cat := s.svc.Catalog()
	var out []string
	for _, a := range cat.Resolve(ev.Achievements) {
		out = append(out, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).
			Render(fmt.Sprintf("      %s %s", a.Icon, a.Name)))
	}
	return out
}
