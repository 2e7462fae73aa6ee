// Package grade is the grade picker shown on first run and from the home
// menu.
package grade

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screen"
	"github.com/abhisek/sparky/internal/ui/components"
	"github.com/abhisek/sparky/internal/ui/layout"
	"github.com/abhisek/sparky/internal/ui/theme"
)

type gradeSavedMsg struct {
	Grade int
	Err   error
}

// GradeScreen lets the learner pick a grade.
type GradeScreen struct {
	ctx  context.Context
	svc  *practice.Service
	next func() screen.Screen
	menu components.Menu
	err  string
}

var _ screen.Screen = (*GradeScreen)(nil)
var _ screen.KeyHintProvider = (*GradeScreen)(nil)

// New creates a GradeScreen. When next is nil the screen pops itself after
// saving; otherwise it is replaced by next().
func New(ctx context.Context, svc *practice.Service, next func() screen.Screen) *GradeScreen {
	s := &GradeScreen{ctx: ctx, svc: svc, next: next}
	current := svc.Profile().Grade

	items := make([]components.MenuItem, 0, progress.MaxGrade-progress.MinGrade+1)
	selected := 0
	for g := progress.MinGrade; g <= progress.MaxGrade; g++ {
		if g == current {
			selected = len(items)
		}
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Grade %d", g),
			Action: s.save(g),
		})
	}
	s.menu = components.NewMenu(items)
	s.menu.Selected = selected
	return s
}

func (s *GradeScreen) save(g int) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			_, err := s.svc.SetGrade(s.ctx, g)
			return gradeSavedMsg{Grade: g, Err: err}
		}
	}
}

func (s *GradeScreen) Init() tea.Cmd { return nil }

func (s *GradeScreen) Title() string { return "Choose your grade" }

func (s *GradeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if s.next == nil {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return hints
}

func (s *GradeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradeSavedMsg:
		// The grade is kept in memory even when saving fails.
		if msg.Err != nil && !s.svc.Profile().HasGrade() {
			s.err = msg.Err.Error()
			return s, nil
		}
		if s.next != nil {
			return s, router.ReplaceCmd(s.next())
		}
		return s, router.PopCmd

	case tea.KeyPressMsg:
		if msg.String() == "esc" && s.next == nil {
			return s, router.PopCmd
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *GradeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string
	sections = append(sections,
		theme.Centered(theme.Title, cw, "Which grade are you in?"),
		theme.Centered(theme.Hint, cw, "Questions are made for your grade. You can change it later."),
	)
	if s.err != "" {
		sections = append(sections, theme.Centered(theme.Incorrect, cw, s.err))
	}
	sections = append(sections, components.ArcadeCard(strings.TrimRight(s.menu.View(), "\n"), cw))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
