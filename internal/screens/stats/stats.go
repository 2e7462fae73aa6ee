// Package stats shows the learner's progress: streaks, quiz counts,
// per-skill accuracy, badges and a coach summary.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screen"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/ui/components"
	"github.com/abhisek/sparky/internal/ui/layout"
	"github.com/abhisek/sparky/internal/ui/theme"
)

type tab int

const (
	tabSkills tab = iota
	tabBadges
)

type summaryMsg struct {
	Text string
	Err  error
}

// StatsScreen is the progress report.
type StatsScreen struct {
	ctx     context.Context
	svc     *practice.Service
	profile progress.Profile
	tab     tab
	summary string
	loading bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen from the current profile.
func New(ctx context.Context, svc *practice.Service) *StatsScreen {
	return &StatsScreen{ctx: ctx, svc: svc, profile: svc.Profile(), loading: true}
}

func (s *StatsScreen) Init() tea.Cmd {
	ctx, svc := s.ctx, s.svc
	return func() tea.Msg {
		text, err := svc.Summary(ctx)
		return summaryMsg{Text: text, Err: err}
	}
}

func (s *StatsScreen) Title() string { return "My Progress" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Skills / Badges"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		s.loading = false
		if msg.Err != nil {
			logging.FromContext(s.ctx).Warn().Err(msg.Err).Msg("progress summary failed")
			s.summary = ""
			return s, nil
		}
		s.summary = msg.Text
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.PopCmd
		case "tab", "left", "right", "h", "l":
			if s.tab == tabSkills {
				s.tab = tabBadges
			} else {
				s.tab = tabSkills
			}
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	cw := min(width-4, 72)
	sections := []string{s.renderOverview(cw), s.renderTabs(cw)}
	if s.tab == tabSkills {
		sections = append(sections, s.renderSkills(cw), s.renderSummary(cw))
	} else {
		sections = append(sections, s.renderBadges(cw))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (s *StatsScreen) renderOverview(cw int) string {
	p := s.profile
	accent := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	streak := fmt.Sprintf("%s %s   %s %s",
		accent.Render(fmt.Sprintf("🔥 %d", p.CurrentStreak)), dim.Render("day streak"),
		accent.Render(fmt.Sprintf("🏆 %d", p.BestStreak)), dim.Render("best"))
	totals := fmt.Sprintf("%s %s   %s %s",
		accent.Render(fmt.Sprintf("✓ %d", p.TotalCorrectAnswers)), dim.Render("correct answers"),
		accent.Render(fmt.Sprintf("🎯 %d", p.PerfectScores)), dim.Render("perfect quizzes"))

	var counts []string
	for _, m := range session.CountedModes() {
		counts = append(counts, fmt.Sprintf("%s %d", m.DisplayName(), p.QuizCompletions[m]))
	}
	last := "never"
	if p.LastCompletedDate != "" {
		last = p.LastCompletedDate
	}

	body := strings.Join([]string{
		streak,
		totals,
		dim.Render(strings.Join(counts, " · ")),
		dim.Render(fmt.Sprintf("Grade %d · %s questions · last daily puzzle: %s",
			p.Grade, s.svc.Level().DisplayName(), last)),
	}, "\n")
	return components.ArcadeCard(body, cw)
}

func (s *StatsScreen) renderTabs(cw int) string {
	on := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true).Padding(0, 1)
	off := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
	skills, badges := off.Render("Skills"), off.Render("Badges")
	if s.tab == tabSkills {
		skills = on.Render("Skills")
	} else {
		badges = on.Render("Badges")
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, skills+"  "+badges)
}

func (s *StatsScreen) renderSkills(cw int) string {
	var lines []string
	for _, cr := range practice.Report(s.profile) {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.CategoryColor(string(cr.Category))).Bold(true).
			Render(cr.Category.Icon()+" "+cr.Category.DisplayName()))
		for _, row := range cr.Skills {
			caption := "not tried yet"
			if row.Seen() {
				caption = fmt.Sprintf("%d/%d  %3.0f%%", row.Stat.Correct, row.Stat.Total, row.Stat.Accuracy()*100)
			}
			lines = append(lines, components.ProgressBar{
				Label:      "  " + row.Skill,
				LabelWidth: 22,
				Percent:    row.Stat.Accuracy(),
				Caption:    caption,
				Width:      cw,
			}.View())
		}
	}
	return strings.Join(lines, "\n")
}

func (s *StatsScreen) renderSummary(cw int) string {
	text := s.summary
	if s.loading {
		text = "Sparky is looking at your results..."
	}
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Italic(true).Render("⚡ " + text)
}

func (s *StatsScreen) renderBadges(cw int) string {
	all := s.svc.Catalog().All()
	var lines []string
	for _, a := range all {
		if s.profile.HasAchievement(a.ID) {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).
				Render(fmt.Sprintf("%s  %-20s %s", a.Icon, a.Name, a.Description)))
		} else {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Border).
				Render(fmt.Sprintf("🔒  %-20s %s", a.Name, a.Description)))
		}
	}
	head := theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), cw,
		fmt.Sprintf("%d of %d badges unlocked", len(s.profile.UnlockedAchievements), len(all)))
	return head + "\n\n" + strings.Join(lines, "\n")
}
