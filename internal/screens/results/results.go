// Package results shows the outcome of a finished quiz.
package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screen"
	"github.com/abhisek/sparky/internal/screens/tutor"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/ui/components"
	"github.com/abhisek/sparky/internal/ui/layout"
	"github.com/abhisek/sparky/internal/ui/theme"
)

// ResultsScreen displays the score, the per-question review and any
// achievements earned. Missed questions can be opened with the tutor.
type ResultsScreen struct {
	ctx     context.Context
	svc     *practice.Service
	out     practice.Outcome
	warning string

	// missed holds the indexes of wrongly answered questions.
	missed   []int
	selected int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. warning is shown when the outcome could not
// be saved.
func New(ctx context.Context, svc *practice.Service, out practice.Outcome, warning string) *ResultsScreen {
	r := &ResultsScreen{ctx: ctx, svc: svc, out: out, warning: warning}
	for _, a := range out.Result.Answers {
		if !a.Correct {
			r.missed = append(r.missed, a.QuestionIndex)
		}
	}
	return r
}

func (r *ResultsScreen) Init() tea.Cmd { return nil }

func (r *ResultsScreen) Title() string { return "Results" }

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if len(r.missed) > 0 {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Pick a question"},
			layout.KeyHint{Key: "T", Description: "Ask the tutor"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Home"})
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return r, router.PopCmd
	case "up", "k":
		if r.selected > 0 {
			r.selected--
		}
	case "down", "j":
		if r.selected < len(r.missed)-1 {
			r.selected++
		}
	case "t":
		if len(r.missed) == 0 {
			return r, nil
		}
		i := r.missed[r.selected]
		ans, _ := answerFor(r.out.Result, i)
		return r, router.PushCmd(tutor.New(r.ctx, r.svc, r.out.Result.Questions[i], ans.ChosenIndex))
	}
	return r, nil
}

func answerFor(res session.Result, i int) (session.Answer, bool) {
	for _, a := range res.Answers {
		if a.QuestionIndex == i {
			return a, true
		}
	}
	return session.Answer{}, false
}

func (r *ResultsScreen) View(width, height int) string {
	res := r.out.Result
	var b strings.Builder

	b.WriteString(theme.Centered(theme.Title, width, res.Mode.DisplayName()+" complete!"))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	b.WriteString(theme.Centered(scoreStyle, width, fmt.Sprintf("You got %d out of %d", res.Score, res.Total)))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		fmt.Sprintf("Time: %d:%02d", int(res.Duration.Minutes()), int(res.Duration.Seconds())%60)))
	b.WriteString("\n")

	if r.out.Perfect {
		b.WriteString(theme.Centered(theme.Correct, width, "🎯 Perfect score!"))
		b.WriteString("\n")
	}
	if r.out.DailySolved {
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), width,
			fmt.Sprintf("🔥 Daily puzzle solved! Streak: %d", r.out.Profile.CurrentStreak)))
		b.WriteString("\n")
	} else if res.Mode == session.ModeDaily {
		b.WriteString(theme.Centered(theme.Hint, width, "Not this time. Try again tomorrow!"))
		b.WriteString("\n")
	}
	if r.warning != "" {
		b.WriteString(theme.Centered(theme.Incorrect, width, "⚠ "+r.warning))
		b.WriteString("\n")
	}

	if len(r.out.NewAchievements) > 0 {
		b.WriteString("\n")
		b.WriteString(section(width, "New badges"))
		for _, a := range r.out.NewAchievements {
			b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.ArcadeYellow), width,
				fmt.Sprintf("%s %s  %s", a.Icon, a.Name, a.Description)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(section(width, "Review"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, r.renderReview(min(width-8, 70))))
	return b.String()
}

func section(width int, title string) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, title) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n"
}

func (r *ResultsScreen) renderReview(w int) string {
	res := r.out.Result
	var lines []string
	for i, q := range res.Questions {
		ans, answered := answerFor(res, i)
		mark := theme.Correct.Render("✓")
		if answered && !ans.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		text := q.Text
		if runes := []rune(text); lipgloss.Width(text) > w-8 {
			text = string(runes[:min(len(runes), max(w-11, 1))]) + "..."
		}
		line := fmt.Sprintf("%s %d. %s", mark, i+1, text)

		st := lipgloss.NewStyle().Foreground(theme.Text)
		if len(r.missed) > 0 && r.missed[r.selected] == i {
			st = theme.Selected
			line = "▸ " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, st.Render(line))
		if answered && !ans.Correct {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				"      answer: "+components.RenderOption(q.CorrectOption(), q.ImageBased)))
		}
	}
	return strings.Join(lines, "\n")
}
