package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/ui/components"
	"github.com/abhisek/sparky/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	switch {
	case q.phase == phaseError:
		return renderError(width, q.errMsg)
	case q.phase == phaseLoading:
		return renderLoading(width, "Getting your questions ready...")
	case q.phase == phaseFinishing:
		return renderLoading(width, "Adding up your score...")
	case q.confirmQuit:
		return renderQuitConfirm(width)
	}
	return q.renderQuestion(width)
}

func (q *QuizScreen) renderQuestion(width int) string {
	cur := q.sess.Question()
	var b strings.Builder

	left := lipgloss.NewStyle().Foreground(theme.CategoryColor(categoryOf(cur))).Bold(true).
		Render("  " + skillLabel(cur))
	right := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d   %s %d",
			q.sess.Current()+1, q.sess.Len(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			q.sess.Score()))
	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	textWidth := min(width-8, 70)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text).Bold(true).Render(cur.Text)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, q.choice.View()))

	if q.phase == phaseFeedback {
		b.WriteString("\n")
		b.WriteString(q.renderFeedback(width, textWidth))
	}
	return b.String()
}

func (q *QuizScreen) renderFeedback(width, textWidth int) string {
	cur := q.sess.Question()
	var b strings.Builder
	if cur.IsCorrect(q.choice.Chosen) {
		b.WriteString(theme.Centered(theme.Correct, width, "Correct! ⚡"))
	} else {
		b.WriteString(theme.Centered(theme.Incorrect, width, "Not quite"))
		b.WriteString("\n")
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			"The answer is "+components.RenderOption(cur.CorrectOption(), cur.ImageBased)))
	}
	b.WriteString("\n\n")
	if cur.Explanation != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text).Render(cur.Explanation)))
		b.WriteString("\n\n")
	}
	next := "Press Enter for the next question"
	if q.sess.IsLast() {
		next = "Press Enter to see your results"
	}
	b.WriteString(theme.Centered(theme.Hint, width, next))
	return b.String()
}

func categoryOf(q question.Question) string {
	if c, ok := question.CategoryForSkill(q.SubCategory); ok {
		return string(c)
	}
	return ""
}

func skillLabel(q question.Question) string {
	if c, ok := question.CategoryForSkill(q.SubCategory); ok {
		return c.Icon() + " " + c.DisplayName() + " · " + q.SubCategory
	}
	return q.SubCategory
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "Stop this quiz?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Answers from this quiz will not count."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "[Y] Yes, stop"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

func renderLoading(width int, text string) string {
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "\n\n\n"+text)
}

func renderError(width int, msg string) string {
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\nOops! %s\n\nPress any key to go back.", msg))
}
