// Package creative runs an open-ended writing challenge.
package creative

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screen"
	"github.com/abhisek/sparky/internal/ui/components"
	"github.com/abhisek/sparky/internal/ui/layout"
	"github.com/abhisek/sparky/internal/ui/theme"
)

const maxAnswerLen = 600

type phase int

const (
	phaseLoading phase = iota
	phaseWriting
	phaseChecking
	phaseDone
	phaseError
)

type promptMsg struct {
	Prompt string
	Err    error
}

type feedbackMsg struct {
	Outcome practice.CreativeOutcome
	Err     error
}

// CreativeScreen shows a prompt, takes a written answer and displays the
// feedback.
type CreativeScreen struct {
	ctx context.Context
	svc *practice.Service

	phase   phase
	prompt  string
	input   components.TextInput
	outcome practice.CreativeOutcome
	notice  string
	errMsg  string
}

var _ screen.Screen = (*CreativeScreen)(nil)
var _ screen.KeyHintProvider = (*CreativeScreen)(nil)

// New creates a CreativeScreen.
func New(ctx context.Context, svc *practice.Service) *CreativeScreen {
	return &CreativeScreen{
		ctx:   ctx,
		svc:   svc,
		input: components.NewTextInput("Write your idea here...", maxAnswerLen),
	}
}

func (c *CreativeScreen) Init() tea.Cmd {
	return tea.Batch(c.fetchPrompt(), c.input.Init())
}

func (c *CreativeScreen) Title() string { return "Creative Challenge" }

func (c *CreativeScreen) KeyHints() []layout.KeyHint {
	switch c.phase {
	case phaseWriting:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseDone:
		return []layout.KeyHint{
			{Key: "N", Description: "New challenge"},
			{Key: "Enter", Description: "Home"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

func (c *CreativeScreen) fetchPrompt() tea.Cmd {
	ctx, svc := c.ctx, c.svc
	return func() tea.Msg {
		p, err := svc.StartCreative(ctx)
		return promptMsg{Prompt: p, Err: err}
	}
}

func (c *CreativeScreen) submit(answer string) tea.Cmd {
	ctx, svc, prompt := c.ctx, c.svc, c.prompt
	return func() tea.Msg {
		out, err := svc.SubmitCreative(ctx, prompt, answer)
		return feedbackMsg{Outcome: out, Err: err}
	}
}

func (c *CreativeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case promptMsg:
		if msg.Err != nil {
			logging.FromContext(c.ctx).Warn().Err(msg.Err).Msg("creative prompt failed")
			c.phase, c.errMsg = phaseError, msg.Err.Error()
			return c, nil
		}
		c.prompt, c.phase = msg.Prompt, phaseWriting
		return c, nil

	case feedbackMsg:
		return c.handleFeedback(msg)

	case tea.KeyPressMsg:
		return c.handleKey(msg)
	}

	if c.phase == phaseWriting {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *CreativeScreen) handleFeedback(msg feedbackMsg) (screen.Screen, tea.Cmd) {
	if msg.Outcome.Feedback == "" {
		logging.FromContext(c.ctx).Warn().Err(msg.Err).Msg("creative feedback failed")
		c.phase = phaseWriting
		c.notice = "Sparky couldn't read your answer just now. Press Enter to try again."
		return c, nil
	}
	c.outcome, c.phase, c.notice = msg.Outcome, phaseDone, ""
	if msg.Err != nil {
		c.notice = "Your progress could not be saved this time."
	}
	return c, nil
}

func (c *CreativeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch c.phase {
	case phaseError:
		return c, router.PopCmd
	case phaseLoading, phaseChecking:
		if key == "esc" {
			return c, router.PopCmd
		}
		return c, nil
	case phaseDone:
		switch key {
		case "n":
			c.phase, c.prompt, c.outcome = phaseLoading, "", practice.CreativeOutcome{}
			c.input.Reset()
			return c, c.fetchPrompt()
		case "enter", "esc":
			return c, router.PopCmd
		}
		return c, nil
	}

	switch key {
	case "esc":
		return c, router.PopCmd
	case "enter":
		answer := c.input.Value()
		if answer == "" {
			c.notice = "Write something first!"
			return c, nil
		}
		c.phase, c.notice = phaseChecking, ""
		return c, c.submit(answer)
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *CreativeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	switch c.phase {
	case phaseLoading:
		return theme.Centered(dim, width, "\n\n\nThinking up a challenge...")
	case phaseError:
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\n\nOops! %s\n\nPress any key to go back.", c.errMsg))
	}

	sections := []string{
		theme.Centered(theme.Title, cw, "✏️  Creative Challenge"),
		components.ArcadeCard(c.prompt, cw),
	}

	switch c.phase {
	case phaseWriting, phaseChecking:
		sections = append(sections, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Width(cw-2).
			Render(c.input.View()))
		if c.phase == phaseChecking {
			sections = append(sections, theme.Centered(theme.Hint, cw, "Sparky is reading your answer..."))
		}
	case phaseDone:
		sections = append(sections,
			lipgloss.NewStyle().Width(cw).Foreground(theme.ArcadeCyan).Render("You wrote: "+c.outcome.Answer),
			lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render("⚡ "+c.outcome.Feedback),
		)
		for _, a := range c.outcome.NewAchievements {
			sections = append(sections, theme.Centered(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), cw,
				fmt.Sprintf("New badge! %s %s", a.Icon, a.Name)))
		}
	}
	if c.notice != "" {
		sections = append(sections, theme.Centered(theme.Incorrect, cw, c.notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}
