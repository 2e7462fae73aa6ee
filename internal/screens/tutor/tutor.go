// Package tutor is the chat screen for talking through a missed question.
package tutor

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screen"
	"github.com/abhisek/sparky/internal/ui/components"
	"github.com/abhisek/sparky/internal/ui/layout"
	"github.com/abhisek/sparky/internal/ui/theme"
)

// maxMessageLen bounds a learner message.
const maxMessageLen = 300

type replyMsg struct {
	Text string
	Err  error
}

// TutorScreen chats about one missed question.
type TutorScreen struct {
	ctx      context.Context
	svc      *practice.Service
	question question.Question
	chosen   int

	history []contentgen.ChatTurn
	input   components.TextInput
	waiting bool
	errMsg  string
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)

// New creates a TutorScreen for q, where chosen is the learner's answer.
func New(ctx context.Context, svc *practice.Service, q question.Question, chosen int) *TutorScreen {
	return &TutorScreen{
		ctx:      ctx,
		svc:      svc,
		question: q,
		chosen:   chosen,
		input:    components.NewTextInput("Ask Sparky about this question...", maxMessageLen),
		waiting:  true,
	}
}

func (t *TutorScreen) Init() tea.Cmd {
	return tea.Batch(t.ask(), t.input.Init())
}

func (t *TutorScreen) Title() string { return "Ask Sparky" }

func (t *TutorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

// ask requests the next tutor turn for the current history.
func (t *TutorScreen) ask() tea.Cmd {
	ctx, svc, q, chosen := t.ctx, t.svc, t.question, t.chosen
	history := append([]contentgen.ChatTurn(nil), t.history...)
	return func() tea.Msg {
		text, err := svc.Tutor(ctx, q, chosen, history)
		return replyMsg{Text: text, Err: err}
	}
}

func (t *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		t.waiting = false
		if msg.Err != nil {
			logging.FromContext(t.ctx).Warn().Err(msg.Err).Msg("tutor reply failed")
			t.errMsg = "Sparky couldn't answer just now. Try again in a moment."
			return t, nil
		}
		t.errMsg = ""
		t.history = append(t.history, contentgen.ChatTurn{Speaker: contentgen.SpeakerTutor, Text: msg.Text})
		return t, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return t, router.PopCmd
		case "enter":
			return t.send()
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TutorScreen) send() (screen.Screen, tea.Cmd) {
	text := t.input.Value()
	if text == "" || t.waiting {
		return t, nil
	}
	t.history = append(t.history, contentgen.ChatTurn{Speaker: contentgen.SpeakerStudent, Text: text})
	t.input.Reset()
	t.waiting = true
	return t, t.ask()
}

func (t *TutorScreen) View(width, height int) string {
	cw := min(width-4, 76)

	var head strings.Builder
	head.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(t.question.Text))
	head.WriteString("\n")
	if t.chosen >= 0 && t.chosen < len(t.question.Options) {
		head.WriteString(theme.Incorrect.Render("Your answer: ") +
			components.RenderOption(t.question.Options[t.chosen], t.question.ImageBased))
		head.WriteString("\n")
	}
	head.WriteString(theme.Correct.Render("Right answer: ") +
		components.RenderOption(t.question.CorrectOption(), t.question.ImageBased))
	header := components.ArcadeCard(head.String(), cw)

	var chat []string
	for _, turn := range t.history {
		chat = append(chat, renderTurn(turn, cw-4))
	}
	if t.waiting {
		chat = append(chat, theme.Hint.Render("Sparky is thinking..."))
	}
	if t.errMsg != "" {
		chat = append(chat, theme.Incorrect.Render(t.errMsg))
	}

	footer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(cw - 2).
		Render(t.input.View())

	room := max(height-lipgloss.Height(header)-lipgloss.Height(footer)-2, 1)
	transcript := tail(strings.Join(chat, "\n\n"), room)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, header, "", lipgloss.NewStyle().Width(cw).Height(room).Render(transcript), footer))
}

func renderTurn(turn contentgen.ChatTurn, w int) string {
	if turn.Speaker == contentgen.SpeakerStudent {
		return lipgloss.NewStyle().Width(w).Align(lipgloss.Right).Foreground(theme.ArcadeCyan).
			Render(turn.Text + "  🙋")
	}
	return lipgloss.NewStyle().Width(w).Foreground(theme.Text).
		Render("⚡ " + turn.Text)
}

// tail keeps the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
