package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is the option list of one question. It only tracks the
// cursor; whether an answer is accepted is up to the session.
type MultiChoice struct {
	Question question.Question
	Selected int

	// Chosen is the submitted option, or -1 before submission.
	Chosen int
}

// NewMultiChoice creates an option list for q.
func NewMultiChoice(q question.Question) MultiChoice {
	return MultiChoice{Question: q, Chosen: -1}
}

// Revealed reports whether an answer has been submitted.
func (m MultiChoice) Revealed() bool { return m.Chosen >= 0 }

// Reveal marks chosen as the submitted option.
func (m *MultiChoice) Reveal(chosen int) { m.Chosen = chosen }

// Update moves the cursor. It returns the option index picked with Enter
// or a letter/number key, or -1.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Revealed() {
		return m, -1
	}
	n := len(m.Question.Options)

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, -1
	case "down", "j":
		if m.Selected < n-1 {
			m.Selected++
		}
		return m, -1
	case "enter":
		return m, m.Selected
	}

	if len(key) == 1 {
		c := key[0]
		var i int
		switch {
		case c >= '1' && c <= '9':
			i = int(c - '1')
		case c >= 'a' && c <= 'f':
			i = int(c - 'a')
		default:
			return m, -1
		}
		if i < n {
			m.Selected = i
			return m, i
		}
	}
	return m, -1
}

// View renders the options, colouring the right and wrong answer once
// revealed.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Question.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Revealed() {
			prefix = "▸ "
		}
		text := RenderOption(opt, m.Question.ImageBased)
		line := fmt.Sprintf("%s%s)  %s", prefix, label, text)

		st := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Revealed() && i == m.Question.CorrectIndex:
			st = theme.Correct
			line += "  ✓"
		case m.Revealed() && i == m.Chosen:
			st = theme.Incorrect
			line += "  ✗"
		case m.Revealed():
			st = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			st = theme.Selected
		}
		b.WriteString(st.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderOption draws a shape option as glyphs followed by its description;
// anything else is returned as is.
func RenderOption(opt string, imageBased bool) string {
	if !imageBased {
		return opt
	}
	s, ok := question.ParseShape(opt)
	if !ok {
		return opt
	}
	glyphs := s.Glyphs()
	if s.Size == question.SizeBig {
		glyphs = lipgloss.NewStyle().Bold(true).Render(glyphs)
	}
	if c, ok := theme.ShapeColors[s.Color]; ok {
		glyphs = lipgloss.NewStyle().Foreground(c).Render(glyphs)
	}
	return glyphs + "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(opt)
}
