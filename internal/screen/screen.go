// Package screen is the contract between the router and the TUI screens
// (home, quiz, results, tutor, creative, stats, history).
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sparky/internal/ui/layout"
)

// Screen is one page of the app. The app frame draws the header and
// footer; View fills the space between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ResumedMsg tells a screen it is on top again after the one above it was
// popped. Screens showing profile data reload on it.
type ResumedMsg struct{}
