package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparky/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // daily puzzle solved today
	MascotAlert                     // streak at risk
)

const mascotIdle = `╭─────╮
│ ◕ ◕ │
│  ᴗ  │
╰──┬──╯
   ⚡`

const mascotCelebrating = `╭─────╮
│ ★ ★ │
│  ▽  │
╰──┬──╯
 \ ⚡ /`

const mascotAlert = `╭─────╮
│ ◕ ◕ │ !
│  ○  │
╰──┬──╯
   ⚡`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.ArcadeCyan
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

// mascotFor picks the variant from today's streak state.
func mascotFor(streak int, dailyDone bool) MascotVariant {
	switch {
	case dailyDone:
		return MascotCelebrating
	case streak > 0:
		return MascotAlert
	default:
		return MascotIdle
	}
}
