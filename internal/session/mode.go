package session

import (
	"fmt"

	"github.com/abhisek/sparky/internal/question"
)

// Mode identifies the kind of quiz being played. The set is closed: every
// switch on Mode lists all values.
type Mode string

const (
	ModeVerbal       Mode = "verbal"
	ModeQuantitative Mode = "quantitative"
	ModeNonVerbal    Mode = "non-verbal"
	ModeSmart        Mode = "smart"
	ModeCreative     Mode = "creative"
	ModeDaily        Mode = "daily"
)

// AllModes returns every mode in display order.
func AllModes() []Mode {
	return []Mode{ModeVerbal, ModeQuantitative, ModeNonVerbal, ModeSmart, ModeCreative, ModeDaily}
}

// CountedModes returns the modes tracked in the profile's completion
// counters. Daily puzzles count towards the streak instead.
func CountedModes() []Mode {
	return []Mode{ModeVerbal, ModeQuantitative, ModeNonVerbal, ModeSmart, ModeCreative}
}

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range AllModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// ModeForCategory returns the practice mode for a question category.
func ModeForCategory(c question.Category) (Mode, bool) {
	switch c {
	case question.Verbal:
		return ModeVerbal, true
	case question.Quantitative:
		return ModeQuantitative, true
	case question.NonVerbal:
		return ModeNonVerbal, true
	default:
		return "", false
	}
}

// Category returns the question category a category-practice mode draws
// from. ok is false for the other modes.
func (m Mode) Category() (question.Category, bool) {
	switch m {
	case ModeVerbal:
		return question.Verbal, true
	case ModeQuantitative:
		return question.Quantitative, true
	case ModeNonVerbal:
		return question.NonVerbal, true
	case ModeSmart, ModeCreative, ModeDaily:
		return "", false
	default:
		return "", false
	}
}

// IsPractice reports whether completing the mode counts as a practice
// completion (everything except the daily puzzle).
func (m Mode) IsPractice() bool {
	switch m {
	case ModeVerbal, ModeQuantitative, ModeNonVerbal, ModeSmart, ModeCreative:
		return true
	case ModeDaily:
		return false
	default:
		return false
	}
}

// IsMultipleChoice reports whether the mode runs through the quiz state
// machine. Creative challenges are open-ended.
func (m Mode) IsMultipleChoice() bool {
	switch m {
	case ModeVerbal, ModeQuantitative, ModeNonVerbal, ModeSmart, ModeDaily:
		return true
	case ModeCreative:
		return false
	default:
		return false
	}
}

// DisplayName returns the kid-facing name of the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeVerbal, ModeQuantitative, ModeNonVerbal:
		c, _ := m.Category()
		return c.DisplayName()
	case ModeSmart:
		return "Smart Practice"
	case ModeCreative:
		return "Creative Challenge"
	case ModeDaily:
		return "Daily Puzzle"
	default:
		return string(m)
	}
}
