// Package difficulty maps a learner's daily streak to the difficulty tier
// used when generating and caching question pools.
package difficulty

import "fmt"

// Level is a question difficulty tier.
type Level string

const (
	Easy   Level = "easy"
	Medium Level = "medium"
	Hard   Level = "hard"
)

// Streak thresholds at which the tier steps up.
const (
	MediumStreak = 5
	HardStreak   = 15
)

// AllLevels returns the tiers from easiest to hardest.
func AllLevels() []Level {
	return []Level{Easy, Medium, Hard}
}

// ForStreak returns the tier for the given current streak.
func ForStreak(streak int) Level {
	switch {
	case streak >= HardStreak:
		return Hard
	case streak >= MediumStreak:
		return Medium
	default:
		return Easy
	}
}

// Parse converts a string into a Level.
func Parse(s string) (Level, error) {
	switch Level(s) {
	case Easy, Medium, Hard:
		return Level(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// DisplayName returns a human-readable label.
func (l Level) DisplayName() string {
	switch l {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return string(l)
	}
}

// Rank orders levels: easy=0, medium=1, hard=2.
func (l Level) Rank() int {
	switch l {
	case Medium:
		return 1
	case Hard:
		return 2
	default:
		return 0
	}
}

// Instruction is the generation guidance for this tier.
func (l Level) Instruction() string {
	switch l {
	case Medium:
		return "Use standard, on-level concepts."
	case Hard:
		return "Use challenging concepts that require deeper thinking or combining multiple skills."
	default:
		return "Use foundational concepts."
	}
}
