// Package progress owns the learner's durable profile: grade, daily streak,
// achievements, completion counters and per-skill accuracy.
//
// Profiles are values. Every mutation is a named operation that returns a
// new Profile plus a flag reporting whether anything changed; the Store
// persists the result.
package progress

import (
	"slices"
	"sort"
	"time"

	"github.com/abhisek/sparky/internal/clock"
	"github.com/abhisek/sparky/internal/session"
)

// Grade bounds offered at setup.
const (
	MinGrade = 3
	MaxGrade = 12
)

// ValidGrade reports whether g is a selectable grade.
func ValidGrade(g int) bool { return g >= MinGrade && g <= MaxGrade }

// Stat is the accuracy counter for one skill tag.
type Stat struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns Correct/Total, or 0 when the skill was never seen.
func (s Stat) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Profile is the single per-user aggregate.
type Profile struct {
	// Grade is 0 until the learner picks one.
	Grade         int
	CurrentStreak int
	BestStreak    int
	// LastCompletedDate is the ISO date of the last solved daily puzzle,
	// empty when none.
	LastCompletedDate    string
	UnlockedAchievements []string
	QuizCompletions      map[session.Mode]int
	Performance          map[string]Stat
	PerfectScores        int
	TotalCorrectAnswers  int
}

// Default returns the profile of a brand new user.
func Default() Profile {
	qc := make(map[session.Mode]int)
	for _, m := range session.CountedModes() {
		qc[m] = 0
	}
	return Profile{
		UnlockedAchievements: []string{},
		QuizCompletions:      qc,
		Performance:          map[string]Stat{},
	}
}

// HasGrade reports whether a grade has been chosen.
func (p Profile) HasGrade() bool { return p.Grade != 0 }

// Clone returns a deep copy so callers can mutate without aliasing p.
func (p Profile) Clone() Profile {
	c := p
	c.UnlockedAchievements = slices.Clone(p.UnlockedAchievements)
	if c.UnlockedAchievements == nil {
		c.UnlockedAchievements = []string{}
	}
	c.QuizCompletions = make(map[session.Mode]int, len(p.QuizCompletions))
	for k, v := range p.QuizCompletions {
		c.QuizCompletions[k] = v
	}
	c.Performance = make(map[string]Stat, len(p.Performance))
	for k, v := range p.Performance {
		c.Performance[k] = v
	}
	return c
}

// HasAchievement reports whether id is unlocked.
func (p Profile) HasAchievement(id string) bool {
	return slices.Contains(p.UnlockedAchievements, id)
}

// TotalCompletions sums the completion counters over every mode.
func (p Profile) TotalCompletions() int {
	n := 0
	for _, v := range p.QuizCompletions {
		n += v
	}
	return n
}

// DailyDoneToday reports whether today's puzzle has already been solved.
func (p Profile) DailyDoneToday(now time.Time) bool {
	return clock.IsToday(p.LastCompletedDate, now)
}

// Accuracy returns the accuracy for skill and whether it has any data.
func (p Profile) Accuracy(skill string) (float64, bool) {
	s, ok := p.Performance[skill]
	if !ok || s.Total == 0 {
		return 0, false
	}
	return s.Accuracy(), true
}

// WeakSkills returns up to k skill tags of p with at least minTotal
// observations, lowest accuracy first.
func (p Profile) WeakSkills(minTotal, k int) []string {
	return WeakSkills(p.Performance, minTotal, k)
}

// WeakSkills returns up to k skill tags with at least minTotal
// observations, lowest accuracy first. Ties are ordered by name.
func WeakSkills(perf map[string]Stat, minTotal, k int) []string {
	skills := make([]string, 0, len(perf))
	for name, s := range perf {
		if s.Total >= minTotal {
			skills = append(skills, name)
		}
	}
	sort.Slice(skills, func(i, j int) bool {
		ai, aj := perf[skills[i]].Accuracy(), perf[skills[j]].Accuracy()
		if ai != aj {
			return ai < aj
		}
		return skills[i] < skills[j]
	})
	if len(skills) > k {
		skills = skills[:k]
	}
	return skills
}

// WithGrade sets the grade. Out-of-range grades are ignored.
func (p Profile) WithGrade(g int) (Profile, bool) {
	if !ValidGrade(g) || p.Grade == g {
		return p, false
	}
	n := p.Clone()
	n.Grade = g
	return n, true
}

// CompleteDailyPuzzle records a solved daily puzzle on now's calendar day.
// A second completion on the same day is a no-op. A completion the day
// after the previous one extends the streak; anything else restarts it at 1.
func (p Profile) CompleteDailyPuzzle(now time.Time) (Profile, bool) {
	if clock.IsToday(p.LastCompletedDate, now) {
		return p, false
	}
	n := p.Clone()
	if clock.IsYesterday(p.LastCompletedDate, now) {
		n.CurrentStreak = p.CurrentStreak + 1
	} else {
		n.CurrentStreak = 1
	}
	n.BestStreak = max(p.BestStreak, n.CurrentStreak)
	n.LastCompletedDate = clock.ISODate(now)
	return n, true
}

// AddQuizCompletion bumps the completion counter for mode.
func (p Profile) AddQuizCompletion(mode session.Mode) (Profile, bool) {
	n := p.Clone()
	n.QuizCompletions[mode]++
	return n, true
}

// AddAchievements appends the ids not yet unlocked, keeping their order.
func (p Profile) AddAchievements(ids []string) (Profile, bool) {
	var fresh []string
	for _, id := range ids {
		if id == "" || p.HasAchievement(id) || slices.Contains(fresh, id) {
			continue
		}
		fresh = append(fresh, id)
	}
	if len(fresh) == 0 {
		return p, false
	}
	n := p.Clone()
	n.UnlockedAchievements = append(n.UnlockedAchievements, fresh...)
	return n, true
}

// UpdatePerformance applies the answer observations in order.
func (p Profile) UpdatePerformance(updates []session.SkillUpdate) (Profile, bool) {
	if len(updates) == 0 {
		return p, false
	}
	n := p.Clone()
	for _, u := range updates {
		s := n.Performance[u.Skill]
		s.Total++
		if u.Correct {
			s.Correct++
		}
		n.Performance[u.Skill] = s
	}
	return n, true
}

// IncrementPerfectScores counts one more perfect session.
func (p Profile) IncrementPerfectScores() (Profile, bool) {
	n := p.Clone()
	n.PerfectScores++
	return n, true
}

// AddCorrectAnswers adds to the lifetime correct-answer total.
func (p Profile) AddCorrectAnswers(count int) (Profile, bool) {
	if count <= 0 {
		return p, false
	}
	n := p.Clone()
	n.TotalCorrectAnswers += count
	return n, true
}
