package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparky/internal/session"
)

var day = time.Date(2024, time.March, 10, 18, 0, 0, 0, time.UTC)

func TestDefault(t *testing.T) {
	p := Default()
	assert.False(t, p.HasGrade())
	assert.Empty(t, p.UnlockedAchievements)
	assert.Len(t, p.QuizCompletions, 5)
	for _, m := range session.CountedModes() {
		assert.Contains(t, p.QuizCompletions, m)
	}
	_, daily := p.QuizCompletions[session.ModeDaily]
	assert.False(t, daily)
}

func TestWithGrade(t *testing.T) {
	p, changed := Default().WithGrade(5)
	require.True(t, changed)
	assert.Equal(t, 5, p.Grade)

	_, changed = p.WithGrade(5)
	assert.False(t, changed)

	for _, g := range []int{0, 2, 13, -1} {
		_, changed = p.WithGrade(g)
		assert.False(t, changed, "grade %d", g)
	}
}

func TestCompleteDailyPuzzle(t *testing.T) {
	yesterday := day.AddDate(0, 0, -1).Format("2006-01-02")
	lastWeek := day.AddDate(0, 0, -7).Format("2006-01-02")

	tests := []struct {
		name       string
		in         Profile
		wantStreak int
		wantBest   int
		changed    bool
	}{
		{"first ever", Profile{}, 1, 1, true},
		{"consecutive", Profile{CurrentStreak: 4, BestStreak: 4, LastCompletedDate: yesterday}, 5, 5, true},
		{"consecutive below best", Profile{CurrentStreak: 2, BestStreak: 9, LastCompletedDate: yesterday}, 3, 9, true},
		{"gap resets", Profile{CurrentStreak: 7, BestStreak: 7, LastCompletedDate: lastWeek}, 1, 7, true},
		{"same day", Profile{CurrentStreak: 3, BestStreak: 3, LastCompletedDate: "2024-03-10"}, 3, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := tt.in.CompleteDailyPuzzle(day)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.wantStreak, got.CurrentStreak)
			assert.Equal(t, tt.wantBest, got.BestStreak)
			assert.Equal(t, "2024-03-10", got.LastCompletedDate)
		})
	}
}

func TestCompleteDailyPuzzleTwiceSameDay(t *testing.T) {
	p := Default()
	p.CurrentStreak, p.BestStreak = 4, 6
	p.LastCompletedDate = "2024-03-09"

	once, _ := p.CompleteDailyPuzzle(day)
	twice, changed := once.CompleteDailyPuzzle(day.Add(3 * time.Hour))
	assert.False(t, changed)
	assert.Equal(t, 5, twice.CurrentStreak)
	assert.Equal(t, 6, twice.BestStreak)
}

func TestAddQuizCompletionDoesNotAlias(t *testing.T) {
	p := Default()
	n, changed := p.AddQuizCompletion(session.ModeVerbal)
	require.True(t, changed)
	assert.Equal(t, 1, n.QuizCompletions[session.ModeVerbal])
	assert.Equal(t, 0, p.QuizCompletions[session.ModeVerbal])
	assert.Equal(t, 1, n.TotalCompletions())
}

func TestAddAchievements(t *testing.T) {
	p, changed := Default().AddAchievements([]string{"first_quiz", "streak_5", "first_quiz"})
	require.True(t, changed)
	assert.Equal(t, []string{"first_quiz", "streak_5"}, p.UnlockedAchievements)

	again, changed := p.AddAchievements([]string{"streak_5"})
	assert.False(t, changed)
	assert.Equal(t, p.UnlockedAchievements, again.UnlockedAchievements)

	_, changed = p.AddAchievements(nil)
	assert.False(t, changed)
}

func TestUpdatePerformance(t *testing.T) {
	p, changed := Default().UpdatePerformance([]session.SkillUpdate{
		{Skill: "analogy", Correct: true},
		{Skill: "analogy", Correct: false},
		{Skill: "patterns", Correct: true},
	})
	require.True(t, changed)
	assert.Equal(t, Stat{Correct: 1, Total: 2}, p.Performance["analogy"])
	assert.Equal(t, Stat{Correct: 1, Total: 1}, p.Performance["patterns"])

	_, changed = p.UpdatePerformance(nil)
	assert.False(t, changed)
}

func TestCounters(t *testing.T) {
	p, _ := Default().IncrementPerfectScores()
	assert.Equal(t, 1, p.PerfectScores)

	p, changed := p.AddCorrectAnswers(0)
	assert.False(t, changed)
	p, changed = p.AddCorrectAnswers(4)
	assert.True(t, changed)
	assert.Equal(t, 4, p.TotalCorrectAnswers)
}

func TestWeakSkills(t *testing.T) {
	p := Default()
	p.Performance = map[string]Stat{
		"analogy":    {Correct: 1, Total: 4},
		"sequence":   {Correct: 1, Total: 4},
		"patterns":   {Correct: 3, Total: 3},
		"fractions":  {Correct: 0, Total: 2},
		"arithmetic": {Correct: 2, Total: 5},
		"rotation":   {Correct: 2, Total: 3},
	}
	assert.Equal(t, []string{"analogy", "sequence", "arithmetic"}, p.WeakSkills(3, 3))
	assert.Empty(t, Default().WeakSkills(3, 3))

	acc, ok := p.Accuracy("analogy")
	assert.True(t, ok)
	assert.InDelta(t, 0.25, acc, 1e-9)
	_, ok = p.Accuracy("missing")
	assert.False(t, ok)
}
