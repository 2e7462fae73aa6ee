package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/session"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 13, c.Len())

	ids := make([]string, 0, c.Len())
	for _, a := range c.All() {
		assert.NotEmpty(t, a.Name, a.ID)
		assert.NotEmpty(t, a.Description, a.ID)
		assert.NotEmpty(t, a.Icon, a.ID)
		ids = append(ids, a.ID)
	}
	// Every rule has a catalog entry, in the same order.
	ruleIDs := make([]string, len(rules))
	for i, r := range rules {
		ruleIDs[i] = r.id
	}
	assert.Equal(t, ruleIDs, ids)

	a, ok := c.Get(Verbal10)
	require.True(t, ok)
	assert.Equal(t, "Verbal Virtuoso", a.Name)
	_, ok = c.Get("nope")
	assert.False(t, ok)
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("- id: a\n  name: A\n- id: a\n  name: B\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("- name: nameless\n"))
	assert.Error(t, err)
}

func TestSortAndResolve(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{FirstQuiz, Verbal10, Brainiac100}, c.Sort([]string{Brainiac100, "bogus", Verbal10, FirstQuiz}))
	got := c.Resolve([]string{PerfectScore, "bogus"})
	require.Len(t, got, 1)
	assert.Equal(t, "🎯", got[0].Icon)
}

func profileWith(fn func(*progress.Profile)) progress.Profile {
	p := progress.Default()
	fn(&p)
	return p
}

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name    string
		profile progress.Profile
		trigger Trigger
		want    []string
	}{
		{"nothing", progress.Default(), Trigger{}, nil},
		{"streak 4", profileWith(func(p *progress.Profile) { p.CurrentStreak = 4 }), Trigger{}, nil},
		{"streak 5", profileWith(func(p *progress.Profile) { p.CurrentStreak = 5 }), Trigger{}, []string{Streak5}},
		{"streak 30", profileWith(func(p *progress.Profile) { p.CurrentStreak = 30 }), Trigger{}, []string{Streak5, Streak15, Streak30}},
		{"quant 10", profileWith(func(p *progress.Profile) { p.QuizCompletions[session.ModeQuantitative] = 10 }), Trigger{}, []string{Quant10}},
		{"non-verbal 9", profileWith(func(p *progress.Profile) { p.QuizCompletions[session.ModeNonVerbal] = 9 }), Trigger{}, nil},
		{"smart once", profileWith(func(p *progress.Profile) { p.QuizCompletions[session.ModeSmart] = 1 }), Trigger{}, []string{SmartLearner}},
		{"total 25", profileWith(func(p *progress.Profile) {
			p.QuizCompletions[session.ModeVerbal] = 8
			p.QuizCompletions[session.ModeQuantitative] = 8
			p.QuizCompletions[session.ModeCreative] = 9
		}), Trigger{}, []string{Practice25}},
		{"perfect x5", profileWith(func(p *progress.Profile) { p.PerfectScores = 5 }), Trigger{}, []string{QuizWhiz}},
		{"100 correct", profileWith(func(p *progress.Profile) { p.TotalCorrectAnswers = 100 }), Trigger{}, []string{Brainiac100}},
		{"first quiz", progress.Default(), Trigger{PracticeCompleted: true}, []string{FirstQuiz}},
		{"second quiz", progress.Default(), Trigger{PracticeCompleted: true, PriorCompletions: 1}, nil},
		{"perfect needs practice", progress.Default(), Trigger{Perfect: true, PriorCompletions: 3}, nil},
		{"daily", progress.Default(), Trigger{DailySolved: true}, []string{DailyPuzzle}},
		{"already unlocked", profileWith(func(p *progress.Profile) {
			p.CurrentStreak = 6
			p.UnlockedAchievements = []string{Streak5}
		}), Trigger{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.profile, tt.trigger))
		})
	}
}

func TestEvaluateTenthVerbalPerfect(t *testing.T) {
	p := progress.Default()
	p.QuizCompletions[session.ModeVerbal] = 9
	prior := p.TotalCompletions()

	p, _ = p.AddCorrectAnswers(5)
	p, _ = p.AddQuizCompletion(session.ModeVerbal)
	p, _ = p.IncrementPerfectScores()

	got := Evaluate(p, Trigger{PracticeCompleted: true, PriorCompletions: prior, Perfect: true})
	assert.Equal(t, []string{PerfectScore, Verbal10}, got)
	assert.Equal(t, 10, p.QuizCompletions[session.ModeVerbal])
	assert.Equal(t, 1, p.PerfectScores)
}

func TestEvaluateIdempotent(t *testing.T) {
	p := profileWith(func(p *progress.Profile) {
		p.CurrentStreak = 16
		p.PerfectScores = 5
		p.QuizCompletions[session.ModeSmart] = 2
	})
	trig := Trigger{PracticeCompleted: true, Perfect: true}

	first := Evaluate(p, trig)
	require.NotEmpty(t, first)
	p, changed := p.AddAchievements(first)
	require.True(t, changed)

	assert.Empty(t, Evaluate(p, trig))
	assert.Empty(t, Evaluate(p, Trigger{}))
}
