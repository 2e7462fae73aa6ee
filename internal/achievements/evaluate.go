package achievements

import (
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/session"
)

// Achievement ids.
const (
	FirstQuiz    = "first_quiz"
	PerfectScore = "perfect_score"
	DailyPuzzle  = "daily_puzzle"
	SmartLearner = "smart_learner"
	Streak5      = "streak_5"
	Streak15     = "streak_15"
	Streak30     = "streak_30"
	Verbal10     = "verbal_10"
	Quant10      = "quant_10"
	NonVerbal10  = "nonverbal_10"
	QuizWhiz     = "quiz_whiz"
	Practice25   = "practice_25"
	Brainiac100  = "brainiac_100"
)

// Thresholds.
const (
	CategoryCompletions = 10
	TotalCompletions    = 25
	PerfectSessions     = 5
	CorrectAnswers      = 100
)

// Trigger describes the activity that just finished. The zero Trigger
// checks profile thresholds only.
type Trigger struct {
	// PracticeCompleted is set when a practice session (any mode except the
	// daily puzzle) was just completed.
	PracticeCompleted bool
	// PriorCompletions is the total completion count before this session.
	PriorCompletions int
	// Perfect is set when every answer in the practice session was correct.
	Perfect bool
	// DailySolved is set when the daily puzzle was just answered correctly.
	DailySolved bool
}

type rule struct {
	id   string
	earn func(p progress.Profile, t Trigger) bool
}

// rules are listed in catalog order.
var rules = []rule{
	{FirstQuiz, func(_ progress.Profile, t Trigger) bool {
		return t.PracticeCompleted && t.PriorCompletions == 0
	}},
	{PerfectScore, func(_ progress.Profile, t Trigger) bool {
		return t.PracticeCompleted && t.Perfect
	}},
	{DailyPuzzle, func(_ progress.Profile, t Trigger) bool { return t.DailySolved }},
	{SmartLearner, func(p progress.Profile, _ Trigger) bool {
		return p.QuizCompletions[session.ModeSmart] >= 1
	}},
	{Streak5, streakAtLeast(5)},
	{Streak15, streakAtLeast(15)},
	{Streak30, streakAtLeast(30)},
	{Verbal10, completionsAtLeast(session.ModeVerbal)},
	{Quant10, completionsAtLeast(session.ModeQuantitative)},
	{NonVerbal10, completionsAtLeast(session.ModeNonVerbal)},
	{QuizWhiz, func(p progress.Profile, _ Trigger) bool { return p.PerfectScores >= PerfectSessions }},
	{Practice25, func(p progress.Profile, _ Trigger) bool { return p.TotalCompletions() >= TotalCompletions }},
	{Brainiac100, func(p progress.Profile, _ Trigger) bool { return p.TotalCorrectAnswers >= CorrectAnswers }},
}

func streakAtLeast(n int) func(progress.Profile, Trigger) bool {
	return func(p progress.Profile, _ Trigger) bool { return p.CurrentStreak >= n }
}

func completionsAtLeast(m session.Mode) func(progress.Profile, Trigger) bool {
	return func(p progress.Profile, _ Trigger) bool { return p.QuizCompletions[m] >= CategoryCompletions }
}

// Evaluate returns the ids newly earned by p after the activity described
// by t, in catalog order. Ids already unlocked in p are never returned, so
// running it again after the ids are added yields nothing.
func Evaluate(p progress.Profile, t Trigger) []string {
	var out []string
	for _, r := range rules {
		if p.HasAchievement(r.id) {
			continue
		}
		if r.earn(p, t) {
			out = append(out, r.id)
		}
	}
	return out
}
