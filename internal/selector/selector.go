package selector

import (
	"slices"

	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/question"
)

const (
	// SessionSize is the default number of questions in a practice session.
	SessionSize = 5
	// MinObservations is how often a skill must have been seen before its
	// accuracy is trusted.
	MinObservations = 3
	// WeakSkillCount is how many of the weakest skills smart practice targets.
	WeakSkillCount = 3
	// MaxWeakQuestions caps the weak-skill questions in one smart session.
	MaxWeakQuestions = 3
)

// Category returns n shuffled questions from one category of pool, or
// fewer when the category is smaller. It returns nil when the category
// is empty.
func Category(s *Shuffler, pool question.Pool, cat question.Category, n int) []question.Question {
	qs := uniqueByText(pool.Get(cat))
	if len(qs) == 0 || n <= 0 {
		return nil
	}
	return head(Shuffle(s, qs), n)
}

// Daily picks the day's puzzle: the question at dayOfYear mod the combined
// pool length. The result is the same for everyone holding the same pool
// on the same day. It returns nil for an empty pool.
func Daily(pool question.Pool, dayOfYear int) []question.Question {
	all := pool.Combined()
	if len(all) == 0 {
		return nil
	}
	i := dayOfYear % len(all)
	if i < 0 {
		i += len(all)
	}
	return []question.Question{all[i]}
}

// Smart builds a weakness-targeted session of n questions. Up to
// MaxWeakQuestions come from the WeakSkillCount lowest-accuracy skills
// (with at least MinObservations answers each); the rest are drawn at
// random from the whole pool. When that falls short of n the partial
// selection is dropped and n random questions are used instead. The final
// order is shuffled. Question texts are never repeated.
func Smart(s *Shuffler, pool question.Pool, perf map[string]progress.Stat, n int) []question.Question {
	all := uniqueByText(pool.Combined())
	if len(all) == 0 || n <= 0 {
		return nil
	}

	var picked []question.Question
	weak := progress.WeakSkills(perf, MinObservations, WeakSkillCount)
	if len(weak) > 0 {
		var candidates []question.Question
		for _, q := range all {
			if slices.Contains(weak, q.SubCategory) {
				candidates = append(candidates, q)
			}
		}
		picked = head(Shuffle(s, candidates), min(MaxWeakQuestions, n))
	}

	chosen := make(map[string]bool, n)
	for _, q := range picked {
		chosen[q.Text] = true
	}
	var rest []question.Question
	for _, q := range all {
		if !chosen[q.Text] {
			rest = append(rest, q)
		}
	}
	picked = append(picked, head(Shuffle(s, rest), n-len(picked))...)

	if len(picked) < n {
		return head(Shuffle(s, all), n)
	}
	return Shuffle(s, picked)
}

// CanSmart reports whether perf has any skill with enough observations
// for smart practice to target.
func CanSmart(perf map[string]progress.Stat) bool {
	return len(progress.WeakSkills(perf, MinObservations, 1)) > 0
}

func head[T any](in []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(in) > n {
		return in[:n]
	}
	return in
}

// uniqueByText drops later questions whose text repeats an earlier one.
func uniqueByText(qs []question.Question) []question.Question {
	seen := make(map[string]bool, len(qs))
	out := make([]question.Question, 0, len(qs))
	for _, q := range qs {
		if seen[q.Text] {
			continue
		}
		seen[q.Text] = true
		out = append(out, q)
	}
	return out
}
