package selector

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/question"
)

func mkQuestions(cat question.Category, n int, skills ...string) []question.Question {
	out := make([]question.Question, n)
	for i := range out {
		out[i] = question.Question{
			Text:         fmt.Sprintf("%s-%d", cat, i),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 0,
			Explanation:  "e",
			SubCategory:  skills[i%len(skills)],
		}
	}
	return out
}

func testPool() question.Pool {
	return question.Pool{
		question.Verbal:       mkQuestions(question.Verbal, 8, "analogy", "classification"),
		question.Quantitative: mkQuestions(question.Quantitative, 8, "arithmetic", "patterns"),
		question.NonVerbal:    mkQuestions(question.NonVerbal, 8, "rotation", "figure series"),
	}
}

func texts(qs []question.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Text
	}
	return out
}

func TestShuffleDeterministic(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	a := Shuffle(NewSeeded(42), in)
	b := Shuffle(NewSeeded(42), in)
	assert.Equal(t, a, b)
	assert.ElementsMatch(t, in, a)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, in, "input must not be modified")

	assert.Empty(t, Shuffle(NewSeeded(1), []int{}))
	assert.Equal(t, []int{7}, Shuffle(NewSeeded(1), []int{7}))
}

func TestShuffleUniform(t *testing.T) {
	s := NewSeeded(7)
	counts := map[string]int{}
	const trials = 60000
	for range trials {
		counts[fmt.Sprint(Shuffle(s, []int{1, 2, 3}))]++
	}
	require.Len(t, counts, 6)
	for perm, c := range counts {
		// Expect 10000 each; allow a wide margin.
		assert.InDelta(t, trials/6, c, 600, perm)
	}
}

func TestCategory(t *testing.T) {
	pool := testPool()
	got := Category(NewSeeded(3), pool, question.Verbal, SessionSize)
	require.Len(t, got, SessionSize)
	for _, q := range got {
		assert.Contains(t, q.Text, "verbal-")
	}
	assert.Equal(t, texts(got), texts(Category(NewSeeded(3), pool, question.Verbal, SessionSize)))

	small := question.Pool{question.Verbal: mkQuestions(question.Verbal, 2, "analogy")}
	assert.Len(t, Category(NewSeeded(3), small, question.Verbal, SessionSize), 2)

	assert.Nil(t, Category(NewSeeded(3), small, question.NonVerbal, SessionSize))
	assert.Nil(t, Category(NewSeeded(3), nil, question.Verbal, SessionSize))
}

func TestDaily(t *testing.T) {
	pool := testPool()
	all := pool.Combined()

	tests := []struct {
		day  int
		want string
	}{
		{1, all[1].Text},
		{24, all[0].Text},
		{70, all[70%24].Text},
		{366, all[366%24].Text},
	}
	for _, tt := range tests {
		got := Daily(pool, tt.day)
		require.Len(t, got, 1)
		assert.Equal(t, tt.want, got[0].Text, "day %d", tt.day)
		assert.Equal(t, got, Daily(pool, tt.day))
	}

	assert.Nil(t, Daily(question.Pool{}, 10))
	assert.Nil(t, Daily(nil, 10))
}

func TestSmartTargetsWeakSkills(t *testing.T) {
	pool := testPool()
	perf := map[string]progress.Stat{
		"analogy":    {Correct: 0, Total: 5},
		"arithmetic": {Correct: 1, Total: 4},
		"rotation":   {Correct: 4, Total: 4},
		"patterns":   {Correct: 2, Total: 2}, // too few observations
	}
	weak := map[string]bool{"analogy": true, "arithmetic": true, "rotation": true}

	for seed := uint64(0); seed < 50; seed++ {
		got := Smart(NewSeeded(seed), pool, perf, SessionSize)
		require.Len(t, got, SessionSize)

		seen := map[string]bool{}
		nWeak := 0
		for _, q := range got {
			assert.False(t, seen[q.Text], "duplicate %s", q.Text)
			seen[q.Text] = true
			if weak[q.SubCategory] {
				nWeak++
			}
		}
		assert.GreaterOrEqual(t, nWeak, MaxWeakQuestions)
	}
}

func TestSmartDeterministic(t *testing.T) {
	pool := testPool()
	perf := map[string]progress.Stat{"analogy": {Correct: 1, Total: 3}}
	a := Smart(NewSeeded(99), pool, perf, SessionSize)
	b := Smart(NewSeeded(99), pool, perf, SessionSize)
	assert.Equal(t, texts(a), texts(b))
}

func TestSmartWithoutHistory(t *testing.T) {
	got := Smart(NewSeeded(5), testPool(), nil, SessionSize)
	assert.Len(t, got, SessionSize)
}

func TestSmartSmallPoolFallsBack(t *testing.T) {
	pool := question.Pool{question.Verbal: mkQuestions(question.Verbal, 3, "analogy")}
	perf := map[string]progress.Stat{"analogy": {Correct: 0, Total: 3}}
	got := Smart(NewSeeded(5), pool, perf, SessionSize)
	assert.ElementsMatch(t, texts(pool.Combined()), texts(got))
}

func TestSmartDedupsByText(t *testing.T) {
	dup := mkQuestions(question.Verbal, 6, "analogy")
	pool := question.Pool{
		question.Verbal:       dup,
		question.Quantitative: dup[:3],
	}
	perf := map[string]progress.Stat{"analogy": {Correct: 0, Total: 3}}
	for seed := uint64(0); seed < 20; seed++ {
		got := Smart(NewSeeded(seed), pool, perf, SessionSize)
		require.Len(t, got, SessionSize)
		seen := map[string]bool{}
		for _, q := range got {
			require.False(t, seen[q.Text])
			seen[q.Text] = true
		}
	}
}

func TestSmartEmptyPool(t *testing.T) {
	assert.Nil(t, Smart(NewSeeded(1), question.Pool{}, nil, SessionSize))
}

func TestCanSmart(t *testing.T) {
	assert.False(t, CanSmart(nil))
	assert.False(t, CanSmart(map[string]progress.Stat{"a": {Correct: 1, Total: 2}}))
	assert.True(t, CanSmart(map[string]progress.Stat{"a": {Correct: 1, Total: 3}}))
}
