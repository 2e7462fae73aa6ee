package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparky/internal/achievements"
	"github.com/abhisek/sparky/internal/clock"
	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/metrics"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/qcache"
	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/selector"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/store"
)

type fakeGen struct {
	pool     question.Pool
	fetchErr error
	textErr  error
	fetches  atomic.Int32
}

func (f *fakeGen) GenerateQuestions(_ context.Context, cat question.Category, _ difficulty.Level, _ int) ([]question.Question, error) {
	f.fetches.Add(1)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.pool.Clone().Get(cat), nil
}

func (f *fakeGen) GeneratePrompt(context.Context, int) (string, error) {
	if f.textErr != nil {
		return "", f.textErr
	}
	return "Imagine a cloud that can talk. What does it say?", nil
}

func (f *fakeGen) EvaluateOpenAnswer(_ context.Context, _, answer string, _ int) (string, error) {
	if f.textErr != nil {
		return "", f.textErr
	}
	return "Love it: " + answer, nil
}

func (f *fakeGen) Tutor(_ context.Context, in contentgen.TutorInput) (string, error) {
	if f.textErr != nil {
		return "", f.textErr
	}
	return fmt.Sprintf("turn %d for grade %d", len(in.History), in.Grade), nil
}

func (f *fakeGen) ProgressSummary(context.Context, map[string]progress.Stat, int) (string, error) {
	return "keep going", nil
}

func testPool() question.Pool {
	pool := question.Pool{}
	for _, cat := range question.Categories() {
		tags := cat.SkillTags()
		qs := make([]question.Question, 8)
		for i := range qs {
			qs[i] = question.Question{
				Text:         fmt.Sprintf("%s question %d", cat, i),
				Options:      []string{"right", "wrong 1", "wrong 2", "wrong 3"},
				CorrectIndex: 0,
				Explanation:  "the first option is right",
				SubCategory:  tags[i%len(tags)],
			}
		}
		pool[cat] = qs
	}
	return pool
}

type fixture struct {
	svc    *Service
	gen    *fakeGen
	kv     *store.MemoryKV
	clk    *clock.Fixed
	events store.EventRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open("file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	f := &fixture{
		gen:    &fakeGen{pool: testPool()},
		kv:     store.NewMemoryKV(),
		clk:    &clock.Fixed{T: time.Date(2024, time.April, 15, 16, 0, 0, 0, time.UTC)},
		events: st.EventRepo(),
	}
	cache := qcache.New(f.kv, f.clk, "")
	loader := qcache.NewLoader(cache, func(ctx context.Context, level difficulty.Level, grade int) (question.Pool, error) {
		return contentgen.GeneratePool(ctx, f.gen, level, grade)
	}, nil)
	f.svc = New(Options{
		Progress:  progress.Load(context.Background(), f.kv, f.clk),
		Loader:    loader,
		Generator: f.gen,
		Shuffler:  selector.NewSeeded(1),
		Clock:     f.clk,
		Events:    f.events,
		Metrics:   metrics.New(),
	})
	return f
}

func (f *fixture) ready(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.SetGrade(ctx, 4)
	require.NoError(t, err)
	_, err = f.svc.LoadPool(ctx)
	require.NoError(t, err)
}

// play answers every question, correctly for the indexes in right.
func play(t *testing.T, sess *session.Session, right func(i int) bool) {
	t.Helper()
	for i := range sess.Len() {
		choice := 1
		if right(i) {
			choice = sess.Questions[i].CorrectIndex
		}
		require.True(t, sess.Submit(i, choice))
		require.True(t, sess.Advance())
	}
}

func allRight(int) bool { return true }

func TestStartPreconditions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Start(ctx, session.ModeVerbal)
	assert.ErrorIs(t, err, ErrGradeNotSet)
	_, err = f.svc.LoadPool(ctx)
	assert.ErrorIs(t, err, ErrGradeNotSet)

	_, err = f.svc.SetGrade(ctx, 4)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, session.ModeVerbal)
	assert.ErrorIs(t, err, ErrNoPool)

	_, err = f.svc.LoadPool(ctx)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, session.ModeCreative)
	assert.ErrorIs(t, err, ErrOpenEnded)
}

func TestLoadPoolUsesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)
	assert.Equal(t, int32(3), f.gen.fetches.Load())
	_, cached, err := f.kv.Get(ctx, "sparkyDailyQuestions-v4-4-easy")
	require.NoError(t, err)
	assert.True(t, cached)

	_, err = f.svc.LoadPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(3), f.gen.fetches.Load())

	f.clk.AddDays(1)
	_, ok := f.svc.Pool()
	assert.False(t, ok, "pool must expire with the day")
	_, err = f.svc.LoadPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(6), f.gen.fetches.Load())
}

func TestLoadPoolFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.gen.fetchErr = errors.New("offline")
	_, err := f.svc.SetGrade(ctx, 4)
	require.NoError(t, err)

	_, err = f.svc.LoadPool(ctx)
	var fe *contentgen.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe.Categories, 3)

	_, err = f.svc.Start(ctx, session.ModeVerbal)
	assert.ErrorIs(t, err, ErrNoPool)
}

func TestCompletePracticeSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)

	sess, err := f.svc.Start(ctx, session.ModeVerbal)
	require.NoError(t, err)
	require.Equal(t, selector.SessionSize, sess.Len())
	for _, q := range sess.Questions {
		assert.True(t, question.Verbal.AllowsSkill(q.SubCategory))
	}

	play(t, sess, allRight)
	out, err := f.svc.Complete(ctx, sess)
	require.NoError(t, err)

	assert.Equal(t, 5, out.Result.Score)
	assert.Equal(t, 1, out.Profile.QuizCompletions[session.ModeVerbal])
	assert.Equal(t, 1, out.Profile.PerfectScores)
	assert.Equal(t, 5, out.Profile.TotalCorrectAnswers)
	ids := make([]string, len(out.NewAchievements))
	for i, a := range out.NewAchievements {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{achievements.FirstQuiz, achievements.PerfectScore}, ids)

	total := 0
	for _, s := range out.Profile.Performance {
		total += s.Total
	}
	assert.Equal(t, 5, total)

	// Persisted as it was reported.
	reloaded := progress.Load(ctx, f.kv, f.clk).Profile()
	assert.Equal(t, out.Profile, reloaded)

	events, err := f.svc.History(ctx, store.QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, store.SessionCompleted, events[0].Action)
	assert.Equal(t, 5, events[0].Correct)
}

func TestTenthVerbalPerfect(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)
	_, err := f.svc.progress.Update(ctx, func(p progress.Profile) (progress.Profile, bool) {
		p.QuizCompletions[session.ModeVerbal] = 9
		p.UnlockedAchievements = []string{achievements.FirstQuiz}
		return p, true
	})
	require.NoError(t, err)

	sess, err := f.svc.Start(ctx, session.ModeVerbal)
	require.NoError(t, err)
	play(t, sess, allRight)
	out, err := f.svc.Complete(ctx, sess)
	require.NoError(t, err)

	assert.Equal(t, 10, out.Profile.QuizCompletions[session.ModeVerbal])
	assert.Equal(t, 1, out.Profile.PerfectScores)
	assert.ElementsMatch(t,
		[]string{achievements.FirstQuiz, achievements.PerfectScore, achievements.Verbal10},
		out.Profile.UnlockedAchievements)
	require.Len(t, out.NewAchievements, 2)
}

func TestShortSessionIsNotPerfect(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.gen.pool[question.Verbal] = f.gen.pool[question.Verbal][:2]
	f.ready(t)

	sess, err := f.svc.Start(ctx, session.ModeVerbal)
	require.NoError(t, err)
	require.Equal(t, 2, sess.Len())
	play(t, sess, allRight)
	out, err := f.svc.Complete(ctx, sess)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Result.Score)
	assert.False(t, out.Perfect)
	assert.Equal(t, 0, out.Profile.PerfectScores)
	assert.Equal(t, []string{achievements.FirstQuiz}, out.Profile.UnlockedAchievements)
}

func TestImperfectSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)

	sess, err := f.svc.Start(ctx, session.ModeQuantitative)
	require.NoError(t, err)
	play(t, sess, func(i int) bool { return i%2 == 0 })
	out, err := f.svc.Complete(ctx, sess)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Result.Score)
	assert.Equal(t, 0, out.Profile.PerfectScores)
	assert.Equal(t, 3, out.Profile.TotalCorrectAnswers)
}

func TestDailyPuzzle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)

	sess, err := f.svc.Start(ctx, session.ModeDaily)
	require.NoError(t, err)
	require.Equal(t, 1, sess.Len())
	want := f.mustPool(t).Combined()[clock.DayOfYear(f.clk.Now())%24]
	assert.Equal(t, want.Text, sess.Questions[0].Text)

	play(t, sess, allRight)
	out, err := f.svc.Complete(ctx, sess)
	require.NoError(t, err)

	assert.True(t, out.DailySolved)
	assert.Equal(t, 1, out.Profile.CurrentStreak)
	assert.Equal(t, "2024-04-15", out.Profile.LastCompletedDate)
	assert.Equal(t, 0, out.Profile.TotalCompletions(), "daily puzzles are not practice")
	assert.Empty(t, out.Profile.Performance)
	require.Len(t, out.NewAchievements, 1)
	assert.Equal(t, achievements.DailyPuzzle, out.NewAchievements[0].ID)

	assert.True(t, f.svc.DailyDone())
	_, err = f.svc.Start(ctx, session.ModeDaily)
	assert.ErrorIs(t, err, ErrDailyDone)
}

func (f *fixture) mustPool(t *testing.T) question.Pool {
	t.Helper()
	p, ok := f.svc.Pool()
	require.True(t, ok)
	return p
}

func TestDailyPuzzleWrongAnswer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)
	before := f.svc.Profile()

	sess, err := f.svc.Start(ctx, session.ModeDaily)
	require.NoError(t, err)
	play(t, sess, func(int) bool { return false })
	out, err := f.svc.Complete(ctx, sess)
	require.NoError(t, err)

	assert.False(t, out.DailySolved)
	assert.Empty(t, out.NewAchievements)
	assert.Equal(t, before, out.Profile)
	assert.False(t, f.svc.DailyDone())
}

func TestStreakAchievementFromDaily(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)
	_, err := f.svc.progress.Update(ctx, func(p progress.Profile) (progress.Profile, bool) {
		p.CurrentStreak, p.BestStreak = 4, 4
		p.LastCompletedDate = "2024-04-14"
		p.UnlockedAchievements = []string{achievements.DailyPuzzle}
		return p, true
	})
	require.NoError(t, err)

	sess, err := f.svc.Start(ctx, session.ModeDaily)
	require.NoError(t, err)
	play(t, sess, allRight)
	out, err := f.svc.Complete(ctx, sess)
	require.NoError(t, err)

	assert.Equal(t, 5, out.Profile.CurrentStreak)
	assert.Equal(t, 5, out.Profile.BestStreak)
	require.Len(t, out.NewAchievements, 1)
	assert.Equal(t, achievements.Streak5, out.NewAchievements[0].ID)
	assert.Equal(t, difficulty.Medium, f.svc.Level())
}

func TestAbandonLeavesProfileAlone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)
	before := f.svc.Profile()

	sess, err := f.svc.Start(ctx, session.ModeNonVerbal)
	require.NoError(t, err)
	require.True(t, sess.Submit(0, 0))
	require.True(t, sess.Advance())

	_, err = f.svc.Complete(ctx, sess)
	assert.ErrorIs(t, err, ErrSessionRunning)

	require.NoError(t, f.svc.Abandon(ctx, sess.ID))
	assert.Equal(t, before, f.svc.Profile())
	assert.ErrorIs(t, f.svc.Abandon(ctx, sess.ID), ErrUnknownSession)

	events, err := f.svc.History(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, store.SessionAbandoned, events[0].Action)
}

func TestCompleteOnlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)

	sess, err := f.svc.Start(ctx, session.ModeVerbal)
	require.NoError(t, err)
	play(t, sess, allRight)
	_, err = f.svc.Complete(ctx, sess)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, sess)
	assert.ErrorIs(t, err, ErrUnknownSession)
	assert.Equal(t, 1, f.svc.Profile().QuizCompletions[session.ModeVerbal])
}

func TestSmartPractice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)
	assert.False(t, f.svc.CanSmart())

	_, err := f.svc.progress.UpdatePerformance(ctx, []session.SkillUpdate{
		{Skill: "word problem", Correct: false},
		{Skill: "word problem", Correct: false},
		{Skill: "word problem", Correct: true},
	})
	require.NoError(t, err)
	assert.True(t, f.svc.CanSmart())

	sess, err := f.svc.Start(ctx, session.ModeSmart)
	require.NoError(t, err)
	require.Equal(t, selector.SessionSize, sess.Len())
	weak := 0
	for _, q := range sess.Questions {
		if q.SubCategory == "word problem" {
			weak++
		}
	}
	assert.Equal(t, 3, weak)

	play(t, sess, allRight)
	out, err := f.svc.Complete(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Profile.QuizCompletions[session.ModeSmart])
	assert.True(t, out.Profile.HasAchievement(achievements.SmartLearner))
}

func TestCreative(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)

	prompt, err := f.svc.StartCreative(ctx)
	require.NoError(t, err)

	_, err = f.svc.SubmitCreative(ctx, prompt, "   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	out, err := f.svc.SubmitCreative(ctx, prompt, "It says hello!")
	require.NoError(t, err)
	assert.Equal(t, "Love it: It says hello!", out.Feedback)
	assert.Equal(t, 1, out.Profile.QuizCompletions[session.ModeCreative])
	require.Len(t, out.NewAchievements, 1)
	assert.Equal(t, achievements.FirstQuiz, out.NewAchievements[0].ID)
}

func TestCreativeFailureLeavesProfileAlone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)
	before := f.svc.Profile()

	f.gen.textErr = errors.New("rate limited")
	_, err := f.svc.StartCreative(ctx)
	assert.Error(t, err)
	_, err = f.svc.SubmitCreative(ctx, "prompt", "answer")
	assert.Error(t, err)
	assert.Equal(t, before, f.svc.Profile())
}

func TestTutorAndSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)
	q := f.mustPool(t).Get(question.Verbal)[0]

	reply, err := f.svc.Tutor(ctx, q, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, "turn 0 for grade 4", reply)

	summary, err := f.svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, contentgen.EmptySummary, summary)

	_, err = f.svc.progress.UpdatePerformance(ctx, []session.SkillUpdate{{Skill: "analogy", Correct: true}})
	require.NoError(t, err)
	summary, err = f.svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "keep going", summary)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ready(t)

	require.NoError(t, f.svc.Reset(ctx))
	assert.False(t, f.svc.Profile().HasGrade())
	keys, err := f.kv.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestReport(t *testing.T) {
	p := progress.Default()
	p.Performance["analogy"] = progress.Stat{Correct: 2, Total: 3}
	r := Report(p)
	require.Len(t, r, 3)
	assert.Equal(t, question.Verbal, r[0].Category)
	assert.Equal(t, "analogy", r[0].Skills[0].Skill)
	assert.True(t, r[0].Skills[0].Seen())
	assert.False(t, r[0].Skills[1].Seen())
}
