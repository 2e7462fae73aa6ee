package results

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparky/internal/achievements"
	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/practice/practicetest"
	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screens/tutor"
	"github.com/abhisek/sparky/internal/session"
)

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func outcome() practice.Outcome {
	q := func(text string) question.Question {
		return question.Question{
			Text:         text,
			Options:      []string{"cat", "dog", "fish", "bird"},
			CorrectIndex: 1,
			Explanation:  "dogs bark",
			SubCategory:  "analogy",
		}
	}
	return practice.Outcome{
		Result: session.Result{
			ID:        "s1",
			Mode:      session.ModeVerbal,
			Questions: []question.Question{q("Which barks?"), q("Which one woofs?"), q("Who fetches?")},
			Answers: []session.Answer{
				{QuestionIndex: 0, ChosenIndex: 1, Correct: true},
				{QuestionIndex: 1, ChosenIndex: 2, Correct: false},
				{QuestionIndex: 2, ChosenIndex: 0, Correct: false},
			},
			Score:    1,
			Total:    3,
			Duration: 95 * time.Second,
		},
		NewAchievements: []achievements.Achievement{{ID: "first_quiz", Name: "First Steps", Icon: "🎉"}},
	}
}

func TestView(t *testing.T) {
	f := practicetest.WithGrade(t, 4)
	r := New(context.Background(), f.Service, outcome(), "")

	view := r.View(100, 40)
	assert.Contains(t, view, "You got 1 out of 3")
	assert.Contains(t, view, "Time: 1:35")
	assert.Contains(t, view, "First Steps")
	assert.NotContains(t, view, "Perfect score")
	assert.Equal(t, []int{1, 2}, r.missed)
}

func TestTutorOpensForSelectedMiss(t *testing.T) {
	f := practicetest.WithGrade(t, 4)
	r := New(context.Background(), f.Service, outcome(), "")

	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, r.selected)
	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, r.selected, "selection stays on the last miss")

	_, cmd := r.Update(key('t'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &tutor.TutorScreen{}, msg.Screen)
}

func TestPerfectQuizHasNoTutor(t *testing.T) {
	f := practicetest.WithGrade(t, 4)
	out := outcome()
	out.Result.Answers = out.Result.Answers[:1]
	out.Result.Questions = out.Result.Questions[:1]
	out.Result.Total = 1
	out.Perfect = true
	r := New(context.Background(), f.Service, out, "could not save")

	view := r.View(100, 40)
	assert.Contains(t, view, "Perfect score")
	assert.Contains(t, view, "could not save")

	_, cmd := r.Update(key('t'))
	assert.Nil(t, cmd)

	_, cmd = r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
