package quiz

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparky/internal/practice/practicetest"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screens/results"
	"github.com/abhisek/sparky/internal/session"
)

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func started(t *testing.T, mode session.Mode) (*QuizScreen, *practicetest.Fixture) {
	t.Helper()
	f := practicetest.WithGrade(t, 4)
	q := New(context.Background(), f.Service, mode)
	q.Update(q.loadPool()())
	require.Equal(t, phaseAnswering, q.phase, q.errMsg)
	require.NotNil(t, q.sess)
	return q, f
}

func TestPlayThroughPerfectQuiz(t *testing.T) {
	q, f := started(t, session.ModeQuantitative)

	var cmd tea.Cmd
	for q.phase != phaseFinishing {
		require.Equal(t, phaseAnswering, q.phase)
		correct := rune('a' + q.sess.Question().CorrectIndex)
		q.Update(key(correct))
		require.Equal(t, phaseFeedback, q.phase)
		assert.Contains(t, q.View(100, 40), "Correct!")

		_, cmd = q.Update(enter)
	}
	require.NotNil(t, cmd)

	_, cmd = q.Update(cmd())
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &results.ResultsScreen{}, msg.Screen)

	p := f.Service.Profile()
	assert.Equal(t, 1, p.QuizCompletions[session.ModeQuantitative])
	assert.Equal(t, 1, p.PerfectScores)
	assert.Equal(t, q.sess.Len(), p.TotalCorrectAnswers)
}

func TestWrongAnswerShowsCorrectOne(t *testing.T) {
	q, _ := started(t, session.ModeVerbal)
	wrong := (q.sess.Question().CorrectIndex + 1) % len(q.sess.Question().Options)

	q.Update(key(rune('a' + wrong)))
	require.Equal(t, phaseFeedback, q.phase)
	view := q.View(100, 40)
	assert.Contains(t, view, "Not quite")
	assert.Contains(t, view, "The answer is")

	q.Update(key('a'))
	assert.Equal(t, phaseFeedback, q.phase, "letters are ignored during feedback")
	assert.Equal(t, 0, q.sess.Score())
}

func TestQuitConfirm(t *testing.T) {
	q, f := started(t, session.ModeNonVerbal)
	id := q.sess.ID

	q.Update(esc)
	assert.True(t, q.confirmQuit)
	assert.Contains(t, q.View(100, 40), "Stop this quiz?")

	q.Update(key('n'))
	assert.False(t, q.confirmQuit)

	q.Update(esc)
	_, cmd := q.Update(key('y'))
	require.NotNil(t, cmd)
	_, cmd = q.Update(cmd())
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	_, running := f.Service.Session(id)
	assert.False(t, running)
	assert.Zero(t, f.Service.Profile().TotalCompletions())
}

func TestStartFailureGoesBack(t *testing.T) {
	f := practicetest.New(t)
	q := New(context.Background(), f.Service, session.ModeVerbal)

	q.Update(q.loadPool()())
	require.Equal(t, phaseError, q.phase)
	assert.Contains(t, q.View(100, 40), "Oops!")

	_, cmd := q.Update(key('x'))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestLeavingWhileLoading(t *testing.T) {
	f := practicetest.WithGrade(t, 4)
	q := New(context.Background(), f.Service, session.ModeVerbal)

	_, cmd := q.Update(esc)
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
