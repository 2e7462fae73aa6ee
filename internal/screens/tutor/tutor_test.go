package tutor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/practice/practicetest"
	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/router"
)

func missed() question.Question {
	return question.Question{
		Text:         "Which one barks?",
		Options:      []string{"cat", "dog", "fish", "bird"},
		CorrectIndex: 1,
		Explanation:  "Dogs bark.",
		SubCategory:  "classification",
	}
}

func TestConversation(t *testing.T) {
	f := practicetest.WithGrade(t, 4)
	s := New(context.Background(), f.Service, missed(), 0)
	assert.True(t, s.waiting)

	s.Update(s.ask()())
	require.Len(t, s.history, 1)
	assert.Equal(t, contentgen.SpeakerTutor, s.history[0].Speaker)
	assert.Contains(t, s.history[0].Text, "Sparky")

	s.input.Model.SetValue("   ")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd, "blank messages are not sent")

	s.input.Model.SetValue("why is it dog?")
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, s.waiting)
	assert.Empty(t, s.input.Value())
	require.Len(t, s.history, 2)
	assert.Equal(t, contentgen.SpeakerStudent, s.history[1].Speaker)

	s.Update(cmd())
	require.Len(t, s.history, 3)
	assert.Contains(t, s.history[2].Text, `"dog"`)

	view := s.View(100, 40)
	assert.Contains(t, view, "Which one barks?")
	assert.Contains(t, view, "why is it dog?")
}

func TestSendWhileWaiting(t *testing.T) {
	f := practicetest.WithGrade(t, 4)
	s := New(context.Background(), f.Service, missed(), 2)

	s.input.Model.SetValue("hello")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, s.history)
}

func TestEscGoesBack(t *testing.T) {
	f := practicetest.WithGrade(t, 4)
	s := New(context.Background(), f.Service, missed(), 0)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
