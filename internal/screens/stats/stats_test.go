package stats

import (
	"context"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparky/internal/practice/practicetest"
	"github.com/abhisek/sparky/internal/router"
)

func TestSkillsAndBadges(t *testing.T) {
	f := practicetest.WithGrade(t, 6)
	s := New(context.Background(), f.Service)

	view := s.View(100, 60)
	assert.Contains(t, view, "day streak")
	assert.Contains(t, view, "not tried yet")
	assert.Contains(t, view, "looking at your results")

	s.Update(s.Init()())
	assert.False(t, s.loading)
	assert.Contains(t, s.View(100, 60), "just getting started")

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	require.Equal(t, tabBadges, s.tab)
	view = s.View(100, 60)
	assert.Contains(t, view, fmt.Sprintf("0 of %d badges unlocked", f.Service.Catalog().Len()))
	assert.Contains(t, view, "🔒")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
