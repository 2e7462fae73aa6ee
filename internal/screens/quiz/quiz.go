// Package quiz plays one multiple-choice session.
package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screen"
	"github.com/abhisek/sparky/internal/screens/results"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/ui/components"
	"github.com/abhisek/sparky/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseFeedback
	phaseFinishing
	phaseError
)

// QuizScreen implements screen.Screen for a running quiz.
type QuizScreen struct {
	ctx  context.Context
	svc  *practice.Service
	mode session.Mode

	phase       phase
	sess        *session.Session
	choice      components.MultiChoice
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for mode. The session starts once the pool is
// loaded.
func New(ctx context.Context, svc *practice.Service, mode session.Mode) *QuizScreen {
	return &QuizScreen{ctx: ctx, svc: svc, mode: mode}
}

func (q *QuizScreen) Init() tea.Cmd {
	return q.loadPool()
}

func (q *QuizScreen) Title() string { return q.mode.DisplayName() }

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case q.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case q.phase == phaseAnswering:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "A-D", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case q.phase == phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	case q.phase == phaseError:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

// loadPool fetches today's pool off the UI loop.
func (q *QuizScreen) loadPool() tea.Cmd {
	ctx, svc := q.ctx, q.svc
	return func() tea.Msg {
		_, err := svc.LoadPool(ctx)
		return poolLoadedMsg{Err: err}
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case poolLoadedMsg:
		return q.handlePoolLoaded(msg)
	case completedMsg:
		return q.handleCompleted(msg)
	case abandonedMsg:
		return q, router.PopCmd
	case tea.KeyPressMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handlePoolLoaded(msg poolLoadedMsg) (screen.Screen, tea.Cmd) {
	if q.phase != phaseLoading {
		return q, nil
	}
	if msg.Err != nil {
		return q.fail(msg.Err)
	}
	sess, err := q.svc.Start(q.ctx, q.mode)
	if err != nil {
		return q.fail(err)
	}
	q.sess = sess
	q.choice = components.NewMultiChoice(sess.Question())
	q.phase = phaseAnswering
	return q, nil
}

func (q *QuizScreen) fail(err error) (screen.Screen, tea.Cmd) {
	logging.FromContext(q.ctx).Warn().Err(err).Str("mode", string(q.mode)).Msg("quiz could not start")
	q.phase = phaseError
	switch {
	case errors.Is(err, practice.ErrDailyDone):
		q.errMsg = "You already solved today's puzzle. Come back tomorrow!"
	case errors.Is(err, practice.ErrNoQuestions):
		q.errMsg = "There are no questions for this quiz yet. Try another one!"
	default:
		q.errMsg = err.Error()
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch q.phase {
	case phaseError:
		return q, router.PopCmd
	case phaseLoading:
		if key == "esc" {
			return q, router.PopCmd
		}
		return q, nil
	case phaseFinishing:
		return q, nil
	}

	if q.confirmQuit {
		switch key {
		case "y", "Y":
			q.confirmQuit = false
			return q, q.abandon()
		case "n", "N", "esc":
			q.confirmQuit = false
		}
		return q, nil
	}
	if key == "esc" {
		q.confirmQuit = true
		return q, nil
	}

	if q.phase == phaseFeedback {
		if key == "enter" || key == "space" {
			return q.next()
		}
		return q, nil
	}

	var picked int
	q.choice, picked = q.choice.Update(msg)
	if picked < 0 {
		return q, nil
	}
	if !q.sess.Submit(q.sess.Current(), picked) {
		return q, nil
	}
	q.choice.Reveal(picked)
	q.phase = phaseFeedback
	return q, nil
}

// next moves past the feedback, finishing the quiz after the last question.
func (q *QuizScreen) next() (screen.Screen, tea.Cmd) {
	if !q.sess.Advance() {
		return q, nil
	}
	if q.sess.State() == session.Completed {
		q.phase = phaseFinishing
		return q, q.complete()
	}
	q.choice = components.NewMultiChoice(q.sess.Question())
	q.phase = phaseAnswering
	return q, nil
}

func (q *QuizScreen) complete() tea.Cmd {
	ctx, svc, sess := q.ctx, q.svc, q.sess
	return func() tea.Msg {
		out, err := svc.Complete(ctx, sess)
		return completedMsg{Outcome: out, Err: err}
	}
}

func (q *QuizScreen) abandon() tea.Cmd {
	if q.sess == nil {
		return router.PopCmd
	}
	ctx, svc, id := q.ctx, q.svc, q.sess.ID
	return func() tea.Msg {
		if err := svc.Abandon(ctx, id); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("session", id).Msg("abandon failed")
		}
		return abandonedMsg{}
	}
}

func (q *QuizScreen) handleCompleted(msg completedMsg) (screen.Screen, tea.Cmd) {
	if msg.Outcome.Result.ID == "" {
		return q.fail(msg.Err)
	}
	var warning string
	if msg.Err != nil {
		logging.FromContext(q.ctx).Error().Err(msg.Err).Msg("saving quiz results failed")
		warning = "Your progress could not be saved this time."
	}
	return q, router.ReplaceCmd(results.New(q.ctx, q.svc, msg.Outcome, warning))
}
