// Package session implements the quiz state machine: one question at a
// time, one answer per question, no going back.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sparky/internal/question"
)

// State is the phase of a session.
type State int

const (
	// AwaitingAnswer means the question at Current has not been completed.
	AwaitingAnswer State = iota
	// Completed means every question has been answered and advanced past.
	Completed
)

func (s State) String() string {
	switch s {
	case AwaitingAnswer:
		return "awaiting-answer"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Answer records the learner's choice for one question.
type Answer struct {
	QuestionIndex int  `json:"questionIndex"`
	ChosenIndex   int  `json:"answerIndex"`
	Correct       bool `json:"isCorrect"`
}

// Session is one quiz attempt. It lives only in memory; dropping it
// abandons the attempt without touching the profile.
type Session struct {
	ID        string
	Mode      Mode
	Questions []question.Question
	Answers   []Answer
	StartedAt time.Time

	current int
	state   State
}

// New starts a session in AwaitingAnswer(0). It returns nil when there are
// no questions, so callers cannot enter a running session without any.
func New(mode Mode, qs []question.Question, now time.Time) *Session {
	if len(qs) == 0 {
		return nil
	}
	return &Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Questions: qs,
		Answers:   make([]Answer, 0, len(qs)),
		StartedAt: now,
	}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Current returns the index of the question being shown. After completion
// it stays on the last index.
func (s *Session) Current() int { return s.current }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.Questions) }

// Question returns the current question.
func (s *Session) Question() question.Question { return s.Questions[s.current] }

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool { return s.current == len(s.Questions)-1 }

// AnswerFor returns the recorded answer for question i.
func (s *Session) AnswerFor(i int) (Answer, bool) {
	for _, a := range s.Answers {
		if a.QuestionIndex == i {
			return a, true
		}
	}
	return Answer{}, false
}

// Answered reports whether the current question has an answer.
func (s *Session) Answered() bool {
	_, ok := s.AnswerFor(s.current)
	return ok
}

// Submit records chosen as the answer to question i. It is accepted only
// while awaiting an answer for the current index, with chosen in range,
// and only once per question. The return value reports whether the answer
// was recorded.
func (s *Session) Submit(i, chosen int) bool {
	if s.state != AwaitingAnswer || i != s.current {
		return false
	}
	q := s.Questions[i]
	if chosen < 0 || chosen >= len(q.Options) {
		return false
	}
	if s.Answered() {
		return false
	}
	s.Answers = append(s.Answers, Answer{
		QuestionIndex: i,
		ChosenIndex:   chosen,
		Correct:       q.IsCorrect(chosen),
	})
	return true
}

// Advance moves past the current question once it is answered. On the last
// question the session becomes Completed. It returns false, leaving the
// state unchanged, when the current question has no answer yet or the
// session is already complete.
func (s *Session) Advance() bool {
	if s.state != AwaitingAnswer || !s.Answered() {
		return false
	}
	if s.IsLast() {
		s.state = Completed
		return true
	}
	s.current++
	return true
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	n := 0
	for _, a := range s.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// Result summarizes a session for completion processing.
type Result struct {
	ID        string
	Mode      Mode
	Questions []question.Question
	Answers   []Answer
	Score     int
	Total     int
	Duration  time.Duration
}

// Perfect reports whether every question was answered correctly.
func (r Result) Perfect() bool {
	return r.Total > 0 && r.Score == r.Total
}

// SkillUpdates returns one (skill, correct) pair per answer, in answer order.
func (r Result) SkillUpdates() []SkillUpdate {
	out := make([]SkillUpdate, 0, len(r.Answers))
	for _, a := range r.Answers {
		out = append(out, SkillUpdate{
			Skill:   r.Questions[a.QuestionIndex].SubCategory,
			Correct: a.Correct,
		})
	}
	return out
}

// SkillUpdate is one observation of a skill.
type SkillUpdate struct {
	Skill   string
	Correct bool
}

// Result returns the summary of a completed session. ok is false until the
// session reaches Completed.
func (s *Session) Result(now time.Time) (Result, bool) {
	if s.state != Completed {
		return Result{}, false
	}
	answers := append([]Answer(nil), s.Answers...)
	return Result{
		ID:        s.ID,
		Mode:      s.Mode,
		Questions: s.Questions,
		Answers:   answers,
		Score:     s.Score(),
		Total:     len(s.Questions),
		Duration:  now.Sub(s.StartedAt),
	}, true
}
