package practice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/sparky/internal/achievements"
	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/store"
)

// CreativeOutcome is the result of submitting a creative answer.
type CreativeOutcome struct {
	Prompt          string
	Answer          string
	Feedback        string
	NewAchievements []achievements.Achievement
	Profile         progress.Profile
}

// StartCreative asks the generator for an open-ended prompt.
func (s *Service) StartCreative(ctx context.Context) (string, error) {
	p := s.progress.Profile()
	if !p.HasGrade() {
		return "", ErrGradeNotSet
	}
	prompt, err := s.gen.GeneratePrompt(ctx, p.Grade)
	if err != nil {
		return "", fmt.Errorf("could not start a creative challenge: %w", err)
	}
	s.metrics.Started(string(session.ModeCreative))
	return prompt, nil
}

// SubmitCreative gets feedback on an answer and, once feedback arrives,
// counts a creative completion. A generator failure leaves the profile
// untouched.
func (s *Service) SubmitCreative(ctx context.Context, prompt, answer string) (CreativeOutcome, error) {
	p := s.progress.Profile()
	if !p.HasGrade() {
		return CreativeOutcome{}, ErrGradeNotSet
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return CreativeOutcome{}, ErrEmptyAnswer
	}

	start := s.clock.Now()
	feedback, err := s.gen.EvaluateOpenAnswer(ctx, prompt, answer, p.Grade)
	if err != nil {
		return CreativeOutcome{}, fmt.Errorf("could not get feedback: %w", err)
	}

	out := CreativeOutcome{Prompt: prompt, Answer: answer, Feedback: feedback}
	var unlocked []string
	np, err := s.progress.Update(ctx, func(p progress.Profile) (progress.Profile, bool) {
		trigger := achievements.Trigger{PracticeCompleted: true, PriorCompletions: p.TotalCompletions()}
		p, _ = p.AddQuizCompletion(session.ModeCreative)
		unlocked = achievements.Evaluate(p, trigger)
		p, _ = p.AddAchievements(unlocked)
		return p, true
	})
	out.Profile = np
	out.NewAchievements = s.catalog.Resolve(unlocked)

	s.metrics.Completed(string(session.ModeCreative))
	s.metrics.Unlocked(unlocked)
	s.record(ctx, store.SessionEventData{
		SessionID:    uuid.NewString(),
		Mode:         string(session.ModeCreative),
		Action:       store.SessionCompleted,
		Questions:    1,
		DurationSecs: int(s.clock.Now().Sub(start).Seconds()),
		Achievements: unlocked,
	})
	logging.FromContext(ctx).Info().Strs("achievements", unlocked).Msg("creative challenge completed")

	if err != nil {
		return out, fmt.Errorf("saving progress: %w", err)
	}
	return out, nil
}

// Tutor continues a tutoring chat about a missed question. An empty
// history returns the tutor's opening message.
func (s *Service) Tutor(ctx context.Context, q question.Question, chosen int, history []contentgen.ChatTurn) (string, error) {
	p := s.progress.Profile()
	if !p.HasGrade() {
		return "", ErrGradeNotSet
	}
	reply, err := s.gen.Tutor(ctx, contentgen.TutorInput{
		Grade:    p.Grade,
		Question: q,
		Chosen:   chosen,
		History:  history,
	})
	if err != nil {
		return "", fmt.Errorf("tutor is unavailable: %w", err)
	}
	return reply, nil
}

// Summary returns a short coach summary of the learner's skills.
func (s *Service) Summary(ctx context.Context) (string, error) {
	p := s.progress.Profile()
	if len(p.Performance) == 0 {
		return contentgen.EmptySummary, nil
	}
	text, err := s.gen.ProgressSummary(ctx, p.Performance, p.Grade)
	if err != nil {
		return "", fmt.Errorf("could not generate summary: %w", err)
	}
	return text, nil
}
