// Package contentgen produces question pools and open-ended content for
// practice sessions. LLMGenerator talks to an llm.Provider; Offline serves
// a built-in sample bank.
package contentgen

import (
	"context"

	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/question"
)

// Generator is the content source for the practice engine. Every method
// may fail; callers surface the error and do not retry.
type Generator interface {
	// GenerateQuestions returns a batch of validated questions for one
	// category.
	GenerateQuestions(ctx context.Context, cat question.Category, level difficulty.Level, grade int) ([]question.Question, error)

	// GeneratePrompt returns a single-sentence open-ended prompt.
	GeneratePrompt(ctx context.Context, grade int) (string, error)

	// EvaluateOpenAnswer returns short encouraging feedback on an answer
	// to a prompt.
	EvaluateOpenAnswer(ctx context.Context, prompt, answer string, grade int) (string, error)

	// Tutor continues a tutoring conversation about a missed question.
	Tutor(ctx context.Context, input TutorInput) (string, error)

	// ProgressSummary returns a short coach summary of per-skill accuracy.
	ProgressSummary(ctx context.Context, perf map[string]progress.Stat, grade int) (string, error)
}

// Speaker identifies who said a chat turn.
type Speaker string

const (
	SpeakerStudent Speaker = "student"
	SpeakerTutor   Speaker = "tutor"
)

// ChatTurn is one message of a tutor conversation.
type ChatTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// TutorInput describes a missed question and the conversation so far. An
// empty History asks for the tutor's greeting.
type TutorInput struct {
	Grade    int
	Question question.Question
	Chosen   int
	History  []ChatTurn
}

// EmptySummary is returned when there is no performance data yet.
const EmptySummary = "You're just getting started! Complete some quizzes to see your progress summary here."
