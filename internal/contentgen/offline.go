package contentgen

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/question"
)

//go:embed bank.yaml
var bankYAML []byte

type bankQuestion struct {
	Question           string   `yaml:"question"`
	Options            []string `yaml:"options"`
	IsImageBased       bool     `yaml:"isImageBased"`
	CorrectAnswerIndex int      `yaml:"correctAnswerIndex"`
	Explanation        string   `yaml:"explanation"`
	SubCategory        string   `yaml:"subCategory"`
}

type bank struct {
	Verbal       []bankQuestion `yaml:"verbal"`
	Quantitative []bankQuestion `yaml:"quantitative"`
	NonVerbal    []bankQuestion `yaml:"non-verbal"`
	Prompts      []string       `yaml:"prompts"`
}

// Offline serves content from the embedded sample bank. It needs no
// network and is used when no LLM provider is configured.
type Offline struct {
	pool    question.Pool
	prompts []string

	mu   sync.Mutex
	next int
}

var _ Generator = (*Offline)(nil)

// NewOffline parses the embedded bank.
func NewOffline() (*Offline, error) {
	var b bank
	if err := yaml.Unmarshal(bankYAML, &b); err != nil {
		return nil, fmt.Errorf("parse sample bank: %w", err)
	}
	convert := func(cat question.Category, in []bankQuestion) []question.Question {
		out := make([]question.Question, len(in))
		for i, q := range in {
			out[i] = question.Question{
				Text:         q.Question,
				Options:      q.Options,
				ImageBased:   q.IsImageBased,
				CorrectIndex: q.CorrectAnswerIndex,
				Explanation:  q.Explanation,
				SubCategory:  q.SubCategory,
			}
		}
		return FilterValid(cat, out)
	}
	return &Offline{
		pool: question.Pool{
			question.Verbal:       convert(question.Verbal, b.Verbal),
			question.Quantitative: convert(question.Quantitative, b.Quantitative),
			question.NonVerbal:    convert(question.NonVerbal, b.NonVerbal),
		},
		prompts: b.Prompts,
	}, nil
}

// GenerateQuestions returns the bank's questions for cat. The bank does not
// vary by difficulty or grade.
func (o *Offline) GenerateQuestions(_ context.Context, cat question.Category, _ difficulty.Level, _ int) ([]question.Question, error) {
	qs := o.pool.Clone().Get(cat)
	if len(qs) == 0 {
		return nil, fmt.Errorf("no sample questions for %s", cat)
	}
	return qs, nil
}

// GeneratePrompt cycles through the bank's prompts.
func (o *Offline) GeneratePrompt(_ context.Context, _ int) (string, error) {
	if len(o.prompts) == 0 {
		return "", fmt.Errorf("no sample prompts")
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	p := o.prompts[o.next%len(o.prompts)]
	o.next++
	return p, nil
}

// EvaluateOpenAnswer returns fixed encouragement.
func (o *Offline) EvaluateOpenAnswer(_ context.Context, _, answer string, _ int) (string, error) {
	if answer == "" {
		return "Give it a try! There are no wrong answers here. 🌈", nil
	}
	return "What a creative idea! I love how you used your imagination. ✨", nil
}

// Tutor greets first, then walks through the stored explanation.
func (o *Offline) Tutor(_ context.Context, in TutorInput) (string, error) {
	if len(in.History) == 0 {
		return "Hi there! 👋 I'm Sparky. What part of this question was tricky for you?", nil
	}
	return fmt.Sprintf("Let's look at it together. The answer is %q. %s You've got this! 💪",
		in.Question.CorrectOption(), in.Question.Explanation), nil
}

// ProgressSummary names the strongest and weakest skill.
func (o *Offline) ProgressSummary(_ context.Context, perf map[string]progress.Stat, _ int) (string, error) {
	if len(perf) == 0 {
		return EmptySummary, nil
	}
	skills := make([]string, 0, len(perf))
	for s := range perf {
		skills = append(skills, s)
	}
	sort.Slice(skills, func(i, j int) bool {
		ai, aj := perf[skills[i]].Accuracy(), perf[skills[j]].Accuracy()
		if ai != aj {
			return ai > aj
		}
		return skills[i] < skills[j]
	})
	best, worst := skills[0], skills[len(skills)-1]
	if best == worst {
		return fmt.Sprintf("Great start with %s! 🌟 Keep practicing to see your skills grow.", best), nil
	}
	return fmt.Sprintf("You're doing great at %s! 🌟 Next, try a few more %s questions to level up. 🚀", best, worst), nil
}
