package contentgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/llm"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/question"
)

// LLM purposes recorded on request events.
const (
	PurposeQuestions = "question-gen"
	PurposePrompt    = "creative-prompt"
	PurposeFeedback  = "creative-feedback"
	PurposeTutor     = "tutor"
	PurposeSummary   = "progress-summary"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

var _ Generator = (*LLMGenerator)(nil)

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type batchOutput struct {
	Questions []question.Question `json:"questions"`
}

// GenerateQuestions requests a batch for one category and keeps only the
// questions that pass validation and carry one of the category's skill
// tags. A batch with no usable questions is an error.
func (g *LLMGenerator) GenerateQuestions(ctx context.Context, cat question.Category, level difficulty.Level, grade int) ([]question.Question, error) {
	ctx = llm.WithPurpose(ctx, PurposeQuestions)
	log := logging.FromContext(ctx)

	req := llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionMessage(cat, level, grade, g.config.QuestionsPerCategory)},
		},
		Schema:      QuestionBatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate %s questions: %w", cat, err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse %s questions: %w", cat, err)
	}

	kept := FilterValid(cat, out.Questions)
	if dropped := len(out.Questions) - len(kept); dropped > 0 {
		log.Debug().Str("category", string(cat)).Int("dropped", dropped).Msg("discarded invalid generated questions")
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no valid %s questions in response", cat)
	}
	return kept, nil
}

// FilterValid returns the questions that pass Validate and are tagged with
// one of cat's skill tags. Non-verbal questions whose options all parse as
// shapes are marked image-based.
func FilterValid(cat question.Category, qs []question.Question) []question.Question {
	out := make([]question.Question, 0, len(qs))
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		q.SubCategory = strings.ToLower(strings.TrimSpace(q.SubCategory))
		if q.Validate() != nil || !cat.AllowsSkill(q.SubCategory) {
			continue
		}
		if seen[q.Text] {
			continue
		}
		seen[q.Text] = true
		if cat == question.NonVerbal && !q.ImageBased {
			q.ImageBased = allShapes(q.Options)
		}
		out = append(out, q)
	}
	return out
}

func allShapes(options []string) bool {
	for _, o := range options {
		if _, ok := question.ParseShape(o); !ok {
			return false
		}
	}
	return true
}

// GeneratePrompt returns an open-ended creative prompt.
func (g *LLMGenerator) GeneratePrompt(ctx context.Context, grade int) (string, error) {
	var out struct {
		Prompt string `json:"prompt"`
	}
	err := g.text(llm.WithPurpose(ctx, PurposePrompt), llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildCreativePromptMessage(grade)}},
		Schema:      CreativePromptSchema,
		Temperature: 1.0,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("creative prompt: %w", err)
	}
	return nonEmpty(out.Prompt, "creative prompt")
}

// EvaluateOpenAnswer returns feedback on a creative answer.
func (g *LLMGenerator) EvaluateOpenAnswer(ctx context.Context, prompt, answer string, grade int) (string, error) {
	var out struct {
		Feedback string `json:"feedback"`
	}
	err := g.text(llm.WithPurpose(ctx, PurposeFeedback), llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildFeedbackMessage(prompt, answer, grade)}},
		Schema:      FeedbackSchema,
		Temperature: 0.7,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("creative feedback: %w", err)
	}
	return nonEmpty(out.Feedback, "creative feedback")
}

// Tutor returns the tutor's next message. The conversation history is
// replayed as alternating user and assistant messages.
func (g *LLMGenerator) Tutor(ctx context.Context, in TutorInput) (string, error) {
	msgs := make([]llm.Message, 0, len(in.History)+1)
	if len(in.History) == 0 || in.History[0].Speaker != SpeakerStudent {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: "Hi Sparky!"})
	}
	for _, t := range in.History {
		role := llm.RoleUser
		if t.Speaker == SpeakerTutor {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}

	var out struct {
		Reply string `json:"reply"`
	}
	err := g.text(llm.WithPurpose(ctx, PurposeTutor), llm.Request{
		System:      buildTutorSystem(in),
		Messages:    msgs,
		Schema:      TutorReplySchema,
		Temperature: 0.7,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("tutor: %w", err)
	}
	return nonEmpty(out.Reply, "tutor reply")
}

// ProgressSummary returns a coach summary, or EmptySummary without data.
func (g *LLMGenerator) ProgressSummary(ctx context.Context, perf map[string]progress.Stat, grade int) (string, error) {
	if len(perf) == 0 {
		return EmptySummary, nil
	}
	var out struct {
		Summary string `json:"summary"`
	}
	err := g.text(llm.WithPurpose(ctx, PurposeSummary), llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildSummaryMessage(perf, grade)}},
		Schema:      SummarySchema,
		Temperature: 0.7,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("progress summary: %w", err)
	}
	return nonEmpty(out.Summary, "progress summary")
}

func (g *LLMGenerator) text(ctx context.Context, req llm.Request, out any) error {
	if req.MaxTokens == 0 {
		req.MaxTokens = g.config.TextMaxTokens
	}
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func nonEmpty(s, what string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s: empty response", what)
	}
	return s, nil
}
