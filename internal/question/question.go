// Package question defines the multiple-choice question model and the
// per-category question pool.
package question

import (
	"fmt"
	"strings"
)

// MinOptions is the smallest number of answer options a question may have.
const MinOptions = 4

// Question is one multiple-choice question.
type Question struct {
	// Text is the prompt shown to the learner.
	Text string `json:"question"`

	// Options holds the answer choices. For non-verbal questions each
	// option is a shape description such as "Two big empty blue circles".
	Options []string `json:"options"`

	// ImageBased marks options that should be drawn as shapes.
	ImageBased bool `json:"isImageBased"`

	// CorrectIndex is the index into Options of the right answer.
	CorrectIndex int `json:"correctAnswerIndex"`

	// Explanation is shown after the learner answers.
	Explanation string `json:"explanation"`

	// SubCategory is the skill tag used for weakness tracking.
	SubCategory string `json:"subCategory"`
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectIndex
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Validate checks the structural invariants of a question: enough options,
// a correct index within bounds, and pairwise-distinct options.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) < MinOptions {
		return fmt.Errorf("expected at least %d options, got %d", MinOptions, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range [0,%d)", q.CorrectIndex, len(q.Options))
	}
	seen := make(map[string]int, len(q.Options))
	for i, o := range q.Options {
		key := normalizeOption(o)
		if key == "" {
			return fmt.Errorf("option %d is empty", i)
		}
		if j, dup := seen[key]; dup {
			return fmt.Errorf("options %d and %d are identical: %q", j, i, o)
		}
		seen[key] = i
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return fmt.Errorf("explanation is empty")
	}
	if strings.TrimSpace(q.SubCategory) == "" {
		return fmt.Errorf("subCategory is empty")
	}
	return nil
}

func normalizeOption(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
