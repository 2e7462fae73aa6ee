package contentgen

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/question"
)

// GradeText returns the ordinal form of a grade: 1st, 2nd, 3rd, 4th, 11th.
func GradeText(grade int) string {
	if grade%100 >= 11 && grade%100 <= 13 {
		return fmt.Sprintf("%dth", grade)
	}
	switch grade % 10 {
	case 1:
		return fmt.Sprintf("%dst", grade)
	case 2:
		return fmt.Sprintf("%dnd", grade)
	case 3:
		return fmt.Sprintf("%drd", grade)
	default:
		return fmt.Sprintf("%dth", grade)
	}
}

const questionSystemPrompt = `You write practice questions for a children's cognitive abilities test (verbal, quantitative and non-verbal reasoning).

Rules:
- Every question has exactly 4 answer options and exactly one is correct.
- The options must be unique. Never repeat an option with different wording.
- correctAnswerIndex is the 0-based index of the correct option and must be accurate.
- The explanation is brief and simple, written for the student's grade.
- subCategory must be one of the allowed values for the category.
- Do not repeat questions within the batch.`

const nonVerbalRules = `Rules for non-verbal options:
1. Each option MUST be a simple text description of one or more shapes.
2. Options MUST be visually distinct. Do NOT provide two options that look the same, like 'A blue circle' and 'One blue circle'.
3. Use this vocabulary only:
   - Quantity: 'One', 'Two', 'Three', 'Four'.
   - Size (optional): 'small', 'big'.
   - State (optional): 'filled', 'empty'.
   - Color: 'red', 'blue', 'green', 'yellow'.
   - Shape: 'square', 'circle', 'triangle', 'star'.
   - Example: 'One small filled red square', 'Two big empty blue circles'.
4. There must be only ONE logically correct answer among the options.
5. Set isImageBased to true.`

// buildQuestionMessage constructs the user message for a question batch.
func buildQuestionMessage(cat question.Category, level difficulty.Level, grade, count int) string {
	gradeText := GradeText(grade)
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d questions suitable for a %s-grade student.\n\n", count, gradeText)
	fmt.Fprintf(&b, "Category: %s\n", strings.ToUpper(string(cat)))
	b.WriteString("Allowed subCategories: ")
	tags := cat.SkillTags()
	for i, t := range tags {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "'%s'", t)
	}
	b.WriteString(".\n\n")

	fmt.Fprintf(&b, "Difficulty: %s\n", strings.ToUpper(string(level)))
	fmt.Fprintf(&b, "Adjust the complexity to a typical %s-grade student at this difficulty. %s\n",
		gradeText, level.Instruction())

	if cat == question.NonVerbal {
		b.WriteString("\n")
		b.WriteString(nonVerbalRules)
	}
	return b.String()
}

func buildCreativePromptMessage(grade int) string {
	return fmt.Sprintf(`Generate one short, simple, creative, open-ended question appropriate for a %s grader. `+
		`It should be a single sentence. The goal is to elicit a single sentence response. `+
		`Example: "If clouds had flavors, what would a puffy white cloud taste like?" or "What sound would a star make if you could hear it?"`,
		GradeText(grade))
}

func buildFeedbackMessage(prompt, answer string, grade int) string {
	return fmt.Sprintf(`A %s grader was given the prompt: %q. They answered: %q. `+
		`Act as a friendly, encouraging teacher. Provide one or two sentences of positive and constructive feedback. `+
		`Focus on creativity and effort, not grammar. Do not give a score.`,
		GradeText(grade), prompt, answer)
}

func buildTutorSystem(in TutorInput) string {
	chosen := ""
	if in.Chosen >= 0 && in.Chosen < len(in.Question.Options) {
		chosen = in.Question.Options[in.Chosen]
	}
	return fmt.Sprintf(`You are a friendly, patient tutor called Sparky. You are helping a %s grade student understand a question they got wrong.
The question was: %q.
Their answer was: %q.
The correct answer was: %q.
The provided explanation is: %q.
Your first message should greet the student and ask what they found confusing. Keep your answers simple and break down concepts step-by-step. Use emojis to be encouraging.`,
		GradeText(in.Grade), in.Question.Text, chosen, in.Question.CorrectOption(), in.Question.Explanation)
}

func buildSummaryMessage(perf map[string]progress.Stat, grade int) string {
	// Sorted keys keep the prompt stable for identical data.
	keys := make([]string, 0, len(perf))
	for k := range perf {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ordered := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, map[string]any{
			"subCategory": k,
			"correct":     perf[k].Correct,
			"total":       perf[k].Total,
		})
	}
	data, _ := json.Marshal(ordered)

	return fmt.Sprintf(`You are a learning coach named Sparky. Here is a student's performance data in a reasoning practice app: %s. `+
		`Provide a short, encouraging summary (2-3 sentences) for the student. Highlight one area of strength (a subCategory with high accuracy) `+
		`and suggest one specific skill to practice next (a subCategory with lower accuracy). The student is in %s grade. `+
		`Keep the tone positive and helpful. Use emojis.`,
		data, GradeText(grade))
}
