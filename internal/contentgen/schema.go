package contentgen

import "github.com/abhisek/sparky/internal/llm"

// QuestionBatchSchema is the response schema for a batch of questions.
var QuestionBatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of multiple-choice reasoning questions with explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text or a description of the visual pattern",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "4 unique and visually distinct possible answers",
						},
						"isImageBased": map[string]any{
							"type":        "boolean",
							"description": "True if the options describe shapes",
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "0-based index of the single correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A brief, simple explanation of why the answer is correct",
						},
						"subCategory": map[string]any{
							"type":        "string",
							"description": "The skill tag from the allowed list",
						},
					},
					"required":             []any{"question", "options", "isImageBased", "correctAnswerIndex", "explanation", "subCategory"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// textSchema returns a schema for a single string field.
func textSchema(name, field, description string) *llm.Schema {
	return &llm.Schema{
		Name:        name,
		Description: description,
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				field: map[string]any{
					"type":        "string",
					"description": description,
				},
			},
			"required":             []any{field},
			"additionalProperties": false,
		},
	}
}

var (
	CreativePromptSchema = textSchema("creative-prompt", "prompt", "A single-sentence open-ended question")
	FeedbackSchema       = textSchema("creative-feedback", "feedback", "One or two sentences of encouraging feedback")
	TutorReplySchema     = textSchema("tutor-reply", "reply", "The tutor's next chat message")
	SummarySchema        = textSchema("progress-summary", "summary", "A 2-3 sentence encouraging progress summary")
)
