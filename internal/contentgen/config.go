package contentgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// QuestionsPerCategory is the batch size requested per category.
	QuestionsPerCategory int

	// MaxTokens is the token budget for a question batch.
	MaxTokens int

	// TextMaxTokens is the token budget for prompts, feedback, tutor
	// replies and summaries.
	TextMaxTokens int

	// Temperature controls output randomness for question batches.
	Temperature float64
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		QuestionsPerCategory: 30,
		MaxTokens:            16384,
		TextMaxTokens:        512,
		Temperature:          0.9,
	}
}
