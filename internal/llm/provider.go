package llm

import (
	"context"
	"encoding/json"
)

// Provider generates content from a language model. Implementations
// normalize vendor differences: errors map to the types in errors.go and
// stop reasons to the Stop* constants.
type Provider interface {
	// Generate runs one completion. With req.Schema set, the returned
	// Content is JSON that has passed schema validation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, after friendly-name resolution.
	ModelID() string
}

// Request is a single completion request.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured JSON output. Nil means free text, returned
	// verbatim in Response.Content.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case and doubles as the cache key for the compiled
	// schema, so one name must always map to one definition.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a completed generation.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that actually served the request
	StopReason string // one of the Stop* constants
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopRefused   = "refused"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
