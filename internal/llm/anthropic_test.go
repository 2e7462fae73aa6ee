package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicServer(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicReply(text, stopReason string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_1",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": stopReason,
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}
}

func anthropicFailure(status int, kind string, header http.Header) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": kind},
		})
	}
}

func TestAnthropicProviderGenerate(t *testing.T) {
	var sent map[string]any
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		anthropicReply(`{"name":"Ava","age":9}`, "end_turn")(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a friendly quiz tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Who is in grade 4?"}},
		Schema:    testSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ava","age":9}`, string(resp.Content))
	assert.Equal(t, 50, resp.Usage.InputTokens)
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.EqualValues(t, 256, sent["max_tokens"])
}

func TestAnthropicProviderStopReasons(t *testing.T) {
	t.Run("truncated structured output", func(t *testing.T) {
		p := anthropicServer(t, anthropicReply(`{"name":"Av`, "max_tokens"))
		_, err := p.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "x"}}, Schema: testSchema(), MaxTokens: 10,
		})
		var maxTok *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &maxTok)
	})

	t.Run("refusal", func(t *testing.T) {
		p := anthropicServer(t, anthropicReply("I can't help with that.", "refusal"))
		_, err := p.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "x"}}, Schema: testSchema(), MaxTokens: 10,
		})
		var refused *ErrRefused
		assert.ErrorAs(t, err, &refused)
	})

	t.Run("plain text passes through", func(t *testing.T) {
		p := anthropicServer(t, anthropicReply("Great job!", "end_turn"))
		resp, err := p.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, "Great job!", string(resp.Content))
	})
}

func TestAnthropicProviderErrors(t *testing.T) {
	req := Request{Messages: []Message{{Role: RoleUser, Content: "test"}}, MaxTokens: 100}

	p := anthropicServer(t, anthropicFailure(http.StatusTooManyRequests, "rate_limit_error",
		http.Header{"Retry-After": []string{"3"}}))
	_, err := p.Generate(context.Background(), req)
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 3*time.Second, rl.RetryAfter)

	p = anthropicServer(t, anthropicFailure(http.StatusInternalServerError, "api_error", nil))
	_, err = p.Generate(context.Background(), req)
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestAnthropicProviderModels(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-sonnet"})
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", p.ModelID())

	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4", resolveModel("claude-opus-4", anthropicModels))
}
