package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/store"
)

type purposeKey struct{}

// WithPurpose tags ctx with what a request is for (questions, tutor, ...).
// The tag is recorded on the stored request event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}

// LoggingProvider records every request it forwards as an LLM request
// event.
type LoggingProvider struct {
	inner    Provider
	repo     store.EventRepo
	provider string
}

// WithLogging wraps p so each Generate call is appended to repo under the
// given provider name.
func WithLogging(p Provider, repo store.EventRepo, providerName string) Provider {
	return &LoggingProvider{inner: p, repo: repo, provider: providerName}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)
	log := logging.FromContext(ctx).With().
		Str("provider", l.provider).
		Str("purpose", purpose).
		Logger()

	started := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(started).Milliseconds()

	event := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   elapsed,
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	switch {
	case err != nil:
		event.ErrorMessage = err.Error()
		log.Warn().Err(err).Int64("latency_ms", elapsed).Msg("llm request failed")
	case resp != nil:
		event.Model = resp.Model
		event.InputTokens = resp.Usage.InputTokens
		event.OutputTokens = resp.Usage.OutputTokens
		event.ResponseBody = string(resp.Content)
		log.Debug().
			Str("model", resp.Model).
			Int("input_tokens", resp.Usage.InputTokens).
			Int("output_tokens", resp.Usage.OutputTokens).
			Int64("latency_ms", elapsed).
			Msg("llm request")
	}

	// A failed write never fails the request.
	if appendErr := l.repo.AppendLLMRequest(ctx, event); appendErr != nil {
		log.Warn().Err(appendErr).Msg("record llm request")
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// describeRequest renders a request as plain text for the event log.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
