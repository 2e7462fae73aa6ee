package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-child",
		Description: "A child in a class",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"house": map[string]any{"type": "string", "enum": []any{"Red", "Blue", "Green"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"all fields", `{"name":"Ava","age":9,"house":"Red"}`, true},
		{"optional omitted", `{"name":"Ben","age":8}`, true},
		{"missing required", `{"name":"Cal"}`, false},
		{"wrong type", `{"name":"Dee","age":"nine"}`, false},
		{"negative age", `{"name":"Eli","age":-1}`, false},
		{"unknown enum value", `{"name":"Fay","age":9,"house":"Gold"}`, false},
		{"malformed JSON", `{not json}`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.raw, string(invalid.Content))
		})
	}

	assert.NoError(t, validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)))
}

func TestValidateResponseNested(t *testing.T) {
	schema := &Schema{
		Name: "test-quiz",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string"},
							"options":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						},
						"required": []any{"question", "options"},
					},
				},
			},
			"required": []any{"questions"},
		},
	}

	assert.NoError(t, validateResponse(schema, json.RawMessage(`{"questions":[{"question":"Q?","options":["a","b"]}]}`)))
	assert.Error(t, validateResponse(schema, json.RawMessage(`{"questions":[{"question":"Q?","options":[1,2]}]}`)))
	assert.Error(t, validateResponse(schema, json.RawMessage(`{"questions":[{"options":["a"]}]}`)))
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1,2]\n```", `[1,2]`},
		{"```{\"a\":1}```", `{"a":1}`},
		{"```", "```"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(stripCodeFence(json.RawMessage(tt.in))), "input %q", tt.in)
	}
}

func TestFinishStructured(t *testing.T) {
	structured := Request{Schema: testSchema()}

	out, err := finishStructured(Request{}, json.RawMessage("```not json```"), StopMaxTokens)
	require.NoError(t, err, "plain text is never checked")
	assert.Equal(t, "```not json```", string(out))

	out, err = finishStructured(structured, json.RawMessage("```json\n{\"name\":\"Ava\",\"age\":9}\n```"), StopEnd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ava","age":9}`, string(out))

	_, err = finishStructured(structured, json.RawMessage(`{"name":"Av`), StopMaxTokens)
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)

	_, err = finishStructured(structured, nil, StopRefused)
	var refused *ErrRefused
	assert.ErrorAs(t, err, &refused)

	_, err = finishStructured(structured, json.RawMessage(`{"name":"Ava"}`), StopEnd)
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}
