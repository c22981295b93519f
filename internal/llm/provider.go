package llm

import (
	"context"
	"encoding/json"
)

// Provider is one callable LLM backend. Implementations perform exactly
// one network call per Generate; retry policy belongs to the caller.
type Provider interface {
	// Generate sends a completion request and returns the model's output.
	// When the request carries a Schema, the provider asks for structured
	// output natively and validates the response against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is bound to.
	ModelID() string
}

// Request describes one completion call.
type Request struct {
	// System sets the model's role and the authoring constraints.
	System string

	// Messages is the conversation. Question generation is single-turn,
	// so this normally holds one user message.
	Messages []Message

	// Schema, when set, is the JSON shape the response must conform to.
	// Providers with native structured output use it directly; the
	// response parser downstream copes with providers that cannot.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in [0,1]. Zero means deterministic.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "exam-question").
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response is the model's output for one request.
type Response struct {
	// Content is the completion text. With a Schema it is validated JSON;
	// without, raw model text.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the completion content as a string.
func (r *Response) Text() string {
	return string(r.Content)
}
