package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the core abstraction for text generation.
type Provider interface {
	// Generate sends a prompt and returns the completion. When the
	// request carries a Schema, the provider asks for JSON conforming to
	// it and validates the result; otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the default model this provider is configured to use.
	ModelID() string
}

// Quality is a hint for how capable a model the request needs.
type Quality string

const (
	// QualityDefault uses the provider's fast model.
	QualityDefault Quality = ""

	// QualitySmart uses the provider's stronger model when one is configured.
	QualitySmart Quality = "smart"
)

// ParseQuality maps a user-supplied hint to a Quality. Anything other than
// "smart" selects the default model.
func ParseQuality(s string) Quality {
	if strings.EqualFold(strings.TrimSpace(s), string(QualitySmart)) {
		return QualitySmart
	}
	return QualityDefault
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Generation prompts are a
	// single user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is raw text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64

	// Quality selects between the provider's default and smart model.
	Quality Quality
}

// Message represents a single message in the conversation.
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

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as the schema name for OpenAI and
	// as the cache key for validation). Kebab-case, e.g. "quiz-batch".
	Name string

	// Description is a human-readable description of what this schema
	// represents.
	Description string

	// Definition is the JSON Schema definition as a map. It is what the
	// provider asks the model to produce.
	Definition map[string]any

	// Envelope, when set, is what the response is validated against
	// instead of Definition. Batch schemas use it to check only the outer
	// shape and leave per-entry checks to the caller, so one malformed
	// entry does not fail the whole response.
	Envelope map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output: validated JSON when a Schema was
	// requested, raw completion text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text returns the completion as a string.
func (r *Response) Text() string {
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request.
func UserPrompt(prompt string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: prompt}}}
}

// pickModel returns smart when the request asks for it and one is set.
func pickModel(req Request, model, smart string) string {
	if req.Quality == QualitySmart && smart != "" {
		return smart
	}
	return model
}
