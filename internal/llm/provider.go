package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction every generation feature talks to. All of
// the tutor's content (quiz questions, briefings, chat turns) flows
// through Generate; nothing else in the codebase touches a vendor SDK.
type Provider interface {
	// Generate sends a prompt and returns the model's output. When the
	// request carries a Schema the provider uses its native structured
	// output mechanism and the returned Content is the validated JSON;
	// otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's persona and constraints. The tutor uses it
	// for the RAV-OS operator voice.
	System string

	// Messages is the conversation so far. Single-turn generation passes
	// one user message; topic chat passes the full transcript.
	Messages []Message

	// Schema, when set, constrains the output to a JSON structure.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in [0,1]; zero means deterministic.
	Temperature float64
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON structure a response must satisfy.
type Schema struct {
	// Name identifies the schema to the provider (tool name for
	// Anthropic, schema name for OpenAI). Kebab-case.
	Name string

	// Description tells the model what the structure represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the model's output plus accounting.
type Response struct {
	// Content is validated JSON when the request carried a Schema,
	// raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks tokens for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
