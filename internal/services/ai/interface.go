// File: internal/services/ai/interface.go
package ai

import (
	"context"
	"encoding/json"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Message is one normalized (text-only) turn of conversation history.
type Message struct {
	Role    string
	Content string
}

// ToolDefinition declares one tool the model may invoke during generation.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  jsonschema.Definition
	Execute     func(ctx context.Context, args json.RawMessage) (any, error)
}

// ToolCall is one invocation the model made.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolResult is the outcome of executing one tool call.
type ToolResult struct {
	CallID string
	Name   string
	Result json.RawMessage
}

// ChatRequest carries everything one streamed generation needs.
type ChatRequest struct {
	Model        string
	SystemPrompt string
	Messages     []Message
	Temperature  float32
	Tools        []ToolDefinition
}

// StreamHandlers receives generation events as they happen. Any handler
// returning an error aborts the stream.
type StreamHandlers struct {
	OnDelta      func(text string) error
	OnToolCall   func(call ToolCall) error
	OnToolResult func(result ToolResult) error
}

// ChatResult is the buffered outcome of a completed stream. Text is the
// concatenation of exactly the deltas handed to OnDelta.
type ChatResult struct {
	Text        string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

// Provider streams chat completions for one bound credential.
type Provider interface {
	StreamChat(ctx context.Context, req ChatRequest, handlers StreamHandlers) (*ChatResult, error)
}

// ResolvedModel is a callable backend bound to a user credential.
type ResolvedModel struct {
	Provider     Provider
	ProviderName string
	Model        string
}

// ModelResolver maps a configured model identifier plus the caller's stored
// credential to a callable generation backend.
type ModelResolver interface {
	Resolve(ctx context.Context, userID, modelID string) (*ResolvedModel, error)
}
