// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/2witstudios/pagespace.team/internal/services"
)

// OpenAIProvider streams chat completions from any OpenAI-compatible
// endpoint, driving declared tools to completion within the stream.
type OpenAIProvider struct {
	client        *openai.Client
	providerName  string
	maxToolRounds int
	logger        services.Logger
}

func NewOpenAIProvider(apiKey, baseURL, providerName string, maxToolRounds int, logger services.Logger) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client:        openai.NewClientWithConfig(clientConfig),
		providerName:  providerName,
		maxToolRounds: maxToolRounds,
		logger:        logger,
	}
}

// StreamChat streams a completion for the full message history. When the
// model requests tool calls, they are executed and the conversation is
// resumed, up to maxToolRounds times. The returned Text is built from
// exactly the deltas handed to handlers.OnDelta.
func (p *OpenAIProvider) StreamChat(ctx context.Context, req ChatRequest, handlers StreamHandlers) (*ChatResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	tools := make([]openai.Tool, 0, len(req.Tools))
	toolsByName := make(map[string]ToolDefinition, len(req.Tools))
	for _, def := range req.Tools {
		toolsByName[def.Name] = def
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}

	var text strings.Builder
	result := &ChatResult{}

	for round := 0; ; round++ {
		if round > p.maxToolRounds {
			return nil, NewStreamingError("tool_loop", "tool call rounds exceeded limit", nil)
		}

		stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model:       req.Model,
			Messages:    messages,
			Temperature: req.Temperature,
			Tools:       tools,
		})
		if err != nil {
			return nil, p.classifyError("create_stream", err)
		}

		calls, err := p.consumeStream(stream, &text, handlers)
		stream.Close()
		if err != nil {
			return nil, err
		}
		if len(calls) == 0 {
			break
		}

		messages = append(messages, openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			ToolCalls: toOpenAIToolCalls(calls),
		})

		for _, call := range calls {
			result.ToolCalls = append(result.ToolCalls, call)
			if handlers.OnToolCall != nil {
				if err := handlers.OnToolCall(call); err != nil {
					return nil, err
				}
			}

			def, ok := toolsByName[call.Name]
			if !ok {
				return nil, NewStreamingError("tool_call", "model invoked undeclared tool "+call.Name, nil)
			}
			out, err := def.Execute(ctx, json.RawMessage(call.Arguments))
			if err != nil {
				return nil, NewStreamingError("tool_call", "tool "+call.Name+" failed", err)
			}
			raw, err := json.Marshal(out)
			if err != nil {
				return nil, NewStreamingError("tool_call", "tool "+call.Name+" returned unserializable result", err)
			}

			toolResult := ToolResult{CallID: call.ID, Name: call.Name, Result: raw}
			result.ToolResults = append(result.ToolResults, toolResult)
			if handlers.OnToolResult != nil {
				if err := handlers.OnToolResult(toolResult); err != nil {
					return nil, err
				}
			}

			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    string(raw),
				Name:       call.Name,
				ToolCallID: call.ID,
			})
		}
	}

	result.Text = text.String()
	return result, nil
}

// consumeStream drains one stream round, forwarding content deltas and
// accumulating partial tool calls by index until EOF.
func (p *OpenAIProvider) consumeStream(stream *openai.ChatCompletionStream, text *strings.Builder, handlers StreamHandlers) ([]ToolCall, error) {
	var calls []ToolCall
	for {
		response, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return calls, nil
			}
			return nil, p.classifyError("stream_recv", err)
		}
		if len(response.Choices) == 0 {
			continue
		}

		delta := response.Choices[0].Delta
		if delta.Content != "" {
			text.WriteString(delta.Content)
			if handlers.OnDelta != nil {
				if err := handlers.OnDelta(delta.Content); err != nil {
					return nil, err
				}
			}
		}

		for _, tc := range delta.ToolCalls {
			idx := 0
			if tc.Index != nil {
				idx = *tc.Index
			}
			for len(calls) <= idx {
				calls = append(calls, ToolCall{})
			}
			if tc.ID != "" {
				calls[idx].ID = tc.ID
			}
			if tc.Function.Name != "" {
				calls[idx].Name = tc.Function.Name
			}
			calls[idx].Arguments += tc.Function.Arguments
		}
	}
}

func (p *OpenAIProvider) classifyError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden {
			return NewProviderRejectedError(p.providerName, err)
		}
	}
	p.logger.Error("upstream stream failure", "provider", p.providerName, "operation", operation, "error", err)
	return NewStreamingError(operation, "upstream model call failed", err)
}

func toOpenAIToolCalls(calls []ToolCall) []openai.ToolCall {
	out := make([]openai.ToolCall, 0, len(calls))
	for _, call := range calls {
		out = append(out, openai.ToolCall{
			ID:   call.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	return out
}
