// File: internal/services/chat/orchestrator.go
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/repository/aichat"
	"github.com/2witstudios/pagespace.team/internal/repository/chatmessage"
	"github.com/2witstudios/pagespace.team/internal/repository/page"
	"github.com/2witstudios/pagespace.team/internal/services"
	"github.com/2witstudios/pagespace.team/internal/services/access"
	"github.com/2witstudios/pagespace.team/internal/services/ai"
)

// StreamSink receives the caller-visible side of a streamed turn. The text
// handed to Delta is exactly the text persisted for the assistant message.
type StreamSink interface {
	Delta(text string) error
	ToolCall(call ai.ToolCall) error
	ToolResult(result ai.ToolResult) error
}

// Orchestrator drives one conversational turn end to end: authorization,
// history invalidation, prompt assembly, streamed generation with tools,
// and the atomic persistence of the resulting exchange.
type Orchestrator struct {
	config   *Config
	pages    page.PageRepository
	aiChats  aichat.AiChatRepository
	messages chatmessage.MessageRepository
	gate     *access.Gate
	resolver ai.ModelResolver
	mentions MentionContextResolver
	logger   services.Logger
}

func NewOrchestrator(
	config *Config,
	pages page.PageRepository,
	aiChats aichat.AiChatRepository,
	messages chatmessage.MessageRepository,
	gate *access.Gate,
	resolver ai.ModelResolver,
	mentions MentionContextResolver,
	logger services.Logger,
) (*Orchestrator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewValidationError("config", err.Error())
	}
	if pages == nil || aiChats == nil || messages == nil {
		return nil, NewValidationError("constructor", "repositories are required")
	}
	if gate == nil {
		return nil, NewValidationError("constructor", "access gate is required")
	}
	if resolver == nil {
		return nil, NewValidationError("constructor", "model resolver is required")
	}
	if logger == nil {
		logger = &services.NoOpLogger{}
	}
	return &Orchestrator{
		config:   config,
		pages:    pages,
		aiChats:  aiChats,
		messages: messages,
		gate:     gate,
		resolver: resolver,
		mentions: mentions,
		logger:   logger,
	}, nil
}

// StreamTurn runs the turn state machine. Any returned error means the turn
// failed without the new exchange being persisted; errors before the first
// Delta also mean no caller-visible output was produced.
func (o *Orchestrator) StreamTurn(ctx context.Context, userID, pageID string, req *TurnRequest, sink StreamSink) error {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return NewValidationError("request", fieldErrs[0].Message)
	}
	if len(req.Messages) > o.config.MaxMessages {
		return NewValidationError("request", "too many messages in turn history")
	}

	// Authorized: chat use requires EDIT rank.
	if _, err := o.gate.Check(ctx, userID, pageID, domain.AccessEdit); err != nil {
		return err
	}

	// HistoryReconciled: edit and regenerate each deactivate their own
	// range. Both run when both flags are set (union of ranges).
	if err := o.invalidateHistory(ctx, pageID, req); err != nil {
		return err
	}

	// Preconditions: page present, not trashed, model configured.
	pg, err := o.pages.FindByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, page.ErrPageNotFound) {
			return NewNotFoundError(pageID)
		}
		return NewPersistenceError(pageID, err)
	}
	if pg.IsTrashed {
		return NewTrashedError(pageID)
	}

	chatConfig, err := o.aiChats.FindByPageID(ctx, pageID)
	if err != nil && !errors.Is(err, aichat.ErrConfigNotFound) {
		return NewPersistenceError(pageID, err)
	}
	model := ""
	if chatConfig != nil {
		model = chatConfig.Model
	}
	if model == "" {
		return ai.NewNoModelError()
	}

	// PromptAssembled: mention extraction failure is swallowed.
	lastUserMessage := req.LastUserMessage()
	mentionContext := ""
	if o.mentions != nil {
		mentionContext, err = o.mentions.ExtractMentionContexts(ctx, lastUserMessage.Content, userID)
		if err != nil {
			o.logger.Warn("failed to extract mention contexts", "page_id", pageID, "error", err)
			mentionContext = ""
		}
	}

	configuredPrompt := o.config.SystemPrompt
	if chatConfig.SystemPrompt != "" {
		configuredPrompt = chatConfig.SystemPrompt
	}
	systemPrompt := buildSystemPrompt(configuredPrompt, mentionContext)

	temperature := o.config.Temperature
	if chatConfig.Temperature != nil {
		temperature = *chatConfig.Temperature
	}

	resolved, err := o.resolver.Resolve(ctx, userID, model)
	if err != nil {
		return err
	}

	// Generating: stream to the sink while buffering for persistence.
	history := make([]ai.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		history = append(history, ai.Message{Role: m.Role, Content: m.Content.AsPlainText()})
	}

	o.logger.Info("starting turn generation",
		"page_id", pageID, "model", resolved.Model, "provider", resolved.ProviderName)

	result, err := resolved.Provider.StreamChat(ctx, ai.ChatRequest{
		Model:        resolved.Model,
		SystemPrompt: systemPrompt,
		Messages:     history,
		Temperature:  temperature,
		Tools:        TurnTools(),
	}, StreamHandlersForSink(sink))
	if err != nil {
		var aiErr *ai.AIError
		if errors.As(err, &aiErr) {
			return err
		}
		// Sink write failures and cancellations land here; either way the
		// exchange is not persisted.
		return NewGenerationError(pageID, err)
	}
	if ctx.Err() != nil {
		return NewGenerationError(pageID, ctx.Err())
	}

	// Persisting: both messages or neither.
	now := time.Now().UTC()
	userMsg := &domain.ChatMessage{
		ID:        uuid.NewString(),
		PageID:    pageID,
		UserID:    userID,
		Role:      domain.RoleUser,
		Content:   lastUserMessage.Content.AsPlainText(),
		IsActive:  true,
		CreatedAt: now,
	}
	assistantMsg := &domain.ChatMessage{
		ID:          uuid.NewString(),
		PageID:      pageID,
		Role:        domain.RoleAssistant,
		Content:     result.Text,
		ToolCalls:   toolCallRecords(result.ToolCalls),
		ToolResults: toolResultRecords(result.ToolResults),
		IsActive:    true,
		CreatedAt:   now,
	}
	if err := o.messages.CreatePair(ctx, userMsg, assistantMsg); err != nil {
		o.logger.Error("failed to persist exchange", "page_id", pageID, "error", err)
		return NewPersistenceError(pageID, err)
	}

	o.logger.Info("turn complete", "page_id", pageID, "response_length", len(result.Text))
	return nil
}

func (o *Orchestrator) invalidateHistory(ctx context.Context, pageID string, req *TurnRequest) error {
	if req.IsEdit && req.EditedMessageCreatedAt != nil {
		if _, err := o.messages.DeactivateFrom(ctx, pageID, *req.EditedMessageCreatedAt); err != nil {
			return NewPersistenceError(pageID, err)
		}
	}
	if req.IsRegenerate && req.RegeneratedMessageCreatedAt != nil {
		if _, err := o.messages.DeactivateFrom(ctx, pageID, *req.RegeneratedMessageCreatedAt); err != nil {
			return NewPersistenceError(pageID, err)
		}
	}
	return nil
}

// StreamHandlersForSink adapts a StreamSink to provider callbacks. A nil
// sink buffers silently (used by tests).
func StreamHandlersForSink(sink StreamSink) ai.StreamHandlers {
	if sink == nil {
		return ai.StreamHandlers{}
	}
	return ai.StreamHandlers{
		OnDelta:      sink.Delta,
		OnToolCall:   sink.ToolCall,
		OnToolResult: sink.ToolResult,
	}
}

func toolCallRecords(calls []ai.ToolCall) []domain.ToolCallRecord {
	if len(calls) == 0 {
		return nil
	}
	out := make([]domain.ToolCallRecord, 0, len(calls))
	for _, c := range calls {
		out = append(out, domain.ToolCallRecord{ID: c.ID, Name: c.Name, Arguments: c.Arguments})
	}
	return out
}

func toolResultRecords(results []ai.ToolResult) []domain.ToolResultRecord {
	if len(results) == 0 {
		return nil
	}
	out := make([]domain.ToolResultRecord, 0, len(results))
	for _, r := range results {
		out = append(out, domain.ToolResultRecord{CallID: r.CallID, Name: r.Name, Result: r.Result})
	}
	return out
}
