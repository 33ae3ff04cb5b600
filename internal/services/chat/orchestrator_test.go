// File: internal/services/chat/orchestrator_test.go
package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/repository/aichat"
	"github.com/2witstudios/pagespace.team/internal/repository/page"
	"github.com/2witstudios/pagespace.team/internal/repository/permission"
	"github.com/2witstudios/pagespace.team/internal/services"
	"github.com/2witstudios/pagespace.team/internal/services/access"
	"github.com/2witstudios/pagespace.team/internal/services/ai"
)

// --- fakes ---

type fakePageRepo struct {
	pages map[string]*domain.Page
}

func (f *fakePageRepo) FindByID(ctx context.Context, id string) (*domain.Page, error) {
	if p, ok := f.pages[id]; ok {
		return p, nil
	}
	return nil, page.ErrPageNotFound
}

func (f *fakePageRepo) SearchInDrive(ctx context.Context, driveID, query string, limit int) ([]domain.Page, error) {
	return nil, nil
}

type fakeAiChatRepo struct {
	configs map[string]*domain.AiChat
}

func (f *fakeAiChatRepo) FindByPageID(ctx context.Context, pageID string) (*domain.AiChat, error) {
	if c, ok := f.configs[pageID]; ok {
		return c, nil
	}
	return nil, aichat.ErrConfigNotFound
}

type deactivation struct {
	pageID string
	cutoff time.Time
}

type fakeMessageRepo struct {
	deactivations []deactivation
	pairs         [][2]*domain.ChatMessage
	createPairErr error
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *domain.ChatMessage) error { return nil }

func (f *fakeMessageRepo) CreatePair(ctx context.Context, userMsg, assistantMsg *domain.ChatMessage) error {
	if f.createPairErr != nil {
		return f.createPairErr
	}
	f.pairs = append(f.pairs, [2]*domain.ChatMessage{userMsg, assistantMsg})
	return nil
}

func (f *fakeMessageRepo) DeactivateFrom(ctx context.Context, pageID string, cutoff time.Time) (int64, error) {
	f.deactivations = append(f.deactivations, deactivation{pageID, cutoff})
	return 1, nil
}

func (f *fakeMessageRepo) FindActiveByPageID(ctx context.Context, pageID string) ([]domain.ChatMessage, error) {
	return nil, nil
}

func (f *fakeMessageRepo) CountByPageID(ctx context.Context, pageID string) (int64, error) {
	return 0, nil
}

type fakePermRepo struct {
	levels map[string]domain.AccessLevel
}

func (f *fakePermRepo) FindLevel(ctx context.Context, userID, pageID string) (domain.AccessLevel, error) {
	if level, ok := f.levels[userID+"/"+pageID]; ok {
		return level, nil
	}
	return "", permission.ErrNoPermission
}

type fakeProvider struct {
	deltas  []string
	result  *ai.ChatResult
	err     error
	lastReq ai.ChatRequest
}

func (f *fakeProvider) StreamChat(ctx context.Context, req ai.ChatRequest, handlers ai.StreamHandlers) (*ai.ChatResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	text := ""
	for _, d := range f.deltas {
		if handlers.OnDelta != nil {
			if err := handlers.OnDelta(d); err != nil {
				return nil, err
			}
		}
		text += d
	}
	if f.result != nil {
		return f.result, nil
	}
	return &ai.ChatResult{Text: text}, nil
}

type fakeModelResolver struct {
	provider ai.Provider
	err      error
}

func (f *fakeModelResolver) Resolve(ctx context.Context, userID, modelID string) (*ai.ResolvedModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ai.ResolvedModel{Provider: f.provider, ProviderName: "openai", Model: modelID}, nil
}

type fakeMentionResolver struct {
	context string
	err     error
}

func (f *fakeMentionResolver) ExtractMentionContexts(ctx context.Context, content domain.MessageContent, userID string) (string, error) {
	return f.context, f.err
}

type recordingSink struct {
	deltas []string
}

func (s *recordingSink) Delta(text string) error { s.deltas = append(s.deltas, text); return nil }
func (s *recordingSink) ToolCall(c ai.ToolCall) error     { return nil }
func (s *recordingSink) ToolResult(r ai.ToolResult) error { return nil }

// --- harness ---

type turnFixture struct {
	orchestrator *Orchestrator
	pages        *fakePageRepo
	aiChats      *fakeAiChatRepo
	messages     *fakeMessageRepo
	provider     *fakeProvider
	mentions     *fakeMentionResolver
}

func newTurnFixture(t *testing.T) *turnFixture {
	t.Helper()

	pages := &fakePageRepo{pages: map[string]*domain.Page{
		"p1": {ID: "p1", DriveID: "d1", Title: "Chat", Type: domain.PageTypeAIChat},
	}}
	aiChats := &fakeAiChatRepo{configs: map[string]*domain.AiChat{
		"p1": {PageID: "p1", Model: "gpt-4o"},
	}}
	messages := &fakeMessageRepo{}
	provider := &fakeProvider{deltas: []string{"Hel", "lo"}}
	mentions := &fakeMentionResolver{}
	gate := access.NewGate(&fakePermRepo{levels: map[string]domain.AccessLevel{
		"u1/p1": domain.AccessEdit,
	}}, &services.NoOpLogger{})

	orchestrator, err := NewOrchestrator(
		DefaultConfig(),
		pages,
		aiChats,
		messages,
		gate,
		&fakeModelResolver{provider: provider},
		mentions,
		&services.NoOpLogger{},
	)
	require.NoError(t, err)

	return &turnFixture{
		orchestrator: orchestrator,
		pages:        pages,
		aiChats:      aiChats,
		messages:     messages,
		provider:     provider,
		mentions:     mentions,
	}
}

func simpleTurn(text string) *TurnRequest {
	return &TurnRequest{Messages: []IncomingMessage{userMsg(text)}}
}

// --- tests ---

func TestStreamTurn_HappyPath(t *testing.T) {
	fx := newTurnFixture(t)
	sink := &recordingSink{}

	err := fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi there"), sink)
	require.NoError(t, err)

	assert.Equal(t, []string{"Hel", "lo"}, sink.deltas)

	require.Len(t, fx.messages.pairs, 1)
	userRow, assistantRow := fx.messages.pairs[0][0], fx.messages.pairs[0][1]

	assert.Equal(t, domain.RoleUser, userRow.Role)
	assert.Equal(t, "hi there", userRow.Content)
	assert.Equal(t, "u1", userRow.UserID)
	assert.True(t, userRow.IsActive)

	assert.Equal(t, domain.RoleAssistant, assistantRow.Role)
	// Persisted text must equal the concatenated streamed deltas.
	assert.Equal(t, "Hello", assistantRow.Content)
	assert.Empty(t, assistantRow.UserID)
	assert.True(t, assistantRow.IsActive)

	assert.NotEmpty(t, userRow.ID)
	assert.NotEmpty(t, assistantRow.ID)
	assert.NotEqual(t, userRow.ID, assistantRow.ID)
}

func TestStreamTurn_ValidationFailure(t *testing.T) {
	fx := newTurnFixture(t)

	err := fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", &TurnRequest{}, &recordingSink{})

	var turnErr *TurnError
	require.ErrorAs(t, err, &turnErr)
	assert.Equal(t, ErrTypeValidation, turnErr.Type)
	assert.Empty(t, fx.messages.pairs)
}

func TestStreamTurn_Forbidden(t *testing.T) {
	fx := newTurnFixture(t)

	err := fx.orchestrator.StreamTurn(context.Background(), "intruder", "p1", simpleTurn("hi"), &recordingSink{})

	var accessErr *access.AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.True(t, accessErr.IsForbidden())
	assert.Empty(t, fx.messages.deactivations, "denied turns must not touch history")
	assert.Empty(t, fx.messages.pairs)
}

func TestStreamTurn_PageNotFound(t *testing.T) {
	fx := newTurnFixture(t)
	gate := access.NewGate(&fakePermRepo{levels: map[string]domain.AccessLevel{
		"u1/ghost": domain.AccessEdit,
	}}, &services.NoOpLogger{})
	orchestrator, err := NewOrchestrator(DefaultConfig(), fx.pages, fx.aiChats, fx.messages, gate,
		&fakeModelResolver{provider: fx.provider}, fx.mentions, &services.NoOpLogger{})
	require.NoError(t, err)

	err = orchestrator.StreamTurn(context.Background(), "u1", "ghost", simpleTurn("hi"), &recordingSink{})

	var turnErr *TurnError
	require.ErrorAs(t, err, &turnErr)
	assert.Equal(t, ErrTypeNotFound, turnErr.Type)
}

func TestStreamTurn_TrashedPage(t *testing.T) {
	fx := newTurnFixture(t)
	fx.pages.pages["p1"].IsTrashed = true

	err := fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi"), &recordingSink{})

	var turnErr *TurnError
	require.ErrorAs(t, err, &turnErr)
	assert.Equal(t, ErrTypeTrashed, turnErr.Type)
	assert.Empty(t, fx.messages.pairs)
}

func TestStreamTurn_NoModelConfigured(t *testing.T) {
	fx := newTurnFixture(t)
	delete(fx.aiChats.configs, "p1")

	err := fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi"), &recordingSink{})

	var aiErr *ai.AIError
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, ai.ErrTypeNoModel, aiErr.Type)
	assert.Empty(t, fx.messages.pairs)
}

func TestStreamTurn_EmptyModelConfigured(t *testing.T) {
	fx := newTurnFixture(t)
	fx.aiChats.configs["p1"].Model = ""

	err := fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi"), &recordingSink{})

	var aiErr *ai.AIError
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, ai.ErrTypeNoModel, aiErr.Type)
}

func TestStreamTurn_EditDeactivatesHistory(t *testing.T) {
	fx := newTurnFixture(t)
	cutoff := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	req := simpleTurn("edited message")
	req.IsEdit = true
	req.EditedMessageCreatedAt = &cutoff

	require.NoError(t, fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", req, &recordingSink{}))

	require.Len(t, fx.messages.deactivations, 1)
	assert.Equal(t, "p1", fx.messages.deactivations[0].pageID)
	assert.Equal(t, cutoff, fx.messages.deactivations[0].cutoff)
}

func TestStreamTurn_EditAndRegenerateBothDeactivate(t *testing.T) {
	fx := newTurnFixture(t)
	editCutoff := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	regenCutoff := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	req := simpleTurn("redo")
	req.IsEdit = true
	req.EditedMessageCreatedAt = &editCutoff
	req.IsRegenerate = true
	req.RegeneratedMessageCreatedAt = &regenCutoff

	require.NoError(t, fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", req, &recordingSink{}))

	require.Len(t, fx.messages.deactivations, 2)
	assert.Equal(t, editCutoff, fx.messages.deactivations[0].cutoff)
	assert.Equal(t, regenCutoff, fx.messages.deactivations[1].cutoff)
}

func TestStreamTurn_MentionFailureIsSwallowed(t *testing.T) {
	fx := newTurnFixture(t)
	fx.mentions.err = errors.New("mention store down")

	err := fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi"), &recordingSink{})
	require.NoError(t, err)

	assert.NotContains(t, fx.provider.lastReq.SystemPrompt, "mentioned the following")
	assert.Len(t, fx.messages.pairs, 1)
}

func TestStreamTurn_MentionContextReachesPrompt(t *testing.T) {
	fx := newTurnFixture(t)
	fx.mentions.context = "Mentioned page \"Roadmap\":\nShip Q3."

	require.NoError(t, fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi"), &recordingSink{}))

	assert.Contains(t, fx.provider.lastReq.SystemPrompt, "The user has mentioned the following in their message:")
	assert.Contains(t, fx.provider.lastReq.SystemPrompt, "Ship Q3.")
}

func TestStreamTurn_PageConfigOverrides(t *testing.T) {
	fx := newTurnFixture(t)
	temp := float32(0.2)
	fx.aiChats.configs["p1"].SystemPrompt = "Answer in French."
	fx.aiChats.configs["p1"].Temperature = &temp

	require.NoError(t, fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi"), &recordingSink{}))

	assert.Equal(t, "Answer in French.", fx.provider.lastReq.SystemPrompt)
	assert.Equal(t, temp, fx.provider.lastReq.Temperature)
}

func TestStreamTurn_DefaultsApply(t *testing.T) {
	fx := newTurnFixture(t)

	require.NoError(t, fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi"), &recordingSink{}))

	assert.Equal(t, DefaultSystemPrompt, fx.provider.lastReq.SystemPrompt)
	assert.Equal(t, DefaultTemperature, fx.provider.lastReq.Temperature)
}

func TestStreamTurn_GenerationFailureSkipsPersistence(t *testing.T) {
	fx := newTurnFixture(t)
	fx.provider.err = errors.New("connection reset")

	err := fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi"), &recordingSink{})

	var turnErr *TurnError
	require.ErrorAs(t, err, &turnErr)
	assert.Equal(t, ErrTypeGeneration, turnErr.Type)
	assert.Empty(t, fx.messages.pairs)
}

func TestStreamTurn_PersistenceFailure(t *testing.T) {
	fx := newTurnFixture(t)
	fx.messages.createPairErr = errors.New("disk full")

	err := fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("hi"), &recordingSink{})

	var turnErr *TurnError
	require.ErrorAs(t, err, &turnErr)
	assert.Equal(t, ErrTypePersistence, turnErr.Type)
}

func TestStreamTurn_ToolRecordsPersist(t *testing.T) {
	fx := newTurnFixture(t)
	fx.provider.result = &ai.ChatResult{
		Text:        "Sunny.",
		ToolCalls:   []ai.ToolCall{{ID: "call_1", Name: "getWeather", Arguments: `{"location":"Lisbon"}`}},
		ToolResults: []ai.ToolResult{{CallID: "call_1", Name: "getWeather", Result: []byte(`{"temperature":75}`)}},
	}

	require.NoError(t, fx.orchestrator.StreamTurn(context.Background(), "u1", "p1", simpleTurn("weather?"), &recordingSink{}))

	require.Len(t, fx.messages.pairs, 1)
	assistantRow := fx.messages.pairs[0][1]
	require.Len(t, assistantRow.ToolCalls, 1)
	assert.Equal(t, "getWeather", assistantRow.ToolCalls[0].Name)
	require.Len(t, assistantRow.ToolResults, 1)
	assert.Equal(t, "call_1", assistantRow.ToolResults[0].CallID)
}
