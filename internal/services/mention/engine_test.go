// File: internal/services/mention/engine_test.go
package mention

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/repository/page"
	"github.com/2witstudios/pagespace.team/internal/repository/permission"
	"github.com/2witstudios/pagespace.team/internal/services"
	"github.com/2witstudios/pagespace.team/internal/services/access"
)

type fakePageRepo struct {
	pages []domain.Page
}

func (f *fakePageRepo) FindByID(ctx context.Context, id string) (*domain.Page, error) {
	for i := range f.pages {
		if f.pages[i].ID == id {
			return &f.pages[i], nil
		}
	}
	return nil, page.ErrPageNotFound
}

func (f *fakePageRepo) SearchInDrive(ctx context.Context, driveID, query string, limit int) ([]domain.Page, error) {
	var out []domain.Page
	for _, p := range f.pages {
		if p.DriveID != driveID || p.IsTrashed {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(query)) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(query)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(query)) {
			continue
		}
		out = append(out, u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeConversationRepo struct {
	conversations []domain.AssistantConversation
}

func (f *fakeConversationRepo) SearchOwned(ctx context.Context, driveID, userID, query string, limit int) ([]domain.AssistantConversation, error) {
	var out []domain.AssistantConversation
	for _, c := range f.conversations {
		if c.DriveID != driveID || c.UserID != userID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(query)) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type openPermRepo struct {
	denied map[string]bool // pageIDs with no grant
}

func (f *openPermRepo) FindLevel(ctx context.Context, userID, pageID string) (domain.AccessLevel, error) {
	if f.denied[pageID] {
		return "", permission.ErrNoPermission
	}
	return domain.AccessView, nil
}

type engineFixture struct {
	engine *Engine
	pages  *fakePageRepo
	users  *fakeUserRepo
	convos *fakeConversationRepo
	perms  *openPermRepo
}

func newEngineFixture() *engineFixture {
	pages := &fakePageRepo{}
	users := &fakeUserRepo{}
	convos := &fakeConversationRepo{}
	perms := &openPermRepo{denied: map[string]bool{}}
	gate := access.NewGate(perms, &services.NoOpLogger{})
	return &engineFixture{
		engine: NewEngine(pages, users, convos, gate, &services.NoOpLogger{}),
		pages:  pages,
		users:  users,
		convos: convos,
		perms:  perms,
	}
}

func TestSearch_RequiresDriveID(t *testing.T) {
	fx := newEngineFixture()
	_, err := fx.engine.Search(context.Background(), "u1", "", "x", nil)

	var searchErr *SearchError
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, ErrTypeValidation, searchErr.Type)
}

func TestSearch_PageKindMapping(t *testing.T) {
	fx := newEngineFixture()
	fx.pages.pages = []domain.Page{
		{ID: "p1", DriveID: "d1", Title: "Notes", Type: domain.PageTypeDocument},
		{ID: "p2", DriveID: "d1", Title: "Assistant", Type: domain.PageTypeAIChat},
		{ID: "p3", DriveID: "d1", Title: "General", Type: domain.PageTypeChannel},
		{ID: "p4", DriveID: "d1", Title: "Archive", Type: domain.PageTypeFolder},
	}

	got, err := fx.engine.Search(context.Background(), "u1", "d1", "", nil)
	require.NoError(t, err)

	byID := map[string]domain.MentionType{}
	for _, s := range got {
		byID[s.ID] = s.Type
	}
	assert.Equal(t, domain.MentionTypePage, byID["p1"])
	assert.Equal(t, domain.MentionTypeAIPage, byID["p2"])
	assert.Equal(t, domain.MentionTypeChannel, byID["p3"])
	assert.Equal(t, domain.MentionTypePage, byID["p4"])
}

func TestSearch_SkipsInaccessiblePages(t *testing.T) {
	fx := newEngineFixture()
	fx.pages.pages = []domain.Page{
		{ID: "p1", DriveID: "d1", Title: "Open", Type: domain.PageTypeDocument},
		{ID: "p2", DriveID: "d1", Title: "Secret", Type: domain.PageTypeDocument},
	}
	fx.perms.denied["p2"] = true

	got, err := fx.engine.Search(context.Background(), "u1", "d1", "", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestSearch_TypeFilter(t *testing.T) {
	fx := newEngineFixture()
	fx.pages.pages = []domain.Page{
		{ID: "p1", DriveID: "d1", Title: "Notes", Type: domain.PageTypeDocument},
	}
	fx.users.users = []domain.User{{ID: "u2", Name: "Nora", Email: "nora@example.com"}}

	got, err := fx.engine.Search(context.Background(), "u1", "d1", "", []domain.MentionType{domain.MentionTypeUser})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.MentionTypeUser, got[0].Type)
}

func TestSearch_UnknownRequestedTypesMatchNothing(t *testing.T) {
	fx := newEngineFixture()
	fx.pages.pages = []domain.Page{
		{ID: "p1", DriveID: "d1", Title: "Notes", Type: domain.PageTypeDocument},
	}
	fx.users.users = []domain.User{{ID: "u2", Name: "Nora", Email: "nora@example.com"}}

	// An unrecognized type is a dead filter, not an unconstrained search.
	got, err := fx.engine.Search(context.Background(), "u1", "d1", "", []domain.MentionType{"bogus"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearch_ResultTypesAreSubsetOfRequested(t *testing.T) {
	fx := newEngineFixture()
	fx.pages.pages = []domain.Page{
		{ID: "p1", DriveID: "d1", Title: "Notes", Type: domain.PageTypeDocument},
		{ID: "p2", DriveID: "d1", Title: "General", Type: domain.PageTypeChannel},
	}
	fx.users.users = []domain.User{{ID: "u2", Name: "Nora", Email: "nora@example.com"}}

	requested := []domain.MentionType{domain.MentionTypeChannel, "bogus"}
	got, err := fx.engine.Search(context.Background(), "u1", "d1", "", requested)
	require.NoError(t, err)
	require.Len(t, got, 1)
	for _, s := range got {
		assert.Contains(t, requested, s.Type)
	}
}

func TestSearch_ExactMatchRanksFirst(t *testing.T) {
	fx := newEngineFixture()
	fx.pages.pages = []domain.Page{
		{ID: "p1", DriveID: "d1", Title: "Project Alpha", Type: domain.PageTypeDocument},
		{ID: "p2", DriveID: "d1", Title: "project", Type: domain.PageTypeDocument},
		{ID: "p3", DriveID: "d1", Title: "Another Project", Type: domain.PageTypeDocument},
	}

	got, err := fx.engine.Search(context.Background(), "u1", "d1", "Project", nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Case-insensitive exact match wins, the rest sort alphabetically.
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "Another Project", got[1].Label)
	assert.Equal(t, "Project Alpha", got[2].Label)
}

func TestSearch_CapsAtTenSuggestions(t *testing.T) {
	fx := newEngineFixture()
	for i := 0; i < 12; i++ {
		fx.pages.pages = append(fx.pages.pages, domain.Page{
			ID: "p" + string(rune('a'+i)), DriveID: "d1",
			Title: "Doc " + string(rune('a'+i)), Type: domain.PageTypeDocument,
		})
	}
	fx.users.users = []domain.User{
		{ID: "u2", Name: "Ann", Email: "ann@example.com"},
		{ID: "u3", Name: "Ben", Email: "ben@example.com"},
	}

	got, err := fx.engine.Search(context.Background(), "u1", "d1", "", nil)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestSearch_ConversationSuggestions(t *testing.T) {
	fx := newEngineFixture()
	fx.convos.conversations = []domain.AssistantConversation{
		{ID: "c1", DriveID: "d1", UserID: "u1", Title: "Planning help", UpdatedAt: time.Now()},
		{ID: "c2", DriveID: "d1", UserID: "someone-else", Title: "Not mine"},
	}

	got, err := fx.engine.Search(context.Background(), "u1", "d1", "",
		[]domain.MentionType{domain.MentionTypeAIAssistant})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, domain.MentionTypeAIAssistant, got[0].Type)
	assert.Equal(t, "c1", got[0].Data["conversationId"])
}

func TestSearch_UserLabelFallsBackToEmail(t *testing.T) {
	fx := newEngineFixture()
	fx.users.users = []domain.User{{ID: "u2", Email: "anon@example.com"}}

	got, err := fx.engine.Search(context.Background(), "u1", "d1", "anon",
		[]domain.MentionType{domain.MentionTypeUser})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "anon@example.com", got[0].Label)
}
