// File: internal/handlers/mention_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/middleware"
	"github.com/2witstudios/pagespace.team/internal/repository/page"
	"github.com/2witstudios/pagespace.team/internal/services"
	"github.com/2witstudios/pagespace.team/internal/services/access"
	"github.com/2witstudios/pagespace.team/internal/services/mention"
)

type fakePageRepo struct {
	pages []domain.Page
}

func (f *fakePageRepo) FindByID(ctx context.Context, id string) (*domain.Page, error) {
	return nil, page.ErrPageNotFound
}

func (f *fakePageRepo) SearchInDrive(ctx context.Context, driveID, query string, limit int) ([]domain.Page, error) {
	var out []domain.Page
	for _, p := range f.pages {
		if p.DriveID == driveID && !p.IsTrashed {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeConversationRepo struct{}

func (f *fakeConversationRepo) SearchOwned(ctx context.Context, driveID, userID, query string, limit int) ([]domain.AssistantConversation, error) {
	return nil, nil
}

type openPermRepo struct{}

func (f *openPermRepo) FindLevel(ctx context.Context, userID, pageID string) (domain.AccessLevel, error) {
	return domain.AccessView, nil
}

func newMentionFixture() *MentionHandler {
	pages := &fakePageRepo{pages: []domain.Page{
		{ID: "p1", DriveID: "d1", Title: "Roadmap", Type: domain.PageTypeDocument},
	}}
	users := &fakeUserRepo{byEmail: map[string]*domain.User{}}
	gate := access.NewGate(&openPermRepo{}, &services.NoOpLogger{})
	engine := mention.NewEngine(pages, users, &fakeConversationRepo{}, gate, &services.NoOpLogger{})
	return NewMentionHandler(engine, &services.NoOpLogger{})
}

func searchWith(t *testing.T, h *MentionHandler, target, userID string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", target, nil)
	if userID != "" {
		r = r.WithContext(context.WithValue(r.Context(), middleware.UserIDKey, userID))
	}
	h.Search(w, r)
	return w
}

func TestMentionSearch_RequiresAuth(t *testing.T) {
	h := newMentionFixture()
	w := searchWith(t, h, "/api/mentions/search?q=x&driveId=d1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMentionSearch_MissingDriveID(t *testing.T) {
	h := newMentionFixture()
	w := searchWith(t, h, "/api/mentions/search?q=x", "u1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMentionSearch_ReturnsBareArray(t *testing.T) {
	h := newMentionFixture()
	w := searchWith(t, h, "/api/mentions/search?driveId=d1", "u1")

	require.Equal(t, http.StatusOK, w.Code)

	// The body is the suggestion array itself, not a wrapper object.
	var suggestions []domain.MentionSuggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &suggestions))
	require.Len(t, suggestions, 1)
	assert.Equal(t, "p1", suggestions[0].ID)
	assert.Equal(t, domain.MentionTypePage, suggestions[0].Type)
}

func TestMentionSearch_UnknownTypeMatchesNothing(t *testing.T) {
	h := newMentionFixture()
	w := searchWith(t, h, "/api/mentions/search?driveId=d1&types=bogus", "u1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestParseMentionTypes(t *testing.T) {
	t.Run("empty means no filter", func(t *testing.T) {
		assert.Nil(t, parseMentionTypes(""))
	})

	t.Run("splits and trims", func(t *testing.T) {
		got := parseMentionTypes("page, user")
		assert.Equal(t, []domain.MentionType{domain.MentionTypePage, domain.MentionTypeUser}, got)
	})

	t.Run("unknown values pass through as dead filters", func(t *testing.T) {
		got := parseMentionTypes("page,bogus,channel")
		assert.Equal(t, []domain.MentionType{
			domain.MentionTypePage, domain.MentionType("bogus"), domain.MentionTypeChannel,
		}, got)
	})

	t.Run("all unknown never collapses to no filter", func(t *testing.T) {
		got := parseMentionTypes("bogus,wat")
		assert.Len(t, got, 2)
	})
}
