// File: internal/services/mention/engine.go
package mention

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/repository/conversation"
	"github.com/2witstudios/pagespace.team/internal/repository/page"
	"github.com/2witstudios/pagespace.team/internal/repository/user"
	"github.com/2witstudios/pagespace.team/internal/services"
	"github.com/2witstudios/pagespace.team/internal/services/access"
)

const (
	maxSuggestions  = 10
	pageFetchLimit  = 10
	userFetchLimit  = 5
	convoFetchLimit = 5
)

// Engine federates page, user, and assistant-conversation searches into one
// ranked suggestion list for the mention picker.
type Engine struct {
	pages         page.PageRepository
	users         user.UserRepository
	conversations conversation.ConversationRepository
	gate          *access.Gate
	logger        services.Logger
}

func NewEngine(
	pages page.PageRepository,
	users user.UserRepository,
	conversations conversation.ConversationRepository,
	gate *access.Gate,
	logger services.Logger,
) *Engine {
	return &Engine{
		pages:         pages,
		users:         users,
		conversations: conversations,
		gate:          gate,
		logger:        logger,
	}
}

// Search returns at most 10 suggestions of the requested types, exact
// label matches first, then case-insensitive alphabetical. An empty
// requestedTypes means all five types; an empty query matches everything
// up to the per-category fetch caps.
func (e *Engine) Search(ctx context.Context, userID, driveID, query string, requestedTypes []domain.MentionType) ([]domain.MentionSuggestion, error) {
	if driveID == "" {
		return nil, NewValidationError("driveId is required")
	}
	if len(requestedTypes) == 0 {
		requestedTypes = domain.AllMentionTypes
	}
	requested := make(map[domain.MentionType]bool, len(requestedTypes))
	for _, t := range requestedTypes {
		requested[t] = true
	}

	suggestions := make([]domain.MentionSuggestion, 0, maxSuggestions)

	if requested[domain.MentionTypePage] || requested[domain.MentionTypeAIPage] || requested[domain.MentionTypeChannel] {
		pageSuggestions, err := e.searchPages(ctx, userID, driveID, query, requested)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, pageSuggestions...)
	}

	if requested[domain.MentionTypeUser] {
		userSuggestions, err := e.searchUsers(ctx, query)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, userSuggestions...)
	}

	if requested[domain.MentionTypeAIAssistant] {
		convoSuggestions, err := e.searchConversations(ctx, userID, driveID, query)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, convoSuggestions...)
	}

	rank(suggestions, query)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}

func (e *Engine) searchPages(ctx context.Context, userID, driveID, query string, requested map[domain.MentionType]bool) ([]domain.MentionSuggestion, error) {
	pages, err := e.pages.SearchInDrive(ctx, driveID, query, pageFetchLimit)
	if err != nil {
		return nil, NewSearchError("pages", err)
	}

	var suggestions []domain.MentionSuggestion
	for _, p := range pages {
		// Any access level qualifies; no level drops the candidate.
		if _, err := e.gate.Check(ctx, userID, p.ID, domain.AccessView); err != nil {
			var accessErr *access.AccessError
			if errors.As(err, &accessErr) && accessErr.IsForbidden() {
				continue
			}
			return nil, NewSearchError("page_access", err)
		}

		mentionType, ok := mentionTypeForPage(p.Type)
		if !ok || !requested[mentionType] {
			continue
		}

		suggestions = append(suggestions, domain.MentionSuggestion{
			ID:    p.ID,
			Label: p.Title,
			Type:  mentionType,
			Data: map[string]any{
				"pageType": string(p.Type),
				"driveId":  driveID,
			},
			Description: strings.ToLower(string(p.Type)) + " in drive",
		})
	}
	return suggestions, nil
}

func (e *Engine) searchUsers(ctx context.Context, query string) ([]domain.MentionSuggestion, error) {
	users, err := e.users.Search(ctx, query, userFetchLimit)
	if err != nil {
		return nil, NewSearchError("users", err)
	}

	var suggestions []domain.MentionSuggestion
	for _, u := range users {
		label := u.Name
		if label == "" {
			label = u.Email
		}
		data := map[string]any{"email": u.Email}
		if u.Image != "" {
			data["avatar"] = u.Image
		}
		suggestions = append(suggestions, domain.MentionSuggestion{
			ID:          u.ID,
			Label:       label,
			Type:        domain.MentionTypeUser,
			Data:        data,
			Description: u.Email,
		})
	}
	return suggestions, nil
}

func (e *Engine) searchConversations(ctx context.Context, userID, driveID, query string) ([]domain.MentionSuggestion, error) {
	conversations, err := e.conversations.SearchOwned(ctx, driveID, userID, query, convoFetchLimit)
	if err != nil {
		return nil, NewSearchError("conversations", err)
	}

	var suggestions []domain.MentionSuggestion
	for _, c := range conversations {
		suggestions = append(suggestions, domain.MentionSuggestion{
			ID:    c.ID,
			Label: c.Title,
			Type:  domain.MentionTypeAIAssistant,
			Data: map[string]any{
				"conversationId": c.ID,
				"title":          c.Title,
				"driveId":        c.DriveID,
				"lastActivity":   c.UpdatedAt,
			},
			Description: "Assistant conversation",
		})
	}
	return suggestions, nil
}

// rank sorts exact case-insensitive label matches first, then by
// case-insensitive label. The sort is stable so candidates with equal keys
// keep their fan-out order.
func rank(suggestions []domain.MentionSuggestion, query string) {
	loweredQuery := strings.ToLower(query)
	sort.SliceStable(suggestions, func(i, j int) bool {
		iExact := strings.ToLower(suggestions[i].Label) == loweredQuery
		jExact := strings.ToLower(suggestions[j].Label) == loweredQuery
		if iExact != jExact {
			return iExact
		}
		return strings.ToLower(suggestions[i].Label) < strings.ToLower(suggestions[j].Label)
	})
}

func mentionTypeForPage(pageType domain.PageType) (domain.MentionType, bool) {
	switch pageType {
	case domain.PageTypeAIChat:
		return domain.MentionTypeAIPage, true
	case domain.PageTypeChannel:
		return domain.MentionTypeChannel, true
	case domain.PageTypeDocument, domain.PageTypeFolder, domain.PageTypeDatabase:
		return domain.MentionTypePage, true
	default:
		return "", false
	}
}
