// File: internal/domain/mention.go
package domain

// MentionType classifies what a mention suggestion points at.
type MentionType string

const (
	MentionTypePage        MentionType = "page"
	MentionTypeUser        MentionType = "user"
	MentionTypeAIPage      MentionType = "ai-page"
	MentionTypeAIAssistant MentionType = "ai-assistant"
	MentionTypeChannel     MentionType = "channel"
)

// AllMentionTypes is the default set when a search does not constrain types.
var AllMentionTypes = []MentionType{
	MentionTypePage,
	MentionTypeUser,
	MentionTypeAIPage,
	MentionTypeAIAssistant,
	MentionTypeChannel,
}

// MentionSuggestion is one ranked candidate for the mention picker. Produced
// fresh per query, never persisted.
type MentionSuggestion struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Type        MentionType    `json:"type"`
	Data        map[string]any `json:"data"`
	Description string         `json:"description"`
}
