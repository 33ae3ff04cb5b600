// File: internal/domain/content.go
package domain

import (
	"encoding/json"
	"errors"
)

// MessageContent is the body of an incoming turn message: either plain text
// or a mention-bearing rich document. The document form is kept opaque; it
// round-trips through its original JSON.
type MessageContent struct {
	Text string
	Doc  map[string]any
}

// IsDocument reports whether the content is the structured form.
func (c MessageContent) IsDocument() bool {
	return c.Doc != nil
}

// AsPlainText normalizes the content to text. Document bodies are
// serialized back to their JSON, matching how they are persisted and fed to
// the model.
func (c MessageContent) AsPlainText() string {
	if c.Doc == nil {
		return c.Text
	}
	raw, err := json.Marshal(c.Doc)
	if err != nil {
		return ""
	}
	return string(raw)
}

// UnmarshalJSON accepts a JSON string or a JSON object.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		c.Doc = nil
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err == nil && doc != nil {
		c.Text = ""
		c.Doc = doc
		return nil
	}
	return errors.New("content must be a string or an object")
}

// MarshalJSON writes back whichever form the content holds.
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.Doc != nil {
		return json.Marshal(c.Doc)
	}
	return json.Marshal(c.Text)
}
