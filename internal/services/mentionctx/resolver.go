// File: internal/services/mentionctx/resolver.go
package mentionctx

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/repository/page"
	"github.com/2witstudios/pagespace.team/internal/services"
	"github.com/2witstudios/pagespace.team/internal/services/access"
)

// maxContextChars caps how much page content one mention may inject.
const maxContextChars = 4000

// Resolver extracts referenced-entity context from a mention-bearing
// document: it walks the document for mention nodes, loads each referenced
// page the user can see, and renders its markdown body to plain text.
type Resolver struct {
	pages  page.PageRepository
	gate   *access.Gate
	logger services.Logger
}

func NewResolver(pages page.PageRepository, gate *access.Gate, logger services.Logger) *Resolver {
	return &Resolver{pages: pages, gate: gate, logger: logger}
}

// ExtractMentionContexts returns one delimited block per accessible
// mentioned page, or an empty string when the content is plain text or
// carries no mentions.
func (r *Resolver) ExtractMentionContexts(ctx context.Context, content domain.MessageContent, userID string) (string, error) {
	if !content.IsDocument() {
		return "", nil
	}

	mentions := collectMentions(content.Doc)
	if len(mentions) == 0 {
		return "", nil
	}

	var blocks []string
	for _, m := range mentions {
		if m.ID == "" {
			continue
		}
		if _, err := r.gate.Check(ctx, userID, m.ID, domain.AccessView); err != nil {
			continue
		}

		pg, err := r.pages.FindByID(ctx, m.ID)
		if err != nil {
			return "", fmt.Errorf("loading mentioned page %s: %w", m.ID, err)
		}

		body := markdownToPlainText(pg.Content)
		if len(body) > maxContextChars {
			body = body[:maxContextChars]
		}
		blocks = append(blocks, fmt.Sprintf("Mentioned %s %q:\n%s",
			strings.ToLower(string(pg.Type)), pg.Title, body))
	}
	return strings.Join(blocks, "\n\n"), nil
}

type mentionRef struct {
	ID    string
	Label string
}

// collectMentions walks an opaque rich document for mention nodes.
func collectMentions(node any) []mentionRef {
	var refs []mentionRef
	walkDocument(node, func(n map[string]any) {
		if n["type"] != "mention" {
			return
		}
		attrs, _ := n["attrs"].(map[string]any)
		if attrs == nil {
			return
		}
		ref := mentionRef{}
		if id, ok := attrs["id"].(string); ok {
			ref.ID = id
		}
		if label, ok := attrs["label"].(string); ok {
			ref.Label = label
		}
		refs = append(refs, ref)
	})
	return refs
}

func walkDocument(node any, visit func(map[string]any)) {
	switch n := node.(type) {
	case map[string]any:
		visit(n)
		for _, child := range n {
			walkDocument(child, visit)
		}
	case []any:
		for _, child := range n {
			walkDocument(child, visit)
		}
	}
}

// markdownToPlainText renders a markdown body to text by walking the parsed
// AST and keeping only text segments, with block boundaries as newlines.
func markdownToPlainText(source string) string {
	if source == "" {
		return ""
	}

	src := []byte(source)
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
