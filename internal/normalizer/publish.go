package normalizer

import (
	"fmt"
	"html"
	"strings"

	"github.com/draftdesk/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// Publisher produces publish-ready and standalone HTML renderings of an
// article. The bluemonday pass runs after the editor cleanup so only a
// safe HTML subset reaches a downstream publishing platform.
type Publisher struct {
	policy *bluemonday.Policy
}

// NewPublisher creates a Publisher with a UGC policy that keeps images
func NewPublisher() *Publisher {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &Publisher{policy: p}
}

// PublishHTML wraps the sanitized body in a semantic article shell with
// a metadata header and a word-count/reading-time footer
func (p *Publisher) PublishHTML(a *models.Article) string {
	body := p.policy.Sanitize(SanitizeEditorHTML(a.HTMLContent))

	var b strings.Builder
	b.WriteString("<article>\n<header>\n")
	b.WriteString("<h1>" + html.EscapeString(a.Title) + "</h1>\n")
	if a.Author != "" {
		b.WriteString(`<p class="byline">` + html.EscapeString(a.Author) + "</p>\n")
	}
	if a.PublicationDate != "" {
		b.WriteString("<time>" + html.EscapeString(a.PublicationDate) + "</time>\n")
	}
	if a.Category != "" {
		b.WriteString(`<p class="category">` + html.EscapeString(a.Category) + "</p>\n")
	}
	if a.Summary != "" {
		b.WriteString(`<p class="summary">` + html.EscapeString(a.Summary) + "</p>\n")
	}
	b.WriteString("</header>\n")
	b.WriteString(body)
	b.WriteString("\n<footer>\n")
	fmt.Fprintf(&b, "<p>%d words &middot; %d min read</p>\n", a.WordCount, ReadingTime(a.WordCount))
	b.WriteString("</footer>\n</article>\n")
	return b.String()
}

// Document produces a self-contained HTML document with inline styles,
// suitable for download
func (p *Publisher) Document(a *models.Article) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(a.Title) + "</title>\n")
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: Georgia, serif; max-width: 42em; margin: 2em auto; line-height: 1.6; color: #222; }\n")
	b.WriteString("header { border-bottom: 1px solid #ddd; margin-bottom: 1.5em; padding-bottom: 1em; }\n")
	b.WriteString("header h1 { margin-bottom: 0.2em; }\n")
	b.WriteString(".byline, .category, time { color: #666; font-size: 0.9em; }\n")
	b.WriteString(".summary { font-style: italic; }\n")
	b.WriteString("footer { border-top: 1px solid #ddd; margin-top: 2em; padding-top: 0.5em; color: #666; font-size: 0.85em; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(p.PublishHTML(a))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
