package normalizer

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/draftdesk/internal/models"
)

// ToMarkdown renders an article as a Markdown document: a metadata
// header block between --- fences, then the converted body. The title
// always appears as a header line, never as a body heading; the other
// metadata lines appear only when the field is non-empty.
func ToMarkdown(a *models.Article) string {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("title: " + a.Title + "\n")
	if a.Author != "" {
		b.WriteString("author: " + a.Author + "\n")
	}
	if a.PublicationDate != "" {
		b.WriteString("date: " + a.PublicationDate + "\n")
	}
	if a.Category != "" {
		b.WriteString("category: " + a.Category + "\n")
	}
	if a.Summary != "" {
		b.WriteString("summary: " + a.Summary + "\n")
	}
	b.WriteString("---\n\n")

	b.WriteString(bodyMarkdown(a.HTMLContent))
	b.WriteString("\n")
	return b.String()
}

// bodyMarkdown converts the HTML body, degrading to a plain tag strip
// when the converter rejects the input
func bodyMarkdown(html string) string {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(stripTags(html))
	}
	return strings.TrimSpace(markdown)
}
