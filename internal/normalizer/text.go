// Package normalizer holds the pure transformations from the canonical
// HTML body into the export formats: plain text, Markdown, sanitized
// HTML, the publish shell and PDF. All transforms are best-effort:
// malformed markup degrades, it never fails an export.
package normalizer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const wordsPerMinute = 200

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	blockBreakPattern = regexp.MustCompile(`(?i)</(?:p|div|h[1-6]|li|blockquote|tr)>|<br\s*/?>`)
)

// WordCount counts whitespace-separated words in plain text
func WordCount(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	return len(strings.Fields(trimmed))
}

// ReadingTime returns whole minutes at 200 words per minute, rounded up
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// PlainText renders an HTML fragment as plain text. Block boundaries
// become newlines so words do not fuse across paragraphs. Unparseable
// input degrades to a bare tag strip.
func PlainText(html string) string {
	withBreaks := blockBreakPattern.ReplaceAllString(html, "$0\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(withBreaks))
	if err != nil {
		return strings.TrimSpace(stripTags(withBreaks))
	}
	return strings.TrimSpace(doc.Text())
}

func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}
