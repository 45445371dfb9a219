package normalizer_test

import (
	"strings"
	"testing"

	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/normalizer"
)

func TestToMarkdownHeaderRoundTrip(t *testing.T) {
	article := &models.Article{
		Title:       "Safety Drill",
		HTMLContent: "<p>Check equipment.</p>",
	}

	markdown := normalizer.ToMarkdown(article)

	var titleLine string
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "title: ") {
			titleLine = strings.TrimPrefix(line, "title: ")
			break
		}
	}
	if titleLine != "Safety Drill" {
		t.Errorf("title line round-trip failed: got %q", titleLine)
	}

	// the title is metadata, never a body heading
	if strings.Contains(markdown, "# Safety Drill") {
		t.Errorf("title leaked into body as a heading:\n%s", markdown)
	}
}

func TestToMarkdownConditionalMetadata(t *testing.T) {
	withAll := normalizer.ToMarkdown(&models.Article{
		Title:           "T",
		Author:          "R. Chen",
		Category:        "field",
		Summary:         "short",
		PublicationDate: "2026-08-01",
		HTMLContent:     "<p>x</p>",
	})
	for _, line := range []string{"author: R. Chen", "date: 2026-08-01", "category: field", "summary: short"} {
		if !strings.Contains(withAll, line) {
			t.Errorf("missing metadata line %q in:\n%s", line, withAll)
		}
	}

	bare := normalizer.ToMarkdown(&models.Article{Title: "T", HTMLContent: "<p>x</p>"})
	for _, prefix := range []string{"author:", "date:", "category:", "summary:"} {
		if strings.Contains(bare, prefix) {
			t.Errorf("empty field emitted a %q line:\n%s", prefix, bare)
		}
	}
}

func TestToMarkdownBodyConversion(t *testing.T) {
	markdown := normalizer.ToMarkdown(&models.Article{
		Title:       "T",
		HTMLContent: "<h2>Section</h2><p>Hello <strong>world</strong> and <em>more</em>.</p>",
	})

	if !strings.Contains(markdown, "## Section") {
		t.Errorf("heading not converted:\n%s", markdown)
	}
	if !strings.Contains(markdown, "**world**") {
		t.Errorf("strong not converted:\n%s", markdown)
	}
	if !strings.Contains(markdown, "*more*") {
		t.Errorf("em not converted:\n%s", markdown)
	}
}

func TestToMarkdownMalformedBody(t *testing.T) {
	// best-effort output is still produced for unbalanced markup
	markdown := normalizer.ToMarkdown(&models.Article{
		Title:       "T",
		HTMLContent: "<p>open <strong>bold",
	})
	if !strings.Contains(markdown, "open") || !strings.Contains(markdown, "bold") {
		t.Errorf("malformed body lost content:\n%s", markdown)
	}
}
