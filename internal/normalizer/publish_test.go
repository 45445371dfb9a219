package normalizer_test

import (
	"strings"
	"testing"

	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/normalizer"
)

func testArticle() *models.Article {
	return &models.Article{
		ID:          "a-1",
		Title:       "Safety Drill",
		Author:      "R. Chen",
		Category:    "field",
		Summary:     "Routine check",
		HTMLContent: `<p class="ql-align-center">Check <strong>equipment</strong>.</p>`,
		WordCount:   2,
	}
}

func TestPublishHTMLShell(t *testing.T) {
	out := normalizer.NewPublisher().PublishHTML(testArticle())

	for _, want := range []string{
		"<article>",
		"<h1>Safety Drill</h1>",
		`<p class="byline">R. Chen</p>`,
		"<strong>equipment</strong>",
		"2 words",
		"1 min read",
		"</article>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("publish output missing %q:\n%s", want, out)
		}
	}

	// editor-namespaced tokens must not reach the publishing platform
	if strings.Contains(out, "ql-") {
		t.Errorf("editor class token leaked:\n%s", out)
	}
}

func TestPublishHTMLStripsScripts(t *testing.T) {
	article := testArticle()
	article.HTMLContent = `<p>safe</p><script>alert("x")</script>`

	out := normalizer.NewPublisher().PublishHTML(article)
	if strings.Contains(out, "<script") {
		t.Errorf("script element survived sanitization:\n%s", out)
	}
	if !strings.Contains(out, "safe") {
		t.Errorf("safe content was dropped:\n%s", out)
	}
}

func TestPublishHTMLEscapesMetadata(t *testing.T) {
	article := testArticle()
	article.Title = `<b>bold</b> title`

	out := normalizer.NewPublisher().PublishHTML(article)
	if strings.Contains(out, "<h1><b>") {
		t.Errorf("title metadata not escaped:\n%s", out)
	}
}

func TestDocumentIsSelfContained(t *testing.T) {
	out := normalizer.NewPublisher().Document(testArticle())

	for _, want := range []string{"<!DOCTYPE html>", "<style>", "<title>Safety Drill</title>", "<article>"} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestToPDFProducesDocument(t *testing.T) {
	data, err := normalizer.ToPDF(testArticle())
	if err != nil {
		t.Fatalf("ToPDF failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty PDF output")
	}
	if !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Errorf("output does not look like a PDF: %q", data[:5])
	}
}
