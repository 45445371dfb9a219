package normalizer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/draftdesk/internal/models"
	"github.com/jung-kurt/gofpdf"
)

// ToPDF renders the article's Markdown form as a styled PDF. Headings,
// lists and paragraphs are handled; anything else falls through as a
// plain paragraph.
func ToPDF(a *models.Article) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, a.Title, "", "L", false)

	if byline := pdfByline(a); byline != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, byline, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(6)

	for _, line := range strings.Split(bodyMarkdown(a.HTMLContent), "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			pdf.Ln(3)
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := strings.IndexFunc(trimmed, func(r rune) bool { return r != '#' })
			writePDFHeading(pdf, strings.TrimSpace(trimmed[level:]), level)
			continue
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, "• "+stripInlineMarkdown(trimmed[2:]), "", "L", false)
			continue
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, stripInlineMarkdown(trimmed), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, pdfFooter(a), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfByline(a *models.Article) string {
	var parts []string
	if a.Author != "" {
		parts = append(parts, a.Author)
	}
	if a.PublicationDate != "" {
		parts = append(parts, a.PublicationDate)
	}
	if a.Category != "" {
		parts = append(parts, a.Category)
	}
	return strings.Join(parts, " · ")
}

func pdfFooter(a *models.Article) string {
	return fmt.Sprintf("%d words · %d min read", a.WordCount, ReadingTime(a.WordCount))
}

var inlineMarkdownReplacer = strings.NewReplacer("**", "", "__", "", "`", "")

func stripInlineMarkdown(text string) string {
	return strings.TrimSpace(inlineMarkdownReplacer.Replace(text))
}

func writePDFHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 16, 2: 14, 3: 12}
	size, ok := sizes[level]
	if !ok {
		size = 11
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, stripInlineMarkdown(text), "", "L", false)
	pdf.Ln(1)
}
