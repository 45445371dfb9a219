package service

import (
	"context"
	"fmt"
	"io"

	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/normalizer"
	"github.com/rs/zerolog"
)

// Export formats accepted by ExportService.Export
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatPublish  = "publish"
	FormatPDF      = "pdf"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	publisher *normalizer.Publisher
	log       zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(log zerolog.Logger) *exportService {
	return &exportService{
		publisher: normalizer.NewPublisher(),
		log:       log.With().Str("service", "export").Logger(),
	}
}

// Export writes the article rendered in the requested format
func (s *exportService) Export(ctx context.Context, article *models.Article, format string, w io.Writer) error {
	var data []byte

	switch format {
	case FormatMarkdown:
		data = []byte(normalizer.ToMarkdown(article))
	case FormatHTML:
		data = []byte(s.publisher.Document(article))
	case FormatPublish:
		data = []byte(s.publisher.PublishHTML(article))
	case FormatPDF:
		pdf, err := normalizer.ToPDF(article)
		if err != nil {
			return fmt.Errorf("rendering PDF: %w", err)
		}
		data = pdf
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	s.log.Info().
		Str("id", article.ID).
		Str("format", format).
		Int("bytes", len(data)).
		Msg("Article exported")
	return nil
}

// Extension returns the file extension for the given format
func (s *exportService) Extension(format string) (string, error) {
	switch format {
	case FormatMarkdown:
		return ".md", nil
	case FormatHTML, FormatPublish:
		return ".html", nil
	case FormatPDF:
		return ".pdf", nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
