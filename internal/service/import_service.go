package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/draftdesk/internal/config"
	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/normalizer"
	"github.com/draftdesk/internal/repository"
	"github.com/draftdesk/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
)

// importService is the concrete implementation of ImportService
type importService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *importService {
	return &importService{
		repos:     repos,
		validator: validation.New(cfg),
		log:       log.With().Str("service", "import").Logger(),
	}
}

// articleFrontMatter is the metadata header recognized on import
type articleFrontMatter struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Date     string `yaml:"date"`
	Category string `yaml:"category"`
	Summary  string `yaml:"summary"`
}

// ImportMarkdown converts a Markdown document into a new article record
// and persists it. The body is rendered to HTML, which becomes the
// canonical content; plain text and word count are derived from it.
func (s *importService) ImportMarkdown(ctx context.Context, r io.Reader) (*models.Article, error) {
	var meta articleFrontMatter
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return nil, fmt.Errorf("parsing metadata header: %w", err)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown body: %w", err)
	}

	htmlContent := buf.String()
	content := normalizer.PlainText(htmlContent)
	now := time.Now().UTC()

	article := &models.Article{
		ID:              uuid.New().String(),
		Title:           strings.TrimSpace(meta.Title),
		Author:          meta.Author,
		Category:        meta.Category,
		Summary:         meta.Summary,
		PublicationDate: meta.Date,
		Content:         content,
		HTMLContent:     htmlContent,
		WordCount:       normalizer.WordCount(content),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if errs := s.validator.ValidateArticle(article); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repos.Article.Put(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("id", article.ID).
		Str("title", article.Title).
		Int("words", article.WordCount).
		Msg("Markdown document imported")
	return article, nil
}
