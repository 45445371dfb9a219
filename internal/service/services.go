package service

import (
	"context"
	"io"

	"github.com/draftdesk/internal/config"
	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/repository"
	"github.com/rs/zerolog"
)

// ExportService renders a stored article into one of the export formats
type ExportService interface {
	// Export writes the rendering of article in the given format.
	// Normalization is best-effort: malformed markup degrades, it does
	// not fail the export.
	Export(ctx context.Context, article *models.Article, format string, w io.Writer) error
	// Extension returns the file extension for a format
	Extension(format string) (string, error)
}

// BackupService handles full-collection backup and restore
type BackupService interface {
	// Export writes the {articles, exportDate, version} payload
	Export(ctx context.Context, w io.Writer) error
	// Restore replaces the collection from a backup payload. It fails
	// closed: a malformed payload yields models.ErrInvalidBackup before
	// any mutation.
	Restore(ctx context.Context, r io.Reader) (int, error)
}

// ImportService creates article records from external documents
type ImportService interface {
	// ImportMarkdown reads a Markdown document with an optional metadata
	// header and persists it as a new article
	ImportMarkdown(ctx context.Context, r io.Reader) (*models.Article, error)
}

// Services holds all service interfaces
type Services struct {
	Export ExportService
	Backup BackupService
	Import ImportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Export: newExportService(log),
		Backup: newBackupService(repos, log),
		Import: newImportService(repos, cfg, log),
	}
}
