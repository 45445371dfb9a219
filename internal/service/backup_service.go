package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/repository"
	"github.com/rs/zerolog"
)

// backupService is the concrete implementation of BackupService
type backupService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newBackupService creates a new BackupService
func newBackupService(repos *repository.Repositories, log zerolog.Logger) *backupService {
	return &backupService{
		repos: repos,
		log:   log.With().Str("service", "backup").Logger(),
	}
}

// Export writes the full collection as a backup payload
func (s *backupService) Export(ctx context.Context, w io.Writer) error {
	articles := s.repos.Article.List(ctx)

	backup := models.Backup{
		Articles:   articles,
		ExportDate: time.Now().UTC(),
		Version:    models.BackupVersion,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}

	s.log.Info().Int("count", len(articles)).Msg("Backup exported")
	return nil
}

// Restore replaces the collection from a backup payload. The whole
// payload is decoded and validated before anything is written, so a bad
// payload never partially restores.
func (s *backupService) Restore(ctx context.Context, r io.Reader) (int, error) {
	var raw struct {
		Articles   json.RawMessage `json:"articles"`
		ExportDate time.Time       `json:"exportDate"`
		Version    string          `json:"version"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidBackup, err)
	}
	if len(raw.Articles) == 0 || string(raw.Articles) == "null" {
		return 0, fmt.Errorf("%w: articles field is missing", models.ErrInvalidBackup)
	}

	var articles []*models.Article
	if err := json.Unmarshal(raw.Articles, &articles); err != nil {
		return 0, fmt.Errorf("%w: articles is not a sequence", models.ErrInvalidBackup)
	}

	if err := s.repos.Article.ReplaceAll(ctx, articles); err != nil {
		return 0, err
	}

	s.log.Info().
		Int("count", len(articles)).
		Str("version", raw.Version).
		Msg("Backup restored")
	return len(articles), nil
}
