package repository

import (
	"context"

	"github.com/draftdesk/internal/config"
	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/storage"
	"github.com/rs/zerolog"
)

// ConfirmFunc resolves an overwrite question under the "ask" conflict
// policy. A nil func approves every overwrite.
type ConfirmFunc func(prompt string) bool

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	// List returns every stored record, newest first by updatedAt.
	// It never fails: an unreadable store degrades to an empty list.
	List(ctx context.Context) []*models.Article
	// GetByID returns nil when no record carries the id
	GetByID(ctx context.Context, id string) (*models.Article, error)
	// Put stores the record, returning models.ErrConflict when a newer
	// stored copy exists under the "ask" policy and the overwrite is
	// declined
	Put(ctx context.Context, article *models.Article) error
	// Delete returns models.ErrNotFound for an unknown id
	Delete(ctx context.Context, id string) error
	// Search filters by case-insensitive substring over title, content
	// and author, ANDed with an exact category match when category is
	// non-empty
	Search(ctx context.Context, term, category string) []*models.Article
	// ReplaceAll atomically swaps the whole collection
	ReplaceAll(ctx context.Context, articles []*models.Article) error
	Count(ctx context.Context) (int, error)
}

// DraftRepository defines the interface for the single-slot draft cache
type DraftRepository interface {
	// Checkpoint overwrites the slot unconditionally
	Checkpoint(ctx context.Context, snapshot *models.DraftSnapshot) error
	// Peek reads the slot without clearing it, nil when empty
	Peek(ctx context.Context) (*models.DraftSnapshot, error)
	Clear(ctx context.Context) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Draft   DraftRepository
}

// New creates all repositories over the given store
func New(store *storage.Store, cfg *config.Config, confirm ConfirmFunc, log zerolog.Logger) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(store, cfg, confirm, log),
		Draft:   NewDraftRepo(store, log),
	}
}
