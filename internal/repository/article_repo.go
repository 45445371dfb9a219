package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/draftdesk/internal/config"
	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/storage"
	"github.com/rs/zerolog"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	store       *storage.Store
	policy      string
	maxArticles int
	confirm     ConfirmFunc
	log         zerolog.Logger
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(store *storage.Store, cfg *config.Config, confirm ConfirmFunc, log zerolog.Logger) ArticleRepository {
	return &articleRepo{
		store:       store,
		policy:      cfg.Editor.ConflictPolicy,
		maxArticles: cfg.Storage.MaxArticles,
		confirm:     confirm,
		log:         log.With().Str("repository", "article").Logger(),
	}
}

// List returns all stored records, newest first. A corrupted record is
// skipped and an unreadable store yields an empty list, both logged.
func (r *articleRepo) List(ctx context.Context) []*models.Article {
	var out []*models.Article
	err := r.store.ForEach(storage.BucketArticles, func(key, value []byte) error {
		var a models.Article
		if err := json.Unmarshal(value, &a); err != nil {
			r.log.Warn().Err(err).Str("id", string(key)).Msg("Skipping corrupted article record")
			return nil
		}
		out = append(out, &a)
		return nil
	})
	if err != nil {
		r.log.Error().Err(err).Msg("Article collection unreadable, treating as empty")
		return nil
	}
	sortByUpdatedDesc(out)
	return out
}

// GetByID retrieves an article by ID, nil when absent
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	value, err := r.store.Get(storage.BucketArticles, id)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	var a models.Article
	if err := json.Unmarshal(value, &a); err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("Corrupted article record, treating as absent")
		return nil, nil
	}
	return &a, nil
}

// Put stores the record under its id. When a strictly newer copy is
// already stored and the policy is "ask", the overwrite needs explicit
// confirmation; declining leaves the stored record untouched.
func (r *articleRepo) Put(ctx context.Context, article *models.Article) error {
	existing, err := r.GetByID(ctx, article.ID)
	if err != nil {
		return err
	}

	if existing != nil && r.policy == config.PolicyAsk && existing.UpdatedAt.After(article.UpdatedAt) {
		prompt := fmt.Sprintf("A newer copy of %q was saved at %s. Overwrite it?",
			existing.Title, existing.UpdatedAt.Format(time.RFC3339))
		if r.confirm != nil && !r.confirm(prompt) {
			r.log.Info().Str("id", article.ID).Msg("Overwrite declined, keeping stored record")
			return models.ErrConflict
		}
	}

	data, err := json.Marshal(article)
	if err != nil {
		return &models.StorageError{Op: "encode", Err: err}
	}
	if err := r.store.Put(storage.BucketArticles, article.ID, data); err != nil {
		return err
	}

	if existing == nil {
		r.enforceCap(ctx)
	}
	return nil
}

// Delete removes the record with the given id
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.ErrNotFound
	}
	return r.store.Delete(storage.BucketArticles, id)
}

// Search filters the collection, preserving the newest-first ordering
func (r *articleRepo) Search(ctx context.Context, term, category string) []*models.Article {
	term = strings.ToLower(strings.TrimSpace(term))

	var out []*models.Article
	for _, a := range r.List(ctx) {
		if term != "" &&
			!strings.Contains(strings.ToLower(a.Title), term) &&
			!strings.Contains(strings.ToLower(a.Content), term) &&
			!strings.Contains(strings.ToLower(a.Author), term) {
			continue
		}
		if category != "" && a.Category != category {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ReplaceAll swaps the whole collection atomically
func (r *articleRepo) ReplaceAll(ctx context.Context, articles []*models.Article) error {
	items := make(map[string][]byte, len(articles))
	for _, a := range articles {
		data, err := json.Marshal(a)
		if err != nil {
			return &models.StorageError{Op: "encode", Err: err}
		}
		items[a.ID] = data
	}
	if err := r.store.ReplaceAll(storage.BucketArticles, items); err != nil {
		return err
	}
	r.log.Info().Int("count", len(articles)).Msg("Article collection replaced")
	return nil
}

// Count returns the number of stored records
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	return r.store.Count(storage.BucketArticles)
}

// enforceCap evicts the oldest records once the collection exceeds the
// configured maximum
func (r *articleRepo) enforceCap(ctx context.Context) {
	list := r.List(ctx)
	for i := len(list) - 1; i >= r.maxArticles; i-- {
		if err := r.store.Delete(storage.BucketArticles, list[i].ID); err != nil {
			r.log.Warn().Err(err).Str("id", list[i].ID).Msg("Failed to evict article over cap")
			continue
		}
		r.log.Warn().Str("id", list[i].ID).Str("title", list[i].Title).
			Int("max", r.maxArticles).Msg("Evicted oldest article over cap")
	}
}

func sortByUpdatedDesc(list []*models.Article) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].UpdatedAt.After(list[j].UpdatedAt)
	})
}
