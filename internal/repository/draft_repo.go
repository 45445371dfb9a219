package repository

import (
	"context"
	"encoding/json"

	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/storage"
	"github.com/rs/zerolog"
)

// The draft cache is a single slot, so every snapshot lands on one key.
const draftKey = "current"

// draftRepo is the concrete implementation of DraftRepository
type draftRepo struct {
	store *storage.Store
	log   zerolog.Logger
}

// NewDraftRepo creates a new draft repository
func NewDraftRepo(store *storage.Store, log zerolog.Logger) DraftRepository {
	return &draftRepo{
		store: store,
		log:   log.With().Str("repository", "draft").Logger(),
	}
}

// Checkpoint overwrites the draft slot unconditionally
func (r *draftRepo) Checkpoint(ctx context.Context, snapshot *models.DraftSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return &models.StorageError{Op: "encode", Err: err}
	}
	return r.store.Put(storage.BucketDraft, draftKey, data)
}

// Peek reads the slot without clearing it. A corrupted slot is treated
// as empty.
func (r *draftRepo) Peek(ctx context.Context) (*models.DraftSnapshot, error) {
	value, err := r.store.Get(storage.BucketDraft, draftKey)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	var snap models.DraftSnapshot
	if err := json.Unmarshal(value, &snap); err != nil {
		r.log.Warn().Err(err).Msg("Corrupted draft slot, treating as empty")
		return nil, nil
	}
	return &snap, nil
}

// Clear removes the draft slot
func (r *draftRepo) Clear(ctx context.Context) error {
	return r.store.Delete(storage.BucketDraft, draftKey)
}
