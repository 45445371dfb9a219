// Package session owns the editing lifecycle of a single article: the
// Empty/Dirty/Saved state machine, save/load/duplicate, the periodic
// draft checkpoint and crash recovery. It talks to the editing surface
// and the confirmation UI only through injected interfaces, so any UI
// binding layer can drive it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/draftdesk/internal/config"
	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/normalizer"
	"github.com/draftdesk/internal/repository"
	"github.com/draftdesk/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrCancelled signals a guarded transition the user declined
var ErrCancelled = errors.New("cancelled by user")

// State identifies where the session sits relative to the last save
type State int

const (
	// StateEmpty means no record is loaded and the surface is blank
	StateEmpty State = iota
	// StateDirty means the surface changed since the last save or load
	StateDirty
	// StateSaved means the surface matches the last persisted record
	StateSaved
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDirty:
		return "dirty"
	case StateSaved:
		return "saved"
	}
	return "unknown"
}

// Surface is the narrow contract consumed from the rich text widget.
// SetHTML must not fire the change callback; only user edits do.
type Surface interface {
	GetHTML() string
	SetHTML(html string)
	GetPlainText() string
	OnChange(fn func())
}

// Confirmer resolves destructive-action questions. Injected so the
// transition guards are testable without a real prompt.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Metadata mirrors the editable metadata form fields
type Metadata struct {
	Title           string
	Author          string
	Category        string
	Summary         string
	PublicationDate string
}

// Session orchestrates the surface, repositories and normalizer for one
// editing session
type Session struct {
	repos     *repository.Repositories
	surface   Surface
	confirm   Confirmer
	validator *validation.Validator
	cfg       *config.Config
	log       zerolog.Logger
	now       func() time.Time

	mu      sync.Mutex
	state   State
	meta    Metadata
	current *models.Article

	running        bool
	autosaveCancel context.CancelFunc
	autosaveWG     sync.WaitGroup
}

// New creates a session over the given surface. A nil confirmer
// approves every guarded transition.
func New(repos *repository.Repositories, surface Surface, confirm Confirmer, cfg *config.Config, log zerolog.Logger) *Session {
	s := &Session{
		repos:     repos,
		surface:   surface,
		confirm:   confirm,
		validator: validation.New(cfg),
		cfg:       cfg,
		log:       log.With().Str("service", "session").Logger(),
		now:       time.Now,
		state:     StateEmpty,
	}
	surface.OnChange(s.markDirty)
	return s
}

// SetClock overrides the session clock, for tests
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the record the surface was last saved to or loaded
// from, nil when none
func (s *Session) Current() *models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Metadata returns the metadata form fields
func (s *Session) Metadata() Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// SetMetadata replaces the metadata form fields and dirties the session
func (s *Session) SetMetadata(meta Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = meta
	s.state = StateDirty
}

func (s *Session) markDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateDirty
}

// NewArticle clears the surface and metadata for a fresh document.
// Unsaved changes need confirmation; declining returns ErrCancelled and
// changes nothing.
func (s *Session) NewArticle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDirty && !s.ask("Discard unsaved changes?") {
		return ErrCancelled
	}

	s.surface.SetHTML("")
	s.meta = Metadata{}
	s.current = nil
	s.state = StateEmpty

	if err := s.repos.Draft.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Failed to clear draft slot")
	}
	s.log.Debug().Msg("Session reset to empty")
	return nil
}

// Save persists the current surface state. Content and word count are
// recomputed from the surface, so they can never go stale past a
// completed save. On a declined conflict the session stays dirty and
// models.ErrConflict is returned.
func (s *Session) Save(ctx context.Context) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content := strings.TrimSpace(s.surface.GetPlainText())
	now := s.now().UTC()

	article := &models.Article{
		Title:           strings.TrimSpace(s.meta.Title),
		Author:          s.meta.Author,
		Category:        s.meta.Category,
		Summary:         s.meta.Summary,
		PublicationDate: s.meta.PublicationDate,
		Content:         content,
		HTMLContent:     s.surface.GetHTML(),
		WordCount:       normalizer.WordCount(content),
		UpdatedAt:       now,
	}
	if s.current != nil {
		article.ID = s.current.ID
		article.CreatedAt = s.current.CreatedAt
	} else {
		article.ID = uuid.New().String()
		article.CreatedAt = now
	}

	if errs := s.validator.ValidateArticle(article); len(errs) > 0 {
		return nil, errs
	}

	if advisory := s.validator.WordCountAdvisory(article.WordCount); advisory != "" {
		s.log.Warn().Int("words", article.WordCount).Msg(advisory)
	}

	if err := s.repos.Article.Put(ctx, article); err != nil {
		return nil, err
	}

	s.current = article
	s.state = StateSaved
	if err := s.repos.Draft.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Failed to clear draft slot after save")
	}

	s.log.Info().Str("id", article.ID).Int("words", article.WordCount).Msg("Article saved")
	return article, nil
}

// Load replaces the surface contents with a stored record. Unsaved
// changes need confirmation.
func (s *Session) Load(ctx context.Context, id string) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDirty && !s.ask("Discard unsaved changes?") {
		return nil, ErrCancelled
	}

	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, models.ErrNotFound
	}

	s.applyLocked(article)
	s.log.Info().Str("id", article.ID).Msg("Article loaded")
	return article, nil
}

// Duplicate copies the loaded record under a new id, persists the copy
// immediately and loads it
func (s *Session) Duplicate(ctx context.Context) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		s.log.Warn().Msg("Duplicate requested with no article loaded")
		return nil, models.ErrNotFound
	}

	now := s.now().UTC()
	sourceID := s.current.ID
	dup := s.current.Clone()
	dup.ID = uuid.New().String()
	dup.Title = "Copy of " + s.current.Title
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := s.repos.Article.Put(ctx, dup); err != nil {
		return nil, err
	}

	s.applyLocked(dup)
	s.log.Info().Str("id", dup.ID).Str("source", sourceID).Msg("Article duplicated")
	return dup, nil
}

// Checkpoint writes the draft slot when the session is dirty. It never
// changes the session state; a slightly stale snapshot is fine.
func (s *Session) Checkpoint(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateDirty {
		return nil
	}

	snap := s.snapshotLocked()
	if err := s.repos.Draft.Checkpoint(ctx, snap); err != nil {
		s.log.Warn().Err(err).Msg("Draft checkpoint failed")
		return err
	}
	s.log.Debug().Msg("Draft checkpointed")
	return nil
}

// RecoverDraft offers a fresh draft snapshot for restoration at session
// start. It returns true when a draft was restored into the surface, in
// which case the session is dirty: the draft has not been saved under
// this session yet.
func (s *Session) RecoverDraft(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repos.Draft.Peek(ctx)
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}

	if !snap.Fresh(s.now(), s.cfg.Editor.DraftMaxAge) || !snap.HasContent() {
		if err := s.repos.Draft.Clear(ctx); err != nil {
			s.log.Warn().Err(err).Msg("Failed to clear stale draft slot")
		}
		return false, nil
	}

	prompt := fmt.Sprintf("Restore unsaved draft %q from %s?",
		snap.Title, snap.Timestamp.Format(time.RFC3339))
	if !s.ask(prompt) {
		return false, nil
	}

	s.surface.SetHTML(snap.HTMLContent)
	s.meta = Metadata{
		Title:           snap.Title,
		Author:          snap.Author,
		Category:        snap.Category,
		Summary:         snap.Summary,
		PublicationDate: snap.PublicationDate,
	}
	s.current = nil
	s.state = StateDirty

	s.log.Info().Str("title", snap.Title).Msg("Draft restored")
	return true, nil
}

// StartAutosave begins the periodic draft checkpoint loop
func (s *Session) StartAutosave(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	ctx, s.autosaveCancel = context.WithCancel(ctx)
	interval := s.cfg.Editor.AutosaveInterval
	s.mu.Unlock()

	s.autosaveWG.Add(1)
	go func() {
		defer s.autosaveWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// failures are logged inside Checkpoint; the loop keeps going
				_ = s.Checkpoint(ctx)
			}
		}
	}()

	s.log.Info().Dur("interval", interval).Msg("Autosave started")
}

// StopAutosave stops the checkpoint loop and waits for it to finish
func (s *Session) StopAutosave() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.autosaveCancel()
	s.running = false
	s.mu.Unlock()

	s.autosaveWG.Wait()
	s.log.Info().Msg("Autosave stopped")
}

func (s *Session) ask(prompt string) bool {
	if s.confirm == nil {
		return true
	}
	return s.confirm.Confirm(prompt)
}

func (s *Session) applyLocked(a *models.Article) {
	s.surface.SetHTML(a.HTMLContent)
	s.meta = Metadata{
		Title:           a.Title,
		Author:          a.Author,
		Category:        a.Category,
		Summary:         a.Summary,
		PublicationDate: a.PublicationDate,
	}
	s.current = a
	s.state = StateSaved
}

func (s *Session) snapshotLocked() *models.DraftSnapshot {
	content := strings.TrimSpace(s.surface.GetPlainText())
	return &models.DraftSnapshot{
		Title:           s.meta.Title,
		Author:          s.meta.Author,
		Category:        s.meta.Category,
		Summary:         s.meta.Summary,
		PublicationDate: s.meta.PublicationDate,
		Content:         content,
		HTMLContent:     s.surface.GetHTML(),
		Timestamp:       s.now().UTC(),
	}
}
