// Package mocks provides hand-rolled test doubles for the session's
// collaborators and the repository interfaces.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/draftdesk/internal/models"
)

// MockSurface is an in-memory editing surface
type MockSurface struct {
	HTML      string
	PlainText string

	changeFn func()
}

func (m *MockSurface) GetHTML() string      { return m.HTML }
func (m *MockSurface) SetHTML(html string)  { m.HTML = html }
func (m *MockSurface) GetPlainText() string { return m.PlainText }
func (m *MockSurface) OnChange(fn func())   { m.changeFn = fn }

// Edit simulates a user edit, firing the change callback
func (m *MockSurface) Edit(html, plainText string) {
	m.HTML = html
	m.PlainText = plainText
	if m.changeFn != nil {
		m.changeFn()
	}
}

// MockConfirmer records prompts and answers each with a fixed response
type MockConfirmer struct {
	Response bool
	Prompts  []string
}

func (m *MockConfirmer) Confirm(prompt string) bool {
	m.Prompts = append(m.Prompts, prompt)
	return m.Response
}

// MockArticleRepository is a map-backed ArticleRepository
type MockArticleRepository struct {
	Articles map[string]*models.Article

	// Policy mirrors the conflict policy; Confirm resolves "ask"
	Policy  string
	Confirm func(prompt string) bool

	// PutErr forces the next Put to fail
	PutErr error
}

// NewMockArticleRepository creates an empty mock repository
func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[string]*models.Article)}
}

func (m *MockArticleRepository) List(ctx context.Context) []*models.Article {
	out := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	return a.Clone(), nil
}

func (m *MockArticleRepository) Put(ctx context.Context, article *models.Article) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	if existing, ok := m.Articles[article.ID]; ok && m.Policy == "ask" &&
		existing.UpdatedAt.After(article.UpdatedAt) {
		if m.Confirm != nil && !m.Confirm("overwrite?") {
			return models.ErrConflict
		}
	}
	m.Articles[article.ID] = article.Clone()
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Articles[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) Search(ctx context.Context, term, category string) []*models.Article {
	term = strings.ToLower(strings.TrimSpace(term))

	var out []*models.Article
	for _, a := range m.List(ctx) {
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

func (m *MockArticleRepository) ReplaceAll(ctx context.Context, articles []*models.Article) error {
	next := make(map[string]*models.Article, len(articles))
	for _, a := range articles {
		next[a.ID] = a.Clone()
	}
	m.Articles = next
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

// MockDraftRepository is a single-field DraftRepository. The mutex
// makes it safe to poll from a test while the autosave goroutine
// checkpoints into it.
type MockDraftRepository struct {
	mu       sync.Mutex
	Snapshot *models.DraftSnapshot

	// CheckpointErr forces the next Checkpoint to fail
	CheckpointErr error
}

func (m *MockDraftRepository) Checkpoint(ctx context.Context, snapshot *models.DraftSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CheckpointErr != nil {
		return m.CheckpointErr
	}
	snap := *snapshot
	m.Snapshot = &snap
	return nil
}

func (m *MockDraftRepository) Peek(ctx context.Context) (*models.DraftSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Snapshot == nil {
		return nil, nil
	}
	snap := *m.Snapshot
	return &snap, nil
}

func (m *MockDraftRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshot = nil
	return nil
}

// Current reads the slot under the lock, for polling from a test that
// runs concurrently with the autosave loop
func (m *MockDraftRepository) Current() *models.DraftSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Snapshot
}
