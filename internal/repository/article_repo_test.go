package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/draftdesk/internal/config"
	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/repository"
	"github.com/draftdesk/internal/storage"
	"github.com/rs/zerolog"
)

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{KeyPrefix: "test_", MaxArticles: 200},
		Editor: config.EditorConfig{
			ConflictPolicy:   config.PolicyAuto,
			AutosaveInterval: 30 * time.Second,
			DraftMaxAge:      24 * time.Hour,
			WordCountLow:     100,
			WordCountHigh:    5000,
		},
	}
}

func openTestStore(t *testing.T, cfg *config.Config) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), cfg.Storage.KeyPrefix, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestRepos(t *testing.T, cfg *config.Config, confirm repository.ConfirmFunc) *repository.Repositories {
	t.Helper()
	return repository.New(openTestStore(t, cfg), cfg, confirm, zerolog.Nop())
}

func article(id, title string, updated time.Time) *models.Article {
	return &models.Article{
		ID:        id,
		Title:     title,
		Content:   "Check equipment.",
		WordCount: 2,
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

func TestArticleRepoPutGetRoundTrip(t *testing.T) {
	repos := newTestRepos(t, testConfig(), nil)
	ctx := context.Background()

	saved := article("a-1", "Safety Drill", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	saved.Author = "R. Chen"
	saved.HTMLContent = "<p>Check equipment.</p>"

	if err := repos.Article.Put(ctx, saved); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := repos.Article.GetByID(ctx, "a-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for a stored record")
	}
	if got.Title != saved.Title || got.Author != saved.Author || got.HTMLContent != saved.HTMLContent {
		t.Errorf("round-trip mismatch: got %+v", got)
	}
	if !got.UpdatedAt.Equal(saved.UpdatedAt) {
		t.Errorf("updatedAt mismatch: got %v want %v", got.UpdatedAt, saved.UpdatedAt)
	}
}

func TestArticleRepoGetByIDAbsent(t *testing.T) {
	repos := newTestRepos(t, testConfig(), nil)

	got, err := repos.Article.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent id, got %+v", got)
	}
}

func TestArticleRepoListOrdering(t *testing.T) {
	repos := newTestRepos(t, testConfig(), nil)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for _, a := range []*models.Article{
		article("a-old", "Oldest", base),
		article("a-new", "Newest", base.Add(2*time.Hour)),
		article("a-mid", "Middle", base.Add(time.Hour)),
	} {
		if err := repos.Article.Put(ctx, a); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	list := repos.Article.List(ctx)
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	for i, want := range []string{"a-new", "a-mid", "a-old"} {
		if list[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, list[i].ID, want)
		}
	}
}

func TestArticleRepoConflictDeclined(t *testing.T) {
	cfg := testConfig()
	cfg.Editor.ConflictPolicy = config.PolicyAsk

	prompts := 0
	repos := newTestRepos(t, cfg, func(prompt string) bool {
		prompts++
		return false
	})
	ctx := context.Background()

	newer := article("a-1", "Newer copy", time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))
	if err := repos.Article.Put(ctx, newer); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	stale := article("a-1", "Stale copy", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if err := repos.Article.Put(ctx, stale); err != models.ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if prompts != 1 {
		t.Errorf("expected exactly one confirmation prompt, got %d", prompts)
	}

	got, err := repos.Article.GetByID(ctx, "a-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Newer copy" {
		t.Errorf("declined overwrite mutated the stored record: %q", got.Title)
	}
}

func TestArticleRepoConflictAccepted(t *testing.T) {
	cfg := testConfig()
	cfg.Editor.ConflictPolicy = config.PolicyAsk

	repos := newTestRepos(t, cfg, func(prompt string) bool { return true })
	ctx := context.Background()

	newer := article("a-1", "Newer copy", time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))
	if err := repos.Article.Put(ctx, newer); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	stale := article("a-1", "Stale copy", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if err := repos.Article.Put(ctx, stale); err != nil {
		t.Fatalf("confirmed overwrite failed: %v", err)
	}

	got, _ := repos.Article.GetByID(ctx, "a-1")
	if got.Title != "Stale copy" {
		t.Errorf("confirmed overwrite did not apply: %q", got.Title)
	}
}

func TestArticleRepoAutoPolicyLastWriteWins(t *testing.T) {
	repos := newTestRepos(t, testConfig(), func(prompt string) bool {
		t.Fatal("auto policy must not prompt")
		return false
	})
	ctx := context.Background()

	newer := article("a-1", "Newer copy", time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))
	if err := repos.Article.Put(ctx, newer); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	stale := article("a-1", "Stale copy", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if err := repos.Article.Put(ctx, stale); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	list := repos.Article.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected a single record, got %d", len(list))
	}
	if list[0].Title != "Stale copy" {
		t.Errorf("last write did not win: %q", list[0].Title)
	}
}

func TestArticleRepoDeleteNotFound(t *testing.T) {
	repos := newTestRepos(t, testConfig(), nil)
	if err := repos.Article.Delete(context.Background(), "missing"); err != models.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArticleRepoDelete(t *testing.T) {
	repos := newTestRepos(t, testConfig(), nil)
	ctx := context.Background()

	if err := repos.Article.Put(ctx, article("a-1", "Gone", time.Now().UTC())); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := repos.Article.Delete(ctx, "a-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, _ := repos.Article.GetByID(ctx, "a-1")
	if got != nil {
		t.Errorf("record still present after delete")
	}
}

func TestArticleRepoSearch(t *testing.T) {
	repos := newTestRepos(t, testConfig(), nil)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	field := article("a-1", "Field Notes", base.Add(time.Hour))
	field.Category = "field"
	field.Author = "R. Chen"
	lab := article("a-2", "Lab Notes", base)
	lab.Category = "lab"

	for _, a := range []*models.Article{field, lab} {
		if err := repos.Article.Put(ctx, a); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	tests := []struct {
		name     string
		term     string
		category string
		wantIDs  []string
	}{
		{"substring in title", "notes", "", []string{"a-1", "a-2"}},
		{"case insensitive", "FIELD", "", []string{"a-1"}},
		{"author match", "chen", "", []string{"a-1"}},
		{"category filter", "", "lab", []string{"a-2"}},
		{"term and category combined", "notes", "field", []string{"a-1"}},
		{"no match", "nothing", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := repos.Article.Search(ctx, tc.term, tc.category)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d results, want %d", len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Errorf("result %d: got %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestArticleRepoCapEviction(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.MaxArticles = 3
	repos := newTestRepos(t, cfg, nil)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a-1", "a-2", "a-3", "a-4"} {
		if err := repos.Article.Put(ctx, article(id, id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	count, err := repos.Article.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected cap of 3, got %d records", count)
	}
	oldest, _ := repos.Article.GetByID(ctx, "a-1")
	if oldest != nil {
		t.Errorf("oldest record survived eviction")
	}
}

func TestArticleRepoReplaceAll(t *testing.T) {
	repos := newTestRepos(t, testConfig(), nil)
	ctx := context.Background()

	if err := repos.Article.Put(ctx, article("old", "Old", time.Now().UTC())); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	next := []*models.Article{
		article("n-1", "First", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		article("n-2", "Second", time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)),
	}
	if err := repos.Article.ReplaceAll(ctx, next); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	list := repos.Article.List(ctx)
	if len(list) != 2 {
		t.Fatalf("expected 2 records after replace, got %d", len(list))
	}
	gone, _ := repos.Article.GetByID(ctx, "old")
	if gone != nil {
		t.Errorf("pre-replace record survived")
	}
}
