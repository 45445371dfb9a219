package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/draftdesk/internal/models"
)

func TestDraftCheckpointPeekClear(t *testing.T) {
	repos := newTestRepos(t, testConfig(), nil)
	ctx := context.Background()

	got, err := repos.Draft.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected empty slot, got %+v", got)
	}

	snap := &models.DraftSnapshot{
		Title:       "In progress",
		Content:     "Check equipment.",
		HTMLContent: "<p>Check equipment.</p>",
		Timestamp:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := repos.Draft.Checkpoint(ctx, snap); err != nil {
		t.Fatalf("Checkpoint failed: %v", err)
	}

	got, err = repos.Draft.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if got == nil || got.Title != snap.Title || !got.Timestamp.Equal(snap.Timestamp) {
		t.Errorf("slot round-trip mismatch: %+v", got)
	}

	// the slot holds one snapshot; a later checkpoint replaces it
	snap.Title = "Second pass"
	if err := repos.Draft.Checkpoint(ctx, snap); err != nil {
		t.Fatalf("Checkpoint failed: %v", err)
	}
	got, _ = repos.Draft.Peek(ctx)
	if got.Title != "Second pass" {
		t.Errorf("checkpoint did not replace the slot: %q", got.Title)
	}

	if err := repos.Draft.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	got, _ = repos.Draft.Peek(ctx)
	if got != nil {
		t.Errorf("slot not empty after clear: %+v", got)
	}
}

func TestDraftSnapshotFresh(t *testing.T) {
	now := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	maxAge := 24 * time.Hour

	tests := []struct {
		name  string
		taken time.Time
		want  bool
	}{
		{"just taken", now, true},
		{"within the window", now.Add(-23 * time.Hour), true},
		{"exactly at the boundary", now.Add(-24 * time.Hour), true},
		{"past the boundary", now.Add(-24*time.Hour - time.Second), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := &models.DraftSnapshot{Title: "t", Timestamp: tc.taken}
			if got := snap.Fresh(now, maxAge); got != tc.want {
				t.Errorf("Fresh() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDraftSnapshotHasContent(t *testing.T) {
	tests := []struct {
		name string
		snap models.DraftSnapshot
		want bool
	}{
		{"title only", models.DraftSnapshot{Title: "t"}, true},
		{"content only", models.DraftSnapshot{Content: "body"}, true},
		{"both blank", models.DraftSnapshot{Title: "  ", Content: "\n"}, false},
		{"empty", models.DraftSnapshot{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.snap.HasContent(); got != tc.want {
				t.Errorf("HasContent() = %v, want %v", got, tc.want)
			}
		})
	}
}
