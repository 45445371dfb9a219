package models

import (
	"strings"
	"time"
)

// DraftSnapshot is the single-slot unsaved editing state, written by the
// periodic checkpoint and consulted once at session start for recovery.
// It carries the article fields minus the id.
type DraftSnapshot struct {
	Title           string    `json:"title"`
	Author          string    `json:"author,omitempty"`
	Category        string    `json:"category,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	PublicationDate string    `json:"publicationDate,omitempty"`
	Content         string    `json:"content"`
	HTMLContent     string    `json:"htmlContent"`
	Timestamp       time.Time `json:"timestamp"`
}

// Fresh reports whether the snapshot is younger than maxAge at the given
// wall-clock time
func (d *DraftSnapshot) Fresh(now time.Time, maxAge time.Duration) bool {
	return now.Sub(d.Timestamp) <= maxAge
}

// HasContent reports whether the snapshot is worth offering for recovery
func (d *DraftSnapshot) HasContent() bool {
	return strings.TrimSpace(d.Title) != "" || strings.TrimSpace(d.Content) != ""
}
