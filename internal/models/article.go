package models

import (
	"time"
)

// Article is the canonical persisted unit. HTMLContent is the source of
// truth for the body; Content and WordCount are derived from it on every
// save and never go stale past a completed save.
type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author,omitempty"`
	Category        string    `json:"category,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	PublicationDate string    `json:"publicationDate,omitempty"`
	Content         string    `json:"content"`
	HTMLContent     string    `json:"htmlContent"`
	WordCount       int       `json:"wordCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Clone returns a copy of the article
func (a *Article) Clone() *Article {
	c := *a
	return &c
}
