package validation

import (
	"fmt"
	"strings"

	"github.com/draftdesk/internal/config"
	"github.com/draftdesk/internal/models"
)

// Validator checks article records before persistence
type Validator struct {
	wordCountLow  int
	wordCountHigh int
}

// New creates a validator with the configured advisory thresholds
func New(cfg *config.Config) *Validator {
	return &Validator{
		wordCountLow:  cfg.Editor.WordCountLow,
		wordCountHigh: cfg.Editor.WordCountHigh,
	}
}

// ValidateArticle reports the missing required fields. A failing record
// must not be persisted.
func (v *Validator) ValidateArticle(a *models.Article) models.ValidationErrors {
	var errs models.ValidationErrors

	if strings.TrimSpace(a.Title) == "" {
		errs = append(errs, models.ValidationError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(a.Content) == "" {
		errs = append(errs, models.ValidationError{Field: "content", Message: "content is required"})
	}

	return errs
}

// WordCountAdvisory returns a non-blocking advisory message when the
// word count falls outside the configured thresholds, or "" when it is
// within range
func (v *Validator) WordCountAdvisory(words int) string {
	switch {
	case v.wordCountLow > 0 && words < v.wordCountLow:
		return fmt.Sprintf("article is short: %d words, advisory minimum is %d", words, v.wordCountLow)
	case v.wordCountHigh > 0 && words > v.wordCountHigh:
		return fmt.Sprintf("article is long: %d words, advisory maximum is %d", words, v.wordCountHigh)
	}
	return ""
}
