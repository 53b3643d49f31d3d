// Package ident generates identifiers: slugs derived from labels and
// idempotency tokens for mutations.
package ident

import (
	"strings"

	"github.com/gosimple/slug"

	"github.com/example/formbuilder/internal/core/question"
	"github.com/example/formbuilder/internal/ports/secondary"
)

// Slugifier implements secondary.Slugifier.
type Slugifier struct {
	lang string
}

// NewSlugifier creates a Slugifier applying the substitutions of lang
// ("en", "de", ...).
func NewSlugifier(lang string) *Slugifier {
	if lang == "" {
		lang = "en"
	}
	return &Slugifier{lang: lang}
}

// Slugify returns a lowercase, hyphenated slug no longer than
// question.MaxSlugLength.
func (s *Slugifier) Slugify(text string) string {
	out := slug.MakeLang(text, s.lang)
	if len(out) > question.MaxSlugLength {
		out = strings.TrimRight(out[:question.MaxSlugLength], "-")
	}
	return out
}

// Ensure Slugifier implements the interface
var _ secondary.Slugifier = (*Slugifier)(nil)
