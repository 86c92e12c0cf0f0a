// Package plainurl extracts upload URLs from a record's body.
package plainurl

import (
	"context"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/extractors/uploadurl"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor returns every distinct upload URL in the body.
type Extractor struct {
	urls *uploadurl.Matcher
}

// New creates an extractor using matcher.
func New(matcher *uploadurl.Matcher) *Extractor {
	return &Extractor{urls: matcher}
}

// Encoding returns domain.EncodingDivi.
func (e *Extractor) Encoding() domain.Encoding {
	return domain.EncodingDivi
}

// Detect returns true if the record carries builder settings.
func (e *Extractor) Detect(record *domain.ContentRecord) bool {
	_, ok := record.Meta(domain.MetaDiviSettings)
	return ok
}

// Extract returns the upload URLs found in the body.
func (e *Extractor) Extract(_ context.Context, record *domain.ContentRecord) (*domain.CandidateSet, error) {
	set := domain.NewCandidateSet()
	if record == nil || record.Content == "" {
		return set, nil
	}
	for _, u := range e.urls.FindAll(record.Content) {
		set.AddURL(u)
	}
	return set, nil
}
