// Package attached extracts the media records directly owned by a content record.
package attached

import (
	"context"
	"fmt"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor lists direct children through the content store.
type Extractor struct {
	store driven.ContentStore
}

// New creates an extractor backed by store.
func New(store driven.ContentStore) *Extractor {
	return &Extractor{store: store}
}

// Encoding returns domain.EncodingStandard.
func (e *Extractor) Encoding() domain.Encoding {
	return domain.EncodingStandard
}

// Detect always returns true: any record may own media.
func (e *Extractor) Detect(record *domain.ContentRecord) bool {
	return record != nil
}

// Extract returns one candidate per directly attached medium.
func (e *Extractor) Extract(ctx context.Context, record *domain.ContentRecord) (*domain.CandidateSet, error) {
	set := domain.NewCandidateSet()
	if record == nil {
		return set, nil
	}

	media, err := e.store.GetAttachedMedia(ctx, record.ID)
	if err != nil {
		return set, fmt.Errorf("%w: attached media of %d: %w", domain.ErrStoreQuery, record.ID, err)
	}
	for i := range media {
		set.AddMediaID(media[i].ID)
	}
	return set, nil
}
