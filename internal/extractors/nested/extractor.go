// Package nested extracts media IDs from a nested JSON layout tree.
//
// Every mapping entry whose key is exactly "id" or "media_id" and whose value
// is numeric contributes a media ID, at any depth. No other key is considered.
package nested

import (
	"context"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/logger"
	"github.com/custodia-labs/reclaim/internal/payload"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads the layout tree stored under a metadata key.
type Extractor struct {
	metaKey string
}

// New creates an extractor reading domain.MetaElementorData.
func New() *Extractor {
	return &Extractor{metaKey: domain.MetaElementorData}
}

// Encoding returns domain.EncodingElementor.
func (e *Extractor) Encoding() domain.Encoding {
	return domain.EncodingElementor
}

// Detect returns true if the layout metadata is populated.
func (e *Extractor) Detect(record *domain.ContentRecord) bool {
	_, ok := record.Meta(e.metaKey)
	return ok
}

// Extract walks the layout tree and collects numeric id / media_id values.
func (e *Extractor) Extract(_ context.Context, record *domain.ContentRecord) (*domain.CandidateSet, error) {
	set := domain.NewCandidateSet()

	raw, ok := record.Meta(e.metaKey)
	if !ok {
		return set, nil
	}

	root, err := payload.ParseJSON([]byte(raw))
	if err != nil || !root.IsContainer() {
		logger.WithFields(logger.Fields{
			"record":   record.ID,
			"encoding": e.Encoding(),
		}).Warn("skipping undecodable layout data")
		return set, nil
	}

	payload.Walk(root, func(v payload.Visit) {
		if !v.InMapping || (v.Key != "id" && v.Key != "media_id") {
			return
		}
		if id, ok := v.Node.Int(); ok && id > 0 {
			set.AddMediaID(id)
		}
	})
	return set, nil
}
