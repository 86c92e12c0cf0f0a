package driven

import (
	"context"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

// Extractor discovers media references in one content encoding.
// Extractors must be idempotent and must never mutate the record or the store.
type Extractor interface {
	// Encoding returns the encoding this extractor understands.
	Encoding() domain.Encoding

	// Detect returns true if the record carries a payload in this encoding.
	Detect(record *domain.ContentRecord) bool

	// Extract returns the candidates referenced by the record.
	// Malformed payloads yield an empty set, not an error.
	Extract(ctx context.Context, record *domain.ContentRecord) (*domain.CandidateSet, error)
}
