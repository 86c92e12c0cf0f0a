package driving

import (
	"context"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

// Reclaimer garbage-collects the media of deleted content records.
type Reclaimer interface {
	// Reclaim runs the full pipeline for a record that is about to be removed
	// and applies the decisions. It only returns an error for invalid input;
	// per-medium and per-encoding failures are reported in the Report.
	Reclaim(ctx context.Context, recordID int64) (*domain.Report, error)

	// Plan computes the decisions for a record without applying them.
	Plan(ctx context.Context, recordID int64) (*domain.Report, error)

	// Delete removes a record through the content store, which triggers Reclaim
	// before the record disappears. Returns the report of that run.
	Delete(ctx context.Context, recordID int64) (*domain.Report, error)

	// Usage returns the records other than excluding that reference mediaID.
	Usage(ctx context.Context, mediaID, excluding int64) (*domain.Usage, error)
}
