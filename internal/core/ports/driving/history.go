package driving

import (
	"context"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

// EventHistory exposes the reports of past deletion events.
type EventHistory interface {
	// Recent returns up to limit reports, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Report, error)

	// Event retrieves a single report by event ID.
	Event(ctx context.Context, eventID string) (*domain.Report, error)
}
