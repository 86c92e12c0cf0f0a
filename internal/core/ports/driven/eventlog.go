package driven

import (
	"context"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

// EventLog persists the reports of applied deletion events.
type EventLog interface {
	// Append stores a report. Appending an existing event ID replaces it.
	Append(ctx context.Context, report *domain.Report) error

	// Get retrieves a report by event ID.
	// Returns domain.ErrNotFound if the event does not exist.
	Get(ctx context.Context, eventID string) (*domain.Report, error)

	// Recent returns up to limit reports, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Report, error)
}
