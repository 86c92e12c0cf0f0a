package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.EventHistory = (*HistoryService)(nil)

// DefaultHistoryLimit is used when a non-positive limit is requested.
const DefaultHistoryLimit = 20

// HistoryService reads past deletion events from the event log.
type HistoryService struct {
	events driven.EventLog
}

// NewHistoryService creates a history service over events.
func NewHistoryService(events driven.EventLog) *HistoryService {
	return &HistoryService{events: events}
}

// Recent returns up to limit reports, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.Report, error) {
	if s.events == nil {
		return nil, domain.ErrNotImplemented
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.events.Recent(ctx, limit)
}

// Event retrieves a single report by event ID.
func (s *HistoryService) Event(ctx context.Context, eventID string) (*domain.Report, error) {
	if s.events == nil {
		return nil, domain.ErrNotImplemented
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	return s.events.Get(ctx, eventID)
}
