package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

// Ensure EventLog implements the interface.
var _ driven.EventLog = (*EventLog)(nil)

// EventLog is an in-memory implementation of driven.EventLog.
type EventLog struct {
	mu      sync.RWMutex
	reports map[string]domain.Report
	order   map[string]int
	seq     int
}

// NewEventLog creates a new in-memory event log.
func NewEventLog() *EventLog {
	return &EventLog{
		reports: make(map[string]domain.Report),
		order:   make(map[string]int),
	}
}

// Append stores a report, replacing any previous report with the same event ID.
func (l *EventLog) Append(_ context.Context, report *domain.Report) error {
	if report == nil || report.EventID == "" {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.reports[report.EventID] = *report
	l.order[report.EventID] = l.seq
	return nil
}

// Get retrieves a report by event ID.
func (l *EventLog) Get(_ context.Context, eventID string) (*domain.Report, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	r, ok := l.reports[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

// Recent returns up to limit reports, newest first.
func (l *EventLog) Recent(_ context.Context, limit int) ([]domain.Report, error) {
	if limit <= 0 {
		return nil, nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	reports := make([]domain.Report, 0, len(l.reports))
	for _, r := range l.reports {
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool {
		a, b := reports[i], reports[j]
		if !a.StartedAt.Equal(b.StartedAt) {
			return a.StartedAt.After(b.StartedAt)
		}
		return l.order[a.EventID] > l.order[b.EventID]
	})
	if len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// Len returns the number of stored reports.
func (l *EventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.reports)
}
