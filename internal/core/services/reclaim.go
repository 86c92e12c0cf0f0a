package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/core/ports/driving"
	"github.com/custodia-labs/reclaim/internal/logger"
)

// Ensure ReclaimService implements the interface.
var _ driving.Reclaimer = (*ReclaimService)(nil)

// reportSlotKey carries a report destination from Delete into the pre-delete hook.
type reportSlotKey struct{}

// ReclaimService runs the reclaim pipeline for records about to be deleted:
// extraction per encoding, resolution, usage and policy.
type ReclaimService struct {
	store     driven.ContentStore
	registry  *EncodingRegistry
	usage     *UsageIndex
	events    driven.EventLog
	lifecycle driven.RecordLifecycle

	cacheSize int
	dryRun    bool
	now       func() time.Time
}

// NewReclaimService creates a reclaim service.
// events is optional; when set, every applied report is appended to it.
func NewReclaimService(
	store driven.ContentStore,
	registry *EncodingRegistry,
	events driven.EventLog,
	settings domain.ReclaimSettings,
) *ReclaimService {
	return &ReclaimService{
		store:     store,
		registry:  registry,
		usage:     NewUsageIndex(store),
		events:    events,
		cacheSize: settings.ResolverCacheSize,
		dryRun:    settings.DryRun,
		now:       time.Now,
	}
}

// Register installs the pre-delete hook on lifecycle.
// Delete requires a registered lifecycle.
func (s *ReclaimService) Register(lifecycle driven.RecordLifecycle) {
	s.lifecycle = lifecycle
	lifecycle.OnBeforeDelete(s.beforeDelete)
}

// Reclaim runs the pipeline for recordID and applies the decisions,
// unless the service is configured for dry runs.
func (s *ReclaimService) Reclaim(ctx context.Context, recordID int64) (*domain.Report, error) {
	return s.run(ctx, recordID, !s.dryRun)
}

// Plan runs the pipeline for recordID without mutating the store.
func (s *ReclaimService) Plan(ctx context.Context, recordID int64) (*domain.Report, error) {
	return s.run(ctx, recordID, false)
}

// Delete removes recordID through the content store. The store fires the
// pre-delete hook, which reclaims the record's media first.
func (s *ReclaimService) Delete(ctx context.Context, recordID int64) (*domain.Report, error) {
	if recordID <= 0 {
		return nil, fmt.Errorf("%w: record id must be positive", domain.ErrInvalidInput)
	}
	if s.lifecycle == nil {
		return nil, fmt.Errorf("%w: no record lifecycle registered", domain.ErrNotImplemented)
	}

	var report *domain.Report
	ctx = context.WithValue(ctx, reportSlotKey{}, &report)
	if err := s.lifecycle.DeleteRecord(ctx, recordID); err != nil {
		return report, fmt.Errorf("deleting record %d: %w", recordID, err)
	}
	return report, nil
}

// Usage returns every record other than excluding that references mediaID,
// combining all usage strategies.
func (s *ReclaimService) Usage(ctx context.Context, mediaID, excluding int64) (*domain.Usage, error) {
	if mediaID <= 0 {
		return nil, fmt.Errorf("%w: media id must be positive", domain.ErrInvalidInput)
	}
	resolver := NewURLResolver(s.store, s.cacheSize)
	media, err := resolver.Media(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	var usage domain.Usage
	for _, strategy := range []domain.UsageStrategy{
		domain.UsageStandard, domain.UsageCorrelation, domain.UsageSettingsURL,
	} {
		u, err := s.usage.For(ctx, strategy, media, excluding)
		if err != nil {
			return nil, err
		}
		usage = usage.Merge(u)
	}
	return &usage, nil
}

// beforeDelete is the pre-delete hook. It never fails the deletion.
func (s *ReclaimService) beforeDelete(ctx context.Context, recordID int64) {
	report, err := s.Reclaim(ctx, recordID)
	if err != nil {
		logger.WithFields(logger.Fields{"record": recordID}).Warnf("reclaim skipped: %v", err)
	}
	if slot, ok := ctx.Value(reportSlotKey{}).(**domain.Report); ok {
		*slot = report
	}
}

// mediaGroup collects the evidence for one medium across encodings.
type mediaGroup struct {
	id         int64
	encodings  []domain.Encoding
	strategies []domain.UsageStrategy
}

func (g *mediaGroup) add(encoding domain.Encoding, strategy domain.UsageStrategy) {
	if !containsEncoding(g.encodings, encoding) {
		g.encodings = append(g.encodings, encoding)
	}
	for _, st := range g.strategies {
		if st == strategy {
			return
		}
	}
	g.strategies = append(g.strategies, strategy)
}

func (s *ReclaimService) run(ctx context.Context, recordID int64, apply bool) (*domain.Report, error) {
	if recordID <= 0 {
		return nil, fmt.Errorf("%w: record id must be positive", domain.ErrInvalidInput)
	}

	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, classify(err, "loading record %d", recordID)
	}

	report := &domain.Report{
		EventID:   uuid.New().String(),
		RecordID:  recordID,
		DryRun:    !apply,
		StartedAt: s.now(),
	}
	mode := "apply"
	if !apply {
		mode = "plan"
	}
	eventsTotal.WithLabelValues(mode).Inc()
	logger.Section(fmt.Sprintf("Reclaim record %d (%s)", recordID, mode))

	// One resolver per event: nothing is memoised across events.
	resolver := NewURLResolver(s.store, s.cacheSize)
	groups := s.collect(ctx, resolver, record, report)

	for _, g := range groups {
		outcome := s.decide(ctx, resolver, recordID, g)
		if apply && outcome.Action != domain.ActionSkip {
			if err := Apply(ctx, s.store, &outcome); err != nil {
				outcome.Action = domain.ActionSkip
				outcome.Reason = domain.SkipApplyFailure
				outcome.Err = err
			}
		}
		s.observe(recordID, outcome)
		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.FinishedAt = s.now()
	eventDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
	logger.Info("record %d: %d deleted, %d reparented, %d skipped", recordID,
		report.Count(domain.ActionDelete), report.Count(domain.ActionReparent), report.Count(domain.ActionSkip))

	if apply && s.events != nil {
		if err := s.events.Append(ctx, report); err != nil {
			logger.WithFields(logger.Fields{"record": recordID, "event": report.EventID}).
				Warnf("recording event failed: %v", err)
		}
	}
	return report, nil
}

// collect runs every applicable extractor and groups the resolved candidates
// by media ID, in order of first discovery. A failing encoding is recorded
// and does not stop the others.
func (s *ReclaimService) collect(
	ctx context.Context,
	resolver *URLResolver,
	record *domain.ContentRecord,
	report *domain.Report,
) []*mediaGroup {
	var groups []*mediaGroup
	byID := make(map[int64]*mediaGroup)

	for _, entry := range s.registry.Applicable(record) {
		encoding := entry.Encoding()
		report.Encodings = append(report.Encodings, encoding)

		set, err := extract(ctx, entry.Extractor, record)
		if err != nil {
			encodingFailuresTotal.WithLabelValues(string(encoding)).Inc()
			report.Failures = append(report.Failures, domain.EncodingFailure{Encoding: encoding, Err: err})
			logger.WithFields(logger.Fields{
				"record":   record.ID,
				"encoding": encoding,
			}).Warnf("extraction failed: %v", err)
			continue
		}
		candidatesTotal.WithLabelValues(string(encoding)).Add(float64(set.Len()))
		logger.Debug("%s: %d candidates", encoding, set.Len())

		for _, c := range set.Items() {
			id, err := resolver.Resolve(ctx, c)
			if err != nil {
				s.unresolved(record.ID, encoding, c, err)
				continue
			}
			g, ok := byID[id]
			if !ok {
				g = &mediaGroup{id: id}
				byID[id] = g
				groups = append(groups, g)
			}
			g.add(encoding, entry.Strategy)
		}
	}
	return groups
}

// extract runs one extractor, turning a panic into an ErrDecode failure so
// a single encoding cannot abort the event.
func extract(ctx context.Context, ex driven.Extractor, record *domain.ContentRecord) (set *domain.CandidateSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			set, err = nil, fmt.Errorf("%w: extractor panicked: %v", domain.ErrDecode, r)
		}
	}()
	return ex.Extract(ctx, record)
}

// decide loads the medium, merges the usage of every strategy that found it
// and applies the policy.
func (s *ReclaimService) decide(ctx context.Context, resolver *URLResolver, recordID int64, g *mediaGroup) domain.Outcome {
	skip := func(reason domain.SkipReason, err error) domain.Outcome {
		return domain.Outcome{
			MediaID:   g.id,
			Encodings: g.encodings,
			Action:    domain.ActionSkip,
			Reason:    reason,
			Err:       err,
		}
	}

	media, err := resolver.Media(ctx, g.id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return skip(domain.SkipNotFound, err)
	case errors.Is(err, domain.ErrWrongType):
		return skip(domain.SkipWrongType, err)
	case err != nil:
		return skip(domain.SkipStoreFailure, err)
	}

	var usage domain.Usage
	for _, strategy := range g.strategies {
		u, err := s.usage.For(ctx, strategy, media, recordID)
		if err != nil {
			return skip(domain.SkipStoreFailure, err)
		}
		usage = usage.Merge(u)
	}

	outcome := Decide(media, recordID, usage)
	outcome.Encodings = g.encodings
	return outcome
}

func (s *ReclaimService) observe(recordID int64, o domain.Outcome) {
	outcomesTotal.WithLabelValues(string(o.Action), string(o.Reason)).Inc()

	fields := logger.Fields{
		"record":   recordID,
		"media":    o.MediaID,
		"encoding": joinEncodings(o.Encodings),
	}
	switch o.Action {
	case domain.ActionDelete:
		logger.Debug("media %d deleted", o.MediaID)
	case domain.ActionReparent:
		logger.Debug("media %d reparented to %d", o.MediaID, o.NewParentID)
	case domain.ActionSkip:
		fields["reason"] = string(o.Reason)
		if o.Reason == domain.SkipNotFound || o.Reason == domain.SkipWrongType {
			logger.Debug("media %d skipped: %s", o.MediaID, o.Reason)
			return
		}
		if len(o.Blockers) > 0 {
			fields["blockers"] = fmt.Sprint(o.Blockers)
		}
		if o.Err != nil && o.Reason != domain.SkipStillInUse {
			fields["error"] = o.Err.Error()
		}
		logger.WithFields(fields).Warnf("media %d kept", o.MediaID)
	}
}

func (s *ReclaimService) unresolved(recordID int64, encoding domain.Encoding, c domain.Candidate, err error) {
	if errors.Is(err, domain.ErrUnresolvedReference) {
		logger.Debug("%s: dropping unresolved candidate %s", encoding, c.Key())
		return
	}
	logger.WithFields(logger.Fields{
		"record":    recordID,
		"encoding":  encoding,
		"candidate": c.Key(),
	}).Warnf("resolution failed: %v", err)
}

func containsEncoding(list []domain.Encoding, e domain.Encoding) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

func joinEncodings(list []domain.Encoding) string {
	out := ""
	for i, e := range list {
		if i > 0 {
			out += ","
		}
		out += string(e)
	}
	return out
}
