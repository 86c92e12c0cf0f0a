package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reclaim/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/logger"
)

const testBase = "https://example.com/wp-content/uploads"

var errBoom = errors.New("boom")

// fakeChecker is a fixed integration checker.
type fakeChecker struct {
	active map[string]bool
	theme  string
}

func (c fakeChecker) IsIntegrationActive(name string) bool { return c.active[name] }
func (c fakeChecker) ActiveTheme() string                  { return c.theme }

func allIntegrations() fakeChecker {
	return fakeChecker{active: map[string]bool{
		domain.IntegrationElementor: true,
		domain.IntegrationThrive:    true,
		domain.IntegrationBrizy:     true,
		domain.IntegrationDivi:      true,
	}}
}

func testSettings() domain.ReclaimSettings {
	s := domain.DefaultReclaimSettings()
	s.UploadBaseURL = testBase
	return s
}

// fixture bundles a seeded store with a reclaim service.
type fixture struct {
	t      *testing.T
	ctx    context.Context
	store  *memory.ContentStore
	events *memory.EventLog
	svc    *ReclaimService

	checker  fakeChecker
	settings domain.ReclaimSettings
}

func newFixture(t *testing.T, checker fakeChecker, settings domain.ReclaimSettings) *fixture {
	t.Helper()
	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		store:    memory.NewContentStore(settings.UploadBaseURL),
		events:   memory.NewEventLog(),
		checker:  checker,
		settings: settings,
	}
	f.use(f.store)
	return f
}

// use rebuilds the service on top of store, typically a wrapper of f.store.
func (f *fixture) use(store driven.ContentStore) {
	registry := NewDefaultEncodingRegistry(store, f.checker, f.settings)
	f.svc = NewReclaimService(store, registry, f.events, f.settings)
}

// captureLogs redirects warnings to a buffer for the rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(nil) })
	return &buf
}

func (f *fixture) record(id int64, content string, meta map[string]string) {
	f.t.Helper()
	require.NoError(f.t, f.store.SaveRecord(f.ctx, &domain.ContentRecord{
		ID:       id,
		Type:     "post",
		Content:  content,
		Metadata: meta,
	}))
}

func (f *fixture) media(id, parent int64, file string, variants ...string) {
	f.t.Helper()
	m := &domain.MediaRecord{ID: id, ParentID: parent, File: file}
	for i, v := range variants {
		m.Variants = append(m.Variants, domain.MediaVariant{Name: "size" + string(rune('a'+i)), File: v})
	}
	require.NoError(f.t, f.store.SaveMedia(f.ctx, m))
}

func (f *fixture) taggedMedia(id, parent int64, file, tag string) {
	f.t.Helper()
	require.NoError(f.t, f.store.SaveMedia(f.ctx, &domain.MediaRecord{
		ID: id, ParentID: parent, File: file, CorrelationTag: tag,
	}))
}

func (f *fixture) parentOf(id int64) int64 {
	f.t.Helper()
	r, err := f.store.GetRecord(f.ctx, id)
	require.NoError(f.t, err)
	return r.ParentID
}

func img(file string) string {
	return `<img src="` + testBase + "/" + file + `">`
}

// flakyStore fails selected content store calls and counts URL lookups.
type flakyStore struct {
	*memory.ContentStore
	fail        map[string]bool
	resolveHits int
}

func newFlakyStore(inner *memory.ContentStore, methods ...string) *flakyStore {
	s := &flakyStore{ContentStore: inner, fail: make(map[string]bool)}
	for _, m := range methods {
		s.fail[m] = true
	}
	return s
}

func (s *flakyStore) GetAttachedMedia(ctx context.Context, parentID int64) ([]domain.MediaRecord, error) {
	if s.fail["GetAttachedMedia"] {
		return nil, errBoom
	}
	return s.ContentStore.GetAttachedMedia(ctx, parentID)
}

func (s *flakyStore) FindRecordsByThumbnail(ctx context.Context, mediaID int64) ([]int64, error) {
	if s.fail["FindRecordsByThumbnail"] {
		return nil, errBoom
	}
	return s.ContentStore.FindRecordsByThumbnail(ctx, mediaID)
}

func (s *flakyStore) ResolveURLToMediaID(ctx context.Context, url string) (int64, error) {
	s.resolveHits++
	if s.fail["ResolveURLToMediaID"] {
		return 0, errBoom
	}
	return s.ContentStore.ResolveURLToMediaID(ctx, url)
}

func (s *flakyStore) DeleteMedia(ctx context.Context, id int64, permanent bool) error {
	if s.fail["DeleteMedia"] {
		return errBoom
	}
	return s.ContentStore.DeleteMedia(ctx, id, permanent)
}
