package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/reclaim/internal/adapters/driven/storage/mediapath"
	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

// Ensure ContentStore implements the interfaces.
var (
	_ driven.ContentStore    = (*ContentStore)(nil)
	_ driven.RecordLifecycle = (*ContentStore)(nil)
)

// ContentStore is an in-memory implementation of driven.ContentStore.
// Substring and prefix queries are case-insensitive, like SQL LIKE.
type ContentStore struct {
	mu       sync.RWMutex
	baseURL  string
	records  map[int64]domain.ContentRecord
	variants map[int64][]domain.MediaVariant
	hooks    []driven.BeforeDeleteFunc
}

// NewContentStore creates a new in-memory content store serving media under baseURL.
func NewContentStore(baseURL string) *ContentStore {
	return &ContentStore{
		baseURL:  strings.TrimRight(baseURL, "/"),
		records:  make(map[int64]domain.ContentRecord),
		variants: make(map[int64][]domain.MediaVariant),
	}
}

// SaveRecord stores or updates a content record.
func (s *ContentStore) SaveRecord(_ context.Context, record *domain.ContentRecord) error {
	if record == nil || record.ID <= 0 {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := copyRecord(*record)
	if r.Type == "" {
		r.Type = "post"
	}
	if r.Status == "" {
		r.Status = domain.StatusPublish
	}
	s.records[r.ID] = r
	return nil
}

// SaveMedia stores or updates a media record with its variants and correlation tag.
func (s *ContentStore) SaveMedia(_ context.Context, media *domain.MediaRecord) error {
	if media == nil || media.ID <= 0 || media.File == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	meta := map[string]string{domain.MetaAttachedFile: media.File}
	if media.CorrelationTag != "" {
		meta[domain.MetaBrizyUID] = media.CorrelationTag
	}
	s.records[media.ID] = domain.ContentRecord{
		ID:       media.ID,
		Type:     domain.RecordTypeMedia,
		Status:   domain.StatusPublish,
		ParentID: media.ParentID,
		Metadata: meta,
	}
	s.variants[media.ID] = append([]domain.MediaVariant(nil), media.Variants...)
	return nil
}

// HasRecord reports whether a record exists.
func (s *ContentStore) HasRecord(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok
}

// GetRecord retrieves a record with its metadata.
func (s *ContentStore) GetRecord(_ context.Context, id int64) (*domain.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyRecord(r)
	return &out, nil
}

// GetRecordType returns the record type.
func (s *ContentStore) GetRecordType(_ context.Context, id int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return r.Type, nil
}

// GetAttachedMedia returns the media records owned by parentID, ordered by ID.
func (s *ContentStore) GetAttachedMedia(_ context.Context, parentID int64) ([]domain.MediaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.MediaRecord
	for _, id := range s.sortedIDs() {
		r := s.records[id]
		if r.Type == domain.RecordTypeMedia && r.ParentID == parentID {
			out = append(out, s.mediaLocked(r))
		}
	}
	return out, nil
}

// GetMetadataField returns a metadata value and whether it exists.
func (s *ContentStore) GetMetadataField(_ context.Context, recordID int64, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[recordID]
	if !ok {
		return "", false, nil
	}
	v, ok := r.Metadata[key]
	return v, ok, nil
}

// SetFieldOwner reassigns a media record to a new owning record.
func (s *ContentStore) SetFieldOwner(_ context.Context, mediaID, newParentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[mediaID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.Type != domain.RecordTypeMedia {
		return domain.ErrWrongType
	}
	r.ParentID = newParentID
	s.records[mediaID] = r
	return nil
}

// ResolveURLToMediaID maps a canonical or size-variant URL to a media ID.
func (s *ContentStore) ResolveURLToMediaID(_ context.Context, url string) (int64, error) {
	rel, ok := mediapath.Relative(s.baseURL, url)
	if !ok {
		return 0, domain.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.sortedIDs() {
		r := s.records[id]
		if r.Type != domain.RecordTypeMedia {
			continue
		}
		file := r.Metadata[domain.MetaAttachedFile]
		if file == rel {
			return id, nil
		}
		for _, v := range s.variants[id] {
			if mediapath.VariantFile(file, v.File) == rel {
				return id, nil
			}
		}
	}
	return 0, domain.ErrNotFound
}

// GetMediaURL returns the canonical URL of a media record.
func (s *ContentStore) GetMediaURL(_ context.Context, id int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, err := s.mediaRecordLocked(id)
	if err != nil {
		return "", err
	}
	return mediapath.URL(s.baseURL, r.Metadata[domain.MetaAttachedFile]), nil
}

// GetMediaVariants returns the stored size variants of a media record.
func (s *ContentStore) GetMediaVariants(_ context.Context, id int64) ([]domain.MediaVariant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, err := s.mediaRecordLocked(id); err != nil {
		return nil, err
	}
	return append([]domain.MediaVariant(nil), s.variants[id]...), nil
}

// FindRecordsByThumbnail returns records whose thumbnail field equals mediaID.
func (s *ContentStore) FindRecordsByThumbnail(_ context.Context, mediaID int64) ([]int64, error) {
	want := strconv.FormatInt(mediaID, 10)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []int64
	for _, id := range s.sortedIDs() {
		if s.records[id].Metadata[domain.MetaThumbnail] == want {
			out = append(out, id)
		}
	}
	return out, nil
}

// FindRecordsByContentSubstring returns non-media records whose body contains substring.
func (s *ContentStore) FindRecordsByContentSubstring(_ context.Context, substring string) ([]int64, error) {
	if substring == "" {
		return nil, nil
	}
	needle := strings.ToLower(substring)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []int64
	for _, id := range s.sortedIDs() {
		r := s.records[id]
		if r.Type == domain.RecordTypeMedia {
			continue
		}
		if strings.Contains(strings.ToLower(r.Content), needle) {
			out = append(out, id)
		}
	}
	return out, nil
}

// FindRecordsByMetadata returns records whose metadata field key satisfies match.
func (s *ContentStore) FindRecordsByMetadata(_ context.Context, key string, match domain.MetaMatch) ([]int64, error) {
	if match.IsZero() {
		return nil, nil
	}
	folded := domain.MetaMatch{
		Prefix:   strings.ToLower(match.Prefix),
		Contains: strings.ToLower(match.Contains),
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []int64
	for _, id := range s.sortedIDs() {
		v, ok := s.records[id].Metadata[key]
		if ok && folded.Matches(strings.ToLower(v)) {
			out = append(out, id)
		}
	}
	return out, nil
}

// FindMediaByMetadata returns media records whose metadata field key equals value.
func (s *ContentStore) FindMediaByMetadata(_ context.Context, key, value string) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []int64
	for _, id := range s.sortedIDs() {
		r := s.records[id]
		if r.Type != domain.RecordTypeMedia {
			continue
		}
		if v, ok := r.Metadata[key]; ok && v == value {
			out = append(out, id)
		}
	}
	return out, nil
}

// DeleteMedia removes a media record. Permanent deletion also drops its
// variants and any thumbnail fields pointing at it; otherwise it is trashed.
func (s *ContentStore) DeleteMedia(_ context.Context, id int64, permanent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil
	}
	if r.Type != domain.RecordTypeMedia {
		return fmt.Errorf("delete media %d: %w", id, domain.ErrWrongType)
	}
	if !permanent {
		r.Status = domain.StatusTrash
		s.records[id] = r
		return nil
	}
	delete(s.records, id)
	delete(s.variants, id)
	want := strconv.FormatInt(id, 10)
	for rid, rec := range s.records {
		if rec.Metadata[domain.MetaThumbnail] == want {
			delete(rec.Metadata, domain.MetaThumbnail)
			s.records[rid] = rec
		}
	}
	return nil
}

// OnBeforeDelete registers fn to run before every record removal.
func (s *ContentStore) OnBeforeDelete(fn driven.BeforeDeleteFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// DeleteRecord runs the registered hooks, then removes the record.
// Media still owned by the record become unattached.
func (s *ContentStore) DeleteRecord(ctx context.Context, id int64) error {
	s.mu.RLock()
	_, ok := s.records[id]
	hooks := append([]driven.BeforeDeleteFunc(nil), s.hooks...)
	s.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}

	// Hooks run without the lock held; they call back into the store.
	for _, fn := range hooks {
		fn(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	delete(s.variants, id)
	for rid, rec := range s.records {
		if rec.ParentID == id {
			rec.ParentID = 0
			s.records[rid] = rec
		}
	}
	return nil
}

func (s *ContentStore) mediaRecordLocked(id int64) (domain.ContentRecord, error) {
	r, ok := s.records[id]
	if !ok {
		return domain.ContentRecord{}, domain.ErrNotFound
	}
	if r.Type != domain.RecordTypeMedia {
		return domain.ContentRecord{}, domain.ErrWrongType
	}
	return r, nil
}

func (s *ContentStore) mediaLocked(r domain.ContentRecord) domain.MediaRecord {
	file := r.Metadata[domain.MetaAttachedFile]
	return domain.MediaRecord{
		ID:             r.ID,
		ParentID:       r.ParentID,
		File:           file,
		URL:            mediapath.URL(s.baseURL, file),
		Variants:       append([]domain.MediaVariant(nil), s.variants[r.ID]...),
		CorrelationTag: r.Metadata[domain.MetaBrizyUID],
	}
}

func (s *ContentStore) sortedIDs() []int64 {
	ids := make([]int64, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func copyRecord(r domain.ContentRecord) domain.ContentRecord {
	if r.Metadata != nil {
		meta := make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			meta[k] = v
		}
		r.Metadata = meta
	}
	return r
}
