package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

// URLResolver maps candidates to media identifiers and expands media URLs.
// A resolver belongs to one deletion event: its memo is never shared
// across events, so every event re-resolves against the current store.
type URLResolver struct {
	store driven.ContentStore
	memo  *lru.Cache[string, int64]
}

// NewURLResolver creates a resolver with a memo of at most cacheSize URLs.
func NewURLResolver(store driven.ContentStore, cacheSize int) *URLResolver {
	if cacheSize <= 0 {
		cacheSize = domain.DefaultResolverCacheSize
	}
	// lru.New only fails for a non-positive size.
	memo, _ := lru.New[string, int64](cacheSize)
	return &URLResolver{store: store, memo: memo}
}

// ResolveToID maps an upload URL to a media identifier.
// Returns domain.ErrUnresolvedReference if no media record matches.
func (r *URLResolver) ResolveToID(ctx context.Context, url string) (int64, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return 0, domain.ErrUnresolvedReference
	}
	if id, ok := r.memo.Get(url); ok {
		resolverCacheHits.Inc()
		if id == 0 {
			return 0, fmt.Errorf("%w: %s", domain.ErrUnresolvedReference, url)
		}
		return id, nil
	}
	resolverCacheMisses.Inc()

	id, err := r.store.ResolveURLToMediaID(ctx, url)
	if errors.Is(err, domain.ErrNotFound) {
		r.memo.Add(url, 0)
		return 0, fmt.Errorf("%w: %s", domain.ErrUnresolvedReference, url)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: resolving %s: %w", domain.ErrStoreQuery, url, err)
	}
	r.memo.Add(url, id)
	return id, nil
}

// ResolveTag maps a correlation tag to a media identifier.
func (r *URLResolver) ResolveTag(ctx context.Context, tag string) (int64, error) {
	ids, err := r.store.FindMediaByMetadata(ctx, domain.MetaBrizyUID, tag)
	if err != nil {
		return 0, fmt.Errorf("%w: resolving tag %q: %w", domain.ErrStoreQuery, tag, err)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: tag %q", domain.ErrUnresolvedReference, tag)
	}
	return ids[0], nil
}

// Resolve maps any candidate to a media identifier.
func (r *URLResolver) Resolve(ctx context.Context, c domain.Candidate) (int64, error) {
	switch {
	case c.MediaID > 0:
		return c.MediaID, nil
	case c.URL != "":
		return r.ResolveToID(ctx, c.URL)
	case c.CorrelationTag != "":
		return r.ResolveTag(ctx, c.CorrelationTag)
	default:
		return 0, domain.ErrUnresolvedReference
	}
}

// Media loads a media record with its canonical URL, variants and correlation tag.
// Returns domain.ErrNotFound if the record is missing and domain.ErrWrongType
// if it is not a media record; other failures wrap domain.ErrStoreQuery.
func (r *URLResolver) Media(ctx context.Context, id int64) (*domain.MediaRecord, error) {
	record, err := r.store.GetRecord(ctx, id)
	if err != nil {
		return nil, classify(err, "loading media %d", id)
	}
	if !record.IsMedia() {
		return nil, fmt.Errorf("%w: record %d is %q", domain.ErrWrongType, id, record.Type)
	}

	url, err := r.store.GetMediaURL(ctx, id)
	if err != nil {
		return nil, classify(err, "media url of %d", id)
	}
	variants, err := r.store.GetMediaVariants(ctx, id)
	if err != nil {
		return nil, classify(err, "variants of %d", id)
	}

	file, _ := record.Meta(domain.MetaAttachedFile)
	tag, _ := record.Meta(domain.MetaBrizyUID)
	return &domain.MediaRecord{
		ID:             id,
		ParentID:       record.ParentID,
		File:           file,
		URL:            url,
		Variants:       variants,
		CorrelationTag: tag,
	}, nil
}

// ExpandToVariantURLs returns the canonical URL followed by one URL per size variant.
func (r *URLResolver) ExpandToVariantURLs(ctx context.Context, mediaID int64) ([]string, error) {
	media, err := r.Media(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	return MediaURLs(media), nil
}

// MediaURLs returns the distinct canonical and variant URLs of media.
// Variants share the directory of the canonical URL.
func MediaURLs(media *domain.MediaRecord) []string {
	if media == nil || media.URL == "" {
		return nil
	}
	urls := []string{media.URL}
	seen := map[string]struct{}{media.URL: {}}
	dir := media.URL[:strings.LastIndex(media.URL, "/")+1]
	for _, v := range media.Variants {
		if v.File == "" {
			continue
		}
		u := dir + v.File
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}

// classify keeps not-found and wrong-type errors and wraps everything else as a store failure.
func classify(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrWrongType) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreQuery, msg, err)
}
