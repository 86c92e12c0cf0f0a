package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

// UsageIndex computes which records other than the deleting one reference a medium.
// Every query excludes the deleting record explicitly: its body and metadata
// are still present in the store while the pre-delete hook runs.
type UsageIndex struct {
	store driven.ContentStore
}

// NewUsageIndex creates a usage index over store.
func NewUsageIndex(store driven.ContentStore) *UsageIndex {
	return &UsageIndex{store: store}
}

// For computes usage with the given strategy.
func (u *UsageIndex) For(ctx context.Context, strategy domain.UsageStrategy, media *domain.MediaRecord, excluding int64) (domain.Usage, error) {
	switch strategy {
	case domain.UsageStandard:
		return u.Standard(ctx, media, excluding)
	case domain.UsageCorrelation:
		return u.Correlation(ctx, media, excluding)
	case domain.UsageSettingsURL:
		return u.SettingsURL(ctx, media, excluding)
	default:
		return domain.Usage{}, fmt.Errorf("%w: unknown usage strategy %q", domain.ErrInvalidInput, strategy)
	}
}

// Standard returns thumbnail users and records whose body contains the
// canonical URL or any size-variant URL.
func (u *UsageIndex) Standard(ctx context.Context, media *domain.MediaRecord, excluding int64) (domain.Usage, error) {
	var usage domain.Usage

	thumbs, err := u.store.FindRecordsByThumbnail(ctx, media.ID)
	if err != nil {
		return domain.Usage{}, fmt.Errorf("%w: thumbnail users of %d: %w", domain.ErrStoreQuery, media.ID, err)
	}
	usage.Thumbnail = thumbs

	for _, url := range MediaURLs(media) {
		ids, err := u.store.FindRecordsByContentSubstring(ctx, url)
		if err != nil {
			return domain.Usage{}, fmt.Errorf("%w: content users of %s: %w", domain.ErrStoreQuery, url, err)
		}
		usage = usage.Merge(domain.Usage{Content: ids})
	}
	return usage.Without(excluding), nil
}

// Correlation returns records whose builder payload starts with the medium's
// correlation tag or contains its canonical URL.
// An empty tag never matches, so a medium without a tag is found by URL only.
func (u *UsageIndex) Correlation(ctx context.Context, media *domain.MediaRecord, excluding int64) (domain.Usage, error) {
	match := domain.MetaMatch{Prefix: media.CorrelationTag, Contains: media.URL}
	if match.IsZero() {
		return domain.Usage{}, nil
	}
	ids, err := u.store.FindRecordsByMetadata(ctx, domain.MetaBrizyContent, match)
	if err != nil {
		return domain.Usage{}, fmt.Errorf("%w: builder users of %d: %w", domain.ErrStoreQuery, media.ID, err)
	}
	return domain.Usage{Builder: ids}.Without(excluding), nil
}

// SettingsURL returns records whose builder settings contain the canonical URL.
// When there are none it falls back to a body search for the canonical URL.
func (u *UsageIndex) SettingsURL(ctx context.Context, media *domain.MediaRecord, excluding int64) (domain.Usage, error) {
	if media.URL == "" {
		return domain.Usage{}, nil
	}
	ids, err := u.store.FindRecordsByMetadata(ctx, domain.MetaDiviSettings, domain.MetaMatch{Contains: media.URL})
	if err != nil {
		return domain.Usage{}, fmt.Errorf("%w: settings users of %d: %w", domain.ErrStoreQuery, media.ID, err)
	}
	usage := domain.Usage{Builder: ids}.Without(excluding)
	if !usage.IsEmpty() {
		return usage, nil
	}

	ids, err = u.store.FindRecordsByContentSubstring(ctx, media.URL)
	if err != nil {
		return domain.Usage{}, fmt.Errorf("%w: content users of %d: %w", domain.ErrStoreQuery, media.ID, err)
	}
	return domain.Usage{Content: ids}.Without(excluding), nil
}
