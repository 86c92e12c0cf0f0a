package driven

import (
	"context"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

// ContentStore is the host content store as seen by the reclaim core.
// The core only reads records and issues mutations to related media;
// it never creates, edits or deletes content records itself.
type ContentStore interface {
	// GetRecord retrieves a record with its metadata.
	// Returns domain.ErrNotFound if the record does not exist.
	GetRecord(ctx context.Context, id int64) (*domain.ContentRecord, error)

	// GetRecordType returns the record type.
	// Returns domain.ErrNotFound if the record does not exist.
	GetRecordType(ctx context.Context, id int64) (string, error)

	// GetAttachedMedia returns the media records directly owned by parentID.
	GetAttachedMedia(ctx context.Context, parentID int64) ([]domain.MediaRecord, error)

	// GetMetadataField returns a metadata value and whether it exists.
	GetMetadataField(ctx context.Context, recordID int64, key string) (string, bool, error)

	// SetFieldOwner reassigns a media record to a new owning record.
	SetFieldOwner(ctx context.Context, mediaID, newParentID int64) error

	// ResolveURLToMediaID maps a canonical or size-variant URL to a media ID.
	// Returns domain.ErrNotFound if no media record matches.
	ResolveURLToMediaID(ctx context.Context, url string) (int64, error)

	// GetMediaURL returns the canonical URL of a media record.
	// Returns domain.ErrWrongType if the record is not a media record.
	GetMediaURL(ctx context.Context, id int64) (string, error)

	// GetMediaVariants returns the stored size variants of a media record.
	GetMediaVariants(ctx context.Context, id int64) ([]domain.MediaVariant, error)

	// FindRecordsByThumbnail returns records whose thumbnail field equals mediaID.
	FindRecordsByThumbnail(ctx context.Context, mediaID int64) ([]int64, error)

	// FindRecordsByContentSubstring returns non-media records whose body contains substring.
	FindRecordsByContentSubstring(ctx context.Context, substring string) ([]int64, error)

	// FindRecordsByMetadata returns records whose metadata field key satisfies match.
	FindRecordsByMetadata(ctx context.Context, key string, match domain.MetaMatch) ([]int64, error)

	// FindMediaByMetadata returns media records whose metadata field key equals value.
	FindMediaByMetadata(ctx context.Context, key, value string) ([]int64, error)

	// DeleteMedia removes a media record. Permanent deletion bypasses any trash.
	// Deleting a missing record is not an error.
	DeleteMedia(ctx context.Context, id int64, permanent bool) error
}

// BeforeDeleteFunc is invoked synchronously before a record is removed.
type BeforeDeleteFunc func(ctx context.Context, recordID int64)

// RecordLifecycle exposes the trigger boundary of the content store.
type RecordLifecycle interface {
	// OnBeforeDelete registers fn to run before every record removal.
	OnBeforeDelete(fn BeforeDeleteFunc)

	// DeleteRecord runs the registered hooks, then removes the record.
	DeleteRecord(ctx context.Context, id int64) error
}
