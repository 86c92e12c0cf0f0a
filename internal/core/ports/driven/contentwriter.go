package driven

import (
	"context"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

// ContentWriter seeds a content store with records and media.
// The reclaim pipeline never writes records; this port serves imports only.
type ContentWriter interface {
	// SaveRecord stores or updates a content record with its metadata.
	SaveRecord(ctx context.Context, record *domain.ContentRecord) error

	// SaveMedia stores or updates a media record with its variants and correlation tag.
	SaveMedia(ctx context.Context, media *domain.MediaRecord) error
}
