package domain

import (
	"strconv"
	"strings"
)

// RecordTypeMedia is the record type the content store assigns to media records.
const RecordTypeMedia = "attachment"

// Record statuses.
const (
	StatusPublish = "publish"
	StatusTrash   = "trash"
)

// Metadata keys understood by the content store and the builder integrations.
const (
	// MetaThumbnail holds the media ID used as a record's thumbnail / cover.
	MetaThumbnail = "_thumbnail_id"

	// MetaAttachedFile holds a media record's file path relative to the upload base.
	MetaAttachedFile = "_wp_attached_file"

	// MetaElementorData holds the nested JSON layout tree of builder A.
	MetaElementorData = "_elementor_data"

	// MetaBrizyContent holds the JSON or serialized payload of builder C.
	MetaBrizyContent = "_brizy_content"

	// MetaBrizyUID holds the correlation tag linking a media record to builder C payloads.
	MetaBrizyUID = "brizy_attachment_uid"

	// MetaDiviSettings holds the structured settings of builder D.
	MetaDiviSettings = "_et_pb_post_settings"
)

// ContentRecord is a deletable unit of content that may reference media.
type ContentRecord struct {
	// ID is the store-assigned identifier.
	ID int64

	// Type is the record type (e.g. "post", "page", "attachment").
	Type string

	// Title is the human-readable title.
	Title string

	// Content is the raw body (text / HTML).
	Content string

	// Status is the publication status. Soft-deleted records are StatusTrash.
	Status string

	// ParentID is the owning record. Zero means no parent.
	ParentID int64

	// Metadata holds named fields, including encoded builder payloads.
	Metadata map[string]string
}

// Meta returns a metadata field and whether it is present and non-empty.
func (r *ContentRecord) Meta(key string) (string, bool) {
	if r == nil || r.Metadata == nil {
		return "", false
	}
	v, ok := r.Metadata[key]
	return v, ok && v != ""
}

// ThumbnailID returns the media ID designated as the record's thumbnail.
func (r *ContentRecord) ThumbnailID() int64 {
	v, ok := r.Meta(MetaThumbnail)
	if !ok {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// IsMedia reports whether the record is a media record.
func (r *ContentRecord) IsMedia() bool {
	return r != nil && r.Type == RecordTypeMedia
}

// MediaVariant is one stored size variant of a media file.
type MediaVariant struct {
	// Name is the size name (e.g. "thumbnail", "medium").
	Name string

	// File is the variant file name, stored alongside the original.
	File string

	Width  int
	Height int
}

// MediaRecord is a stored binary asset.
type MediaRecord struct {
	// ID is the media record identifier.
	ID int64

	// ParentID is the owning content record. Zero means unattached.
	ParentID int64

	// File is the path relative to the upload base (e.g. "2024/05/photo.jpg").
	File string

	// URL is the canonical URL.
	URL string

	// Variants are the size variants computed by the store.
	Variants []MediaVariant

	// CorrelationTag links builder payload nodes to this record without using its ID or URL.
	CorrelationTag string
}

// IsOwnedBy reports whether the medium is directly owned by the given record.
func (m *MediaRecord) IsOwnedBy(recordID int64) bool {
	return m != nil && recordID != 0 && m.ParentID == recordID
}

// ReferenceKind classifies how a record refers to a medium.
type ReferenceKind string

// Reference kinds.
const (
	ReferenceInline    ReferenceKind = "inline-content"
	ReferenceThumbnail ReferenceKind = "thumbnail"
	ReferenceBuilder   ReferenceKind = "builder-correlated"
)

// Reference is a computed (media, referring record, kind) triple.
// References are never persisted.
type Reference struct {
	MediaID  int64
	RecordID int64
	Kind     ReferenceKind
}

// MetaMatch describes a metadata value match.
// A value matches when it starts with Prefix or contains Contains.
// Empty fields are ignored; a zero MetaMatch matches nothing.
type MetaMatch struct {
	Prefix   string
	Contains string
}

// IsZero reports whether no match criteria are set.
func (m MetaMatch) IsZero() bool {
	return m.Prefix == "" && m.Contains == ""
}

// Matches reports whether value satisfies the match.
func (m MetaMatch) Matches(value string) bool {
	if m.Prefix != "" && strings.HasPrefix(value, m.Prefix) {
		return true
	}
	return m.Contains != "" && strings.Contains(value, m.Contains)
}
