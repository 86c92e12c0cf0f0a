package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/custodia-labs/reclaim/internal/adapters/driven/storage/mediapath"
	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

// ContentStore implements driven.ContentStore and driven.RecordLifecycle.
type ContentStore struct {
	store *Store
}

var (
	_ driven.ContentStore    = (*ContentStore)(nil)
	_ driven.RecordLifecycle = (*ContentStore)(nil)
)

// SaveRecord stores or updates a content record and replaces its metadata.
func (c *ContentStore) SaveRecord(ctx context.Context, record *domain.ContentRecord) error {
	if record == nil || record.ID <= 0 {
		return domain.ErrInvalidInput
	}
	recordType := record.Type
	if recordType == "" {
		recordType = "post"
	}
	status := record.Status
	if status == "" {
		status = domain.StatusPublish
	}

	return c.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := upsertRecord(ctx, tx, record.ID, recordType, record.Title, record.Content, status, record.ParentID); err != nil {
			return err
		}
		return replaceMeta(ctx, tx, record.ID, record.Metadata)
	})
}

// SaveMedia stores or updates a media record with its variants and correlation tag.
func (c *ContentStore) SaveMedia(ctx context.Context, media *domain.MediaRecord) error {
	if media == nil || media.ID <= 0 || media.File == "" {
		return domain.ErrInvalidInput
	}
	meta := map[string]string{domain.MetaAttachedFile: media.File}
	if media.CorrelationTag != "" {
		meta[domain.MetaBrizyUID] = media.CorrelationTag
	}

	return c.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := upsertRecord(ctx, tx, media.ID, domain.RecordTypeMedia, path.Base(media.File), "", domain.StatusPublish, media.ParentID); err != nil {
			return err
		}
		if err := replaceMeta(ctx, tx, media.ID, meta); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM media_variants WHERE media_id = ?", media.ID); err != nil {
			return fmt.Errorf("clearing variants: %w", err)
		}
		for _, v := range media.Variants {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO media_variants (media_id, name, file, width, height)
				VALUES (?, ?, ?, ?, ?)
			`, media.ID, v.Name, v.File, v.Width, v.Height); err != nil {
				return fmt.Errorf("saving variant %s: %w", v.Name, err)
			}
		}
		return nil
	})
}

// GetRecord retrieves a record with its metadata.
func (c *ContentStore) GetRecord(ctx context.Context, id int64) (*domain.ContentRecord, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT id, type, title, content, status, parent_id
		FROM records WHERE id = ?
	`, id)

	var r domain.ContentRecord
	if err := row.Scan(&r.ID, &r.Type, &r.Title, &r.Content, &r.Status, &r.ParentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	meta, err := c.metadata(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Metadata = meta
	return &r, nil
}

// GetRecordType returns the record type.
func (c *ContentStore) GetRecordType(ctx context.Context, id int64) (string, error) {
	var recordType string
	err := c.store.db.QueryRowContext(ctx, "SELECT type FROM records WHERE id = ?", id).Scan(&recordType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying record type: %w", err)
	}
	return recordType, nil
}

// GetAttachedMedia returns the media records owned by parentID, ordered by ID.
func (c *ContentStore) GetAttachedMedia(ctx context.Context, parentID int64) ([]domain.MediaRecord, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT r.id, r.parent_id, COALESCE(f.meta_value, ''), COALESCE(t.meta_value, '')
		FROM records r
		LEFT JOIN record_meta f ON f.record_id = r.id AND f.meta_key = ?
		LEFT JOIN record_meta t ON t.record_id = r.id AND t.meta_key = ?
		WHERE r.type = ? AND r.parent_id = ?
		ORDER BY r.id
	`, domain.MetaAttachedFile, domain.MetaBrizyUID, domain.RecordTypeMedia, parentID)
	if err != nil {
		return nil, fmt.Errorf("querying attached media: %w", err)
	}
	defer rows.Close()

	var media []domain.MediaRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var m domain.MediaRecord
		if err := rows.Scan(&m.ID, &m.ParentID, &m.File, &m.CorrelationTag); err != nil {
			return nil, fmt.Errorf("scanning media: %w", err)
		}
		m.URL = mediapath.URL(c.store.baseURL, m.File)
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating media: %w", err)
	}

	for i := range media {
		variants, err := c.variants(ctx, media[i].ID)
		if err != nil {
			return nil, err
		}
		media[i].Variants = variants
	}
	return media, nil
}

// GetMetadataField returns a metadata value and whether it exists.
func (c *ContentStore) GetMetadataField(ctx context.Context, recordID int64, key string) (string, bool, error) {
	var value string
	err := c.store.db.QueryRowContext(ctx, `
		SELECT meta_value FROM record_meta WHERE record_id = ? AND meta_key = ?
	`, recordID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying metadata %s: %w", key, err)
	}
	return value, true, nil
}

// SetFieldOwner reassigns a media record to a new owning record.
func (c *ContentStore) SetFieldOwner(ctx context.Context, mediaID, newParentID int64) error {
	if err := c.requireMedia(ctx, mediaID); err != nil {
		return err
	}
	_, err := c.store.db.ExecContext(ctx, `
		UPDATE records SET parent_id = ?, updated_at = ? WHERE id = ?
	`, newParentID, time.Now(), mediaID)
	if err != nil {
		return fmt.Errorf("updating owner of %d: %w", mediaID, err)
	}
	return nil
}

// ResolveURLToMediaID maps a canonical or size-variant URL to a media ID.
func (c *ContentStore) ResolveURLToMediaID(ctx context.Context, url string) (int64, error) {
	rel, ok := mediapath.Relative(c.store.baseURL, url)
	if !ok {
		return 0, domain.ErrNotFound
	}

	var id int64
	err := c.store.db.QueryRowContext(ctx, `
		SELECT m.record_id FROM record_meta m
		JOIN records r ON r.id = m.record_id
		WHERE m.meta_key = ? AND m.meta_value = ? AND r.type = ?
		ORDER BY m.record_id LIMIT 1
	`, domain.MetaAttachedFile, rel, domain.RecordTypeMedia).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("resolving %s: %w", url, err)
	}

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT v.media_id, m.meta_value, v.file FROM media_variants v
		JOIN record_meta m ON m.record_id = v.media_id AND m.meta_key = ?
		WHERE v.file = ?
		ORDER BY v.media_id
	`, domain.MetaAttachedFile, path.Base(rel))
	if err != nil {
		return 0, fmt.Errorf("resolving variant %s: %w", url, err)
	}
	defer rows.Close()

	for rows.Next() {
		var file, variant string
		if err := rows.Scan(&id, &file, &variant); err != nil {
			return 0, fmt.Errorf("scanning variant: %w", err)
		}
		if mediapath.VariantFile(file, variant) == rel {
			return id, nil
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating variants: %w", err)
	}
	return 0, domain.ErrNotFound
}

// GetMediaURL returns the canonical URL of a media record.
func (c *ContentStore) GetMediaURL(ctx context.Context, id int64) (string, error) {
	if err := c.requireMedia(ctx, id); err != nil {
		return "", err
	}
	file, _, err := c.GetMetadataField(ctx, id, domain.MetaAttachedFile)
	if err != nil {
		return "", err
	}
	return mediapath.URL(c.store.baseURL, file), nil
}

// GetMediaVariants returns the stored size variants of a media record.
func (c *ContentStore) GetMediaVariants(ctx context.Context, id int64) ([]domain.MediaVariant, error) {
	if err := c.requireMedia(ctx, id); err != nil {
		return nil, err
	}
	return c.variants(ctx, id)
}

// FindRecordsByThumbnail returns records whose thumbnail field equals mediaID.
func (c *ContentStore) FindRecordsByThumbnail(ctx context.Context, mediaID int64) ([]int64, error) {
	return c.queryIDs(ctx, "thumbnail", `
		SELECT record_id FROM record_meta
		WHERE meta_key = ? AND meta_value = ?
		ORDER BY record_id
	`, domain.MetaThumbnail, strconv.FormatInt(mediaID, 10))
}

// FindRecordsByContentSubstring returns non-media records whose body contains substring.
func (c *ContentStore) FindRecordsByContentSubstring(ctx context.Context, substring string) ([]int64, error) {
	if substring == "" {
		return nil, nil
	}
	return c.queryIDs(ctx, "content", `
		SELECT id FROM records
		WHERE type != ? AND content LIKE ? ESCAPE '\'
		ORDER BY id
	`, domain.RecordTypeMedia, "%"+escapeLike(substring)+"%")
}

// FindRecordsByMetadata returns records whose metadata field key satisfies match.
func (c *ContentStore) FindRecordsByMetadata(ctx context.Context, key string, match domain.MetaMatch) ([]int64, error) {
	if match.IsZero() {
		return nil, nil
	}
	// An unset criterion binds NULL, which never matches.
	var prefix, contains any
	if match.Prefix != "" {
		prefix = escapeLike(match.Prefix) + "%"
	}
	if match.Contains != "" {
		contains = "%" + escapeLike(match.Contains) + "%"
	}
	return c.queryIDs(ctx, "metadata", `
		SELECT record_id FROM record_meta
		WHERE meta_key = ?
		  AND (meta_value LIKE ? ESCAPE '\' OR meta_value LIKE ? ESCAPE '\')
		ORDER BY record_id
	`, key, prefix, contains)
}

// FindMediaByMetadata returns media records whose metadata field key equals value.
func (c *ContentStore) FindMediaByMetadata(ctx context.Context, key, value string) ([]int64, error) {
	return c.queryIDs(ctx, "media metadata", `
		SELECT m.record_id FROM record_meta m
		JOIN records r ON r.id = m.record_id
		WHERE m.meta_key = ? AND m.meta_value = ? AND r.type = ?
		ORDER BY m.record_id
	`, key, value, domain.RecordTypeMedia)
}

// DeleteMedia removes a media record. Permanent deletion also drops its
// variants and any thumbnail fields pointing at it; otherwise it is trashed.
func (c *ContentStore) DeleteMedia(ctx context.Context, id int64, permanent bool) error {
	err := c.requireMedia(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete media %d: %w", id, err)
	}

	if !permanent {
		_, err := c.store.db.ExecContext(ctx, `
			UPDATE records SET status = ?, updated_at = ? WHERE id = ?
		`, domain.StatusTrash, time.Now(), id)
		if err != nil {
			return fmt.Errorf("trashing media %d: %w", id, err)
		}
		return nil
	}

	return c.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting media %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM record_meta WHERE meta_key = ? AND meta_value = ?
		`, domain.MetaThumbnail, strconv.FormatInt(id, 10)); err != nil {
			return fmt.Errorf("clearing thumbnails of %d: %w", id, err)
		}
		return nil
	})
}

// OnBeforeDelete registers fn to run before every record removal.
func (c *ContentStore) OnBeforeDelete(fn driven.BeforeDeleteFunc) {
	c.store.hooksMu.Lock()
	defer c.store.hooksMu.Unlock()
	c.store.hooks = append(c.store.hooks, fn)
}

// DeleteRecord runs the registered hooks, then removes the record.
// Media still owned by the record become unattached.
func (c *ContentStore) DeleteRecord(ctx context.Context, id int64) error {
	if _, err := c.GetRecordType(ctx, id); err != nil {
		return err
	}

	c.store.hooksMu.RLock()
	hooks := append([]driven.BeforeDeleteFunc(nil), c.store.hooks...)
	c.store.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(ctx, id)
	}

	return c.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting record %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE records SET parent_id = 0 WHERE parent_id = ?
		`, id); err != nil {
			return fmt.Errorf("detaching children of %d: %w", id, err)
		}
		return nil
	})
}

func (c *ContentStore) requireMedia(ctx context.Context, id int64) error {
	recordType, err := c.GetRecordType(ctx, id)
	if err != nil {
		return err
	}
	if recordType != domain.RecordTypeMedia {
		return domain.ErrWrongType
	}
	return nil
}

func (c *ContentStore) metadata(ctx context.Context, id int64) (map[string]string, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT meta_key, meta_value FROM record_meta WHERE record_id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metadata: %w", err)
	}
	return meta, nil
}

func (c *ContentStore) variants(ctx context.Context, id int64) ([]domain.MediaVariant, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT name, file, width, height FROM media_variants
		WHERE media_id = ? ORDER BY name
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying variants: %w", err)
	}
	defer rows.Close()

	var variants []domain.MediaVariant //nolint:prealloc // size unknown from query
	for rows.Next() {
		var v domain.MediaVariant
		if err := rows.Scan(&v.Name, &v.File, &v.Width, &v.Height); err != nil {
			return nil, fmt.Errorf("scanning variant: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating variants: %w", err)
	}
	return variants, nil
}

func (c *ContentStore) queryIDs(ctx context.Context, what, query string, args ...any) ([]int64, error) {
	rows, err := c.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records by %s: %w", what, err)
	}
	defer rows.Close()

	var ids []int64 //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning record id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records by %s: %w", what, err)
	}
	return ids, nil
}

func upsertRecord(ctx context.Context, tx *sql.Tx, id int64, recordType, title, content, status string, parentID int64) error {
	now := time.Now()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO records (id, type, title, content, status, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			content = excluded.content,
			status = excluded.status,
			parent_id = excluded.parent_id,
			updated_at = excluded.updated_at
	`, id, recordType, title, content, status, parentID, now, now)
	if err != nil {
		return fmt.Errorf("saving record %d: %w", id, err)
	}
	return nil
}

func replaceMeta(ctx context.Context, tx *sql.Tx, id int64, meta map[string]string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM record_meta WHERE record_id = ?", id); err != nil {
		return fmt.Errorf("clearing metadata of %d: %w", id, err)
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO record_meta (record_id, meta_key, meta_value) VALUES (?, ?, ?)
		`, id, k, v); err != nil {
			return fmt.Errorf("saving metadata %s: %w", k, err)
		}
	}
	return nil
}
