package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/core/ports/driving"
	"github.com/custodia-labs/reclaim/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.Importer = (*ImportService)(nil)

// exportDocument is the JSON layout accepted by Import.
//
//	{
//	  "records": [{"id": 10, "type": "post", "content": "...", "meta": {"_thumbnail_id": "55"}}],
//	  "media":   [{"id": 55, "parent": 10, "file": "2024/05/a.jpg",
//	              "variants": [{"name": "thumbnail", "file": "a-150x150.jpg"}], "tag": "abc123"}]
//	}
type exportDocument struct {
	Records []exportRecord `json:"records"`
	Media   []exportMedia  `json:"media"`
}

type exportRecord struct {
	ID      int64             `json:"id"`
	Type    string            `json:"type"`
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Status  string            `json:"status"`
	Parent  int64             `json:"parent"`
	Meta    map[string]string `json:"meta"`
}

type exportMedia struct {
	ID       int64                 `json:"id"`
	Parent   int64                 `json:"parent"`
	File     string                `json:"file"`
	Variants []domain.MediaVariant `json:"variants"`
	Tag      string                `json:"tag"`
}

// ImportService seeds a content store from a JSON export.
type ImportService struct {
	writer driven.ContentWriter
}

// NewImportService creates an import service writing to writer.
func NewImportService(writer driven.ContentWriter) *ImportService {
	return &ImportService{writer: writer}
}

// Import decodes an export document and saves records before media.
// The first failing entry aborts the import; entries saved before it remain.
func (s *ImportService) Import(ctx context.Context, r io.Reader) (*driving.ImportSummary, error) {
	if s.writer == nil {
		return nil, domain.ErrNotImplemented
	}

	var doc exportDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding export: %v", domain.ErrInvalidInput, err)
	}

	summary := &driving.ImportSummary{}
	for i := range doc.Records {
		rec := doc.Records[i]
		if rec.Type == domain.RecordTypeMedia {
			return summary, fmt.Errorf("%w: record %d: media belong in the media list", domain.ErrInvalidInput, rec.ID)
		}
		err := s.writer.SaveRecord(ctx, &domain.ContentRecord{
			ID:       rec.ID,
			Type:     rec.Type,
			Title:    rec.Title,
			Content:  rec.Content,
			Status:   rec.Status,
			ParentID: rec.Parent,
			Metadata: rec.Meta,
		})
		if err != nil {
			return summary, fmt.Errorf("saving record %d: %w", rec.ID, err)
		}
		summary.Records++
	}

	for i := range doc.Media {
		m := doc.Media[i]
		err := s.writer.SaveMedia(ctx, &domain.MediaRecord{
			ID:             m.ID,
			ParentID:       m.Parent,
			File:           m.File,
			Variants:       m.Variants,
			CorrelationTag: m.Tag,
		})
		if err != nil {
			return summary, fmt.Errorf("saving media %d: %w", m.ID, err)
		}
		summary.Media++
	}

	logger.Info("imported %d records and %d media", summary.Records, summary.Media)
	return summary, nil
}
