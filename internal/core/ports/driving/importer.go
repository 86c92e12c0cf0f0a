package driving

import (
	"context"
	"io"
)

// Importer loads content records and media from a JSON export.
type Importer interface {
	// Import reads an export document from r and saves every entry.
	Import(ctx context.Context, r io.Reader) (*ImportSummary, error)
}

// ImportSummary counts what an import saved.
type ImportSummary struct {
	Records int
	Media   int
}
