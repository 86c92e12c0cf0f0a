package attached

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reclaim/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

type failingStore struct {
	driven.ContentStore
}

func (failingStore) GetAttachedMedia(context.Context, int64) ([]domain.MediaRecord, error) {
	return nil, errors.New("connection reset")
}

func TestExtractor_Extract(t *testing.T) {
	store := memory.NewContentStore("https://example.com/wp-content/uploads")
	ctx := context.Background()
	require.NoError(t, store.SaveRecord(ctx, &domain.ContentRecord{ID: 10}))
	require.NoError(t, store.SaveMedia(ctx, &domain.MediaRecord{ID: 55, ParentID: 10, File: "a.jpg"}))
	require.NoError(t, store.SaveMedia(ctx, &domain.MediaRecord{ID: 56, ParentID: 10, File: "b.jpg"}))
	require.NoError(t, store.SaveMedia(ctx, &domain.MediaRecord{ID: 57, ParentID: 11, File: "c.jpg"}))

	e := New(store)
	record := &domain.ContentRecord{ID: 10}
	assert.Equal(t, domain.EncodingStandard, e.Encoding())
	assert.True(t, e.Detect(record))

	set, err := e.Extract(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, []int64{55, 56}, set.MediaIDs())
}

func TestExtractor_Extract_StoreFailure(t *testing.T) {
	e := New(failingStore{})

	set, err := e.Extract(context.Background(), &domain.ContentRecord{ID: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreQuery)
	assert.Equal(t, 0, set.Len())
}
