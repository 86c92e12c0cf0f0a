package plainurl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/extractors/uploadurl"
)

func TestExtractor_Extract(t *testing.T) {
	e := New(uploadurl.New("wp-content/uploads"))
	record := &domain.ContentRecord{
		ID: 50,
		Content: `[et_pb_image src="https://example.com/wp-content/uploads/2024/02/hero.png"]
[et_pb_image src="https://example.com/wp-content/uploads/2024/02/hero.png"]
<a href="https://example.com/about">About</a>`,
		Metadata: map[string]string{domain.MetaDiviSettings: `{"layout":"full"}`},
	}
	require.True(t, e.Detect(record))

	set, err := e.Extract(context.Background(), record)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "https://example.com/wp-content/uploads/2024/02/hero.png", set.Items()[0].URL)
}

func TestExtractor_Detect(t *testing.T) {
	e := New(uploadurl.New("wp-content/uploads"))
	assert.Equal(t, domain.EncodingDivi, e.Encoding())
	assert.False(t, e.Detect(&domain.ContentRecord{Content: "https://example.com/wp-content/uploads/a.png"}))
}

func TestExtractor_Extract_EmptyBody(t *testing.T) {
	e := New(uploadurl.New("wp-content/uploads"))

	set, err := e.Extract(context.Background(), &domain.ContentRecord{ID: 50})
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}
