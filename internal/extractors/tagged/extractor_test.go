package tagged

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/logger"
)

const base = "https://example.com/wp-content/uploads"

func recordWith(data string) *domain.ContentRecord {
	return &domain.ContentRecord{
		ID:       30,
		Metadata: map[string]string{domain.MetaBrizyContent: data},
	}
}

func serialize(s string) string {
	return "s:" + strconv.Itoa(len(s)) + `:"` + s + `";`
}

func TestExtractor_Extract_JSON(t *testing.T) {
	e := New(base)
	record := recordWith(`{"items":[{"value":{"UID":"abc123","bg":"` + base + `/2024/03/bg.jpg"}},{"value":{"media":" <b>def</b>  456 "}}]}`)
	require.True(t, e.Detect(record))

	set, err := e.Extract(context.Background(), record)
	require.NoError(t, err)

	items := set.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "abc123", items[0].CorrelationTag)
	assert.Equal(t, base+"/2024/03/bg.jpg", items[1].URL)
	assert.Equal(t, "def 456", items[2].CorrelationTag)
}

func TestExtractor_Extract_SerializedWrappingJSON(t *testing.T) {
	e := New(base)
	record := recordWith(serialize(`{"uid":"abc123"}`))

	set, err := e.Extract(context.Background(), record)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "abc123", set.Items()[0].CorrelationTag)
}

func TestExtractor_Extract_SerializedArray(t *testing.T) {
	e := New(base)
	record := recordWith(`a:1:{s:3:"uid";s:6:"xyz789";}`)

	set, err := e.Extract(context.Background(), record)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "xyz789", set.Items()[0].CorrelationTag)
}

func TestExtractor_Extract_Malformed(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(nil)

	e := New(base)
	for _, raw := range []string{`{"uid":`, `s:99:"short";`, `"just a string"`, `s:9223372036854775807:"x";`} {
		set, err := e.Extract(context.Background(), recordWith(raw))
		require.NoError(t, err)
		assert.Equal(t, 0, set.Len(), raw)
	}
	assert.Contains(t, buf.String(), "undecodable builder payload")
}

func TestExtractor_Extract_IgnoresForeignURLs(t *testing.T) {
	e := New(base)
	record := recordWith(`{"link":"https://other.org/wp-content/uploads/a.jpg","n":5}`)

	set, err := e.Extract(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "abc123"},
		{"  a \n\t b ", "a b"},
		{"<i>tag</i>", "tag"},
		{"a%20b", "ab"},
		{"open <b", "open"},
		{"bad\xffbyte", "badbyte"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeText(tt.in), tt.in)
	}
}
