package mediapath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const base = "https://example.com/wp-content/uploads"

func TestURL(t *testing.T) {
	assert.Equal(t, base+"/2024/05/a.jpg", URL(base+"/", "/2024/05/a.jpg"))
}

func TestVariantFile(t *testing.T) {
	assert.Equal(t, "2024/05/a-150x150.jpg", VariantFile("2024/05/a.jpg", "a-150x150.jpg"))
	assert.Equal(t, "a-150x150.jpg", VariantFile("a.jpg", "a-150x150.jpg"))
}

func TestRelative(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"canonical", base + "/2024/05/a.jpg", "2024/05/a.jpg", true},
		{"scheme ignored", "http://example.com/wp-content/uploads/a.jpg", "a.jpg", true},
		{"query dropped", base + "/a.jpg?ver=2#top", "a.jpg", true},
		{"host case", "https://EXAMPLE.com/wp-content/uploads/a.jpg", "a.jpg", true},
		{"other host", "https://cdn.example.com/wp-content/uploads/a.jpg", "", false},
		{"outside base", "https://example.com/images/a.jpg", "", false},
		{"base itself", base + "/", "", false},
		{"relative url", "/wp-content/uploads/a.jpg", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Relative(base, tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
