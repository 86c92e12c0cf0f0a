package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentRecord_Meta(t *testing.T) {
	r := &ContentRecord{Metadata: map[string]string{"a": "1", "empty": ""}}

	v, ok := r.Meta("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = r.Meta("empty")
	assert.False(t, ok)

	_, ok = r.Meta("missing")
	assert.False(t, ok)

	var nilRecord *ContentRecord
	_, ok = nilRecord.Meta("a")
	assert.False(t, ok)
}

func TestContentRecord_ThumbnailID(t *testing.T) {
	assert.Equal(t, int64(55), (&ContentRecord{Metadata: map[string]string{MetaThumbnail: "55"}}).ThumbnailID())
	assert.Equal(t, int64(0), (&ContentRecord{Metadata: map[string]string{MetaThumbnail: "x"}}).ThumbnailID())
	assert.Equal(t, int64(0), (&ContentRecord{}).ThumbnailID())
}

func TestMediaRecord_IsOwnedBy(t *testing.T) {
	m := &MediaRecord{ID: 55, ParentID: 10}

	assert.True(t, m.IsOwnedBy(10))
	assert.False(t, m.IsOwnedBy(11))
	assert.False(t, (&MediaRecord{ID: 56}).IsOwnedBy(0))
}

func TestMetaMatch_Matches(t *testing.T) {
	tests := []struct {
		name  string
		match MetaMatch
		value string
		want  bool
	}{
		{"prefix hit", MetaMatch{Prefix: "abc123"}, "abc123{...}", true},
		{"prefix miss", MetaMatch{Prefix: "abc123"}, "{abc123}", false},
		{"contains hit", MetaMatch{Contains: "/a.jpg"}, `{"u":"https://x/a.jpg"}`, true},
		{"either", MetaMatch{Prefix: "zzz", Contains: "a.jpg"}, "a.jpg", true},
		{"zero matches nothing", MetaMatch{}, "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match.Matches(tt.value))
		})
	}
	assert.True(t, MetaMatch{}.IsZero())
}
