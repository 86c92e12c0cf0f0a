// Package shortcode extracts media references from builder shortcodes,
// data attributes and upload URLs in a record's body.
package shortcode

import (
	"context"
	"regexp"
	"strconv"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/extractors/uploadurl"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var (
	// [thrive_image id='123'], [thrive_gallery size="full" id=45], [thrive_box image_id='7']
	shortcodePattern = regexp.MustCompile(`(?i)\[thrive_[^\]]*?id=["']?(\d+)["']?[^\]]*\]`)

	// data-id="123", data-media-id='123'
	dataIDPattern = regexp.MustCompile(`(?i)data-(?:media-)?id=["'](\d+)["']`)
)

// Extractor scans the body with three independent patterns.
type Extractor struct {
	urls *uploadurl.Matcher
}

// New creates an extractor using matcher for upload URLs.
func New(matcher *uploadurl.Matcher) *Extractor {
	return &Extractor{urls: matcher}
}

// Encoding returns domain.EncodingThrive.
func (e *Extractor) Encoding() domain.Encoding {
	return domain.EncodingThrive
}

// Detect returns true if the body contains a builder shortcode or data attribute.
func (e *Extractor) Detect(record *domain.ContentRecord) bool {
	if record == nil || record.Content == "" {
		return false
	}
	return shortcodePattern.MatchString(record.Content) || dataIDPattern.MatchString(record.Content)
}

// Extract returns the union of shortcode IDs, data attribute IDs and upload URLs.
func (e *Extractor) Extract(_ context.Context, record *domain.ContentRecord) (*domain.CandidateSet, error) {
	set := domain.NewCandidateSet()
	if record == nil || record.Content == "" {
		return set, nil
	}

	for _, re := range []*regexp.Regexp{shortcodePattern, dataIDPattern} {
		for _, m := range re.FindAllStringSubmatch(record.Content, -1) {
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil || id <= 0 {
				continue
			}
			set.AddMediaID(id)
		}
	}

	for _, u := range e.urls.FindAll(record.Content) {
		set.AddURL(u)
	}
	return set, nil
}
