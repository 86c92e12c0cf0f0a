// Package tagged extracts correlation tags and upload URLs from a builder
// payload that is either JSON or a serialized scalar wrapping JSON.
package tagged

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
	"github.com/custodia-labs/reclaim/internal/extractors/uploadurl"
	"github.com/custodia-labs/reclaim/internal/logger"
	"github.com/custodia-labs/reclaim/internal/payload"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor walks every leaf of the decoded payload.
// Keys "uid" and "media" (case-insensitive) yield correlation tags;
// any other string leaf under the upload base URL yields a URL.
type Extractor struct {
	metaKey string
	baseURL string
}

// New creates an extractor reading domain.MetaBrizyContent.
// baseURL is the upload base URL used to recognise media URLs.
func New(baseURL string) *Extractor {
	return &Extractor{
		metaKey: domain.MetaBrizyContent,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Encoding returns domain.EncodingBrizy.
func (e *Extractor) Encoding() domain.Encoding {
	return domain.EncodingBrizy
}

// Detect returns true if the payload metadata is populated.
func (e *Extractor) Detect(record *domain.ContentRecord) bool {
	_, ok := record.Meta(e.metaKey)
	return ok
}

// Extract decodes the payload and collects tags and URLs.
func (e *Extractor) Extract(_ context.Context, record *domain.ContentRecord) (*domain.CandidateSet, error) {
	set := domain.NewCandidateSet()

	raw, ok := record.Meta(e.metaKey)
	if !ok {
		return set, nil
	}

	root := decode(raw)
	if !root.IsContainer() {
		logger.WithFields(logger.Fields{
			"record":   record.ID,
			"encoding": e.Encoding(),
		}).Warn("skipping undecodable builder payload")
		return set, nil
	}

	payload.Leaves(root, func(v payload.Visit) {
		key := strings.ToLower(v.Key)
		if key == "uid" || key == "media" {
			text, _ := v.Node.Text()
			if tag := SanitizeText(text); tag != "" {
				set.AddTag(tag)
			}
			return
		}
		if !v.Node.IsString() {
			return
		}
		s, _ := v.Node.Text()
		if uploadurl.IsUnder(s, e.baseURL) {
			set.AddURL(strings.TrimSpace(s))
		}
	})
	return set, nil
}

// decode tries JSON first, then the serialized-scalar encoding, decoding
// JSON again when the serialized value is a string. Returns nil on failure.
func decode(raw string) *payload.Node {
	if root, err := payload.ParseJSON([]byte(raw)); err == nil {
		return root
	}
	if !payload.LooksSerialized(raw) {
		return nil
	}
	inner, err := payload.Unserialize(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	if inner.IsContainer() {
		return inner
	}
	if !inner.IsString() {
		return nil
	}
	text, _ := inner.Text()
	root, err := payload.ParseJSON([]byte(text))
	if err != nil {
		return nil
	}
	return root
}

var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
	octetPattern    = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	incompleteTagRE = regexp.MustCompile(`<[^>]*$`)
)

// SanitizeText reduces a payload value to a single line of plain text:
// invalid UTF-8, HTML tags and percent-encoded octets are removed and
// whitespace is collapsed.
func SanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = incompleteTagRE.ReplaceAllString(s, "")
	s = octetPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
