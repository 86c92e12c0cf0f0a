// Package uploadurl recognises media upload URLs in free text and payload values.
package uploadurl

import (
	"regexp"
	"strings"
)

// Matcher finds absolute URLs whose path contains the upload directory segment.
type Matcher struct {
	segment string
	re      *regexp.Regexp
}

// New creates a matcher for the given upload directory segment (e.g. "wp-content/uploads").
func New(dirSegment string) *Matcher {
	seg := strings.Trim(dirSegment, "/")
	pattern := `(?i)https?://[^\s"'<>]+?/` + regexp.QuoteMeta(seg) + `/[^\s"'<>]+`
	return &Matcher{segment: seg, re: regexp.MustCompile(pattern)}
}

// Segment returns the normalised directory segment.
func (m *Matcher) Segment() string {
	return m.segment
}

// FindAll returns the distinct upload URLs in text, in order of appearance.
func (m *Matcher) FindAll(text string) []string {
	matches := m.re.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, u := range matches {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// IsUnder reports whether value contains the upload base URL.
func IsUnder(value, baseURL string) bool {
	return baseURL != "" && strings.Contains(value, baseURL)
}
