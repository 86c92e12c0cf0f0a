package domain

import "strconv"

// Candidate is one media reference discovered by an extractor.
// At least one field is populated.
type Candidate struct {
	// MediaID is a numeric media identifier found in the payload.
	MediaID int64

	// URL is a raw media URL that still needs resolving.
	URL string

	// CorrelationTag is an opaque builder tag that still needs resolving.
	CorrelationTag string
}

// IsEmpty reports whether no field is populated.
func (c Candidate) IsEmpty() bool {
	return c.MediaID <= 0 && c.URL == "" && c.CorrelationTag == ""
}

// Key returns a stable identity used for deduplication.
func (c Candidate) Key() string {
	switch {
	case c.MediaID > 0:
		return "id:" + strconv.FormatInt(c.MediaID, 10)
	case c.URL != "":
		return "url:" + c.URL
	default:
		return "tag:" + c.CorrelationTag
	}
}

// CandidateSet is an insertion-ordered, deduplicated set of candidates.
type CandidateSet struct {
	seen  map[string]struct{}
	items []Candidate
}

// NewCandidateSet creates an empty candidate set.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{seen: make(map[string]struct{})}
}

// Add inserts a candidate. Empty or duplicate candidates are ignored.
// Returns true if the candidate was added.
func (s *CandidateSet) Add(c Candidate) bool {
	if c.IsEmpty() {
		return false
	}
	key := c.Key()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, c)
	return true
}

// AddMediaID inserts a numeric media identifier.
func (s *CandidateSet) AddMediaID(id int64) bool {
	return s.Add(Candidate{MediaID: id})
}

// AddURL inserts a raw media URL.
func (s *CandidateSet) AddURL(url string) bool {
	return s.Add(Candidate{URL: url})
}

// AddTag inserts a correlation tag.
func (s *CandidateSet) AddTag(tag string) bool {
	return s.Add(Candidate{CorrelationTag: tag})
}

// Items returns the candidates in insertion order.
func (s *CandidateSet) Items() []Candidate {
	if s == nil {
		return nil
	}
	out := make([]Candidate, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of candidates.
func (s *CandidateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// MediaIDs returns the numeric candidates in insertion order.
func (s *CandidateSet) MediaIDs() []int64 {
	var ids []int64
	for _, c := range s.Items() {
		if c.MediaID > 0 {
			ids = append(ids, c.MediaID)
		}
	}
	return ids
}
