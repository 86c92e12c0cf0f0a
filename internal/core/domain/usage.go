package domain

// Usage lists the records referencing a medium, grouped by reference kind.
// Usage is computed on demand and never persisted.
type Usage struct {
	// Content lists records whose body (or builder body) contains a URL form of the medium.
	Content []int64

	// Thumbnail lists records designating the medium as thumbnail.
	Thumbnail []int64

	// Builder lists records whose builder payload correlates to the medium.
	Builder []int64
}

// Merge returns the union of u and o, preserving first-seen order per kind.
func (u Usage) Merge(o Usage) Usage {
	return Usage{
		Content:   unionIDs(u.Content, o.Content),
		Thumbnail: unionIDs(u.Thumbnail, o.Thumbnail),
		Builder:   unionIDs(u.Builder, o.Builder),
	}
}

// Others returns every referring record except excluding, deduplicated,
// in the order content, thumbnail, builder.
func (u Usage) Others(excluding int64) []int64 {
	all := unionIDs(unionIDs(u.Content, u.Thumbnail), u.Builder)
	out := all[:0:0]
	for _, id := range all {
		if id != excluding {
			out = append(out, id)
		}
	}
	return out
}

// Without returns a copy of u with excluding removed from every kind.
func (u Usage) Without(excluding int64) Usage {
	return Usage{
		Content:   withoutID(u.Content, excluding),
		Thumbnail: withoutID(u.Thumbnail, excluding),
		Builder:   withoutID(u.Builder, excluding),
	}
}

// IsEmpty reports whether no record references the medium.
func (u Usage) IsEmpty() bool {
	return len(u.Content) == 0 && len(u.Thumbnail) == 0 && len(u.Builder) == 0
}

// References expands the usage into reference triples for mediaID.
func (u Usage) References(mediaID int64) []Reference {
	refs := make([]Reference, 0, len(u.Content)+len(u.Thumbnail)+len(u.Builder))
	for _, id := range u.Content {
		refs = append(refs, Reference{MediaID: mediaID, RecordID: id, Kind: ReferenceInline})
	}
	for _, id := range u.Thumbnail {
		refs = append(refs, Reference{MediaID: mediaID, RecordID: id, Kind: ReferenceThumbnail})
	}
	for _, id := range u.Builder {
		refs = append(refs, Reference{MediaID: mediaID, RecordID: id, Kind: ReferenceBuilder})
	}
	return refs
}

func unionIDs(a, b []int64) []int64 {
	seen := make(map[int64]struct{}, len(a)+len(b))
	var out []int64
	for _, ids := range [][]int64{a, b} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func withoutID(ids []int64, excluding int64) []int64 {
	var out []int64
	for _, id := range ids {
		if id != excluding {
			out = append(out, id)
		}
	}
	return out
}
