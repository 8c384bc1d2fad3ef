package domain

// RetrievedChunk is one hit of a dual retrieval, carrying enough
// provenance for the downstream generator to attribute claims.
type RetrievedChunk struct {
	// Rank is the 1-based position within its retrieval group.
	Rank int

	// Content is the chunk text.
	Content string

	// SourceType identifies which population the chunk came from.
	SourceType SourceType

	// Company is the owning document's company, if any.
	Company string

	// Filename is the owning document's original name.
	Filename string

	// Relevance is the cosine relevance (1 - distance) against the query.
	Relevance float64
}

// RetrievedContext is the ordered output of a dual retrieval:
// all resume hits in ranked order, then all company hits in ranked order.
// There is no cross-group re-ranking and no deduplication.
type RetrievedContext struct {
	// Resume holds hits from resume documents.
	Resume []RetrievedChunk

	// Company holds hits from company documents.
	Company []RetrievedChunk
}

// Ordered returns the fixed-order concatenation: resume group first,
// company group second.
func (c *RetrievedContext) Ordered() []RetrievedChunk {
	out := make([]RetrievedChunk, 0, len(c.Resume)+len(c.Company))
	out = append(out, c.Resume...)
	out = append(out, c.Company...)
	return out
}

// Empty reports whether both groups yielded zero hits.
func (c *RetrievedContext) Empty() bool {
	return len(c.Resume) == 0 && len(c.Company) == 0
}
