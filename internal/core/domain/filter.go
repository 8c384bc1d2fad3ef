package domain

import "fmt"

// Filter restricts a similarity query to chunks whose metadata exactly
// matches every set field. The schema is closed: only the fields below are
// filterable, and unknown source type values are rejected rather than
// silently matching nothing.
type Filter struct {
	// SourceType restricts results to one source type when set.
	SourceType SourceType

	// Company restricts results to one company when set.
	Company string

	// DocumentID restricts results to a single document when set.
	DocumentID string
}

// Validate checks the filter values against the closed schema.
func (f Filter) Validate() error {
	if f.SourceType != "" && !f.SourceType.Valid() {
		return fmt.Errorf("%w: unknown source type %q", ErrInvalidFilter, string(f.SourceType))
	}
	return nil
}

// Matches reports whether the chunk satisfies every set field.
func (f Filter) Matches(c Chunk) bool {
	if f.SourceType != "" && c.SourceType != f.SourceType {
		return false
	}
	if f.Company != "" && c.Company != f.Company {
		return false
	}
	if f.DocumentID != "" && c.DocumentID != f.DocumentID {
		return false
	}
	return true
}
