package domain

import (
	"fmt"
	"time"
)

// SourceType categorises an uploaded document.
// The set of valid values is closed; anything else is rejected at write time.
type SourceType string

// Valid source types.
const (
	// SourceTypeResume is the candidate's own resume.
	SourceTypeResume SourceType = "resume"

	// SourceTypeCompanyPDF is a job posting or company document.
	SourceTypeCompanyPDF SourceType = "company_pdf"

	// SourceTypeProjectPDF is a project write-up.
	SourceTypeProjectPDF SourceType = "project_pdf"
)

// AllSourceTypes lists every valid source type in display order.
var AllSourceTypes = []SourceType{
	SourceTypeResume,
	SourceTypeCompanyPDF,
	SourceTypeProjectPDF,
}

// Valid reports whether the source type is a known value.
func (s SourceType) Valid() bool {
	switch s {
	case SourceTypeResume, SourceTypeCompanyPDF, SourceTypeProjectPDF:
		return true
	default:
		return false
	}
}

// ParseSourceType converts a string into a SourceType.
// Returns ErrInvalidFilter for unknown values.
func ParseSourceType(s string) (SourceType, error) {
	st := SourceType(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown source type %q", ErrInvalidFilter, s)
	}
	return st, nil
}

// Document represents one uploaded source file.
// A document becomes visible only after its chunks are fully persisted,
// and disappears together with them on delete.
type Document struct {
	// ID is the opaque unique identifier, assigned at creation, never reused.
	ID string

	// Filename is the original upload name, display-only.
	Filename string

	// SourceType is fixed at creation.
	SourceType SourceType

	// Company is only meaningful for company documents.
	Company string

	// UploadedAt is the creation timestamp.
	UploadedAt time.Time

	// ChunkCount equals the number of chunk records persisted for this document.
	ChunkCount int
}

// Chunk is one retrievable unit of text belonging to exactly one document.
// Its metadata fields mirror the parent document; they are the exact-match
// filterable attributes used by retrieval.
type Chunk struct {
	// ID is unique within the store, derived from (DocumentID, Index).
	ID string

	// DocumentID links to the parent document.
	DocumentID string

	// Index is the zero-based position within the document.
	Index int

	// Content is the text span this chunk covers.
	Content string

	// Embedding is the vector representation, immutable once written.
	// Dimensionality is uniform across the whole store.
	Embedding []float32

	// SourceType mirrors the parent document's source type.
	SourceType SourceType

	// Company mirrors the parent document's company, if any.
	Company string

	// Filename mirrors the parent document's filename.
	Filename string

	// UploadedAt mirrors the parent document's upload time.
	UploadedAt time.Time
}

// ChunkID derives the stable chunk identifier from document id and position.
func ChunkID(docID string, idx int) string {
	return fmt.Sprintf("%s_%d", docID, idx)
}

// Validate checks the chunk against the closed metadata schema.
func (c Chunk) Validate() error {
	if c.DocumentID == "" {
		return fmt.Errorf("%w: chunk is missing a document id", ErrInvalidFilter)
	}
	if !c.SourceType.Valid() {
		return fmt.Errorf("%w: unknown source type %q", ErrInvalidFilter, string(c.SourceType))
	}
	if c.Index < 0 {
		return fmt.Errorf("%w: negative chunk index %d", ErrInvalidFilter, c.Index)
	}
	return nil
}
