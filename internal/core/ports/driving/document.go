package driving

import (
	"context"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
)

// DocumentService manages the document lifecycle: upload-and-index,
// list, and delete. Updates are replace-via-delete-then-reinsert only.
type DocumentService interface {
	// Upload runs the full indexing pipeline for one file with
	// all-or-nothing semantics: on failure nothing is persisted.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// Get retrieves a document's catalog entry by id.
	Get(ctx context.Context, docID string) (*domain.Document, error)

	// List returns all documents grouped by source type,
	// insertion-ordered within each group.
	List(ctx context.Context) (map[domain.SourceType][]domain.Document, error)

	// Delete removes a document and every one of its chunks atomically
	// with respect to readers. Unknown ids return
	// domain.ErrDocumentNotFound rather than being silently ignored.
	Delete(ctx context.Context, docID string) error
}

// UploadRequest describes one file to index.
type UploadRequest struct {
	// Filename is the original upload name.
	Filename string

	// Data is the raw file content.
	Data []byte

	// SourceType categorises the document.
	SourceType domain.SourceType

	// Company optionally names the company for company documents.
	Company string
}

// UploadResult is returned on successful indexing.
type UploadResult struct {
	// DocID is the assigned document identifier.
	DocID string

	// Filename echoes the original upload name.
	Filename string

	// SourceType echoes the requested source type.
	SourceType domain.SourceType

	// ChunkCount is the number of chunks persisted.
	ChunkCount int
}
