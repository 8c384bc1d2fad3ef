package driven

import (
	"context"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
)

// DocumentRegistry is the durable catalog of document-level metadata.
// It is maintained strictly after the vector store on writes: Register is
// called only once chunk insertion succeeded, Remove only once chunk
// deletion succeeded, so a registered document always has matching chunks.
type DocumentRegistry interface {
	// Register records a document. The document id must be unused.
	Register(ctx context.Context, doc domain.Document) error

	// Get returns the document's metadata, or domain.ErrDocumentNotFound.
	Get(ctx context.Context, docID string) (*domain.Document, error)

	// List returns all documents partitioned by source type.
	// Ordering within a group is insertion order.
	List(ctx context.Context) (map[domain.SourceType][]domain.Document, error)

	// Remove deletes the catalog entry, or returns
	// domain.ErrDocumentNotFound for an unknown id.
	Remove(ctx context.Context, docID string) error

	// Close releases resources.
	Close() error
}
