package driven

import (
	"context"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
)

// VectorStore persists (vector, text, metadata) triples and answers
// filtered top-k similarity queries. State is durable: completed inserts
// and deletes survive a process restart.
type VectorStore interface {
	// Insert persists all chunks of one document atomically: either every
	// chunk becomes queryable or none does. Chunks with metadata outside
	// the closed schema are rejected with domain.ErrInvalidFilter; a
	// dimensionality mismatch with the existing store content is a
	// domain.ErrVectorStore.
	Insert(ctx context.Context, docID string, chunks []domain.Chunk) error

	// Delete removes every chunk of the document as a unit and returns the
	// number of chunks removed. A query started strictly after a completed
	// delete never observes the deleted chunks.
	Delete(ctx context.Context, docID string) (int, error)

	// Query returns up to topK chunks ranked by descending cosine
	// similarity to the query vector, restricted to chunks matching every
	// set filter field. Ties are broken by insertion order, earlier first.
	Query(ctx context.Context, vector []float32, filter domain.Filter, topK int) ([]VectorHit, error)

	// Close releases resources.
	Close() error
}

// VectorHit is one similarity search result.
type VectorHit struct {
	// Chunk is the matched chunk, embedding included.
	Chunk domain.Chunk

	// Similarity is the cosine similarity against the query vector.
	Similarity float64
}
