// Package memory provides in-memory implementations of the storage
// ports, used by service tests and throwaway environments. Semantics
// match the SQLite adapter, durability excepted.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driven"
	"github.com/futureyou-labs/careerindex/internal/vectormath"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// storedChunk pairs a chunk with its global insertion sequence,
// which drives deterministic tie-breaking.
type storedChunk struct {
	chunk domain.Chunk
	seq   int64
}

// VectorStore is an in-memory implementation of driven.VectorStore.
type VectorStore struct {
	mu         sync.RWMutex
	byDoc      map[string][]storedChunk
	seq        int64
	dimensions int
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		byDoc: make(map[string][]storedChunk),
	}
}

// Insert persists all chunks of one document atomically.
func (s *VectorStore) Insert(_ context.Context, docID string, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("%w: no chunks to insert", domain.ErrVectorStore)
	}

	// Validate everything before mutating so failure leaves no trace.
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
		if len(chunk.Embedding) == 0 {
			return fmt.Errorf("%w: chunk %s has no embedding", domain.ErrVectorStore, chunk.ID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byDoc[docID]; exists {
		return fmt.Errorf("%w: document %s already indexed", domain.ErrVectorStore, docID)
	}

	dims := s.dimensions
	if dims == 0 {
		dims = len(chunks[0].Embedding)
	}
	for _, chunk := range chunks {
		if len(chunk.Embedding) != dims {
			return fmt.Errorf("%w: embedding dimension %d does not match store dimension %d",
				domain.ErrVectorStore, len(chunk.Embedding), dims)
		}
	}
	s.dimensions = dims

	stored := make([]storedChunk, len(chunks))
	for i, chunk := range chunks {
		s.seq++
		stored[i] = storedChunk{chunk: chunk, seq: s.seq}
	}
	s.byDoc[docID] = stored
	return nil
}

// Delete removes every chunk of the document as a unit.
func (s *VectorStore) Delete(_ context.Context, docID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.byDoc[docID])
	delete(s.byDoc, docID)
	return removed, nil
}

// Query returns up to topK chunks ranked by descending cosine similarity,
// filter-matched, with ties broken by insertion order.
func (s *VectorStore) Query(_ context.Context, vector []float32, filter domain.Filter, topK int) ([]driven.VectorHit, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrVectorStore)
	}
	if topK <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dimensions != 0 && len(vector) != s.dimensions {
		return nil, fmt.Errorf("%w: query dimension %d does not match store dimension %d",
			domain.ErrVectorStore, len(vector), s.dimensions)
	}

	type scored struct {
		hit driven.VectorHit
		seq int64
	}
	var candidates []scored
	for _, stored := range s.byDoc {
		for _, sc := range stored {
			if !filter.Matches(sc.chunk) {
				continue
			}
			candidates = append(candidates, scored{
				hit: driven.VectorHit{
					Chunk:      sc.chunk,
					Similarity: vectormath.Cosine(vector, sc.chunk.Embedding),
				},
				seq: sc.seq,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].hit.Similarity != candidates[j].hit.Similarity {
			return candidates[i].hit.Similarity > candidates[j].hit.Similarity
		}
		return candidates[i].seq < candidates[j].seq
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	hits := make([]driven.VectorHit, len(candidates))
	for i, c := range candidates {
		hits[i] = c.hit
	}
	return hits, nil
}

// Close releases resources.
func (s *VectorStore) Close() error {
	return nil
}
