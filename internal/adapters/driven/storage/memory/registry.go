package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driven"
)

// Ensure DocumentRegistry implements the interface.
var _ driven.DocumentRegistry = (*DocumentRegistry)(nil)

// DocumentRegistry is an in-memory implementation of
// driven.DocumentRegistry, preserving insertion order per source type.
type DocumentRegistry struct {
	mu    sync.RWMutex
	byID  map[string]domain.Document
	order []string
}

// NewDocumentRegistry creates a new in-memory registry.
func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{
		byID: make(map[string]domain.Document),
	}
}

// Register records a document.
func (r *DocumentRegistry) Register(_ context.Context, doc domain.Document) error {
	if !doc.SourceType.Valid() {
		return fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidFilter, string(doc.SourceType))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[doc.ID]; exists {
		return fmt.Errorf("registry: document %s already registered", doc.ID)
	}
	r.byID[doc.ID] = doc
	r.order = append(r.order, doc.ID)
	return nil
}

// Get returns the document's metadata.
func (r *DocumentRegistry) Get(_ context.Context, docID string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.byID[docID]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &doc, nil
}

// List returns all documents partitioned by source type in insertion order.
func (r *DocumentRegistry) List(_ context.Context) (map[domain.SourceType][]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[domain.SourceType][]domain.Document, len(domain.AllSourceTypes))
	for _, st := range domain.AllSourceTypes {
		out[st] = []domain.Document{}
	}
	for _, id := range r.order {
		doc := r.byID[id]
		out[doc.SourceType] = append(out[doc.SourceType], doc)
	}
	return out, nil
}

// Remove deletes the catalog entry.
func (r *DocumentRegistry) Remove(_ context.Context, docID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[docID]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.byID, docID)
	for i, id := range r.order {
		if id == docID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close releases resources.
func (r *DocumentRegistry) Close() error {
	return nil
}
