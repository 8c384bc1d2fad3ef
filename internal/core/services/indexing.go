package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/futureyou-labs/careerindex/internal/chunker"
	"github.com/futureyou-labs/careerindex/internal/core/domain"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driven"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driving"
	"github.com/futureyou-labs/careerindex/internal/logger"
)

// Ensure IndexingService implements the interface.
var _ driving.DocumentService = (*IndexingService)(nil)

// IndexingService runs the upload pipeline and manages the document
// lifecycle. One upload moves through extraction, chunking, embedding
// and persistence with all-or-nothing semantics: a failure at any stage
// leaves no partial state behind.
type IndexingService struct {
	extractor    driven.TextExtractor
	embedder     driven.EmbeddingService
	vectors      driven.VectorStore
	registry     driven.DocumentRegistry
	chunker      *chunker.Chunker
	embedTimeout time.Duration
	locks        *keyedLocks
}

// IndexingOption configures an IndexingService.
type IndexingOption func(*IndexingService)

// WithEmbedTimeout bounds each embedding call during indexing.
// On expiry the upload fails as an embedding service error.
func WithEmbedTimeout(d time.Duration) IndexingOption {
	return func(s *IndexingService) {
		s.embedTimeout = d
	}
}

// NewIndexingService creates a new indexing service.
func NewIndexingService(
	extractor driven.TextExtractor,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	registry driven.DocumentRegistry,
	ch *chunker.Chunker,
	opts ...IndexingOption,
) *IndexingService {
	s := &IndexingService{
		extractor: extractor,
		embedder:  embedder,
		vectors:   vectors,
		registry:  registry,
		chunker:   ch,
		locks:     newKeyedLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload runs the full indexing pipeline for one file.
func (s *IndexingService) Upload(ctx context.Context, req driving.UploadRequest) (*driving.UploadResult, error) {
	if err := validateUpload(req); err != nil {
		return nil, err
	}

	docID := uuid.NewString()
	uploadedAt := time.Now().UTC()

	s.locks.lock(docID)
	defer s.locks.unlock(docID)

	logger.Section("Indexing Pipeline")
	logger.Debug("Document %s: %s (%s)", docID, req.Filename, req.SourceType)

	// Extracting
	text, err := s.extractor.Extract(ctx, req.Data)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", req.Filename, err)
	}

	// Chunking
	pieces := s.chunker.Chunk(text)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("%w: %s produced no chunks", domain.ErrEmptyDocument, req.Filename)
	}
	logger.Debug("Chunked into %d pieces (size=%d, overlap=%d)",
		len(pieces), s.chunker.Size(), s.chunker.Overlap())

	// Embedding
	vectors, err := s.embed(ctx, pieces)
	if err != nil {
		return nil, err
	}

	// Persisting
	chunks := make([]domain.Chunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = domain.Chunk{
			ID:         domain.ChunkID(docID, i),
			DocumentID: docID,
			Index:      i,
			Content:    content,
			Embedding:  vectors[i],
			SourceType: req.SourceType,
			Company:    req.Company,
			Filename:   req.Filename,
			UploadedAt: uploadedAt,
		}
	}
	if err := s.vectors.Insert(ctx, docID, chunks); err != nil {
		return nil, fmt.Errorf("persisting %s: %w", req.Filename, err)
	}

	// Registration comes last; on failure the store insert is rolled
	// back so no chunks remain without a catalog entry.
	doc := domain.Document{
		ID:         docID,
		Filename:   req.Filename,
		SourceType: req.SourceType,
		Company:    req.Company,
		UploadedAt: uploadedAt,
		ChunkCount: len(chunks),
	}
	if err := s.registry.Register(ctx, doc); err != nil {
		if _, delErr := s.vectors.Delete(ctx, docID); delErr != nil {
			logger.Warn("Rollback of document %s failed: %v", docID, delErr)
		}
		return nil, fmt.Errorf("registering %s: %w", req.Filename, err)
	}

	logger.Info("Indexed %s as %s (%d chunks)", req.Filename, docID, len(chunks))
	return &driving.UploadResult{
		DocID:      docID,
		Filename:   req.Filename,
		SourceType: req.SourceType,
		ChunkCount: len(chunks),
	}, nil
}

// Get retrieves a document's catalog entry by id.
func (s *IndexingService) Get(ctx context.Context, docID string) (*domain.Document, error) {
	return s.registry.Get(ctx, docID)
}

// List returns all documents grouped by source type.
func (s *IndexingService) List(ctx context.Context) (map[domain.SourceType][]domain.Document, error) {
	return s.registry.List(ctx)
}

// Delete removes a document and all of its chunks.
func (s *IndexingService) Delete(ctx context.Context, docID string) error {
	s.locks.lock(docID)
	defer s.locks.unlock(docID)

	// The registry is authoritative for existence.
	if _, err := s.registry.Get(ctx, docID); err != nil {
		return err
	}

	removed, err := s.vectors.Delete(ctx, docID)
	if err != nil {
		return fmt.Errorf("deleting chunks of %s: %w", docID, err)
	}
	if err := s.registry.Remove(ctx, docID); err != nil {
		return fmt.Errorf("removing catalog entry of %s: %w", docID, err)
	}

	logger.Info("Deleted document %s (%d chunks)", docID, removed)
	return nil
}

// embed runs the batched embedding call under the configured timeout.
// Any failure, timeout included, surfaces as domain.ErrEmbeddingService.
func (s *IndexingService) embed(ctx context.Context, pieces []string) ([][]float32, error) {
	embedCtx := ctx
	if s.embedTimeout > 0 {
		var cancel context.CancelFunc
		embedCtx, cancel = context.WithTimeout(ctx, s.embedTimeout)
		defer cancel()
	}

	vectors, err := s.embedder.EmbedBatch(embedCtx, pieces)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingService, err)
	}
	if len(vectors) != len(pieces) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingService, len(vectors), len(pieces))
	}
	return vectors, nil
}

// validateUpload checks the request before any work happens.
func validateUpload(req driving.UploadRequest) error {
	if strings.TrimSpace(req.Filename) == "" {
		return fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(req.Filename), ".pdf") {
		return fmt.Errorf("%w: only PDF files are supported, got %q",
			domain.ErrInvalidInput, req.Filename)
	}
	if len(req.Data) == 0 {
		return fmt.Errorf("%w: file %s is empty", domain.ErrInvalidInput, req.Filename)
	}
	if !req.SourceType.Valid() {
		return fmt.Errorf("%w: unknown source type %q",
			domain.ErrInvalidFilter, string(req.SourceType))
	}
	return nil
}
