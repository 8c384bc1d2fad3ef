package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driven"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driving"
	"github.com/futureyou-labs/careerindex/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// Default retrieval depths, used when a caller passes zero.
const (
	DefaultResumeK  = 5
	DefaultCompanyK = 5
)

// RetrievalService answers dual-source similarity queries: the query is
// embedded once and run as two filtered sub-queries, one against resume
// chunks and one against company chunks.
type RetrievalService struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
	resumeK  int
	companyK int
}

// RetrievalOption configures a RetrievalService.
type RetrievalOption func(*RetrievalService)

// WithRetrievalDepths overrides the default per-group result counts.
func WithRetrievalDepths(resumeK, companyK int) RetrievalOption {
	return func(s *RetrievalService) {
		if resumeK > 0 {
			s.resumeK = resumeK
		}
		if companyK > 0 {
			s.companyK = companyK
		}
	}
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	opts ...RetrievalOption,
) *RetrievalService {
	s := &RetrievalService{
		embedder: embedder,
		vectors:  vectors,
		resumeK:  DefaultResumeK,
		companyK: DefaultCompanyK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DualRetrieve embeds the query once and runs both filtered sub-queries.
// Empty groups are not errors; the two groups are never re-ranked
// against each other and hits are not deduplicated.
func (s *RetrievalService) DualRetrieve(ctx context.Context, query, company string, resumeK, companyK int) (*domain.RetrievedContext, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if resumeK <= 0 {
		resumeK = s.resumeK
	}
	if companyK <= 0 {
		companyK = s.companyK
	}

	logger.Section("Dual Retrieval")
	logger.Debug("Query: %q, company: %q, resume_k=%d, company_k=%d",
		query, company, resumeK, companyK)

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingService, err)
	}

	resumeHits, err := s.vectors.Query(ctx, vector,
		domain.Filter{SourceType: domain.SourceTypeResume}, resumeK)
	if err != nil {
		return nil, fmt.Errorf("querying resume chunks: %w", err)
	}

	companyHits, err := s.vectors.Query(ctx, vector,
		domain.Filter{SourceType: domain.SourceTypeCompanyPDF, Company: company}, companyK)
	if err != nil {
		return nil, fmt.Errorf("querying company chunks: %w", err)
	}

	logger.Debug("Hits: %d resume, %d company", len(resumeHits), len(companyHits))
	return &domain.RetrievedContext{
		Resume:  toRetrievedChunks(resumeHits),
		Company: toRetrievedChunks(companyHits),
	}, nil
}

// GenerateContext runs a dual retrieval for the target role and renders
// the sectioned text handed to the external generator. Both sections are
// omitted when empty; company chunks carry their company as a suffix.
func (s *RetrievalService) GenerateContext(ctx context.Context, targetRole, company string) (string, error) {
	retrieved, err := s.DualRetrieve(ctx, targetRole, company, s.resumeK, s.companyK)
	if err != nil {
		return "", err
	}

	var parts []string
	if len(retrieved.Resume) > 0 {
		parts = append(parts, "=== YOUR BACKGROUND (from resume) ===\n")
		for _, r := range retrieved.Resume {
			parts = append(parts, fmt.Sprintf("• %s\n", r.Content))
		}
	}
	if len(retrieved.Company) > 0 {
		parts = append(parts, "\n=== COMPANY/PROJECT REQUIREMENTS ===\n")
		for _, r := range retrieved.Company {
			suffix := ""
			if r.Company != "" {
				suffix = fmt.Sprintf(" (%s)", r.Company)
			}
			parts = append(parts, fmt.Sprintf("• %s%s\n", r.Content, suffix))
		}
	}
	return strings.Join(parts, "\n"), nil
}

// toRetrievedChunks converts store hits into ranked retrieval results,
// provenance attached.
func toRetrievedChunks(hits []driven.VectorHit) []domain.RetrievedChunk {
	chunks := make([]domain.RetrievedChunk, len(hits))
	for i, hit := range hits {
		chunks[i] = domain.RetrievedChunk{
			Rank:       i + 1,
			Content:    hit.Chunk.Content,
			SourceType: hit.Chunk.SourceType,
			Company:    hit.Chunk.Company,
			Filename:   hit.Chunk.Filename,
			Relevance:  hit.Similarity,
		}
	}
	return chunks
}
