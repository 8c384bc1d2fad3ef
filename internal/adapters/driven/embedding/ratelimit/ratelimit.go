// Package ratelimit decorates an embedding service with client-side
// request rate limiting, protecting upstream APIs from bursty indexing.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/futureyou-labs/careerindex/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultRequestsPerSecond is the default sustained request rate.
const DefaultRequestsPerSecond = 5

// DefaultBurst is the default burst allowance.
const DefaultBurst = 10

// EmbeddingService wraps another embedding service and paces requests
// through a token bucket. Each Embed or EmbedBatch call consumes one
// token; waiting respects context cancellation and deadlines.
type EmbeddingService struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// New creates a rate-limited wrapper around inner.
// Non-positive rps or burst fall back to the defaults.
func New(inner driven.EmbeddingService, rps float64, burst int) *EmbeddingService {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &EmbeddingService{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return s.inner.Embed(ctx, text)
}

// EmbedBatch generates embeddings for multiple texts.
// A batch counts as a single upstream request.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return s.inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the embedding vector size of the wrapped service.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the model name of the wrapped service.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}

// Close releases the wrapped service's resources.
func (s *EmbeddingService) Close() error {
	return s.inner.Close()
}
