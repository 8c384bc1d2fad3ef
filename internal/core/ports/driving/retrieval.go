package driving

import (
	"context"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
)

// RetrievalService answers dual-source similarity queries: one filtered
// query against resume documents and one against company documents,
// concatenated in fixed group order for the downstream generator.
type RetrievalService interface {
	// DualRetrieve embeds the query once and runs both filtered
	// sub-queries. An empty group is not an error. company restricts the
	// company group when non-empty.
	DualRetrieve(ctx context.Context, query, company string, resumeK, companyK int) (*domain.RetrievedContext, error)

	// GenerateContext runs a dual retrieval for the target role with the
	// configured default depths and renders the sectioned text handed to
	// the external generator.
	GenerateContext(ctx context.Context, targetRole, company string) (string, error)
}
