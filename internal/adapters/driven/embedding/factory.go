// Package embedding provides factory functions for creating embedding
// service adapters from configuration.
package embedding

import (
	"fmt"
	"time"

	"github.com/futureyou-labs/careerindex/internal/adapters/driven/embedding/ollama"
	"github.com/futureyou-labs/careerindex/internal/adapters/driven/embedding/openai"
	"github.com/futureyou-labs/careerindex/internal/adapters/driven/embedding/ratelimit"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driven"
)

// Provider names accepted in configuration.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Settings describes which embedding provider to create and how.
type Settings struct {
	// Provider selects the adapter: "openai" or "ollama".
	Provider string

	// Model is the embedding model name (provider defaults apply).
	Model string

	// BaseURL overrides the provider's API base URL.
	BaseURL string

	// APIKey authenticates against hosted providers.
	APIKey string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Dimensions overrides the model's default vector size.
	Dimensions int

	// RequestsPerSecond enables client-side rate limiting when positive.
	RequestsPerSecond float64

	// Burst is the rate limiter burst allowance.
	Burst int
}

// New creates an embedding service from settings. When RequestsPerSecond
// is positive the service is wrapped in a rate-limiting decorator.
func New(settings Settings) (driven.EmbeddingService, error) {
	var svc driven.EmbeddingService

	switch settings.Provider {
	case ProviderOpenAI:
		s, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Timeout:    settings.Timeout,
			Dimensions: settings.Dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("create openai embedding service: %w", err)
		}
		svc = s

	case ProviderOllama, "":
		svc = ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Timeout:    settings.Timeout,
			Dimensions: settings.Dimensions,
		})

	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", settings.Provider)
	}

	if settings.RequestsPerSecond > 0 {
		svc = ratelimit.New(svc, settings.RequestsPerSecond, settings.Burst)
	}

	return svc, nil
}
