package domain

// EmbeddingProvider identifies an embedding backend.
type EmbeddingProvider string

// Supported embedding providers.
const (
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"
	EmbeddingProviderOllama EmbeddingProvider = "ollama"
)

// String returns the provider name.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// IsValid reports whether the provider is supported.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case EmbeddingProviderOpenAI, EmbeddingProviderOllama:
		return true
	default:
		return false
	}
}

// ChunkingSettings configures the word-window chunker.
type ChunkingSettings struct {
	// Size is the window length in words.
	Size int

	// Overlap is the number of words shared between consecutive windows.
	Overlap int
}

// EmbeddingSettings configures the embedding backend.
type EmbeddingSettings struct {
	Provider EmbeddingProvider
	Model    string
	BaseURL  string
	APIKey   string

	// TimeoutSeconds bounds one embedding call during indexing.
	// Zero means no timeout.
	TimeoutSeconds int

	// RequestsPerSecond throttles outbound embedding calls.
	// Zero disables throttling.
	RequestsPerSecond float64
}

// RetrievalSettings holds the default depths for dual retrieval.
type RetrievalSettings struct {
	ResumeK  int
	CompanyK int
}

// AppSettings is the full application configuration.
type AppSettings struct {
	// DataDir is where the index database lives. Empty means the
	// adapter's default location.
	DataDir string

	Chunking  ChunkingSettings
	Embedding EmbeddingSettings
	Retrieval RetrievalSettings
}

// DefaultAppSettings returns the configuration used when nothing is set.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Chunking: ChunkingSettings{
			Size:    500,
			Overlap: 50,
		},
		Embedding: EmbeddingSettings{
			Provider:       EmbeddingProviderOllama,
			Model:          "nomic-embed-text",
			TimeoutSeconds: 60,
		},
		Retrieval: RetrievalSettings{
			ResumeK:  5,
			CompanyK: 5,
		},
	}
}
