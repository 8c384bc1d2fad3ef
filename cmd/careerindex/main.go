// Command careerindex is the CLI entry point. It wires the adapters to
// the core services and hands control to the command tree.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/futureyou-labs/careerindex/internal/adapters/driven/config/file"
	"github.com/futureyou-labs/careerindex/internal/adapters/driven/embedding"
	"github.com/futureyou-labs/careerindex/internal/adapters/driven/extraction/pdf"
	"github.com/futureyou-labs/careerindex/internal/adapters/driven/storage/sqlite"
	"github.com/futureyou-labs/careerindex/internal/adapters/driving/cli"
	"github.com/futureyou-labs/careerindex/internal/chunker"
	"github.com/futureyou-labs/careerindex/internal/core/services"
)

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore(os.Getenv("CAREERINDEX_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// OPENAI_API_KEY fills in only when no key is stored;
	// CAREERINDEX_DATA_DIR overrides the stored data dir.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = key
	}
	if dir := os.Getenv("CAREERINDEX_DATA_DIR"); dir != "" {
		settings.DataDir = dir
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	embedder, err := embedding.New(embedding.Settings{
		Provider:          settings.Embedding.Provider.String(),
		Model:             settings.Embedding.Model,
		BaseURL:           settings.Embedding.BaseURL,
		APIKey:            settings.Embedding.APIKey,
		Timeout:           time.Duration(settings.Embedding.TimeoutSeconds) * time.Second,
		RequestsPerSecond: settings.Embedding.RequestsPerSecond,
	})
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}
	defer embedder.Close()

	ch, err := chunker.New(
		chunker.WithSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)
	if err != nil {
		return fmt.Errorf("creating chunker: %w", err)
	}

	cli.SetDocumentService(services.NewIndexingService(
		pdf.New(),
		embedder,
		store.VectorStore(),
		store.DocumentRegistry(),
		ch,
		services.WithEmbedTimeout(time.Duration(settings.Embedding.TimeoutSeconds)*time.Second),
	))
	cli.SetRetrievalService(services.NewRetrievalService(
		embedder,
		store.VectorStore(),
		services.WithRetrievalDepths(settings.Retrieval.ResumeK, settings.Retrieval.CompanyK),
	))
	cli.SetSettingsService(settingsService)

	return cli.Execute()
}
