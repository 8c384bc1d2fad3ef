package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	apiKey := "(unset)"
	if settings.Embedding.APIKey != "" {
		apiKey = "(set)"
	}

	cmd.Printf("Storage:\n")
	cmd.Printf("  data dir:  %s\n", dataDir)
	cmd.Printf("Chunking:\n")
	cmd.Printf("  size:      %d words\n", settings.Chunking.Size)
	cmd.Printf("  overlap:   %d words\n", settings.Chunking.Overlap)
	cmd.Printf("Embedding:\n")
	cmd.Printf("  provider:  %s\n", settings.Embedding.Provider)
	cmd.Printf("  model:     %s\n", settings.Embedding.Model)
	cmd.Printf("  api key:   %s\n", apiKey)
	cmd.Printf("  timeout:   %ds\n", settings.Embedding.TimeoutSeconds)
	if settings.Embedding.RequestsPerSecond > 0 {
		cmd.Printf("  rate:      %.1f req/s\n", settings.Embedding.RequestsPerSecond)
	}
	cmd.Printf("Retrieval:\n")
	cmd.Printf("  resume_k:  %d\n", settings.Retrieval.ResumeK)
	cmd.Printf("  company_k: %d\n", settings.Retrieval.CompanyK)
	return nil
}
