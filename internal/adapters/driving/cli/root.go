// Package cli implements the command-line driving adapter.
// Commands receive their services through the Set* injectors so the
// wiring in cmd stays the only place that knows about adapters.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/futureyou-labs/careerindex/internal/core/ports/driving"
	"github.com/futureyou-labs/careerindex/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the cmd wiring.
var (
	documentService  driving.DocumentService
	retrievalService driving.RetrievalService
	settingsService  driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "careerindex",
	Short: "Index and retrieve career documents for path planning",
	Long: `careerindex indexes PDF career documents (resumes, job postings,
project write-ups) into a local vector store and answers dual-source
retrieval queries: your background from resume documents, requirements
from company documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
}

// SetDocumentService injects the document service.
func SetDocumentService(svc driving.DocumentService) {
	documentService = svc
}

// SetRetrievalService injects the retrieval service.
func SetRetrievalService(svc driving.RetrievalService) {
	retrievalService = svc
}

// SetSettingsService injects the settings service.
func SetSettingsService(svc driving.SettingsService) {
	settingsService = svc
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
