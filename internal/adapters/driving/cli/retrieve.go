package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
)

var (
	retrieveCompany  string
	retrieveResumeK  int
	retrieveCompanyK int
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Run a dual-source similarity query",
	Long: `Embeds the query once and retrieves the best-matching chunks from
resume documents and from company documents, as two separate ranked
groups with relevance scores and provenance.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().StringVarP(&retrieveCompany, "company", "c", "",
		"restrict the company group to one company")
	retrieveCmd.Flags().IntVar(&retrieveResumeK, "resume-k", 0,
		"resume chunks to retrieve (0 = configured default)")
	retrieveCmd.Flags().IntVar(&retrieveCompanyK, "company-k", 0,
		"company chunks to retrieve (0 = configured default)")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	retrieved, err := retrievalService.DualRetrieve(context.Background(),
		args[0], retrieveCompany, retrieveResumeK, retrieveCompanyK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if retrieved.Empty() {
		cmd.Println("No matching chunks.")
		return nil
	}

	printGroup(cmd, "Resume", retrieved.Resume)
	printGroup(cmd, "Company", retrieved.Company)
	return nil
}

func printGroup(cmd *cobra.Command, name string, chunks []domain.RetrievedChunk) {
	if len(chunks) == 0 {
		return
	}
	cmd.Printf("%s:\n", name)
	for _, c := range chunks {
		cmd.Printf("  [%d] %.3f  %s", c.Rank, c.Relevance, c.Filename)
		if c.Company != "" {
			cmd.Printf(" (%s)", c.Company)
		}
		cmd.Println()
		cmd.Printf("      %s\n", snippet(c.Content, 120))
	}
	cmd.Println()
}

// snippet truncates content to at most n runes for display.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
