package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents grouped by source type",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	groups, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	total := 0
	for _, sourceType := range domain.AllSourceTypes {
		docs := groups[sourceType]
		if len(docs) == 0 {
			continue
		}
		total += len(docs)

		cmd.Printf("%s:\n", sourceType)
		for _, doc := range docs {
			cmd.Printf("  %s  %s  (%d chunks", doc.ID, doc.Filename, doc.ChunkCount)
			if doc.Company != "" {
				cmd.Printf(", %s", doc.Company)
			}
			cmd.Println(")")
		}
		cmd.Println()
	}

	if total == 0 {
		cmd.Println("No documents indexed.")
	}
	return nil
}
