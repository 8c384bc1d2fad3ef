package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driving"
)

var (
	seedType    string
	seedCompany string
)

var seedCmd = &cobra.Command{
	Use:   "seed [dir]",
	Short: "Index every PDF in a directory",
	Long: `Walks the directory and uploads each PDF through the normal indexing
pipeline. Files that fail are reported and skipped; the rest are indexed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedType, "type", "t", "resume",
		"source type applied to every file")
	seedCmd.Flags().StringVarP(&seedCompany, "company", "c", "",
		"company name applied to every file")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	sourceType, err := domain.ParseSourceType(seedType)
	if err != nil {
		return err
	}

	dir := args[0]
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	ctx := context.Background()
	indexed, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			cmd.Printf("  skipped %s: %v\n", entry.Name(), err)
			failed++
			continue
		}

		result, err := documentService.Upload(ctx, driving.UploadRequest{
			Filename:   entry.Name(),
			Data:       data,
			SourceType: sourceType,
			Company:    seedCompany,
		})
		if err != nil {
			cmd.Printf("  skipped %s: %v\n", entry.Name(), err)
			failed++
			continue
		}
		cmd.Printf("  indexed %s (%d chunks)\n", result.Filename, result.ChunkCount)
		indexed++
	}

	cmd.Printf("Seeded %d documents (%d skipped)\n", indexed, failed)
	return nil
}
