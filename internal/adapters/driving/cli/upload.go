package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driving"
)

var (
	uploadType    string
	uploadCompany string
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file.pdf]",
	Short: "Index a PDF document",
	Long: `Extracts text from a PDF, chunks it, embeds the chunks and persists
them. The operation is all-or-nothing: on failure nothing is indexed.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadType, "type", "t", "resume",
		"source type: resume, company_pdf or project_pdf")
	uploadCmd.Flags().StringVarP(&uploadCompany, "company", "c", "",
		"company name for company documents")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	sourceType, err := domain.ParseSourceType(uploadType)
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := documentService.Upload(context.Background(), driving.UploadRequest{
		Filename:   filepath.Base(path),
		Data:       data,
		SourceType: sourceType,
		Company:    uploadCompany,
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Indexed %s\n", result.Filename)
	cmd.Printf("  ID:     %s\n", result.DocID)
	cmd.Printf("  Type:   %s\n", result.SourceType)
	cmd.Printf("  Chunks: %d\n", result.ChunkCount)
	return nil
}
