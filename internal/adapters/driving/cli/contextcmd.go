package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var contextCompany string

var contextCmd = &cobra.Command{
	Use:   "context [target-role]",
	Short: "Build the generator context for a target role",
	Long: `Runs a dual retrieval for the target role and prints the sectioned
context text handed to the downstream generator: your background from
resume documents and the requirements from company documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().StringVarP(&contextCompany, "company", "c", "",
		"restrict the company group to one company")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	text, err := retrievalService.GenerateContext(context.Background(), args[0], contextCompany)
	if err != nil {
		return fmt.Errorf("context generation failed: %w", err)
	}

	if text == "" {
		cmd.Println("No indexed content matched.")
		return nil
	}
	cmd.Println(text)
	return nil
}
