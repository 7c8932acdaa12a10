package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestID string

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest a document into the store",
	Long: `Parses the file at path, embeds each extracted section, and stores
the document with its chunks. The whole ingestion commits atomically; a
failure leaves the store unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestID, "id", "", "document ID (default: generated UUID)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	ctx := context.Background()

	documentID, err := ingestService.Ingest(ctx, path, ingestID)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s\n", path)
	cmd.Printf("Document ID: %s\n", documentID)
	return nil
}
