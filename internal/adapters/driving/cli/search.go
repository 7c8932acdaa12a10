package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
)

var (
	searchK             int
	searchMinConfidence float64
	searchContentTypes  []string
	searchJSON          bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored chunks semantically",
	Long: `Embeds the query and returns the most similar stored chunks, ranked
by similarity. Chunks below the confidence floor are excluded; results can be
restricted to specific content types.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "limit", "n", domain.DefaultK, "maximum number of results")
	searchCmd.Flags().Float64Var(&searchMinConfidence, "min-confidence", domain.DefaultMinConfidence,
		"minimum extraction confidence [0,1]")
	searchCmd.Flags().StringSliceVar(&searchContentTypes, "content-type", nil,
		"restrict results to content types (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()
	opts := domain.SearchOptions{
		K:             searchK,
		MinConfidence: searchMinConfidence,
	}

	// Config file defaults apply when the flags are untouched.
	if cfg != nil {
		if !cmd.Flags().Changed("limit") {
			opts.K = cfg.Search.K
		}
		if !cmd.Flags().Changed("min-confidence") {
			opts.MinConfidence = cfg.Search.MinConfidence
		}
	}
	if len(searchContentTypes) > 0 {
		opts.ContentTypes = searchContentTypes
	}

	results, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchText(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		chunk := results[i].Chunk
		cmd.Printf("  [%d] %s #%d (%.4f)\n", i+1, chunk.DocumentID, chunk.ChunkIndex, results[i].Similarity)
		cmd.Printf("      Type: %s/%s, confidence %.2f\n", chunk.ContentType, chunk.SectionType, chunk.ConfidenceScore)
		if chunk.PageNumber != nil {
			cmd.Printf("      Page: %d\n", *chunk.PageNumber)
		}
		cmd.Printf("      %s\n", snippet(chunk.Content))
		cmd.Println()
	}

	return nil
}

// snippet truncates content for single-line display.
func snippet(content string) string {
	const max = 160
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}
