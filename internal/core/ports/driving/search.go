package driving

import (
	"context"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
)

// SearchService provides similarity search over ingested chunks.
type SearchService interface {
	// Search embeds the query and returns the most similar chunks passing
	// the confidence and content-type filters in opts.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
