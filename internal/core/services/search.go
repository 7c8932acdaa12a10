package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driven"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driving"
	"github.com/corpora-labs/corpora-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService embeds queries and retrieves the most similar chunks.
type SearchService struct {
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewSearchService creates a new search service.
func NewSearchService(docStore driven.DocumentStore, embedder driven.EmbeddingService) *SearchService {
	return &SearchService{
		docStore: docStore,
		embedder: embedder,
	}
}

// Search embeds the query and returns at most opts.K chunks passing the
// confidence and content-type filters, ranked by descending similarity.
// An empty result set is success, not an error.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if err := validateSearchOptions(opts); err != nil {
		return nil, err
	}
	if s.docStore == nil {
		return nil, fmt.Errorf("document store unavailable")
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	// Return empty for empty query
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	logger.Debug("K: %d, MinConfidence: %.2f, ContentTypes: %v",
		opts.K, opts.MinConfidence, opts.ContentTypes)

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return nil, fmt.Errorf("generate query embedding: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	// A dimensionality clash means the store was written with a different
	// embedding model; ranking against it would be meaningless.
	storedDims, err := s.docStore.ChunkDimensions(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking stored dimensions: %w", err)
	}
	if storedDims > 0 && storedDims != len(embedding) {
		return nil, fmt.Errorf("query has %d dimensions, store has %d: %w",
			len(embedding), storedDims, domain.ErrDimensionMismatch)
	}

	results, err := s.docStore.SearchChunks(ctx, embedding, opts)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	logger.Info("Final results: %d", len(results))
	return results, nil
}

// validateSearchOptions enforces the search preconditions.
func validateSearchOptions(opts domain.SearchOptions) error {
	if opts.K < 1 {
		return fmt.Errorf("k must be at least 1, got %d: %w", opts.K, domain.ErrInvalidInput)
	}
	if opts.MinConfidence < 0 || opts.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0,1], got %v: %w",
			opts.MinConfidence, domain.ErrInvalidInput)
	}
	if opts.ContentTypes != nil && len(opts.ContentTypes) == 0 {
		return fmt.Errorf("content types must be non-empty when given: %w", domain.ErrInvalidInput)
	}
	for _, ct := range opts.ContentTypes {
		if strings.TrimSpace(ct) == "" {
			return fmt.Errorf("content type must not be blank: %w", domain.ErrInvalidInput)
		}
	}
	return nil
}
