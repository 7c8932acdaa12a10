package domain

// Default search parameters.
const (
	// DefaultK is the default number of results returned by a search.
	DefaultK = 5

	// DefaultMinConfidence is the default extraction-confidence floor.
	DefaultMinConfidence = 0.7
)

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// K is the maximum number of results. Must be at least 1.
	K int

	// MinConfidence is the extraction-confidence floor in [0,1].
	// Chunks scoring below it are excluded.
	MinConfidence float64

	// ContentTypes restricts results to these content-type tags.
	// Nil means no content-type filter; an empty non-nil slice is invalid.
	ContentTypes []string
}

// DefaultSearchOptions returns SearchOptions with the standard defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		K:             DefaultK,
		MinConfidence: DefaultMinConfidence,
	}
}

// SearchResult represents a single retrieval hit.
type SearchResult struct {
	// Chunk is the matched chunk, embedding included.
	Chunk Chunk `json:"chunk"`

	// Similarity is the dot product between the query embedding and the
	// chunk embedding. Higher is more relevant.
	Similarity float64 `json:"similarity"`
}
