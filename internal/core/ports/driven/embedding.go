package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The same service must back ingestion and search; the dimensionality of
// stored chunks and query vectors has to match.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// This is fixed per deployment by the model.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request. Used at wiring time to fail fast before committing to a run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
