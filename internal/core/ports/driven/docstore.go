package driven

import (
	"context"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
)

// DocumentStore persists source documents with their chunks and serves
// similarity search. Backed by SQLite.
//
// The store owns its connection for the duration of each call; no
// connection or transaction is held across calls.
type DocumentStore interface {
	// SaveDocumentWithChunks writes the document row and all chunk rows as
	// a single atomic unit: either every row becomes visible or none do.
	// Chunks are persisted with the document's ID regardless of the
	// DocumentID they carry. Returns domain.ErrAlreadyExists if a document
	// with the same ID is already stored.
	SaveDocumentWithChunks(ctx context.Context, doc *domain.SourceDocument, chunks []domain.Chunk) error

	// SearchChunks returns at most opts.K chunks passing the confidence and
	// content-type filters, ranked by descending dot product against the
	// query embedding. Ties break by ascending chunk index, then document ID.
	SearchChunks(ctx context.Context, query []float32, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// ChunkDimensions returns the embedding dimensionality of the stored
	// chunks, or 0 when the store holds no chunks.
	ChunkDimensions(ctx context.Context) (int, error)

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.SourceDocument, error)

	// GetChunks retrieves all chunks for a document, ordered by chunk index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all stored documents.
	ListDocuments(ctx context.Context) ([]domain.SourceDocument, error)

	// DeleteDocument removes a document together with its chunks.
	DeleteDocument(ctx context.Context, id string) error
}
