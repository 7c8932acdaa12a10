package driving

import (
	"context"
	"time"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
)

// DocumentService manages ingested documents.
type DocumentService interface {
	// List returns all stored documents.
	List(ctx context.Context) ([]domain.SourceDocument, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.SourceDocument, error)

	// GetDetails returns summary metadata for display.
	GetDetails(ctx context.Context, documentID string) (*DocumentDetails, error)

	// Delete removes a document together with its chunks.
	Delete(ctx context.Context, documentID string) error
}

// DocumentDetails provides a standardised view of document metadata.
type DocumentDetails struct {
	// ID is the unique document identifier.
	ID string

	// Title is the document title.
	Title string

	// SourceType describes the origin format.
	SourceType string

	// ChunkCount is the number of stored chunks.
	ChunkCount int

	// ExtractionConfidence is the document-level parse confidence.
	ExtractionConfidence float64

	// ProcessedAt is when the document was ingested.
	ProcessedAt time.Time
}
