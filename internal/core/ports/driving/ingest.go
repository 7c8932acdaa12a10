package driving

import (
	"context"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
)

// IngestService ingests documents into the store.
type IngestService interface {
	// Ingest parses the file at path and stores the resulting document with
	// its chunks atomically. documentID is optional; when empty, a unique
	// identifier is generated. Returns the effective document ID.
	Ingest(ctx context.Context, path, documentID string) (string, error)

	// IngestProcessed stores an already-processed document with its chunks
	// atomically, bypassing the parsing stage.
	IngestProcessed(ctx context.Context, doc *domain.ProcessedDocument, documentID string) (string, error)
}
