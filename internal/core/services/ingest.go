package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driven"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driving"
	"github.com/corpora-labs/corpora-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService parses, chunks, embeds, and persists documents.
// The document row and all chunk rows commit as one atomic unit; a failed
// ingestion leaves nothing visible.
type IngestService struct {
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
	parsers  []driven.Parser
}

// NewIngestService creates a new ingest service. Parsers are consulted in
// order; the first one supporting a path handles it.
func NewIngestService(
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
	parsers ...driven.Parser,
) *IngestService {
	return &IngestService{
		docStore: docStore,
		embedder: embedder,
		parsers:  parsers,
	}
}

// Ingest parses the file at path and stores the result.
// documentID is optional; when empty, a random UUID is allocated. The UUID
// keeps concurrently generated identifiers collision-free; the store's
// primary key rejects any caller-supplied duplicate.
func (s *IngestService) Ingest(ctx context.Context, path, documentID string) (string, error) {
	logger.Section("Ingestion")
	logger.Debug("Path: %s", path)

	parser := s.parserFor(path)
	if parser == nil {
		return "", &domain.IngestError{
			Stage:      domain.StageParse,
			DocumentID: documentID,
			Err:        fmt.Errorf("%s: %w", path, domain.ErrParserUnavailable),
		}
	}

	doc, err := parser.Parse(ctx, path)
	if err != nil {
		return "", &domain.IngestError{Stage: domain.StageParse, DocumentID: documentID, Err: err}
	}
	logger.Debug("Parsed %q: %d sections", doc.Title, len(doc.Sections))

	return s.IngestProcessed(ctx, doc, documentID)
}

// IngestProcessed stores an already-processed document with its chunks.
func (s *IngestService) IngestProcessed(
	ctx context.Context, doc *domain.ProcessedDocument, documentID string,
) (string, error) {
	if doc == nil {
		return "", &domain.IngestError{
			Stage:      domain.StageParse,
			DocumentID: documentID,
			Err:        domain.ErrInvalidInput,
		}
	}
	if s.docStore == nil {
		return "", &domain.IngestError{
			Stage:      domain.StagePersist,
			DocumentID: documentID,
			Err:        fmt.Errorf("document store unavailable"),
		}
	}

	if documentID == "" {
		documentID = uuid.New().String()
		logger.Debug("Generated document ID: %s", documentID)
	}

	chunks, err := BuildChunks(ctx, doc, s.embedder)
	if err != nil {
		return "", &domain.IngestError{Stage: domain.StageEmbed, DocumentID: documentID, Err: err}
	}

	record := &domain.SourceDocument{
		ID:                   documentID,
		Title:                doc.Title,
		SourceType:           doc.DocumentType,
		OriginalContent:      doc.RawContent,
		Metadata:             doc.Metadata,
		DocumentStructure:    doc.Structure,
		ProcessingMetadata:   doc.ProcessingMetadata,
		ExtractionConfidence: doc.Confidence,
	}

	if err := s.docStore.SaveDocumentWithChunks(ctx, record, chunks); err != nil {
		return "", &domain.IngestError{Stage: domain.StagePersist, DocumentID: documentID, Err: err}
	}

	logger.Info("Ingested %s: %d chunks", documentID, len(chunks))
	return documentID, nil
}

// parserFor returns the first parser supporting path, or nil.
func (s *IngestService) parserFor(path string) driven.Parser {
	for _, p := range s.parsers {
		if p != nil && p.Supports(path) {
			return p
		}
	}
	return nil
}
