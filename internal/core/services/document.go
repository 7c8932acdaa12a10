package services

import (
	"context"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driven"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages ingested documents.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// List returns all stored documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.SourceDocument, error) {
	return s.docStore.ListDocuments(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.SourceDocument, error) {
	if documentID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// GetDetails returns summary metadata for display.
func (s *DocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return nil, err
	}

	return &driving.DocumentDetails{
		ID:                   doc.ID,
		Title:                doc.Title,
		SourceType:           doc.SourceType,
		ChunkCount:           len(chunks),
		ExtractionConfidence: doc.ExtractionConfidence,
		ProcessedAt:          doc.ProcessedAt,
	}, nil
}

// Delete removes a document together with its chunks. Chunks have no
// independent lifecycle; they always go with the parent.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if documentID == "" {
		return domain.ErrInvalidInput
	}
	return s.docStore.DeleteDocument(ctx, documentID)
}
