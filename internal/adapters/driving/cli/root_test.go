package cli

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driving"
)

// fakeIngestService records calls and returns a fixed ID.
type fakeIngestService struct {
	lastPath string
	lastID   string
	err      error
}

func (f *fakeIngestService) Ingest(_ context.Context, path, documentID string) (string, error) {
	f.lastPath = path
	f.lastID = documentID
	if f.err != nil {
		return "", f.err
	}
	if documentID == "" {
		return "generated-id", nil
	}
	return documentID, nil
}

func (f *fakeIngestService) IngestProcessed(_ context.Context, _ *domain.ProcessedDocument, documentID string) (string, error) {
	return documentID, nil
}

// fakeSearchService returns canned results.
type fakeSearchService struct {
	results  []domain.SearchResult
	lastOpts domain.SearchOptions
	err      error
}

func (f *fakeSearchService) Search(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	f.lastOpts = opts
	return f.results, f.err
}

// fakeDocumentService serves a single fixed document.
type fakeDocumentService struct {
	doc    *domain.SourceDocument
	chunks int
}

func (f *fakeDocumentService) List(_ context.Context) ([]domain.SourceDocument, error) {
	if f.doc == nil {
		return nil, nil
	}
	return []domain.SourceDocument{*f.doc}, nil
}

func (f *fakeDocumentService) Get(_ context.Context, documentID string) (*domain.SourceDocument, error) {
	if f.doc == nil || f.doc.ID != documentID {
		return nil, domain.ErrNotFound
	}
	return f.doc, nil
}

func (f *fakeDocumentService) GetDetails(_ context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := f.Get(context.Background(), documentID)
	if err != nil {
		return nil, err
	}
	return &driving.DocumentDetails{
		ID:                   doc.ID,
		Title:                doc.Title,
		SourceType:           doc.SourceType,
		ChunkCount:           f.chunks,
		ExtractionConfidence: doc.ExtractionConfidence,
		ProcessedAt:          doc.ProcessedAt,
	}, nil
}

func (f *fakeDocumentService) Delete(_ context.Context, documentID string) error {
	if f.doc == nil || f.doc.ID != documentID {
		return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}
	f.doc = nil
	return nil
}

// setupTestServices installs fake services and returns a cleanup func.
func setupTestServices() func() {
	ingest := &fakeIngestService{}
	search := &fakeSearchService{
		results: []domain.SearchResult{
			{
				Chunk: domain.Chunk{
					DocumentID:      "doc-1",
					ChunkIndex:      0,
					Content:         "revenue grew in the third quarter",
					ContentType:     "text",
					SectionType:     "body",
					ConfidenceScore: 0.9,
				},
				Similarity: 0.87,
			},
		},
	}
	documents := &fakeDocumentService{
		doc: &domain.SourceDocument{
			ID:                   "doc-1",
			Title:                "Annual Report",
			SourceType:           "pdf",
			OriginalContent:      "full text here",
			ExtractionConfidence: 0.9,
			ProcessedAt:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		chunks: 3,
	}

	SetServices(ingest, search, documents)
	return func() {
		SetServices(nil, nil, nil)
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "corpora", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "setup")
	assert.Contains(t, commandNames, "ingest")
	assert.Contains(t, commandNames, "search")
	assert.Contains(t, commandNames, "document")
	assert.Contains(t, commandNames, "version")
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}
