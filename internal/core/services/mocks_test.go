package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// It produces a deterministic 3-dimensional embedding from rune counts, so
// identical texts always embed identically.
type mockEmbeddingService struct {
	embedErr   error
	failOnText string
	calls      int
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.failOnText != "" && text == m.failOnText {
		return nil, fmt.Errorf("embedding backend rejected text")
	}
	var letters, spaces float64
	for _, r := range text {
		if r == ' ' {
			spaces++
		} else {
			letters++
		}
	}
	// Unit length, so identical texts score a dot product of exactly 1.0
	// against themselves and everything else scores lower.
	v := []float64{letters, spaces, float64(len(text)) + letters*spaces}
	norm := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if norm == 0 {
		return []float32{0, 0, 0}, nil
	}
	return []float32{float32(v[0] / norm), float32(v[1] / norm), float32(v[2] / norm)}, nil
}

func (m *mockEmbeddingService) Dimensions() int { return 3 }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// mockDocumentStore implements driven.DocumentStore in memory for testing.
type mockDocumentStore struct {
	docs    map[string]*domain.SourceDocument
	chunks  map[string][]domain.Chunk
	saveErr error
	nextID  int64
}

var _ driven.DocumentStore = (*mockDocumentStore)(nil)

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{
		docs:   make(map[string]*domain.SourceDocument),
		chunks: make(map[string][]domain.Chunk),
	}
}

func (m *mockDocumentStore) SaveDocumentWithChunks(
	_ context.Context, doc *domain.SourceDocument, chunks []domain.Chunk,
) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	if _, exists := m.docs[doc.ID]; exists {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrAlreadyExists)
	}

	stored := make([]domain.Chunk, len(chunks))
	for i := range chunks {
		m.nextID++
		stored[i] = chunks[i]
		stored[i].ID = m.nextID
		stored[i].DocumentID = doc.ID
	}
	m.docs[doc.ID] = doc
	m.chunks[doc.ID] = stored
	return nil
}

func (m *mockDocumentStore) SearchChunks(
	_ context.Context, query []float32, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	var results []domain.SearchResult
	for _, chunks := range m.chunks {
		for _, chunk := range chunks {
			if chunk.ConfidenceScore < opts.MinConfidence {
				continue
			}
			if len(opts.ContentTypes) > 0 && !containsString(opts.ContentTypes, chunk.ContentType) {
				continue
			}
			var dot float64
			for i := range query {
				dot += float64(query[i]) * float64(chunk.Embedding[i])
			}
			results = append(results, domain.SearchResult{Chunk: chunk, Similarity: dot})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		if results[i].Chunk.ChunkIndex != results[j].Chunk.ChunkIndex {
			return results[i].Chunk.ChunkIndex < results[j].Chunk.ChunkIndex
		}
		return results[i].Chunk.DocumentID < results[j].Chunk.DocumentID
	})
	if len(results) > opts.K {
		results = results[:opts.K]
	}
	return results, nil
}

func (m *mockDocumentStore) ChunkDimensions(_ context.Context) (int, error) {
	for _, chunks := range m.chunks {
		for _, chunk := range chunks {
			return len(chunk.Embedding), nil
		}
	}
	return 0, nil
}

func (m *mockDocumentStore) GetDocument(_ context.Context, id string) (*domain.SourceDocument, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *mockDocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	return m.chunks[documentID], nil
}

func (m *mockDocumentStore) ListDocuments(_ context.Context) ([]domain.SourceDocument, error) {
	docs := make([]domain.SourceDocument, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, *doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (m *mockDocumentStore) DeleteDocument(_ context.Context, id string) error {
	delete(m.docs, id)
	delete(m.chunks, id)
	return nil
}

// mockParser implements driven.Parser for testing.
type mockParser struct {
	doc      *domain.ProcessedDocument
	parseErr error
	ext      string
}

func (m *mockParser) Supports(path string) bool {
	if m.ext == "" {
		return true
	}
	return strings.HasSuffix(path, m.ext)
}

func (m *mockParser) Parse(_ context.Context, _ string) (*domain.ProcessedDocument, error) {
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	return m.doc, nil
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// processedDocument builds a three-section test document.
func processedDocument() *domain.ProcessedDocument {
	page := 1
	return &domain.ProcessedDocument{
		Title:        "Annual Report",
		DocumentType: "pdf",
		RawContent:   "revenue costs outlook",
		Metadata:     map[string]any{"source": "test"},
		Confidence:   0.9,
		Sections: []domain.Section{
			{Content: "revenue grew", ContentType: "text", SectionType: "body", Confidence: 0.9, PageNumber: &page},
			{Content: "q1|q2|q3", ContentType: "table", SectionType: "table", Confidence: 0.5},
			{Content: "outlook is strong", ContentType: "text", SectionType: "body", Confidence: 0.95},
		},
	}
}
