package domain

import "time"

// SourceDocument represents an ingested document with its parsing metadata.
// It is the canonical parent record; all chunks hang off it.
type SourceDocument struct {
	// ID is the unique identifier for the document.
	// Caller-supplied or generated at ingestion time.
	ID string `json:"id"`

	// Title is the human-readable title from the parsed document.
	Title string `json:"title"`

	// SourceType describes the origin format (e.g., "pdf", "plaintext").
	SourceType string `json:"source_type"`

	// OriginalContent is the full raw text before sectioning.
	OriginalContent string `json:"original_content"`

	// Metadata contains arbitrary key-value pairs from parsing.
	Metadata map[string]any `json:"metadata,omitempty"`

	// DocumentStructure describes the parsed layout (headings, tables, ...).
	// Stored opaquely; the store never interprets it.
	DocumentStructure map[string]any `json:"document_structure,omitempty"`

	// ProcessingMetadata records how the document was parsed and prepared.
	ProcessingMetadata map[string]any `json:"processing_metadata,omitempty"`

	// ExtractionConfidence is the document-level parse confidence in [0,1].
	ExtractionConfidence float64 `json:"extraction_confidence"`

	// ProcessedAt is when the document was written to the store.
	ProcessedAt time.Time `json:"processed_at"`
}

// Chunk represents a retrievable unit derived from one document section.
// Chunks are created only as part of ingesting their parent document and
// share its lifecycle.
type Chunk struct {
	// ID is the store-assigned surrogate key. Zero until persisted.
	ID int64 `json:"id"`

	// DocumentID links to the parent SourceDocument.
	DocumentID string `json:"document_id"`

	// ChunkIndex is the zero-based position of the originating section in
	// the processed document's section sequence. It defines retrieval and
	// display order independent of storage order.
	ChunkIndex int `json:"chunk_index"`

	// Content is the text content of this chunk.
	Content string `json:"content"`

	// Embedding is the vector representation for similarity search.
	// Every chunk in a store must carry the same dimensionality.
	Embedding []float32 `json:"embedding,omitempty"`

	// ContentType is a short categorical tag (e.g., "text", "table").
	ContentType string `json:"content_type"`

	// SectionType classifies the section's structural role.
	SectionType string `json:"section_type"`

	// ConfidenceScore is the parser-assigned extraction confidence in [0,1].
	ConfidenceScore float64 `json:"confidence_score"`

	// PageNumber is the source page, nil when unknown.
	PageNumber *int `json:"page_number,omitempty"`

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any `json:"metadata,omitempty"`

	// CreatedAt is when the chunk was written to the store.
	CreatedAt time.Time `json:"created_at"`
}

// Section is one content-typed span of a processed document, as produced by
// the parsing pipeline.
type Section struct {
	// Content is the section text.
	Content string `json:"content"`

	// ContentType is a short categorical tag (e.g., "text", "table").
	ContentType string `json:"content_type"`

	// SectionType classifies the section's structural role.
	SectionType string `json:"section_type"`

	// Confidence is the extraction confidence for this section in [0,1].
	Confidence float64 `json:"confidence"`

	// PageNumber is the source page, nil when unknown.
	PageNumber *int `json:"page_number,omitempty"`

	// Metadata contains section-specific key-value pairs.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ProcessedDocument is the output of the external parse/prepare pipeline:
// a sectioned document ready for chunking and ingestion.
type ProcessedDocument struct {
	// Title is the human-readable title.
	Title string `json:"title"`

	// DocumentType describes the origin format.
	DocumentType string `json:"document_type"`

	// RawContent is the full text before sectioning.
	RawContent string `json:"raw_content"`

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Structure describes the parsed layout.
	Structure map[string]any `json:"structure,omitempty"`

	// ProcessingMetadata records parser/preparer settings and stats.
	ProcessingMetadata map[string]any `json:"processing_metadata,omitempty"`

	// Confidence is the document-level extraction confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// Sections is the ordered sequence of content-typed spans.
	Sections []Section `json:"sections"`
}
