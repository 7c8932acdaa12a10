package services

import (
	"context"
	"fmt"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driven"
	"github.com/corpora-labs/corpora-cli/internal/logger"
)

// BuildChunks turns a processed document's sections into chunk records,
// embedding each section's content independently.
//
// Chunk indices mirror the section sequence exactly: the chunk built from
// sections[i] carries ChunkIndex i. The index is assigned from the loop
// position, never taken from section fields, so retrieval order always
// matches the parser's section order.
//
// Any embedding failure aborts the whole build; a partial chunk set would
// silently break retrieval completeness. An empty section sequence yields an
// empty chunk sequence, which is valid.
func BuildChunks(
	ctx context.Context, doc *domain.ProcessedDocument, embedder driven.EmbeddingService,
) ([]domain.Chunk, error) {
	if embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	chunks := make([]domain.Chunk, 0, len(doc.Sections))
	for i, section := range doc.Sections {
		embedding, err := embedder.Embed(ctx, section.Content)
		if err != nil {
			return nil, fmt.Errorf("embedding section %d: %w", i, err)
		}

		chunks = append(chunks, domain.Chunk{
			ChunkIndex:      i,
			Content:         section.Content,
			Embedding:       embedding,
			ContentType:     section.ContentType,
			SectionType:     section.SectionType,
			ConfidenceScore: section.Confidence,
			PageNumber:      section.PageNumber,
			Metadata:        section.Metadata,
		})
	}

	logger.Debug("Built %d chunks from %d sections", len(chunks), len(doc.Sections))
	return chunks, nil
}
