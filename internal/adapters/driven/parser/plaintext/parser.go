// Package plaintext provides a parser for plain text documents.
// Each blank-line-separated paragraph becomes one section.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// supportedExtensions lists the file extensions this parser handles.
var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".text": true,
	".log":  true,
	".csv":  true,
}

// Parser handles plain text documents.
type Parser struct{}

// New creates a new plain text parser.
func New() *Parser {
	return &Parser{}
}

// Supports reports whether this parser handles the given file path.
func (p *Parser) Supports(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Parse reads the file and sections it by paragraph. Plain text carries no
// extraction uncertainty, so every section gets full confidence.
func (p *Parser) Parse(_ context.Context, path string) (*domain.ProcessedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	content := string(data)
	paragraphs := splitParagraphs(content)

	sections := make([]domain.Section, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		sections = append(sections, domain.Section{
			Content:     paragraph,
			ContentType: "text",
			SectionType: "paragraph",
			Confidence:  1.0,
			Metadata:    map[string]any{"chars": len(paragraph)},
		})
	}

	return &domain.ProcessedDocument{
		Title:        extractTitle(path),
		DocumentType: "plaintext",
		RawContent:   content,
		Metadata:     map[string]any{"path": path},
		Structure:    map[string]any{"paragraphs": len(sections)},
		ProcessingMetadata: map[string]any{
			"parser": "plaintext",
		},
		Confidence: 1.0,
		Sections:   sections,
	}, nil
}

// splitParagraphs splits text on blank lines, dropping empty spans.
func splitParagraphs(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")

	var paragraphs []string
	for _, block := range strings.Split(normalized, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

// extractTitle extracts a human-readable title from a file path.
func extractTitle(path string) string {
	filename := filepath.Base(path)
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
