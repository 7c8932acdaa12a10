// Package pdf provides a parser for PDF documents using ledongthuc/pdf.
// Each page becomes one section with its page number attached.
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// DefaultConfidence is the extraction confidence assigned to PDF text.
// PDF text extraction is reliable but not lossless (ligatures, layout).
const DefaultConfidence = 0.9

// Parser handles PDF documents.
type Parser struct{}

// New creates a new PDF parser.
func New() *Parser {
	return &Parser{}
}

// Supports reports whether this parser handles the given file path.
func (p *Parser) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Parse extracts one section per non-empty page.
func (p *Parser) Parse(_ context.Context, path string) (*domain.ProcessedDocument, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	var raw strings.Builder
	sections := make([]domain.Section, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extracting text from page %d: %w", i, err)
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		raw.WriteString(text)
		raw.WriteString("\n")

		pageNumber := i
		sections = append(sections, domain.Section{
			Content:     text,
			ContentType: "text",
			SectionType: "page",
			Confidence:  DefaultConfidence,
			PageNumber:  &pageNumber,
			Metadata:    map[string]any{"chars": len(text)},
		})
	}

	return &domain.ProcessedDocument{
		Title:        extractTitle(path),
		DocumentType: "pdf",
		RawContent:   raw.String(),
		Metadata:     map[string]any{"path": path},
		Structure:    map[string]any{"pages": numPages},
		ProcessingMetadata: map[string]any{
			"parser": "pdf",
		},
		Confidence: DefaultConfidence,
		Sections:   sections,
	}, nil
}

// extractTitle extracts a human-readable title from a file path.
func extractTitle(path string) string {
	filename := filepath.Base(path)
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
