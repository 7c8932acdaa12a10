package driven

import (
	"context"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
)

// Parser turns a source file into a sectioned ProcessedDocument.
// It stands in for the external parse/prepare pipeline; each implementation
// handles one family of input formats.
type Parser interface {
	// Supports reports whether this parser handles the given file path.
	Supports(path string) bool

	// Parse reads and sections the file at path.
	Parse(ctx context.Context, path string) (*domain.ProcessedDocument, error)
}
