// Package domain defines the core business entities for Corpora.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceDocument: An ingested document with parsing metadata
//   - Chunk: A retrievable, embedded unit derived from one section
//   - ProcessedDocument: The sectioned output of the parsing pipeline
//   - SearchOptions / SearchResult: The retrieval contract
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
