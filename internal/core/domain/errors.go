package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Re-ingesting a document ID that is already stored is rejected with this.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSchema indicates the store could not be prepared: it is unreachable
	// or lacks a required capability. Fatal; the system cannot proceed.
	ErrSchema = errors.New("schema setup failed")

	// ErrDimensionMismatch indicates the query embedding's dimensionality
	// differs from the stored chunks'. Signals an embedding-model mismatch
	// between ingestion and query time.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Neither ingestion nor search can run without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrParserUnavailable indicates no parser is registered for the input.
	ErrParserUnavailable = errors.New("document parser unavailable")
)

// IngestStage identifies where an ingestion attempt failed.
type IngestStage string

// Ingestion stages, in pipeline order.
const (
	StageParse   IngestStage = "parse"
	StageEmbed   IngestStage = "embed"
	StagePersist IngestStage = "persist"
)

// IngestError reports a failed ingestion together with the stage at which
// it failed and the document identifier, so callers can decide on retry.
// No rows are ever left visible from a failed ingestion.
type IngestError struct {
	// Stage is the pipeline stage that failed.
	Stage IngestStage

	// DocumentID is the effective document identifier, empty if the failure
	// happened before one was assigned.
	DocumentID string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *IngestError) Error() string {
	if e.DocumentID == "" {
		return fmt.Sprintf("ingest failed at %s stage: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("ingest %s failed at %s stage: %v", e.DocumentID, e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IngestError) Unwrap() error {
	return e.Err
}
