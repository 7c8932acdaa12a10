package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/corpora-labs/corpora-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/corpora-labs/corpora-cli/internal/core/domain"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed implementation of the DocumentStore port.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.DocumentStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory and
// idempotently ensures the schema exists. Safe to invoke repeatedly.
// If dataDir is empty, defaults to ~/.corpora/data/corpora.db.
// Setup failures wrap domain.ErrSchema and are fatal.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".corpora", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrSchema, err)
	}

	// dot_product must be registered before any connection opens.
	if err := registerVectorFunctions(); err != nil {
		return nil, fmt.Errorf("%w: registering vector functions: %w", domain.ErrSchema, err)
	}

	dbPath := filepath.Join(dataDir, "corpora.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrSchema, err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling foreign keys: %w", domain.ErrSchema, err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", domain.ErrSchema, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// SaveDocumentWithChunks writes the document row and all its chunk rows in
// one transaction. Either every row becomes visible or none do.
func (s *Store) SaveDocumentWithChunks(
	ctx context.Context, doc *domain.SourceDocument, chunks []domain.Chunk,
) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	metadataJSON, err := marshalPayload(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}
	structureJSON, err := marshalPayload(doc.DocumentStructure)
	if err != nil {
		return fmt.Errorf("marshalling document structure: %w", err)
	}
	processingJSON, err := marshalPayload(doc.ProcessingMetadata)
	if err != nil {
		return fmt.Errorf("marshalling processing metadata: %w", err)
	}

	now := time.Now().UTC()
	if doc.ProcessedAt.IsZero() {
		doc.ProcessedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Stored chunks fix the table's embedding dimensionality; reject writes
	// that would mix dimensionalities.
	storedDims, err := chunkDimensionsTx(ctx, tx)
	if err != nil {
		return err
	}
	for i := range chunks {
		dims := len(chunks[i].Embedding)
		if storedDims == 0 {
			storedDims = dims
		}
		if dims != storedDims {
			return fmt.Errorf("chunk %d has %d dimensions, store has %d: %w",
				i, dims, storedDims, domain.ErrDimensionMismatch)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO source_documents (
			id, title, source_type, original_content, metadata,
			document_structure, processing_metadata, extraction_confidence, processed_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.SourceType, doc.OriginalContent, metadataJSON,
		structureJSON, processingJSON, doc.ExtractionConfidence, doc.ProcessedAt)
	if err != nil {
		if isUniqueViolation(err, "source_documents.id") {
			return fmt.Errorf("document %s: %w", doc.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("saving document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO document_chunks (
			document_id, chunk_index, content, embedding,
			content_type, section_type, confidence_score, page_number, metadata, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk statement: %w", err)
	}
	defer stmt.Close()

	for i := range chunks {
		chunkMetaJSON, err := marshalPayload(chunks[i].Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		embeddingBlob := float32SliceToBytes(chunks[i].Embedding)
		createdAt := chunks[i].CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		if _, err := stmt.ExecContext(ctx, doc.ID, chunks[i].ChunkIndex, chunks[i].Content,
			embeddingBlob, chunks[i].ContentType, chunks[i].SectionType,
			chunks[i].ConfidenceScore, nullInt(chunks[i].PageNumber),
			chunkMetaJSON, createdAt); err != nil {
			return fmt.Errorf("saving chunk %d: %w", chunks[i].ChunkIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SearchChunks ranks chunks passing the confidence and content-type filters
// by descending dot product against the query embedding, with ties broken by
// ascending chunk index then document ID, and returns at most opts.K rows.
func (s *Store) SearchChunks(
	ctx context.Context, query []float32, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	queryBlob := float32SliceToBytes(query)

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			c.id, c.document_id, c.chunk_index, c.content, c.embedding,
			c.content_type, c.section_type, c.confidence_score, c.page_number,
			c.metadata, c.created_at,
			dot_product(c.embedding, ?) AS similarity
		FROM document_chunks c
		WHERE c.confidence_score >= ?
	`)
	args := []any{queryBlob, opts.MinConfidence}

	if len(opts.ContentTypes) > 0 {
		sb.WriteString(" AND c.content_type IN (?" + strings.Repeat(", ?", len(opts.ContentTypes)-1) + ")")
		for _, ct := range opts.ContentTypes {
			args = append(args, ct)
		}
	}

	sb.WriteString(" ORDER BY similarity DESC, c.chunk_index ASC, c.document_id ASC LIMIT ?")
	args = append(args, opts.K)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		result, err := scanSearchResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}

	return results, nil
}

// ChunkDimensions returns the embedding dimensionality of the stored chunks,
// or 0 when no chunks exist.
func (s *Store) ChunkDimensions(ctx context.Context) (int, error) {
	var byteLen int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE((SELECT length(embedding) FROM document_chunks LIMIT 1), 0)
	`).Scan(&byteLen)
	if err != nil {
		return 0, fmt.Errorf("querying chunk dimensions: %w", err)
	}
	return byteLen / 4, nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.SourceDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, source_type, original_content, metadata,
			document_structure, processing_metadata, extraction_confidence, processed_at
		FROM source_documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// GetChunks retrieves all chunks for a document, ordered by chunk index.
func (s *Store) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, chunk_index, content, embedding,
			content_type, section_type, confidence_score, page_number, metadata, created_at
		FROM document_chunks WHERE document_id = ?
		ORDER BY chunk_index
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// ListDocuments returns all stored documents, most recently processed first.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.SourceDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, source_type, original_content, metadata,
			document_structure, processing_metadata, extraction_confidence, processed_at
		FROM source_documents
		ORDER BY processed_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.SourceDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DeleteDocument removes a document; its chunks go with it via the
// foreign-key cascade.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM source_documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// chunkDimensionsTx reads the stored embedding dimensionality inside a
// transaction so concurrent ingestions see a consistent value.
func chunkDimensionsTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var byteLen int
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE((SELECT length(embedding) FROM document_chunks LIMIT 1), 0)
	`).Scan(&byteLen)
	if err != nil {
		return 0, fmt.Errorf("querying chunk dimensions: %w", err)
	}
	return byteLen / 4, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the given column.
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

// marshalPayload serialises an opaque structured payload as JSON text.
// Nil maps serialise as an empty object so the column stays non-null.
func marshalPayload(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// nullInt converts an optional int to a driver-friendly value.
func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.SourceDocument, error) {
	var doc domain.SourceDocument
	var metadataJSON, structureJSON, processingJSON string

	if err := row.Scan(&doc.ID, &doc.Title, &doc.SourceType, &doc.OriginalContent,
		&metadataJSON, &structureJSON, &processingJSON,
		&doc.ExtractionConfidence, &doc.ProcessedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if err := unmarshalPayloads(&doc, metadataJSON, structureJSON, processingJSON); err != nil {
		return nil, err
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.SourceDocument, error) {
	var doc domain.SourceDocument
	var metadataJSON, structureJSON, processingJSON string

	if err := rows.Scan(&doc.ID, &doc.Title, &doc.SourceType, &doc.OriginalContent,
		&metadataJSON, &structureJSON, &processingJSON,
		&doc.ExtractionConfidence, &doc.ProcessedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if err := unmarshalPayloads(&doc, metadataJSON, structureJSON, processingJSON); err != nil {
		return nil, err
	}

	return &doc, nil
}

// unmarshalPayloads decodes the three opaque JSON columns into the document.
func unmarshalPayloads(doc *domain.SourceDocument, metadataJSON, structureJSON, processingJSON string) error {
	if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
		return fmt.Errorf("unmarshaling metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(structureJSON), &doc.DocumentStructure); err != nil {
		return fmt.Errorf("unmarshaling document structure: %w", err)
	}
	if err := json.Unmarshal([]byte(processingJSON), &doc.ProcessingMetadata); err != nil {
		return fmt.Errorf("unmarshaling processing metadata: %w", err)
	}
	return nil
}

// scanChunkColumns scans the shared chunk column set.
func scanChunkColumns(scan func(dest ...any) error) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte
	var pageNumber sql.NullInt64
	var metadataJSON string

	if err := scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content,
		&embeddingBlob, &chunk.ContentType, &chunk.SectionType,
		&chunk.ConfidenceScore, &pageNumber, &metadataJSON, &chunk.CreatedAt); err != nil {
		return nil, err
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
	if pageNumber.Valid {
		page := int(pageNumber.Int64)
		chunk.PageNumber = &page
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
		}
	}

	return &chunk, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	chunk, err := scanChunkColumns(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	return chunk, nil
}

// scanSearchResult scans a ranked chunk row including its similarity score.
func scanSearchResult(rows *sql.Rows) (*domain.SearchResult, error) {
	var result domain.SearchResult
	var embeddingBlob []byte
	var pageNumber sql.NullInt64
	var metadataJSON string

	if err := rows.Scan(&result.Chunk.ID, &result.Chunk.DocumentID, &result.Chunk.ChunkIndex,
		&result.Chunk.Content, &embeddingBlob, &result.Chunk.ContentType,
		&result.Chunk.SectionType, &result.Chunk.ConfidenceScore, &pageNumber,
		&metadataJSON, &result.Chunk.CreatedAt, &result.Similarity); err != nil {
		return nil, fmt.Errorf("scanning search result: %w", err)
	}

	result.Chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
	if pageNumber.Valid {
		page := int(pageNumber.Int64)
		result.Chunk.PageNumber = &page
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &result.Chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
		}
	}

	return &result, nil
}
