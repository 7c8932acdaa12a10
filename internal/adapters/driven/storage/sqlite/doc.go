// Package sqlite provides the SQLite-based implementation of the
// DocumentStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Similarity ranking runs
// inside SQL through a registered dot_product scalar function, so filtering,
// ordering, and the top-k limit compose into a single query.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory and applied idempotently when the store opens. Two
// relations are created: source_documents (one row per ingested document)
// and document_chunks (one row per embedded section, FK to its parent with
// ON DELETE CASCADE and UNIQUE(document_id, chunk_index)).
//
// # Data Location
//
// By default, the database is stored at ~/.corpora/data/corpora.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode; a document and its chunks are written in
// one transaction, so readers never observe a half-ingested document.
package sqlite
