// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Document and chunk persistence plus similarity search
//   - EmbeddingService: Generates vector embeddings for sections and queries
//
// # Optional Interfaces
//
//   - Parser: Turns a file into a ProcessedDocument. Only the file-based
//     ingestion path needs one; callers holding a ProcessedDocument do not.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
