// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TextExtractor: Extracts plain text from uploaded file bytes
//   - EmbeddingService: Maps text to fixed-dimension vectors
//   - VectorStore: Persists and queries (vector, text, metadata) triples
//   - DocumentRegistry: Persists the document-level catalog
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
