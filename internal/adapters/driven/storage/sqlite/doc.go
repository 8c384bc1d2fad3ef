// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - VectorStore: chunk and embedding persistence with filtered similarity search
//   - DocumentRegistry: document catalog persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// Embeddings are stored as little-endian float32 blobs. Similarity search loads
// the filter-matched rows and ranks them by cosine similarity in Go; rowid
// order breaks ties, so equal-scoring chunks come back oldest first.
//
// # Data Location
//
// By default, the database is stored at ~/.careerindex/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
