// Package domain defines the core business entities for the career
// document indexing engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: One uploaded source file and its catalog metadata
//   - Chunk: The unit of embedding and retrieval
//   - SourceType: The closed set of document populations
//   - Filter: Exact-match metadata restriction for similarity queries
//   - RetrievedContext: The ordered output of a dual retrieval
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
