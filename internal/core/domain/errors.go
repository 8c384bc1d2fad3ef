package domain

import "errors"

// Domain errors represent indexing and retrieval failures.
// These are distinct from infrastructure errors; callers check them
// with errors.Is after adapters and services wrap them with context.
var (
	// ErrExtraction indicates no usable text could be extracted from the
	// source file.
	ErrExtraction = errors.New("no extractable text")

	// ErrEmptyDocument indicates extraction succeeded but chunking
	// produced nothing.
	ErrEmptyDocument = errors.New("document produced no chunks")

	// ErrEmbeddingService indicates the upstream embedding capability
	// failed or timed out. The indexing pipeline aborts with nothing
	// persisted.
	ErrEmbeddingService = errors.New("embedding service failure")

	// ErrVectorStore indicates a persistence-layer failure on insert,
	// delete or query.
	ErrVectorStore = errors.New("vector store failure")

	// ErrDocumentNotFound indicates an operation referenced an unknown
	// document id.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidFilter indicates a query or insert used a metadata key or
	// value outside the closed schema.
	ErrInvalidFilter = errors.New("invalid metadata filter")

	// ErrInvalidInput indicates malformed or invalid caller input.
	ErrInvalidInput = errors.New("invalid input")
)
