package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/futureyou-labs/careerindex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/futureyou-labs/careerindex/internal/core/domain"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driven"
	"github.com/futureyou-labs/careerindex/internal/vectormath"
)

// metaKeyDimensions is the store_meta key holding the embedding
// dimensionality fixed by the first insert.
const metaKeyDimensions = "embedding_dimensions"

// Store is a unified SQLite-based storage that provides access to
// the vector store and document registry through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.careerindex/data/index.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".careerindex", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
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

// VectorStore returns a VectorStore interface backed by this store.
func (s *Store) VectorStore() driven.VectorStore {
	return &vectorStore{store: s}
}

// DocumentRegistry returns a DocumentRegistry interface backed by this store.
func (s *Store) DocumentRegistry() driven.DocumentRegistry {
	return &documentRegistry{store: s}
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

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Vector Store ====================

// vectorStore implements driven.VectorStore.
type vectorStore struct {
	store *Store
}

var _ driven.VectorStore = (*vectorStore)(nil)

// Insert persists all chunks of one document in a single transaction.
func (s *vectorStore) Insert(ctx context.Context, docID string, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("%w: no chunks to insert", domain.ErrVectorStore)
	}

	// Validate everything before touching the database.
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
		if len(chunk.Embedding) == 0 {
			return fmt.Errorf("%w: chunk %s has no embedding", domain.ErrVectorStore, chunk.ID)
		}
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", domain.ErrVectorStore, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM chunks WHERE document_id = ? LIMIT 1", docID).Scan(&exists)
	switch {
	case err == nil:
		return fmt.Errorf("%w: document %s already indexed", domain.ErrVectorStore, docID)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: checking for existing document: %v", domain.ErrVectorStore, err)
	}

	// The first insert fixes the store-wide embedding dimensionality.
	dims := len(chunks[0].Embedding)
	storeDims, err := readDimensions(ctx, tx)
	if err != nil {
		return err
	}
	if storeDims == 0 {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO store_meta (key, value) VALUES (?, ?)",
			metaKeyDimensions, strconv.Itoa(dims)); err != nil {
			return fmt.Errorf("%w: recording dimensions: %v", domain.ErrVectorStore, err)
		}
		storeDims = dims
	}
	for _, chunk := range chunks {
		if len(chunk.Embedding) != storeDims {
			return fmt.Errorf("%w: embedding dimension %d does not match store dimension %d",
				domain.ErrVectorStore, len(chunk.Embedding), storeDims)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, position, content, embedding, source_type, company, filename, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %v", domain.ErrVectorStore, err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Index,
			chunk.Content, embeddingBlob, string(chunk.SourceType), chunk.Company,
			chunk.Filename, chunk.UploadedAt); err != nil {
			return fmt.Errorf("%w: saving chunk %s: %v", domain.ErrVectorStore, chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", domain.ErrVectorStore, err)
	}
	return nil
}

// Delete removes every chunk of the document as a unit.
func (s *vectorStore) Delete(ctx context.Context, docID string) (int, error) {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE document_id = ?", docID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting chunks: %v", domain.ErrVectorStore, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: counting deleted chunks: %v", domain.ErrVectorStore, err)
	}
	return int(removed), nil
}

// Query returns up to topK chunks ranked by descending cosine similarity.
// Filtering happens in SQL; similarity is computed in Go after loading the
// matching rows, with rowid order breaking ties.
func (s *vectorStore) Query(ctx context.Context, vector []float32, filter domain.Filter, topK int) ([]driven.VectorHit, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrVectorStore)
	}
	if topK <= 0 {
		return nil, nil
	}

	storeDims, err := readDimensions(ctx, s.store.db)
	if err != nil {
		return nil, err
	}
	if storeDims != 0 && len(vector) != storeDims {
		return nil, fmt.Errorf("%w: query dimension %d does not match store dimension %d",
			domain.ErrVectorStore, len(vector), storeDims)
	}

	query := `
		SELECT rowid, id, document_id, position, content, embedding, source_type, company, filename, uploaded_at
		FROM chunks
	`
	var conditions []string
	var args []any
	if filter.SourceType != "" {
		conditions = append(conditions, "source_type = ?")
		args = append(args, string(filter.SourceType))
	}
	if filter.Company != "" {
		conditions = append(conditions, "company = ?")
		args = append(args, filter.Company)
	}
	if filter.DocumentID != "" {
		conditions = append(conditions, "document_id = ?")
		args = append(args, filter.DocumentID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rowid"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrVectorStore, err)
	}
	defer rows.Close()

	type scored struct {
		hit   driven.VectorHit
		rowid int64
	}
	var candidates []scored
	for rows.Next() {
		var (
			rowid         int64
			chunk         domain.Chunk
			embeddingBlob []byte
			sourceType    string
		)
		if err := rows.Scan(&rowid, &chunk.ID, &chunk.DocumentID, &chunk.Index,
			&chunk.Content, &embeddingBlob, &sourceType, &chunk.Company,
			&chunk.Filename, &chunk.UploadedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %v", domain.ErrVectorStore, err)
		}
		chunk.SourceType = domain.SourceType(sourceType)
		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

		candidates = append(candidates, scored{
			hit: driven.VectorHit{
				Chunk:      chunk,
				Similarity: vectormath.Cosine(vector, chunk.Embedding),
			},
			rowid: rowid,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %v", domain.ErrVectorStore, err)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].hit.Similarity != candidates[j].hit.Similarity {
			return candidates[i].hit.Similarity > candidates[j].hit.Similarity
		}
		return candidates[i].rowid < candidates[j].rowid
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	hits := make([]driven.VectorHit, len(candidates))
	for i, c := range candidates {
		hits[i] = c.hit
	}
	return hits, nil
}

// Close is a no-op; the connection belongs to the parent Store.
func (s *vectorStore) Close() error {
	return nil
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// readDimensions returns the recorded store dimensionality, 0 when unset.
func readDimensions(ctx context.Context, q rowQuerier) (int, error) {
	var value string
	err := q.QueryRowContext(ctx,
		"SELECT value FROM store_meta WHERE key = ?", metaKeyDimensions).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: reading dimensions: %v", domain.ErrVectorStore, err)
	}
	dims, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: parsing dimensions %q: %v", domain.ErrVectorStore, value, err)
	}
	return dims, nil
}

// ==================== Document Registry ====================

// documentRegistry implements driven.DocumentRegistry.
type documentRegistry struct {
	store *Store
}

var _ driven.DocumentRegistry = (*documentRegistry)(nil)

// Register records a document.
func (s *documentRegistry) Register(ctx context.Context, doc domain.Document) error {
	if !doc.SourceType.Valid() {
		return fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidFilter, string(doc.SourceType))
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, source_type, company, uploaded_at, chunk_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Filename, string(doc.SourceType), doc.Company, doc.UploadedAt, doc.ChunkCount)
	if err != nil {
		return fmt.Errorf("registering document %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns the document's metadata.
func (s *documentRegistry) Get(ctx context.Context, docID string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, filename, source_type, company, uploaded_at, chunk_count
		FROM documents WHERE id = ?
	`, docID)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting document %s: %w", docID, err)
	}
	return doc, nil
}

// List returns all documents partitioned by source type, rowid order
// within each group.
func (s *documentRegistry) List(ctx context.Context) (map[domain.SourceType][]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, filename, source_type, company, uploaded_at, chunk_count
		FROM documents ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.SourceType][]domain.Document, len(domain.AllSourceTypes))
	for _, st := range domain.AllSourceTypes {
		out[st] = []domain.Document{}
	}
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		out[doc.SourceType] = append(out[doc.SourceType], *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return out, nil
}

// Remove deletes the catalog entry.
func (s *documentRegistry) Remove(ctx context.Context, docID string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", docID)
	if err != nil {
		return fmt.Errorf("removing document %s: %w", docID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("counting removed documents: %w", err)
	}
	if affected == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// Close is a no-op; the connection belongs to the parent Store.
func (s *documentRegistry) Close() error {
	return nil
}

// ==================== Helpers ====================

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.Document, error) {
	var (
		doc        domain.Document
		sourceType string
		uploadedAt time.Time
	)
	if err := row.Scan(&doc.ID, &doc.Filename, &sourceType, &doc.Company,
		&uploadedAt, &doc.ChunkCount); err != nil {
		return nil, err
	}
	doc.SourceType = domain.SourceType(sourceType)
	doc.UploadedAt = uploadedAt
	return &doc, nil
}

func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	doc, err := scanDocument(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if floats == nil {
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
