package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "careerindex-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testChunks(docID string, sourceType domain.SourceType, company string, embeddings ...[]float32) []domain.Chunk {
	now := time.Now().UTC().Truncate(time.Second)
	chunks := make([]domain.Chunk, len(embeddings))
	for i, emb := range embeddings {
		chunks[i] = domain.Chunk{
			ID:         domain.ChunkID(docID, i),
			DocumentID: docID,
			Index:      i,
			Content:    fmt.Sprintf("content %d of %s", i, docID),
			Embedding:  emb,
			SourceType: sourceType,
			Company:    company,
			Filename:   docID + ".pdf",
			UploadedAt: now,
		}
	}
	return chunks
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_Success(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NotNil(t, store.db)
	assert.NotEmpty(t, store.Path())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "careerindex-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	nested := filepath.Join(tempDir, "a", "b")
	store, err := NewStore(nested)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(nested, "index.db"))
	assert.NoError(t, err)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	// Migration version is recorded, tables exist.
	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, 1)

	for _, table := range []string{"documents", "chunks", "store_meta"} {
		var name string
		err := store.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestNewStore_Reopen(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "careerindex-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Running migrations twice against the same file must be a no-op.
	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestStore_InterfaceGetters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NotNil(t, store.VectorStore())
	assert.NotNil(t, store.DocumentRegistry())
}

// ==================== Vector Store Tests ====================

func TestVectorStore_InsertAndQuery(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	vs := store.VectorStore()

	chunks := testChunks("doc-1", domain.SourceTypeResume, "",
		[]float32{0, 1, 0}, []float32{1, 0, 0})
	require.NoError(t, vs.Insert(ctx, "doc-1", chunks))

	hits, err := vs.Query(ctx, []float32{1, 0, 0}, domain.Filter{}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// Highest similarity first; embeddings round-trip through the blob encoding.
	assert.Equal(t, domain.ChunkID("doc-1", 1), hits[0].Chunk.ID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, []float32{1, 0, 0}, hits[0].Chunk.Embedding)
	assert.Equal(t, domain.SourceTypeResume, hits[0].Chunk.SourceType)
	assert.Equal(t, "doc-1.pdf", hits[0].Chunk.Filename)
}

func TestVectorStore_Insert_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.VectorStore().Insert(context.Background(), "doc-1", nil)
	assert.ErrorIs(t, err, domain.ErrVectorStore)
}

func TestVectorStore_Insert_DuplicateDocument(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	vs := store.VectorStore()

	chunks := testChunks("doc-1", domain.SourceTypeResume, "", []float32{1, 0})
	require.NoError(t, vs.Insert(ctx, "doc-1", chunks))

	err := vs.Insert(ctx, "doc-1", chunks)
	assert.ErrorIs(t, err, domain.ErrVectorStore)
}

func TestVectorStore_Insert_Atomicity(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	vs := store.VectorStore()

	// One chunk without an embedding poisons the whole batch.
	chunks := testChunks("doc-1", domain.SourceTypeResume, "", []float32{1, 0})
	chunks = append(chunks, domain.Chunk{
		ID:         domain.ChunkID("doc-1", 1),
		DocumentID: "doc-1",
		Index:      1,
		Content:    "no embedding",
		SourceType: domain.SourceTypeResume,
	})

	err := vs.Insert(ctx, "doc-1", chunks)
	assert.ErrorIs(t, err, domain.ErrVectorStore)

	hits, err := vs.Query(ctx, []float32{1, 0}, domain.Filter{}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVectorStore_Insert_DimensionMismatch(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	vs := store.VectorStore()

	require.NoError(t, vs.Insert(ctx, "doc-1",
		testChunks("doc-1", domain.SourceTypeResume, "", []float32{1, 0, 0})))

	err := vs.Insert(ctx, "doc-2",
		testChunks("doc-2", domain.SourceTypeResume, "", []float32{1, 0}))
	assert.ErrorIs(t, err, domain.ErrVectorStore)
}

func TestVectorStore_Query_DimensionMismatch(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	vs := store.VectorStore()

	require.NoError(t, vs.Insert(ctx, "doc-1",
		testChunks("doc-1", domain.SourceTypeResume, "", []float32{1, 0, 0})))

	_, err := vs.Query(ctx, []float32{1, 0}, domain.Filter{}, 10)
	assert.ErrorIs(t, err, domain.ErrVectorStore)
}

func TestVectorStore_Query_Filters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	vs := store.VectorStore()

	require.NoError(t, vs.Insert(ctx, "resume-1",
		testChunks("resume-1", domain.SourceTypeResume, "", []float32{1, 0})))
	require.NoError(t, vs.Insert(ctx, "acme-1",
		testChunks("acme-1", domain.SourceTypeCompanyPDF, "acme", []float32{1, 0})))
	require.NoError(t, vs.Insert(ctx, "globex-1",
		testChunks("globex-1", domain.SourceTypeCompanyPDF, "globex", []float32{1, 0})))

	hits, err := vs.Query(ctx, []float32{1, 0},
		domain.Filter{SourceType: domain.SourceTypeCompanyPDF}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = vs.Query(ctx, []float32{1, 0},
		domain.Filter{SourceType: domain.SourceTypeCompanyPDF, Company: "acme"}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "acme-1", hits[0].Chunk.DocumentID)

	hits, err = vs.Query(ctx, []float32{1, 0}, domain.Filter{DocumentID: "resume-1"}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "resume-1", hits[0].Chunk.DocumentID)

	// Exact match only.
	hits, err = vs.Query(ctx, []float32{1, 0}, domain.Filter{Company: "Acme"}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVectorStore_Query_InvalidFilter(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.VectorStore().Query(context.Background(), []float32{1, 0},
		domain.Filter{SourceType: domain.SourceType("junk")}, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestVectorStore_Query_TieBrokenByInsertionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	vs := store.VectorStore()

	require.NoError(t, vs.Insert(ctx, "doc-1",
		testChunks("doc-1", domain.SourceTypeResume, "", []float32{1, 0})))
	require.NoError(t, vs.Insert(ctx, "doc-2",
		testChunks("doc-2", domain.SourceTypeResume, "", []float32{1, 0})))

	hits, err := vs.Query(ctx, []float32{1, 0}, domain.Filter{}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "doc-1", hits[0].Chunk.DocumentID)
	assert.Equal(t, "doc-2", hits[1].Chunk.DocumentID)
}

func TestVectorStore_Query_TopK(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	vs := store.VectorStore()

	require.NoError(t, vs.Insert(ctx, "doc-1",
		testChunks("doc-1", domain.SourceTypeResume, "",
			[]float32{1, 0}, []float32{0, 1}, []float32{1, 1})))

	hits, err := vs.Query(ctx, []float32{1, 0}, domain.Filter{}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = vs.Query(ctx, []float32{1, 0}, domain.Filter{}, 0)
	require.NoError(t, err)
	assert.Nil(t, hits)
}

func TestVectorStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	vs := store.VectorStore()

	require.NoError(t, vs.Insert(ctx, "doc-1",
		testChunks("doc-1", domain.SourceTypeResume, "", []float32{1, 0}, []float32{0, 1})))

	removed, err := vs.Delete(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	hits, err := vs.Query(ctx, []float32{1, 0}, domain.Filter{}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	// Unknown document deletes zero chunks without error.
	removed, err = vs.Delete(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestVectorStore_Durability(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "careerindex-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.VectorStore().Insert(ctx, "doc-1",
		testChunks("doc-1", domain.SourceTypeResume, "", []float32{1, 0, 0})))
	require.NoError(t, store.Close())

	// Data and the fixed dimensionality survive a reopen.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	hits, err := store.VectorStore().Query(ctx, []float32{1, 0, 0}, domain.Filter{}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "doc-1", hits[0].Chunk.DocumentID)

	err = store.VectorStore().Insert(ctx, "doc-2",
		testChunks("doc-2", domain.SourceTypeResume, "", []float32{1, 0}))
	assert.ErrorIs(t, err, domain.ErrVectorStore)
}

// ==================== Document Registry Tests ====================

func TestDocumentRegistry_RegisterAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	reg := store.DocumentRegistry()

	now := time.Now().UTC().Truncate(time.Second)
	doc := domain.Document{
		ID:         "doc-1",
		Filename:   "resume.pdf",
		SourceType: domain.SourceTypeResume,
		UploadedAt: now,
		ChunkCount: 3,
	}
	require.NoError(t, reg.Register(ctx, doc))

	saved, err := reg.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", saved.Filename)
	assert.Equal(t, domain.SourceTypeResume, saved.SourceType)
	assert.Equal(t, 3, saved.ChunkCount)
	assert.True(t, saved.UploadedAt.Equal(now))
}

func TestDocumentRegistry_Register_Duplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	reg := store.DocumentRegistry()

	doc := domain.Document{ID: "doc-1", Filename: "a.pdf", SourceType: domain.SourceTypeResume}
	require.NoError(t, reg.Register(ctx, doc))
	assert.Error(t, reg.Register(ctx, doc))
}

func TestDocumentRegistry_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	doc, err := store.DocumentRegistry().Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.Nil(t, doc)
}

func TestDocumentRegistry_List(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	reg := store.DocumentRegistry()

	docs := []domain.Document{
		{ID: "c-1", Filename: "acme.pdf", SourceType: domain.SourceTypeCompanyPDF, Company: "acme"},
		{ID: "r-1", Filename: "resume.pdf", SourceType: domain.SourceTypeResume},
		{ID: "c-2", Filename: "globex.pdf", SourceType: domain.SourceTypeCompanyPDF, Company: "globex"},
	}
	for _, doc := range docs {
		require.NoError(t, reg.Register(ctx, doc))
	}

	groups, err := reg.List(ctx)
	require.NoError(t, err)

	assert.Len(t, groups, len(domain.AllSourceTypes))
	require.Len(t, groups[domain.SourceTypeCompanyPDF], 2)
	assert.Equal(t, "c-1", groups[domain.SourceTypeCompanyPDF][0].ID)
	assert.Equal(t, "c-2", groups[domain.SourceTypeCompanyPDF][1].ID)
	require.Len(t, groups[domain.SourceTypeResume], 1)
	assert.Empty(t, groups[domain.SourceTypeProjectPDF])
}

func TestDocumentRegistry_Remove(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	reg := store.DocumentRegistry()

	doc := domain.Document{ID: "doc-1", Filename: "a.pdf", SourceType: domain.SourceTypeResume}
	require.NoError(t, reg.Register(ctx, doc))

	require.NoError(t, reg.Remove(ctx, "doc-1"))

	_, err := reg.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	err = reg.Remove(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

// ==================== Blob Encoding Tests ====================

func TestFloat32BlobRoundTrip(t *testing.T) {
	original := []float32{0.1, -0.5, 3.14159, 0, 1e-10}
	assert.Equal(t, original, bytesToFloat32Slice(float32SliceToBytes(original)))

	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
