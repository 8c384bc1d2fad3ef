package services

import (
	"context"
	"time"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driven"
)

// mockExtractor returns canned text or a canned error.
type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// mockEmbedder returns a fixed vector per call, optionally failing or
// blocking until the context is cancelled.
type mockEmbedder struct {
	vector []float32
	err    error
	delay  time.Duration

	embedCalls int
	batchCalls int
}

func (m *mockEmbedder) Embed(ctx context.Context, _ string) ([]float32, error) {
	m.embedCalls++
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.vector
	}
	return out, nil
}

func (m *mockEmbedder) wait(ctx context.Context) error {
	if m.delay == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
		return nil
	}
}

func (m *mockEmbedder) Dimensions() int   { return len(m.vector) }
func (m *mockEmbedder) ModelName() string { return "mock" }
func (m *mockEmbedder) Close() error      { return nil }

// failingVectorStore wraps a real store and injects errors per method.
type failingVectorStore struct {
	inner     driven.VectorStore
	insertErr error
	deleteErr error
	queryErr  error
}

func (f *failingVectorStore) Insert(ctx context.Context, docID string, chunks []domain.Chunk) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	return f.inner.Insert(ctx, docID, chunks)
}

func (f *failingVectorStore) Delete(ctx context.Context, docID string) (int, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.inner.Delete(ctx, docID)
}

func (f *failingVectorStore) Query(ctx context.Context, vector []float32, filter domain.Filter, topK int) ([]driven.VectorHit, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.inner.Query(ctx, vector, filter, topK)
}

func (f *failingVectorStore) Close() error { return f.inner.Close() }

// failingRegistry wraps a real registry and injects a Register error.
type failingRegistry struct {
	inner       driven.DocumentRegistry
	registerErr error
}

func (f *failingRegistry) Register(ctx context.Context, doc domain.Document) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	return f.inner.Register(ctx, doc)
}

func (f *failingRegistry) Get(ctx context.Context, docID string) (*domain.Document, error) {
	return f.inner.Get(ctx, docID)
}

func (f *failingRegistry) List(ctx context.Context) (map[domain.SourceType][]domain.Document, error) {
	return f.inner.List(ctx)
}

func (f *failingRegistry) Remove(ctx context.Context, docID string) error {
	return f.inner.Remove(ctx, docID)
}

func (f *failingRegistry) Close() error { return f.inner.Close() }

// mockConfigStore is a map-backed driven.ConfigStore.
type mockConfigStore struct {
	values map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/config.toml"
}
