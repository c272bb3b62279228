// Package testutil provides mock implementations of the emotion package
// interfaces for testing.
package testutil

import (
	"context"
	"errors"
	"sync"

	emotion "github.com/Krtindandu/emotisecure-login"
)

// ErrNotFound is returned by MockHistoryStore.Get for unknown IDs
var ErrNotFound = errors.New("record not found")

// MockTextClassifier is a mock implementation of TextClassifier for testing
type MockTextClassifier struct {
	ClassifyTextFunc func(ctx context.Context, text string) (emotion.RawClassification, error)

	mu        sync.Mutex
	CallCount int
	LastText  string
}

func (m *MockTextClassifier) ClassifyText(ctx context.Context, text string) (emotion.RawClassification, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastText = text
	m.mu.Unlock()

	if m.ClassifyTextFunc != nil {
		return m.ClassifyTextFunc(ctx, text)
	}
	// Default: a neutral reading
	return emotion.RawClassification{{Label: "neutral", Score: 1.0}}, nil
}

// MockImageClassifier is a mock implementation of ImageClassifier for testing
type MockImageClassifier struct {
	ClassifyImageFunc func(ctx context.Context, frame []byte) (emotion.RawClassification, error)

	mu        sync.Mutex
	CallCount int
	LastFrame []byte
}

func (m *MockImageClassifier) ClassifyImage(ctx context.Context, frame []byte) (emotion.RawClassification, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastFrame = frame
	m.mu.Unlock()

	if m.ClassifyImageFunc != nil {
		return m.ClassifyImageFunc(ctx, frame)
	}
	return emotion.RawClassification{{Label: "neutral", Score: 1.0}}, nil
}

// MockEmbeddingClient is a mock implementation of EmbeddingClient for testing
type MockEmbeddingClient struct {
	GenerateEmbeddingFunc func(ctx context.Context, text string) ([]float32, error)

	mu        sync.Mutex
	CallCount int
	LastText  string
}

func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastText = text
	m.mu.Unlock()

	if m.GenerateEmbeddingFunc != nil {
		return m.GenerateEmbeddingFunc(ctx, text)
	}
	// Default: return a simple embedding based on text length
	embedding := make([]float32, 10)
	for i := range embedding {
		embedding[i] = float32(len(text)) / 100.0
	}
	return embedding, nil
}

// MockVectorClient is a mock implementation of VectorClient for testing
type MockVectorClient struct {
	SearchFunc func(ctx context.Context, vector []float32, topK int) ([]emotion.VectorMatch, error)
	UpsertFunc func(ctx context.Context, id string, vector []float32, metadata map[string]any) error

	mu          sync.Mutex
	SearchCount int
	UpsertCount int
	Storage     map[string]StoredVector
}

// StoredVector is what a MockVectorClient keeps per upserted ID
type StoredVector struct {
	Vector   []float32
	Metadata map[string]any
}

func NewMockVectorClient() *MockVectorClient {
	return &MockVectorClient{
		Storage: make(map[string]StoredVector),
	}
}

func (m *MockVectorClient) Search(ctx context.Context, vector []float32, topK int) ([]emotion.VectorMatch, error) {
	m.mu.Lock()
	m.SearchCount++
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, vector, topK)
	}

	// Default: return empty results (cache miss)
	return []emotion.VectorMatch{}, nil
}

func (m *MockVectorClient) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error {
	m.mu.Lock()
	m.UpsertCount++
	m.Storage[id] = StoredVector{Vector: vector, Metadata: metadata}
	m.mu.Unlock()

	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, id, vector, metadata)
	}
	return nil
}

// MockHistoryStore is an in-memory mock implementation of HistoryStore
type MockHistoryStore struct {
	InsertFunc func(ctx context.Context, rec *emotion.Record) error

	mu          sync.Mutex
	InsertCount int
	Records     []emotion.Record
}

func (m *MockHistoryStore) Insert(ctx context.Context, rec *emotion.Record) error {
	if m.InsertFunc != nil {
		if err := m.InsertFunc(ctx, rec); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.InsertCount++
	m.Records = append(m.Records, *rec)
	m.mu.Unlock()
	return nil
}

func (m *MockHistoryStore) Get(ctx context.Context, id string) (*emotion.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Records {
		if m.Records[i].ID == id {
			rec := m.Records[i]
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockHistoryStore) List(ctx context.Context, limit, offset int) ([]emotion.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]emotion.Record, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

func (m *MockHistoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return nil
}

// Stored returns a snapshot of the records inserted so far
func (m *MockHistoryStore) Stored() []emotion.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]emotion.Record, len(m.Records))
	copy(out, m.Records)
	return out
}
