package emotion_test

import (
	"context"
	"errors"
	"testing"

	emotion "github.com/Krtindandu/emotisecure-login"
	"github.com/Krtindandu/emotisecure-login/testutil"
)

// TestCachingTextClassifier_Hit tests that a close vector match serves the
// stored scores without touching the backend
func TestCachingTextClassifier_Hit(t *testing.T) {
	mockInner := &testutil.MockTextClassifier{}
	mockEmbedding := &testutil.MockEmbeddingClient{}

	mockVectors := testutil.NewMockVectorClient()
	mockVectors.SearchFunc = func(ctx context.Context, vector []float32, topK int) ([]emotion.VectorMatch, error) {
		return []emotion.VectorMatch{
			{
				ID:    "cached-id",
				Score: 0.97,
				Metadata: map[string]any{
					"vector_text": "similar text",
					"scores":      `[{"label":"joy","score":0.9},{"label":"neutral","score":0.1}]`,
				},
			},
		}, nil
	}

	cached, err := emotion.NewCachingTextClassifier(mockInner, mockEmbedding, mockVectors, 0)
	if err != nil {
		t.Fatalf("Failed to create caching classifier: %v", err)
	}
	defer cached.Close()

	raw, err := cached.ClassifyText(context.Background(), "some text")
	if err != nil {
		t.Fatalf("ClassifyText failed: %v", err)
	}

	if mockInner.CallCount != 0 {
		t.Errorf("Expected the backend not to be called, got %d calls", mockInner.CallCount)
	}
	if len(raw) != 2 || raw[0].Label != "joy" || raw[0].Score != 0.9 {
		t.Errorf("Expected cached scores, got %v", raw)
	}

	metrics := cached.GetMetrics()
	if metrics.Hits != 1 || metrics.Lookups != 1 {
		t.Errorf("Expected 1 hit of 1 lookup, got %+v", metrics)
	}
}

// TestCachingTextClassifier_Miss tests that a miss classifies through the
// backend and stores the outcome in the background
func TestCachingTextClassifier_Miss(t *testing.T) {
	mockInner := &testutil.MockTextClassifier{
		ClassifyTextFunc: func(ctx context.Context, text string) (emotion.RawClassification, error) {
			return emotion.RawClassification{{Label: "anger", Score: 1.0}}, nil
		},
	}
	mockEmbedding := &testutil.MockEmbeddingClient{}
	mockVectors := testutil.NewMockVectorClient()

	cached, err := emotion.NewCachingTextClassifier(mockInner, mockEmbedding, mockVectors, 0)
	if err != nil {
		t.Fatalf("Failed to create caching classifier: %v", err)
	}

	raw, err := cached.ClassifyText(context.Background(), "so annoying")
	if err != nil {
		t.Fatalf("ClassifyText failed: %v", err)
	}
	if len(raw) != 1 || raw[0].Label != "anger" {
		t.Errorf("Expected backend scores, got %v", raw)
	}
	if mockInner.CallCount != 1 {
		t.Errorf("Expected 1 backend call, got %d", mockInner.CallCount)
	}

	// The upsert runs in the background; Close waits for it
	if err := cached.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if mockVectors.UpsertCount != 1 {
		t.Errorf("Expected 1 cache upsert, got %d", mockVectors.UpsertCount)
	}
}

// TestCachingTextClassifier_LowSimilarity tests that a weak match is treated
// as a miss
func TestCachingTextClassifier_LowSimilarity(t *testing.T) {
	mockInner := &testutil.MockTextClassifier{}
	mockEmbedding := &testutil.MockEmbeddingClient{}

	mockVectors := testutil.NewMockVectorClient()
	mockVectors.SearchFunc = func(ctx context.Context, vector []float32, topK int) ([]emotion.VectorMatch, error) {
		return []emotion.VectorMatch{
			{
				ID:    "cached-id",
				Score: 0.50,
				Metadata: map[string]any{
					"scores": `[{"label":"joy","score":1}]`,
				},
			},
		}, nil
	}

	cached, err := emotion.NewCachingTextClassifier(mockInner, mockEmbedding, mockVectors, 0)
	if err != nil {
		t.Fatalf("Failed to create caching classifier: %v", err)
	}
	defer cached.Close()

	if _, err := cached.ClassifyText(context.Background(), "some text"); err != nil {
		t.Fatalf("ClassifyText failed: %v", err)
	}
	if mockInner.CallCount != 1 {
		t.Errorf("Expected the backend to be called on a weak match, got %d calls", mockInner.CallCount)
	}
}

// TestCachingTextClassifier_DegradesOnCacheFailure tests that embedding or
// search failures fall through to the backend instead of failing the request
func TestCachingTextClassifier_DegradesOnCacheFailure(t *testing.T) {
	mockInner := &testutil.MockTextClassifier{}
	mockEmbedding := &testutil.MockEmbeddingClient{
		GenerateEmbeddingFunc: func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		},
	}
	mockVectors := testutil.NewMockVectorClient()

	cached, err := emotion.NewCachingTextClassifier(mockInner, mockEmbedding, mockVectors, 0)
	if err != nil {
		t.Fatalf("Failed to create caching classifier: %v", err)
	}
	defer cached.Close()

	raw, err := cached.ClassifyText(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Expected fallback to backend, got error: %v", err)
	}
	if len(raw) == 0 {
		t.Error("Expected backend scores")
	}
	if mockInner.CallCount != 1 {
		t.Errorf("Expected 1 backend call, got %d", mockInner.CallCount)
	}
	if mockVectors.UpsertCount != 0 {
		t.Error("Expected no upsert without an embedding")
	}
}

// TestCachingTextClassifier_MalformedCacheEntry tests that an unreadable
// cache payload is treated as a miss
func TestCachingTextClassifier_MalformedCacheEntry(t *testing.T) {
	mockInner := &testutil.MockTextClassifier{}
	mockEmbedding := &testutil.MockEmbeddingClient{}

	mockVectors := testutil.NewMockVectorClient()
	mockVectors.SearchFunc = func(ctx context.Context, vector []float32, topK int) ([]emotion.VectorMatch, error) {
		return []emotion.VectorMatch{
			{
				ID:       "cached-id",
				Score:    0.99,
				Metadata: map[string]any{"scores": "not json"},
			},
		}, nil
	}

	cached, err := emotion.NewCachingTextClassifier(mockInner, mockEmbedding, mockVectors, 0)
	if err != nil {
		t.Fatalf("Failed to create caching classifier: %v", err)
	}
	defer cached.Close()

	if _, err := cached.ClassifyText(context.Background(), "some text"); err != nil {
		t.Fatalf("ClassifyText failed: %v", err)
	}
	if mockInner.CallCount != 1 {
		t.Errorf("Expected fallback to backend, got %d calls", mockInner.CallCount)
	}
}
