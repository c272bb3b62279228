package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultCacheMinSimilarity is the default threshold for treating a vector
// match as a cache hit
const DefaultCacheMinSimilarity = 0.90

// CacheMetrics provides statistics about a CachingTextClassifier
type CacheMetrics struct {
	// Lookups is the total number of classification requests seen
	Lookups int

	// Hits is the number of requests served from the vector cache
	Hits int

	// HitRate is the percentage of lookups served from cache
	HitRate float32
}

// CachingTextClassifier wraps a TextClassifier with an embedding-keyed vector
// cache: incoming text is embedded, similar past inputs are looked up, and on
// a sufficiently close match the stored raw scores are reused instead of
// calling the backend. Cache misses classify through the wrapped backend and
// store the outcome in the background. Cache failures degrade to the wrapped
// classifier, they never fail the request.
type CachingTextClassifier struct {
	inner         TextClassifier
	embedding     EmbeddingClient
	vectors       VectorClient
	minSimilarity float32

	lookups     int
	hits        int
	metricsLock sync.RWMutex

	backgroundTasks sync.WaitGroup
}

// NewCachingTextClassifier creates a caching wrapper around inner. If
// minSimilarity is 0, DefaultCacheMinSimilarity applies.
func NewCachingTextClassifier(inner TextClassifier, embedding EmbeddingClient, vectors VectorClient, minSimilarity float32) (*CachingTextClassifier, error) {
	if inner == nil {
		return nil, fmt.Errorf("inner classifier is required")
	}
	if embedding == nil || vectors == nil {
		return nil, fmt.Errorf("embedding and vector clients are required")
	}

	if minSimilarity == 0 {
		minSimilarity = DefaultCacheMinSimilarity
	}

	return &CachingTextClassifier{
		inner:         inner,
		embedding:     embedding,
		vectors:       vectors,
		minSimilarity: minSimilarity,
	}, nil
}

// ClassifyText implements TextClassifier
func (c *CachingTextClassifier) ClassifyText(ctx context.Context, text string) (RawClassification, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("cannot classify empty text")
	}

	c.recordLookup()

	embedding, err := c.embedding.GenerateEmbedding(ctx, text)
	if err != nil {
		// cache is best-effort: fall through to the backend
		log.Printf("Error: cache embedding failed: %v", err)
		return c.inner.ClassifyText(ctx, text)
	}

	matches, err := c.vectors.Search(ctx, embedding, 1)
	if err != nil {
		log.Printf("Error: cache search failed: %v", err)
		return c.inner.ClassifyText(ctx, text)
	}

	if len(matches) > 0 && matches[0].Score >= c.minSimilarity {
		if raw, ok := decodeCachedScores(matches[0].Metadata); ok {
			c.recordHit()
			return raw, nil
		}
		// malformed cache entry, treat as a miss
	}

	raw, err := c.inner.ClassifyText(ctx, text)
	if err != nil {
		return nil, err
	}

	c.backgroundTasks.Add(1)
	go func() {
		defer c.backgroundTasks.Done()
		if err := c.store(context.Background(), text, embedding, raw); err != nil {
			log.Printf("Error: cache store failed: %v", err)
		}
	}()

	return raw, nil
}

// store upserts a classified text with its raw scores as metadata
func (c *CachingTextClassifier) store(ctx context.Context, text string, embedding []float32, raw RawClassification) error {
	scores, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}

	metadata := map[string]any{
		"vector_text": text,
		"scores":      string(scores),
	}
	return c.vectors.Upsert(ctx, uuid.New().String(), embedding, metadata)
}

// Close waits for pending background cache writes to complete
func (c *CachingTextClassifier) Close() error {
	c.backgroundTasks.Wait()
	return nil
}

// GetMetrics returns current cache metrics
func (c *CachingTextClassifier) GetMetrics() CacheMetrics {
	c.metricsLock.RLock()
	defer c.metricsLock.RUnlock()

	var hitRate float32
	if c.lookups > 0 {
		hitRate = float32(c.hits) / float32(c.lookups) * 100
	}

	return CacheMetrics{
		Lookups: c.lookups,
		Hits:    c.hits,
		HitRate: hitRate,
	}
}

func (c *CachingTextClassifier) recordLookup() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.lookups++
}

func (c *CachingTextClassifier) recordHit() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.hits++
}

// decodeCachedScores extracts raw scores from vector metadata
func decodeCachedScores(metadata map[string]any) (RawClassification, bool) {
	encoded, ok := metadata["scores"].(string)
	if !ok {
		return nil, false
	}

	var raw RawClassification
	if err := json.Unmarshal([]byte(encoded), &raw); err != nil {
		return nil, false
	}
	return raw, true
}
