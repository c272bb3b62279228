package emotion

import "context"

// TextClassifier produces raw emotion scores for a piece of text
type TextClassifier interface {
	ClassifyText(ctx context.Context, text string) (RawClassification, error)
}

// ImageClassifier produces raw emotion scores for a rasterized still frame
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, frame []byte) (RawClassification, error)
}

// EmbeddingClient generates vector embeddings for text
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// VectorMatch represents a single match from a vector search
type VectorMatch struct {
	ID       string
	Score    float32
	Metadata map[string]any
}

// VectorClient performs vector similarity search and storage operations
type VectorClient interface {
	Search(ctx context.Context, vector []float32, topK int) ([]VectorMatch, error)
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error
}

// HistoryStore persists analysis records for later review
type HistoryStore interface {
	Insert(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, limit, offset int) ([]Record, error)
	Delete(ctx context.Context, id string) error
}
