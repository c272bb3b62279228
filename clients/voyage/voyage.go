// Package voyage wraps the VoyageAI embedding API for cache lookups.
package voyage

import (
	"context"
	"fmt"

	"github.com/austinfhunter/voyageai"
)

const embeddingDimensions = 1024

const embeddingModel = "voyage-3.5-lite"

// EmbeddingType selects how VoyageAI optimizes the embedding
type EmbeddingType string

const (
	EmbeddingTypeDocument EmbeddingType = "document"
	EmbeddingTypeQuery    EmbeddingType = "query"
)

// EmbeddingService generates embeddings for text
type EmbeddingService struct {
	client *voyageai.VoyageClient
}

// NewEmbeddingService creates a new embedding service with the given API key
func NewEmbeddingService(apiKey string) *EmbeddingService {
	return &EmbeddingService{
		client: voyageai.NewClient(&voyageai.VoyageClientOpts{
			Key: apiKey,
		}),
	}
}

// GenerateEmbedding generates an embedding for a single text
func (es *EmbeddingService) GenerateEmbedding(ctx context.Context, text string, embeddingType EmbeddingType) ([]float32, error) {
	dimensions := es.Dimensions()
	inputType := string(embeddingType)

	embeddings, err := es.client.Embed(
		[]string{text},
		embeddingModel,
		&voyageai.EmbeddingRequestOpts{
			InputType:       &inputType,
			OutputDimension: &dimensions,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("could not get embedding: %w", err)
	}

	return embeddings.Data[0].Embedding, nil
}

// Dimensions returns the dimension count for the embedding model
func (es *EmbeddingService) Dimensions() int {
	return embeddingDimensions
}
