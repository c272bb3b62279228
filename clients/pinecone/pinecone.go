// Package pinecone wraps the Pinecone SDK for the analysis result cache.
package pinecone

import (
	"context"
	"fmt"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// Vector represents a vector with metadata (re-exported from SDK for convenience)
type Vector = pinecone.Vector

// QueryMatch represents a match from query results (re-exported from SDK for convenience)
type QueryMatch = pinecone.ScoredVector

// Metadata represents the metadata for a vector (re-exported from SDK for convenience)
type Metadata = pinecone.Metadata

// Service provides access to the Pinecone vector database
type Service struct {
	client *pinecone.Client
}

// NewService creates a new Pinecone service with the given API key
func NewService(apiKey string) (*Service, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pinecone client: %w", err)
	}

	return &Service{client: client}, nil
}

// ForIndex returns an operations gateway for the given index host and namespace
func (s *Service) ForIndex(host, namespace string) (*IndexOperations, error) {
	conn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      host,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pinecone index: %w", err)
	}

	return &IndexOperations{index: conn}, nil
}

// IndexOperations provides operations for a specific Pinecone index
type IndexOperations struct {
	index *pinecone.IndexConnection
}

// Search performs a vector similarity search in the index
func (idx *IndexOperations) Search(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]QueryMatch, error) {
	metadataFilter, err := structpb.NewStruct(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata map: %v", err)
	}

	queryResponse, err := idx.index.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          queryVector,
		TopK:            uint32(topK),
		IncludeValues:   false,
		IncludeMetadata: includeMetadata,
		MetadataFilter:  metadataFilter,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]QueryMatch, len(queryResponse.Matches))
	for i, match := range queryResponse.Matches {
		matches[i] = *match
	}

	return matches, nil
}

// Upsert stores vectors in the index
func (idx *IndexOperations) Upsert(ctx context.Context, vectors []Vector) error {
	pineconeVectors := make([]*pinecone.Vector, len(vectors))
	for i, v := range vectors {
		pineconeVectors[i] = &v
	}

	_, err := idx.index.UpsertVectors(ctx, pineconeVectors)
	return err
}

// Delete removes vectors from the index
func (idx *IndexOperations) Delete(ctx context.Context, ids []string) error {
	return idx.index.DeleteVectorsById(ctx, ids)
}
