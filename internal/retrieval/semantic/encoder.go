// Package semantic implements the Semantic Retriever (C7): dense recall
// against a vector index, with an on-disk embedding cache, metadata
// enrichment, structured-snippet synthesis, and a three-stage fallback
// chain for when the vector index is unavailable.
package semantic

import "context"

// EmbeddingDim is the fixed sentence-embedding dimension the retriever's
// vector index is provisioned for.
const EmbeddingDim = 384

// Encoder produces dense vectors for a batch of texts in one call. Callers
// are expected to batch; the embedding cache exists precisely so repeated
// single-text calls are never necessary on the hot path.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}
