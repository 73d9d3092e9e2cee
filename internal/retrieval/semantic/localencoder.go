package semantic

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// LocalEncoder is the deterministic hash-based embedding stub spec.md §6
// calls for when no real sentence-embedding model is configured: every
// call produces the same vector for the same text, so the fallback chain
// and the cache behave identically to a real model in tests and in a
// from-scratch deployment with no GPU serving stack yet wired up.
type LocalEncoder struct{}

// NewLocalEncoder constructs the stub encoder.
func NewLocalEncoder() *LocalEncoder {
	return &LocalEncoder{}
}

// Encode hashes each whitespace token into one of EmbeddingDim buckets and
// L2-normalizes the result, so cosine similarity still rewards shared
// vocabulary between a query and a candidate the way a real embedding
// model would, without requiring any external model server.
func (LocalEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = hashEmbed(text)
	}
	return out, nil
}

func hashEmbed(text string) []float32 {
	vec := make([]float32, EmbeddingDim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		bucket := h.Sum32() % uint32(EmbeddingDim)
		vec[bucket]++
	}

	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	inv := float32(1.0 / math.Sqrt(float64(norm)))
	for i := range vec {
		vec[i] *= inv
	}
	return vec
}
