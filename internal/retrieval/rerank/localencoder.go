package rerank

import (
	"context"
	"strings"
)

// LocalCrossEncoder is the deterministic stub cross-encoder spec.md §6
// calls for when no real cross-encoder model is configured: it scores a
// (query, passage) pair by shared-token overlap rather than a joint
// transformer pass, so the fusion step still has something real to
// normalize and sort in a from-scratch deployment.
type LocalCrossEncoder struct{}

// NewLocalCrossEncoder constructs the stub cross-encoder.
func NewLocalCrossEncoder() *LocalCrossEncoder {
	return &LocalCrossEncoder{}
}

// Predict scores every pair by Jaccard overlap of their token sets.
func (LocalCrossEncoder) Predict(ctx context.Context, pairs [][2]string) ([]float64, error) {
	scores := make([]float64, len(pairs))
	for i, pair := range pairs {
		scores[i] = tokenOverlap(pair[0], pair[1])
	}
	return scores, nil
}

func tokenOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		out[tok] = struct{}{}
	}
	return out
}
