// Package rerank implements the Cross-Encoder Reranker (C8): pair scoring
// over stage-1 candidates, min-max normalization, and fusion with the
// upstream semantic score.
package rerank

import (
	"context"
	"sort"

	"github.com/faizrashid/nazeer/pkg/models"
)

const (
	defaultSemanticWeight = 0.7
	defaultTopK           = 12
	minTopK               = 8
)

// CrossEncoder scores (query, passage) pairs jointly, as opposed to the
// independently-encoded vectors C7 compares by cosine similarity.
type CrossEncoder interface {
	Predict(ctx context.Context, pairs [][2]string) ([]float64, error)
}

// Config tunes the fusion step (spec §4.8 step 4).
type Config struct {
	SemanticWeight float64
	TopK           int
}

// DefaultConfig matches spec.md's stated defaults.
func DefaultConfig() Config {
	return Config{SemanticWeight: defaultSemanticWeight, TopK: defaultTopK}
}

// Reranker is the Cross-Encoder Reranker (C8).
type Reranker struct {
	encoder CrossEncoder
	config  Config
}

// NewReranker wires C8 to an injected CrossEncoder. encoder may be nil, in
// which case Rerank always passes candidates through unchanged.
func NewReranker(encoder CrossEncoder, config Config) *Reranker {
	if config.SemanticWeight == 0 {
		config.SemanticWeight = defaultSemanticWeight
	}
	if config.TopK == 0 {
		config.TopK = defaultTopK
	}
	if config.TopK < minTopK {
		config.TopK = minTopK
	}
	return &Reranker{encoder: encoder, config: config}
}

// Rerank implements spec §4.8's five steps. candidates[i].Score is treated
// as the stage-1 score for fusion.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []models.RankedResult) ([]models.RankedResult, error) {
	if len(candidates) < 2 || r.encoder == nil {
		return candidates, nil
	}

	pairs := make([][2]string, len(candidates))
	for i, c := range candidates {
		pairs[i] = [2]string{query, c.Text}
	}

	rawScores, err := r.encoder.Predict(ctx, pairs)
	if err != nil {
		return candidates, nil
	}

	normalized := minMaxNormalize(rawScores)

	out := make([]models.RankedResult, len(candidates))
	copy(out, candidates)
	for i := range out {
		raw := rawScores[i]
		norm := normalized[i]
		combined := r.config.SemanticWeight*norm + (1-r.config.SemanticWeight)*out[i].Score
		out[i].RerankScore = &raw
		out[i].NormalizedRerankScore = &norm
		out[i].CombinedScore = &combined
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].CombinedScore > *out[j].CombinedScore
	})

	if len(out) > r.config.TopK {
		out = out[:r.config.TopK]
	}
	return out, nil
}

// minMaxNormalize scales scores to [0,1]; when every score is equal
// (including the single-element case) it returns 0.5 for all (spec §4.8
// step 3).
func minMaxNormalize(scores []float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	min, max := scores[0], scores[0]
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	if min == max {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}

	span := max - min
	for i, s := range scores {
		out[i] = (s - min) / span
	}
	return out
}
