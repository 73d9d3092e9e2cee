package rerank

import (
	"context"
	"testing"

	"github.com/faizrashid/nazeer/pkg/models"
)

type stubCrossEncoder struct {
	scores []float64
	err    error
}

func (s *stubCrossEncoder) Predict(ctx context.Context, pairs [][2]string) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.scores, nil
}

func candidates(scores ...float64) []models.RankedResult {
	out := make([]models.RankedResult, len(scores))
	for i, s := range scores {
		out[i] = models.RankedResult{ID: string(rune('a' + i)), Score: s, Text: "passage"}
	}
	return out
}

func TestRerankSkipsWhenFewerThanTwoCandidates(t *testing.T) {
	r := NewReranker(&stubCrossEncoder{scores: []float64{1.0}}, DefaultConfig())
	in := candidates(0.5)
	out, err := r.Rerank(context.Background(), "q", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].CombinedScore != nil {
		t.Fatalf("expected passthrough with no fusion score, got %+v", out)
	}
}

func TestRerankSkipsWhenEncoderNil(t *testing.T) {
	r := NewReranker(nil, DefaultConfig())
	in := candidates(0.5, 0.9)
	out, _ := r.Rerank(context.Background(), "q", in)
	if len(out) != 2 || out[0].CombinedScore != nil {
		t.Fatalf("expected passthrough, got %+v", out)
	}
}

func TestRerankFusesAndSorts(t *testing.T) {
	r := NewReranker(&stubCrossEncoder{scores: []float64{0.1, 0.9, 0.5}}, Config{SemanticWeight: 0.7, TopK: 8})
	in := candidates(0.2, 0.2, 0.2)
	out, err := r.Rerank(context.Background(), "q", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if *out[i].CombinedScore > *out[i-1].CombinedScore {
			t.Fatalf("results not sorted descending by combined score: %+v", out)
		}
	}
	if out[0].ID != "b" {
		t.Errorf("expected the highest raw rerank score (index 1, id b) to rank first, got %s", out[0].ID)
	}
}

func TestRerankNormalizesEqualScoresToHalf(t *testing.T) {
	r := NewReranker(&stubCrossEncoder{scores: []float64{0.3, 0.3}}, DefaultConfig())
	in := candidates(0.1, 0.9)
	out, _ := r.Rerank(context.Background(), "q", in)
	for _, c := range out {
		if *c.NormalizedRerankScore != 0.5 {
			t.Errorf("expected normalized score 0.5 for equal raw scores, got %f", *c.NormalizedRerankScore)
		}
	}
}

func TestRerankTruncatesToTopK(t *testing.T) {
	scores := make([]float64, 20)
	cands := make([]models.RankedResult, 20)
	for i := range scores {
		scores[i] = float64(i)
		cands[i] = models.RankedResult{ID: string(rune('a' + i)), Score: 0.1, Text: "p"}
	}
	r := NewReranker(&stubCrossEncoder{scores: scores}, Config{SemanticWeight: 0.7, TopK: 12})
	out, _ := r.Rerank(context.Background(), "q", cands)
	if len(out) != 12 {
		t.Fatalf("expected truncation to 12, got %d", len(out))
	}
}

func TestRerankEnforcesTopKLowerBound(t *testing.T) {
	r := NewReranker(&stubCrossEncoder{}, Config{SemanticWeight: 0.7, TopK: 3})
	if r.config.TopK != minTopK {
		t.Errorf("expected TopK floor of %d, got %d", minTopK, r.config.TopK)
	}
}

func TestRerankPassesThroughOnEncoderError(t *testing.T) {
	r := NewReranker(&stubCrossEncoder{err: errBoom}, DefaultConfig())
	in := candidates(0.4, 0.6)
	out, err := r.Rerank(context.Background(), "q", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].CombinedScore != nil {
		t.Fatalf("expected unscored passthrough on encoder error, got %+v", out)
	}
}

var errBoom = &testErr{"boom"}

type testErr struct{ msg string }

func (e *testErr) Error() string { return e.msg }
