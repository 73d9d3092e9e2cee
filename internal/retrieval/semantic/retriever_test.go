package semantic

import (
	"context"
	"testing"

	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

// stubEncoder returns a deterministic unit vector derived from text length,
// avoiding any real embedding model in tests.
type stubEncoder struct {
	calls int
}

func (e *stubEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec := make([]float32, EmbeddingDim)
		vec[0] = float32(len(t)%97) + 1
		out[i] = vec
	}
	return out, nil
}

// stubIndex is an in-memory VectorIndex for exercising the primary path
// without a real Qdrant server.
type stubIndex struct {
	points []IndexMatch
	fail   bool
}

func (s *stubIndex) Query(ctx context.Context, vector []float32, topK int, filter IndexFilter) ([]IndexMatch, []string, error) {
	if s.fail {
		return nil, nil, errIndexDown
	}
	var dropped []string
	if filter.CaseID != "" {
		dropped = append(dropped, "case_id")
	}
	matches := s.points
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, dropped, nil
}

func (s *stubIndex) Upsert(ctx context.Context, id string, vector []float32, text string, metadata map[string]string) error {
	s.points = append(s.points, IndexMatch{ID: id, Score: 1.0, Text: text, Metadata: metadata})
	return nil
}

var errIndexDown = &indexError{"index unavailable"}

type indexError struct{ msg string }

func (e *indexError) Error() string { return e.msg }

func newKBStore(t *testing.T) *storage.MemoryKBChunkStore {
	t.Helper()
	store := storage.NewMemoryKBChunkStore()
	caseID := "case-1"
	store.Upsert(context.Background(), &models.KBChunk{
		ID: "chunk-1", SourceType: models.SourceTypeJudgment, SourceID: "chunk-1",
		SourceCaseID: &caseID, ContentText: "The accused was convicted of theft of a motor vehicle.",
		LegalRelevanceScore: 0.9, CaseNumber: "T.A. 2/2023",
	})
	store.Upsert(context.Background(), &models.KBChunk{
		ID: "chunk-2", SourceType: models.SourceTypeJudgment, SourceID: "chunk-2",
		SourceCaseID: &caseID, ContentText: "Unrelated banking dispute over recovery of a loan.",
		LegalRelevanceScore: 0.4,
	})
	return store
}

func TestRetrieveUsesIndexWhenAvailable(t *testing.T) {
	encoder := &stubEncoder{}
	index := &stubIndex{points: []IndexMatch{{ID: "p1", Score: 0.88, Text: "vehicle theft judgment", Metadata: map[string]string{"case_id": "case-1", "bench": "Single Bench"}}}}
	r := New(encoder, nil, index, storage.NewMemoryKBChunkStore(), nil, nil)

	results, err := r.Retrieve(context.Background(), "car stolen", 5, Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].CaseID != "case-1" {
		t.Fatalf("expected one case-1 result, got %+v", results)
	}
	if results[0].Text[:5] != "Bench" {
		t.Errorf("expected structured summary prepended, got %q", results[0].Text)
	}
}

func TestRetrieveFallsBackWhenIndexUnavailable(t *testing.T) {
	encoder := &stubEncoder{}
	index := &stubIndex{fail: true}
	kb := newKBStore(t)
	r := New(encoder, nil, index, kb, nil, nil)

	results, err := r.Retrieve(context.Background(), "theft of a motor vehicle", 5, Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected fallback results")
	}
	if results[0].CaseNumber != "T.A. 2/2023" {
		t.Errorf("expected the theft chunk to rank first, got %+v", results[0])
	}
}

func TestRetrieveSimpleLexicalFallbackWithNoVectorBackend(t *testing.T) {
	encoder := &stubEncoder{}
	kb := newKBStore(t)
	r := New(encoder, nil, nil, kb, nil, nil)

	results, err := r.Retrieve(context.Background(), "theft", 5, Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected lexical fallback results")
	}
}

func TestEmbeddingCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewEmbeddingCache(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vec := []float32{0.1, 0.2, 0.3}
	if err := cache.Set(context.Background(), "hello world", vec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := cache.Get(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(vec) || got[0] != vec[0] {
		t.Errorf("expected round-tripped vector %v, got %v", vec, got)
	}
}

func TestEmbeddingCacheMiss(t *testing.T) {
	cache, err := NewEmbeddingCache(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.Get(context.Background(), "never written"); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestEmbedBatchSkipsCachedEntries(t *testing.T) {
	dir := t.TempDir()
	cache, _ := NewEmbeddingCache(dir)
	encoder := &stubEncoder{}
	r := New(encoder, cache, nil, nil, nil, nil)

	vecs := r.embedBatch(context.Background(), []string{"alpha", "beta"})
	if len(vecs) != 2 || vecs[0] == nil || vecs[1] == nil {
		t.Fatalf("expected two embeddings, got %+v", vecs)
	}
	if encoder.calls != 1 {
		t.Fatalf("expected one batched encode call, got %d", encoder.calls)
	}

	r.embedBatch(context.Background(), []string{"alpha"})
	if encoder.calls != 1 {
		t.Errorf("expected cache hit to avoid a second encode call, got %d calls", encoder.calls)
	}
}

func TestLexicalScoreCappedAtOne(t *testing.T) {
	text := "theft theft theft theft theft theft theft theft theft theft theft theft"
	if score := lexicalScore(text, "theft"); score != 1.0 {
		t.Errorf("expected lexical score capped at 1.0, got %f", score)
	}
}

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	a := []float32{1, 2, 3}
	if sim := cosineSimilarity(a, a); sim < 0.999 {
		t.Errorf("expected similarity ~1.0 for identical vectors, got %f", sim)
	}
}
