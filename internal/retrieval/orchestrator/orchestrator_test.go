package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/faizrashid/nazeer/internal/casematch"
	"github.com/faizrashid/nazeer/internal/queryanalysis"
	"github.com/faizrashid/nazeer/internal/retrieval/diversify"
	"github.com/faizrashid/nazeer/internal/retrieval/rerank"
	"github.com/faizrashid/nazeer/internal/retrieval/semantic"
	"github.com/faizrashid/nazeer/internal/session"
	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

type zeroEncoder struct{}

func (zeroEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, semantic.EmbeddingDim)
	}
	return out, nil
}

func seedCase(t *testing.T) *storage.MemoryCaseReadStore {
	t.Helper()
	store := storage.NewMemoryCaseReadStore()
	now := time.Now()
	c := &models.Case{
		ID: "case-1", CaseNumber: "T.A. 2/2023", CaseName: "Ali vs State",
		Court: "Islamabad High Court", Status: models.CaseStatusActive,
		ScrapedAt: now, LastUpdated: now,
	}
	store.Seed(c, nil, nil, nil, nil, nil)
	return store
}

func newOrchestrator(t *testing.T, cases *storage.MemoryCaseReadStore, sessions storage.SessionStore) *Orchestrator {
	t.Helper()
	kb := storage.NewMemoryKBChunkStore()
	kb.Upsert(context.Background(), &models.KBChunk{
		ID: "kb-1", SourceType: models.SourceTypeJudgment, SourceID: "kb-1",
		ContentText: "a judgment about family court custody proceedings", LegalRelevanceScore: 0.8,
	})
	retriever := semantic.New(zeroEncoder{}, nil, nil, kb, cases, nil)
	var binder *session.Binder
	if sessions != nil {
		binder = session.NewBinder(sessions)
	}
	return New(
		queryanalysis.NewAnalyzer(),
		casematch.NewMatcher(cases),
		retriever,
		rerank.NewReranker(nil, rerank.DefaultConfig()),
		diversify.New(),
		binder,
		cases,
		nil,
	)
}

func TestRetrieveForQAReturnsExactMatchOnly(t *testing.T) {
	cases := seedCase(t)
	o := newOrchestrator(t, cases, nil)
	results := o.RetrieveForQA(context.Background(), Request{Query: "details for T.A. 2/2023"})
	if len(results) != 1 {
		t.Fatalf("expected exactly one exact-match result, got %+v", results)
	}
	if results[0].RetrievalMethod != models.RetrievalMethodExactCaseNumber {
		t.Errorf("expected retrieval_method=exact_case_number, got %s", results[0].RetrievalMethod)
	}
	if results[0].QARank != 1 {
		t.Errorf("expected qa_rank=1, got %d", results[0].QARank)
	}
}

func TestRetrieveForQAFallsThroughToSemanticWhenNoHint(t *testing.T) {
	cases := seedCase(t)
	o := newOrchestrator(t, cases, nil)
	results := o.RetrieveForQA(context.Background(), Request{Query: "family court custody proceedings"})
	if len(results) == 0 {
		t.Fatal("expected semantic-stage results")
	}
	if results[0].RetrievalMethod != models.RetrievalMethodFallbackDBEmbedding {
		t.Errorf("expected retrieval_method=fallback_db_embedding (no vector index wired in this fixture), got %s", results[0].RetrievalMethod)
	}
}

func TestRetrieveForQANeverPanicsOnEmptyQuery(t *testing.T) {
	cases := seedCase(t)
	o := newOrchestrator(t, cases, nil)
	results := o.RetrieveForQA(context.Background(), Request{Query: ""})
	if results == nil {
		return
	}
}

func TestRetrieveForQAUsesActiveSessionLock(t *testing.T) {
	cases := seedCase(t)
	sessions := storage.NewMemorySessionStore()
	o := newOrchestrator(t, cases, sessions)
	ctx := context.Background()

	first := o.RetrieveForQA(ctx, Request{Query: "details for T.A. 2/2023", SessionID: "sess-1"})
	if len(first) != 1 {
		t.Fatalf("expected exact match to bind the session, got %+v", first)
	}

	second := o.RetrieveForQA(ctx, Request{Query: "what happened next", SessionID: "sess-1"})
	if len(second) != 1 || second[0].RetrievalMethod != models.RetrievalMethodActiveCaseLock {
		t.Fatalf("expected follow-up turn to use the active case lock, got %+v", second)
	}
	if second[0].CaseID != "case-1" {
		t.Errorf("expected lock to resolve case-1, got %+v", second[0])
	}
}
