// Package orchestrator implements the Retrieval Orchestrator (C10), the
// public entry point for question answering: it ties the Query Analyzer,
// the exact-match short-circuit, the semantic retriever, the reranker, and
// the diversifier into one never-raise retrieve_for_qa call.
package orchestrator

import (
	"context"
	"time"

	"github.com/faizrashid/nazeer/internal/casematch"
	"github.com/faizrashid/nazeer/internal/observability"
	"github.com/faizrashid/nazeer/internal/queryanalysis"
	"github.com/faizrashid/nazeer/internal/retrieval/diversify"
	"github.com/faizrashid/nazeer/internal/retrieval/rerank"
	"github.com/faizrashid/nazeer/internal/retrieval/semantic"
	"github.com/faizrashid/nazeer/internal/session"
	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

const defaultTopK = 10

// Orchestrator is the Retrieval Orchestrator (C10).
type Orchestrator struct {
	analyzer   *queryanalysis.Analyzer
	matcher    *casematch.Matcher
	retriever  *semantic.Retriever
	reranker   *rerank.Reranker
	diversifier *diversify.Filter
	sessions   *session.Binder
	cases      storage.CaseReadStore
	logger     *observability.Logger
}

// New wires every C10 collaborator. sessions may be nil to disable the
// follow-up session lock.
func New(
	analyzer *queryanalysis.Analyzer,
	matcher *casematch.Matcher,
	retriever *semantic.Retriever,
	reranker *rerank.Reranker,
	diversifier *diversify.Filter,
	sessions *session.Binder,
	cases storage.CaseReadStore,
	logger *observability.Logger,
) *Orchestrator {
	return &Orchestrator{
		analyzer: analyzer, matcher: matcher, retriever: retriever,
		reranker: reranker, diversifier: diversifier, sessions: sessions,
		cases: cases, logger: logger,
	}
}

// Request is one retrieve_for_qa call (spec §4.10).
type Request struct {
	Query     string
	SessionID string
	TopK      int
	Filters   semantic.Filters
}

// RetrieveForQA runs the full pipeline. It never returns an error to the
// caller for stage 1-4 failures: those are logged and yield an empty
// result set (spec §4.10 "never raise out of retrieve_for_qa").
func (o *Orchestrator) RetrieveForQA(ctx context.Context, req Request) []models.RankedResult {
	start := time.Now()
	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	if results, ok := o.tryActiveSessionLock(ctx, req); ok {
		return annotate(results, start, models.RetrievalMethodActiveCaseLock)
	}

	analysis := o.analyzer.Analyze(req.Query)

	if analysis.CaseTitleHint != nil {
		exact, err := o.matcher.FindExactMatch(ctx, *analysis.CaseTitleHint)
		if err != nil {
			o.logError(req, "exact-match lookup failed", err)
		}
		if len(exact) > 0 {
			o.recordSession(ctx, req, *analysis.CaseTitleHint, exact[0].CaseID)
			return annotate(exact, start, models.RetrievalMethodExactCaseNumber)
		}
	}

	candidates, err := o.retriever.Retrieve(ctx, req.Query, defaultSemanticTopK, req.Filters)
	if err != nil {
		o.logError(req, "semantic retrieval failed", err)
		return annotate(nil, start, models.RetrievalMethodTwoStageQA)
	}

	reranked, err := o.reranker.Rerank(ctx, req.Query, candidates)
	if err != nil {
		o.logError(req, "rerank failed", err)
		reranked = candidates
	}

	final := o.diversifier.Apply(reranked, topK, analysis.CaseTitleHint)
	normalizeScores(final)

	if analysis.CaseTitleHint != nil {
		o.recordSession(ctx, req, *analysis.CaseTitleHint, "")
	}

	return annotate(final, start, models.RetrievalMethodTwoStageQA)
}

const defaultSemanticTopK = 30

// tryActiveSessionLock implements spec §4.10's follow-up session lock:
// when a session is bound and this query carries no fresh hint or entity,
// skip straight to the bound case.
func (o *Orchestrator) tryActiveSessionLock(ctx context.Context, req Request) ([]models.RankedResult, bool) {
	if o.sessions == nil || req.SessionID == "" {
		return nil, false
	}
	boundCaseID, err := o.sessions.BoundCase(ctx, req.SessionID)
	if err != nil || boundCaseID == "" {
		return nil, false
	}

	analysis := o.analyzer.Analyze(req.Query)
	if analysis.CaseTitleHint != nil || len(analysis.LegalEntities) > 0 {
		return nil, false
	}

	c, err := o.cases.GetCase(ctx, boundCaseID)
	if err != nil || c == nil {
		return nil, false
	}

	return []models.RankedResult{{
		ID: c.ID, Score: 1.0, Text: c.CaseName,
		CaseID: c.ID, CaseNumber: c.CaseNumber, CaseTitle: c.CaseName,
		Court: c.Court, Status: string(c.Status),
	}}, true
}

func (o *Orchestrator) recordSession(ctx context.Context, req Request, hint, resolvedCaseID string) {
	if o.sessions == nil || req.SessionID == "" {
		return
	}
	if err := o.sessions.RecordTurn(ctx, req.SessionID, req.Query, hint, resolvedCaseID); err != nil {
		o.logError(req, "session record failed", err)
	}
}

func (o *Orchestrator) logError(req Request, msg string, err error) {
	if o.logger != nil {
		o.logger.WithField("query", req.Query).ErrorWithErr(err, msg)
	}
}

// normalizeScores implements spec §4.10 step 6: prefer the fused combined
// score when available, otherwise leave stage-1 score in place.
func normalizeScores(results []models.RankedResult) {
	for i := range results {
		if results[i].CombinedScore != nil {
			results[i].Score = *results[i].CombinedScore
		}
	}
}

// annotate implements spec §4.10 step 7: qa_rank, elapsed time, and the
// retrieval method tag on every result.
func annotate(results []models.RankedResult, start time.Time, method models.RetrievalMethod) []models.RankedResult {
	elapsed := time.Since(start)
	for i := range results {
		results[i].QARank = i + 1
		results[i].QARelevanceScore = results[i].Score
		results[i].RetrievalTime = elapsed
		if results[i].RetrievalMethod == "" {
			results[i].RetrievalMethod = method
		}
	}
	return results
}
