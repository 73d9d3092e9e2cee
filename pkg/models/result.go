package models

import "time"

// RetrievalMethod is the discriminant tag for how a RankedResult was
// produced. Consumers switch on this tag rather than on result type —
// there is exactly one result shape (see design note in SPEC_FULL.md §9).
type RetrievalMethod string

const (
	RetrievalMethodExactCaseNumber     RetrievalMethod = "exact_case_number"
	RetrievalMethodTwoStageQA          RetrievalMethod = "two_stage_qa"
	RetrievalMethodActiveCaseLock      RetrievalMethod = "active_case_lock"
	RetrievalMethodFallbackQAKB        RetrievalMethod = "fallback_qa_kb"
	RetrievalMethodFallbackDBEmbedding RetrievalMethod = "fallback_db_embedding"
	RetrievalMethodFallbackDBSimple    RetrievalMethod = "fallback_db_simple"
)

// RankedResult is the one result shape returned by the orchestrator and
// every stage that produces candidates. Strongly-typed fields cover the
// common case; Extras is the open bag for the long tail (fir_number,
// short_order, advocates_*, ...). Downstream consumers check presence in
// Extras, never type.
type RankedResult struct {
	ID       string  `json:"id"`
	Score    float64 `json:"score"`
	Text     string  `json:"text"`
	CaseID   string  `json:"case_id,omitempty"`
	CaseNumber string `json:"case_number,omitempty"`
	CaseTitle  string `json:"case_title,omitempty"`
	Court      string `json:"court,omitempty"`
	Status     string `json:"status,omitempty"`

	Metadata map[string]string      `json:"metadata,omitempty"`
	Extras   map[string]interface{} `json:"extras,omitempty"`

	// Stage-1/stage-2 scoring detail, populated as available.
	RerankScore           *float64 `json:"rerank_score,omitempty"`
	NormalizedRerankScore *float64 `json:"normalized_rerank_score,omitempty"`
	CombinedScore         *float64 `json:"combined_score,omitempty"`

	MatchType          string          `json:"match_type,omitempty"`
	SourceMatchStage   string          `json:"source_match_stage,omitempty"`
	QARank             int             `json:"qa_rank,omitempty"`
	QARelevanceScore   float64         `json:"qa_relevance_score,omitempty"`
	RetrievalMethod    RetrievalMethod `json:"retrieval_method,omitempty"`
	RetrievalTime      time.Duration   `json:"retrieval_time,omitempty"`
}
