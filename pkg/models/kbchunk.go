package models

import "time"

// SourceType is what a KBChunk was derived from.
type SourceType string

const (
	SourceTypeCaseMetadata SourceType = "case_metadata"
	SourceTypeCaseDocument SourceType = "case_document"
	SourceTypeJudgment     SourceType = "judgment"
	SourceTypeOrder        SourceType = "order"
	SourceTypeComment      SourceType = "comment"
	SourceTypeQAChunk      SourceType = "qa_chunk"
	SourceTypeLegalText    SourceType = "legal_text"
)

// LegalEntity is a {type, value} pair extracted from chunk text (court,
// judge, party, statute section, ...), kept as a loose pair per spec so
// new entity kinds never require a schema migration.
type LegalEntity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// KBChunk is a retrievable, canonically-tagged slice of case or statute
// text. (SourceType, SourceID) and ContentHash are each unique across the
// store; every persisted chunk has IsProcessed=true.
type KBChunk struct {
	ID       string     `json:"id" validate:"required"`
	SourceType SourceType `json:"source_type" validate:"required"`
	SourceID   string     `json:"source_id" validate:"required"`

	SourceCaseID     *string `json:"source_case_id,omitempty"`
	SourceDocumentID *string `json:"source_document_id,omitempty"`

	ContentText    string `json:"content_text" validate:"required"`
	ContentSummary string `json:"content_summary,omitempty"`

	Court          string        `json:"court,omitempty"`
	CaseNumber     string        `json:"case_number,omitempty"`
	CaseTitle      string        `json:"case_title,omitempty"`
	LegalDomain    string        `json:"legal_domain,omitempty"`
	LegalConcepts  []string      `json:"legal_concepts,omitempty"`
	LegalEntities  []LegalEntity `json:"legal_entities,omitempty"`
	Citations      []string      `json:"citations,omitempty"`

	VectorID       string `json:"vector_id,omitempty"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	EmbeddingDim   int    `json:"embedding_dim,omitempty"`

	ContentQualityScore float64 `json:"content_quality_score" validate:"min=0,max=1"`
	LegalRelevanceScore float64 `json:"legal_relevance_score" validate:"min=0,max=1"`
	CompletenessScore   float64 `json:"completeness_score" validate:"min=0,max=1"`

	ContentHash string `json:"content_hash" validate:"required"`
	IsProcessed bool   `json:"is_processed"`

	ParagraphNo  int    `json:"paragraph_no,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
	ContentType  string `json:"content_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProcessingLogEntry records one C3 ingestion attempt, keyed for idempotency
// by (RulesVersion, TextHash, CaseID, DocumentID).
type ProcessingLogEntry struct {
	CaseID         string    `json:"case_id"`
	DocumentID     string    `json:"document_id,omitempty"`
	RulesVersion   string    `json:"rules_version"`
	TextHash       string    `json:"text_hash"`
	TermsExtracted int       `json:"terms_extracted"`
	ProcessingTime time.Duration `json:"processing_time"`
	IsSuccessful   bool      `json:"is_successful"`
	CreatedAt      time.Time `json:"created_at"`
}
