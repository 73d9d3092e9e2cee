package models

// TermType is the kind of legal term a TermOccurrence instance names.
type TermType string

const (
	TermTypeSection    TermType = "section"
	TermTypeCitation   TermType = "citation"
	TermTypeCourt      TermType = "court"
	TermTypeJudge      TermType = "judge"
	TermTypeAdvocate   TermType = "advocate"
	TermTypeParty      TermType = "party"
	TermTypeCaseType   TermType = "case_type"
	TermTypeYear       TermType = "year"
	TermTypeStatus     TermType = "status"
	TermTypeBenchType  TermType = "bench_type"
	TermTypeAppeal     TermType = "appeal"
	TermTypePetitioner TermType = "petitioner"
	TermTypeLegalIssue TermType = "legal_issue"
)

// LegalTerm is a canonicalized legal term (e.g. "s. 302 PPC") independent
// of any single occurrence in a document.
type LegalTerm struct {
	Type          TermType `json:"type"`
	CanonicalForm string   `json:"canonical_form"`
	StatuteCode   string   `json:"statute_code,omitempty"`
	SectionNum    string   `json:"section_num,omitempty"`
}

// TermOccurrence is one appearance of a LegalTerm in a specific case (and
// optionally document), unique per (Term, CaseID, StartChar, EndChar).
type TermOccurrence struct {
	Term         LegalTerm `json:"term"`
	CaseID       string    `json:"case_id"`
	DocumentID   *string   `json:"document_id,omitempty"`
	StartChar    int       `json:"start_char"`
	EndChar      int       `json:"end_char"`
	Page         *int      `json:"page,omitempty"`
	SurfaceText  string    `json:"surface_text"`
	Confidence   float64   `json:"confidence"`
	SourceRule   string    `json:"source_rule"`
	RulesVersion string    `json:"rules_version"`
}
