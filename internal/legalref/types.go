// Package legalref canonicalizes Pakistani legal references (statute
// sections, constitutional articles, case citations, court references,
// rules/orders, agency references) found in arbitrary input text.
package legalref

// Kind identifies which legal-reference pattern a Reference was matched by.
type Kind string

const (
	KindSection       Kind = "section"
	KindSubSection    Kind = "sub_section"
	KindConstitutional Kind = "constitutional_article"
	KindCaseCitation  Kind = "case_citation"
	KindCourt         Kind = "court_reference"
	KindRuleOrder     Kind = "rule_order"
	KindAgency        Kind = "agency_reference"
)

// priority implements the "priority scale" of spec §4.1: case citations
// rank above everything, then constitutional articles, then sections,
// then court/agency references, with a generic floor below all of them.
func (k Kind) priority() int {
	switch k {
	case KindCaseCitation:
		return 6
	case KindConstitutional:
		return 4
	case KindRuleOrder:
		return 3
	case KindSection:
		return 2
	case KindSubSection:
		return 1
	case KindCourt, KindAgency:
		return 0
	default:
		return -1
	}
}

// Reference is one canonicalized legal reference found in text.
type Reference struct {
	Kind        Kind
	Surface     string
	Canonical   string
	Start       int
	End         int
	QARelevance float64
}

// QAContext aggregates the references found in one normalization pass for
// use as coarse retrieval metadata.
type QAContext struct {
	Acts           []string
	Courts         []string
	Years          []string
	ReferenceTypes []string
}

// Result is C1's output contract: {processed_text, references[], qa_context}.
type Result struct {
	ProcessedText string
	References    []Reference
	QAContext     QAContext
	Error         string
}

type candidate struct {
	kind        Kind
	start, end  int
	surface     string
	canonical   string
	key         string
	act         string
}
