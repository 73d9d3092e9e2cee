// Package queryanalysis implements the Query Analyzer (C4): intent
// classification, legal-entity extraction, specificity scoring, term
// expansion, and search-strategy selection for one incoming question.
package queryanalysis

import (
	"regexp"
	"strings"

	"github.com/faizrashid/nazeer/internal/legalref"
)

// Intent is the classified purpose of a query.
type Intent string

const (
	IntentCaseLookup           Intent = "case_lookup"
	IntentLegalResearch        Intent = "legal_research"
	IntentPrecedentSearch      Intent = "precedent_search"
	IntentProceduralInquiry    Intent = "procedural_inquiry"
	IntentFactualSearch        Intent = "factual_search"
	IntentComparativeAnalysis  Intent = "comparative_analysis"
)

// EntityType is the kind of legal entity C4 extracted.
type EntityType string

const (
	EntityStatute    EntityType = "statute"
	EntityCitation   EntityType = "citation"
	EntityCaseNumber EntityType = "case_number"
	EntityCourt      EntityType = "court"
	EntityConcept    EntityType = "concept"
	EntityProcedure  EntityType = "procedure"
)

// Entity is one extracted legal entity with its position in the query.
type Entity struct {
	Type       EntityType
	Text       string
	Position   int
	Confidence float64
	Normalized string
}

// SearchStrategy is the retrieval plan C10 follows for this query.
type SearchStrategy string

const (
	StrategyExactMatchPriority   SearchStrategy = "exact_match_priority"
	StrategyPrecisionFocused     SearchStrategy = "precision_focused"
	StrategySemanticHybrid       SearchStrategy = "semantic_hybrid"
	StrategyBalancedHybrid       SearchStrategy = "balanced_hybrid"
	StrategySemanticExpansion    SearchStrategy = "semantic_expansion"
	StrategyComprehensiveCoverage SearchStrategy = "comprehensive_coverage"
)

// Analysis is C4's full output for one query (spec §4.4).
type Analysis struct {
	Intent              Intent
	Confidence          float64
	LegalEntities       []Entity
	QueryType           string
	SpecificityScore    float64
	ExpansionTerms      []string
	SemanticConcepts    []string
	SearchStrategy      SearchStrategy
	ExpectedResultTypes []string
	BoostFactors        map[string]float64
	CaseTitleHint       *string
}

type intentPattern struct {
	intent Intent
	weight float64
	re     *regexp.Regexp
}

var intentPatterns = []intentPattern{
	{IntentCaseLookup, 0.9, regexp.MustCompile(`(?i)case\s*(no\.?|number)|details for|status of case|bring up case`)},
	{IntentPrecedentSearch, 0.9, regexp.MustCompile(`(?i)precedent|similar (case|judgment|ruling)|cases like`)},
	{IntentProceduralInquiry, 0.85, regexp.MustCompile(`(?i)procedure|how (do|to) (i |we )?file|process for|steps to|what is the process`)},
	{IntentComparativeAnalysis, 0.8, regexp.MustCompile(`(?i)compare|difference between|versus\b|\bvs\.?\s+.*\bvs\.?\b`)},
	{IntentFactualSearch, 0.75, regexp.MustCompile(`(?i)^what is|^define|meaning of|^who is`)},
}

// entityWeights feeds the specificity score (spec §4.4).
var entityWeights = map[EntityType]float64{
	EntityCitation:   0.3,
	EntityCaseNumber: 0.25,
	EntityStatute:    0.2,
	EntityCourt:      0.1,
	EntityConcept:    0.15,
	EntityProcedure:  0.1,
}

var caseNumberRe = regexp.MustCompile(`(?i)\b([A-Za-z]+\.?\s*(Appeal|Petition|Misc\.?|Application)?)\s*(No\.?)?\s*(\d+)\s*/\s*(\d{4})\b`)

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
var statusTermRe = regexp.MustCompile(`(?i)\b(pending|disposed|dismissed|allowed|withdrawn|adjourned)\b`)
var partyVsRe = regexp.MustCompile(`(?i)\bvs?\.?\b|\bversus\b`)

var legalConcepts = []string{
	"fundamental rights", "due process", "res judicata", "habeas corpus",
	"natural justice", "double jeopardy", "locus standi", "ultra vires",
	"judicial review", "burden of proof", "stare decisis",
}

var legalProcedures = []string{
	"bail application", "writ petition", "revision petition", "appeal",
	"review petition", "stay order", "interim relief", "cross-examination",
}

// Analyzer is the Query Analyzer (C4). Stateless aside from its owned C1
// normalizer, matching the "data + pure functions" design note.
type Analyzer struct {
	normalizer *legalref.Normalizer
	expander   *expander
}

// NewAnalyzer builds an Analyzer with its own C1 normalizer and synonym table.
func NewAnalyzer() *Analyzer {
	return &Analyzer{normalizer: legalref.NewNormalizer(), expander: newExpander()}
}

// Analyze runs the full C4 pipeline over query (spec §4.4). Never panics:
// an empty or non-printable query produces the fallback analysis (spec §7
// MalformedQuery policy: intent=legal_research, confidence=0.5,
// strategy=balanced_hybrid).
func (a *Analyzer) Analyze(query string) (result Analysis) {
	defer func() {
		if r := recover(); r != nil {
			result = fallbackAnalysis()
		}
	}()

	trimmed := strings.TrimSpace(query)
	if trimmed == "" || !isPrintable(trimmed) {
		return fallbackAnalysis()
	}

	intent, confidence := classifyIntent(trimmed)
	entities := a.extractEntities(trimmed)
	specificity := specificityScore(trimmed, entities)
	expansion := a.expander.expand(trimmed, intent, entities)
	strategy := selectStrategy(intent, specificity)
	hint := extractCaseTitleHint(trimmed)

	return Analysis{
		Intent:              intent,
		Confidence:          confidence,
		LegalEntities:       entities,
		QueryType:           string(intent),
		SpecificityScore:    specificity,
		ExpansionTerms:      expansion,
		SemanticConcepts:    concepts(entities),
		SearchStrategy:      strategy,
		ExpectedResultTypes: expectedResultTypes(intent),
		BoostFactors:        boostFactors(intent),
		CaseTitleHint:       hint,
	}
}

func fallbackAnalysis() Analysis {
	return Analysis{
		Intent:         IntentLegalResearch,
		Confidence:     0.5,
		QueryType:      string(IntentLegalResearch),
		SearchStrategy: StrategyBalancedHybrid,
		BoostFactors:   map[string]float64{},
	}
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < 0x20 && r != '\t' {
			return false
		}
	}
	return true
}

// classifyIntent applies the weighted regex table; confidence is the
// winning pattern's weight, or 0.5 for the legal_research default.
func classifyIntent(query string) (Intent, float64) {
	best := IntentLegalResearch
	bestWeight := 0.0
	for _, p := range intentPatterns {
		if p.re.MatchString(query) && p.weight > bestWeight {
			best = p.intent
			bestWeight = p.weight
		}
	}
	if bestWeight == 0 {
		return IntentLegalResearch, 0.5
	}
	return best, bestWeight
}

// extractEntities reuses C1's reference extraction for statutes/citations/
// courts, and adds case-number, concept, and procedure patterns of its own.
func (a *Analyzer) extractEntities(query string) []Entity {
	var entities []Entity

	normalized := a.normalizer.Normalize(query)
	for _, ref := range normalized.References {
		var t EntityType
		switch ref.Kind {
		case legalref.KindSection, legalref.KindSubSection, legalref.KindConstitutional:
			t = EntityStatute
		case legalref.KindCaseCitation:
			t = EntityCitation
		case legalref.KindCourt:
			t = EntityCourt
		default:
			continue
		}
		entities = append(entities, Entity{
			Type: t, Text: ref.Surface, Position: ref.Start,
			Confidence: 0.9, Normalized: ref.Canonical,
		})
	}

	if loc := caseNumberRe.FindStringIndex(query); loc != nil {
		entities = append(entities, Entity{
			Type: EntityCaseNumber, Text: query[loc[0]:loc[1]], Position: loc[0],
			Confidence: 0.9, Normalized: normalizeCaseNumber(query[loc[0]:loc[1]]),
		})
	}

	lower := strings.ToLower(query)
	for _, c := range legalConcepts {
		if idx := strings.Index(lower, c); idx >= 0 {
			entities = append(entities, Entity{Type: EntityConcept, Text: c, Position: idx, Confidence: 0.9, Normalized: c})
		}
	}
	for _, p := range legalProcedures {
		if idx := strings.Index(lower, p); idx >= 0 {
			entities = append(entities, Entity{Type: EntityProcedure, Text: p, Position: idx, Confidence: 0.9, Normalized: p})
		}
	}

	return entities
}

func normalizeCaseNumber(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " / ", "/")
	return s
}

// specificityScore implements spec §4.4's formula.
func specificityScore(query string, entities []Entity) float64 {
	words := strings.Fields(query)
	var score float64
	switch {
	case len(words) <= 1:
		score = 0.1
	case len(words) <= 3:
		score = 0.3
	case len(words) <= 6:
		score = 0.5
	default:
		score = 0.7
	}

	for _, e := range entities {
		score += entityWeights[e.Type]
	}

	if strings.Contains(query, `"`) {
		score += 0.1
	}
	if partyVsRe.MatchString(query) {
		score += 0.05
	}
	if yearRe.MatchString(query) {
		score += 0.05
	}
	if statusTermRe.MatchString(query) {
		score += 0.05
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// selectStrategy implements spec §4.4's (intent, specificity) → strategy table.
func selectStrategy(intent Intent, specificity float64) SearchStrategy {
	switch {
	case specificity > 0.7:
		if intent == IntentCaseLookup {
			return StrategyExactMatchPriority
		}
		return StrategyPrecisionFocused
	case specificity > 0.4:
		if intent == IntentLegalResearch || intent == IntentPrecedentSearch {
			return StrategySemanticHybrid
		}
		return StrategyBalancedHybrid
	default:
		if intent == IntentFactualSearch {
			return StrategySemanticExpansion
		}
		return StrategyComprehensiveCoverage
	}
}

func concepts(entities []Entity) []string {
	var out []string
	for _, e := range entities {
		if e.Type == EntityConcept {
			out = append(out, e.Normalized)
		}
	}
	return out
}

func expectedResultTypes(intent Intent) []string {
	switch intent {
	case IntentCaseLookup:
		return []string{"case_record"}
	case IntentPrecedentSearch:
		return []string{"judgment", "case_record"}
	case IntentProceduralInquiry:
		return []string{"procedure_guide", "order"}
	case IntentFactualSearch:
		return []string{"statute_entry", "legal_text"}
	case IntentComparativeAnalysis:
		return []string{"judgment", "statute_entry"}
	default:
		return []string{"judgment", "case_record", "statute_entry"}
	}
}

func boostFactors(intent Intent) map[string]float64 {
	switch intent {
	case IntentCaseLookup:
		return map[string]float64{"case_metadata": 1.5}
	case IntentPrecedentSearch:
		return map[string]float64{"judgment": 1.3}
	default:
		return map[string]float64{}
	}
}

var titleHintMarkers = []string{
	"details for", "advocates involved in", "fir number for", "status of",
	"who are the advocates in", "hearing date for", "bench for",
}

var titleShapeRe = regexp.MustCompile(`(?i)[A-Za-z][A-Za-z .]+\s+(?:vs\.?|v\.|versus)\s+[A-Za-z][A-Za-z .]+`)

// extractCaseTitleHint implements spec §4.4's marker-then-regex-fallback scan.
func extractCaseTitleHint(query string) *string {
	lower := strings.ToLower(query)
	for _, marker := range titleHintMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 {
			rest := strings.TrimSpace(query[idx+len(marker):])
			if rest != "" {
				return &rest
			}
		}
	}

	if loc := caseNumberRe.FindStringIndex(query); loc != nil {
		hint := query[loc[0]:loc[1]]
		return &hint
	}

	if loc := titleShapeRe.FindStringIndex(query); loc != nil {
		hint := strings.TrimSpace(query[loc[0]:loc[1]])
		return &hint
	}

	return nil
}
