package queryanalysis

import "testing"

func TestAnalyzeCaseLookupIntent(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze("what is the status of case W.P. 123/2023")
	if result.Intent != IntentCaseLookup {
		t.Errorf("expected case_lookup, got %s", result.Intent)
	}
	if result.SearchStrategy == "" {
		t.Error("expected a non-empty search strategy")
	}
}

func TestAnalyzePrecedentSearchIntent(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze("find similar case law regarding bail in narcotics offences")
	if result.Intent != IntentPrecedentSearch {
		t.Errorf("expected precedent_search, got %s", result.Intent)
	}
}

func TestAnalyzeExtractsStatuteEntity(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze("bail in narcotics offences under section 9 PPC")
	found := false
	for _, e := range result.LegalEntities {
		if e.Type == EntityStatute {
			found = true
		}
	}
	if !found {
		t.Error("expected a statute entity to be extracted")
	}
}

func TestAnalyzeMalformedQueryFallback(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze("   ")
	if result.Intent != IntentLegalResearch || result.Confidence != 0.5 {
		t.Errorf("expected fallback analysis, got %+v", result)
	}
	if result.SearchStrategy != StrategyBalancedHybrid {
		t.Errorf("expected balanced_hybrid fallback strategy, got %s", result.SearchStrategy)
	}
}

func TestAnalyzeSpecificityScoreCapped(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze(`"W.P. 123/2023" vs respondent in PLD 2023 SC 45 under section 302 PPC in 2023, status pending`)
	if result.SpecificityScore > 1.0 {
		t.Errorf("specificity exceeded cap: %f", result.SpecificityScore)
	}
}

func TestAnalyzeCaseTitleHintFromMarker(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze("details for Crl. Misc. 5/2024")
	if result.CaseTitleHint == nil {
		t.Fatal("expected a case title hint")
	}
}

func TestAnalyzeCaseTitleHintFromTitleShape(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze("what happened in Ali vs State")
	if result.CaseTitleHint == nil {
		t.Fatal("expected a case title hint from the vs-shape fallback")
	}
}

func TestAnalyzeExpansionCappedAndExcludesOriginalTerms(t *testing.T) {
	a := NewAnalyzer()
	result := a.Analyze("contract damages negligence appeal bail theft murder divorce")
	if len(result.ExpansionTerms) > 20 {
		t.Errorf("expansion terms exceeded cap: %d", len(result.ExpansionTerms))
	}
	for _, term := range result.ExpansionTerms {
		if term == "contract" {
			t.Error("expansion terms must not include original query terms")
		}
	}
}
