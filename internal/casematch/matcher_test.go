package casematch

import (
	"context"
	"testing"
	"time"

	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

func seedMatcherCases(t *testing.T) *storage.MemoryCaseReadStore {
	t.Helper()
	store := storage.NewMemoryCaseReadStore()
	now := time.Now()
	c := &models.Case{
		ID: "case-42", CaseNumber: "T.A. 2/2023", CaseName: "Ali vs State",
		Court: "Islamabad High Court", Status: models.CaseStatusActive,
		Language: "en", URL: "https://example.test/case-42",
		SourceDatabase: "test", ScrapedAt: now, LastUpdated: now, DecisionDate: &now,
	}
	detail := &models.CaseDetail{
		CaseID: "case-42", CaseDescription: "Appeal against conviction.",
		AdvocatesPetitioner: []string{"Barrister Khan"},
		FIR:                 &models.FIR{Number: "9/2022", PoliceStation: "City", UnderSection: "302 PPC"},
	}
	orders := []*models.Order{{CaseID: "case-42", HearingDate: now, Bench: "Single Bench", ShortOrder: "Adjourned."}}
	store.Seed(c, detail, orders, nil, nil, nil)
	return store
}

func TestFindExactMatchIExact(t *testing.T) {
	m := NewMatcher(seedMatcherCases(t))
	results, err := m.FindExactMatch(context.Background(), "T.A. 2/2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].SourceMatchStage != "iexact" {
		t.Fatalf("expected one iexact match, got %+v", results)
	}
	if results[0].Score != 1.0 || results[0].MatchType != "exact_case_number" {
		t.Errorf("expected score=1.0 and match_type=exact_case_number, got %+v", results[0])
	}
}

func TestFindExactMatchNormalized(t *testing.T) {
	m := NewMatcher(seedMatcherCases(t))
	results, err := m.FindExactMatch(context.Background(), "2  /  2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].SourceMatchStage != "normalized" {
		t.Fatalf("expected one normalized match, got %+v", results)
	}
}

func TestFindExactMatchPattern(t *testing.T) {
	m := NewMatcher(seedMatcherCases(t))
	results, err := m.FindExactMatch(context.Background(), "details about T.A. 2/2023 Civil (SB)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one match via pattern extraction")
	}
}

func TestFindExactMatchTitleContainsFallback(t *testing.T) {
	m := NewMatcher(seedMatcherCases(t))
	results, err := m.FindExactMatch(context.Background(), "Ali vs State")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].SourceMatchStage != "title_contains" {
		t.Fatalf("expected one title_contains match, got %+v", results)
	}
}

func TestFindExactMatchNoHit(t *testing.T) {
	m := NewMatcher(seedMatcherCases(t))
	results, err := m.FindExactMatch(context.Background(), "Nonexistent Case 99/9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected no match, got %+v", results)
	}
}

func TestFindExactMatchDossierIncludesFIR(t *testing.T) {
	m := NewMatcher(seedMatcherCases(t))
	results, _ := m.FindExactMatch(context.Background(), "T.A. 2/2023")
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].Extras["fir_number"] != "9/2022" {
		t.Errorf("expected fir_number in extras, got %+v", results[0].Extras)
	}
}
