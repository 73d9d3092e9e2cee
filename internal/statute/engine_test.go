package statute

import (
	"context"
	"testing"

	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

func seedCorpus(t *testing.T) storage.StatuteStore {
	t.Helper()
	store := storage.NewMemoryStatuteStore()
	entries := []*models.StatuteEntry{
		{Slug: "vehicle-theft", Title: "Motor Vehicle Theft Ordinance", Sections: []string{"s. 379 PPC"}, Tags: []string{"theft", "motor vehicle"}, PunishmentSummary: "Up to 7 years imprisonment.", Jurisdiction: "Pakistan", Active: true},
		{Slug: "banking-fraud", Title: "Banking Companies (Recovery of Loans) Ordinance", Tags: []string{"banking", "recovery"}, Jurisdiction: "Pakistan", Active: true},
		{Slug: "murder", Title: "Offences Against Human Body (PPC Chapter XVI)", Tags: []string{"murder", "criminal"}, Sections: []string{"s. 302 PPC"}, Jurisdiction: "Pakistan", Active: true},
		{Slug: "family-law", Title: "Muslim Family Laws Ordinance", Tags: []string{"marriage", "divorce", "family"}, Jurisdiction: "Pakistan", Active: true},
		{Slug: "carriage", Title: "Carriage by Air Act", Tags: []string{"transport"}, Jurisdiction: "Pakistan", Active: true},
	}
	for _, e := range entries {
		store.Upsert(context.Background(), e)
	}
	return store
}

func TestSearchExactPhraseShortCircuits(t *testing.T) {
	eng := NewEngine(seedCorpus(t))
	matches, err := eng.Search(context.Background(), "Muslim Family Laws Ordinance", SearchTypeAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].Relevance != scoreExactPhrase {
		t.Fatalf("expected one exact-phrase match at relevance 100, got %+v", matches)
	}
}

func TestSearchVehicleTheftExcludesUnrelatedEntries(t *testing.T) {
	eng := NewEngine(seedCorpus(t))
	matches, err := eng.Search(context.Background(), "car stolen from parking lot", SearchTypeAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range matches {
		if m.Entry.Slug == "banking-fraud" || m.Entry.Slug == "carriage" {
			t.Errorf("expected %s to be excluded from vehicle-theft results", m.Entry.Slug)
		}
	}
	found := false
	for _, m := range matches {
		if m.Entry.Slug == "vehicle-theft" {
			found = true
		}
	}
	if !found {
		t.Error("expected the vehicle theft ordinance to survive the filter")
	}
}

func TestSearchMurderTopicExcludesUnrelated(t *testing.T) {
	eng := NewEngine(seedCorpus(t))
	matches, err := eng.Search(context.Background(), "homicide sentencing guidelines", SearchTypeAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range matches {
		if m.Entry.Slug == "family-law" || m.Entry.Slug == "banking-fraud" {
			t.Errorf("expected %s excluded from murder/violence results", m.Entry.Slug)
		}
	}
}

func TestSearchOrdersByRelevanceThenTitle(t *testing.T) {
	eng := NewEngine(seedCorpus(t))
	matches, _ := eng.Search(context.Background(), "car stolen", SearchTypeAll)
	for i := 1; i < len(matches); i++ {
		if matches[i].Relevance > matches[i-1].Relevance {
			t.Fatalf("results not sorted by descending relevance: %+v", matches)
		}
	}
}

func TestSearchEmptyQueryReturnsNil(t *testing.T) {
	eng := NewEngine(seedCorpus(t))
	matches, err := eng.Search(context.Background(), "   ", SearchTypeAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches != nil {
		t.Errorf("expected nil results for an empty query, got %v", matches)
	}
}
