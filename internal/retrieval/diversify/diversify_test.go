package diversify

import (
	"testing"

	"github.com/faizrashid/nazeer/pkg/models"
)

func TestDiversifyRejectsNearDuplicates(t *testing.T) {
	f := New()
	candidates := []models.RankedResult{
		{ID: "a", Text: "the accused was convicted of theft of a motor vehicle in karachi"},
		{ID: "b", Text: "the accused was convicted of theft of a motor vehicle in lahore"},
		{ID: "c", Text: "the family court granted custody of the minor children to the mother"},
	}
	out := f.Apply(candidates, 2, nil)
	if len(out) != 2 {
		t.Fatalf("expected near-duplicate b rejected, got %+v", out)
	}
	ids := map[string]bool{}
	for _, r := range out {
		ids[r.ID] = true
	}
	if !ids["a"] || !ids["c"] {
		t.Errorf("expected a and c to survive, got %+v", out)
	}
}

func TestDiversifyBackfillsWhenShortOfK(t *testing.T) {
	f := New()
	candidates := []models.RankedResult{
		{ID: "a", Text: "motor vehicle theft case one"},
		{ID: "b", Text: "motor vehicle theft case one"},
	}
	out := f.Apply(candidates, 2, nil)
	if len(out) != 2 {
		t.Fatalf("expected backfill to reach k=2, got %d", len(out))
	}
}

func TestPrioritizeHintReordersMatchesFirst(t *testing.T) {
	f := New()
	hint := "Ali vs State"
	candidates := []models.RankedResult{
		{ID: "other", Text: "unrelated", CaseTitle: "Khan vs Punjab"},
		{ID: "match", Text: "on point", CaseTitle: "ALI   VS. STATE"},
	}
	out := f.Apply(candidates, 2, &hint)
	if out[0].ID != "match" {
		t.Fatalf("expected hint match first, got %+v", out)
	}
}

func TestPrioritizeHintReturnsUnchangedWhenNoMatch(t *testing.T) {
	f := New()
	hint := "Nonexistent vs Nobody"
	candidates := []models.RankedResult{
		{ID: "a", Text: "one", CaseTitle: "Khan vs Punjab"},
		{ID: "b", Text: "two", CaseTitle: "Ali vs State"},
	}
	out := f.Apply(candidates, 2, &hint)
	if len(out) != 2 || out[0].ID != "a" {
		t.Fatalf("expected original order preserved, got %+v", out)
	}
}

func TestJaccardIdenticalSetsIsOne(t *testing.T) {
	a := tokenSet("one two three")
	b := tokenSet("one two three")
	if sim := jaccard(a, b); sim != 1.0 {
		t.Errorf("expected similarity 1.0, got %f", sim)
	}
}

func TestNormalizeTitleCollapsesPunctuation(t *testing.T) {
	if got := normalizeTitle("Ali   vs. State"); got != "ali vs state" {
		t.Errorf("expected normalized title, got %q", got)
	}
}
