package legalref

import (
	"strings"
	"testing"
)

func TestNormalizeCanonicalizesKnownKinds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCanon string
	}{
		{"section", "charged under section 302 ppc", "s. 302 PPC"},
		{"article", "article 199 constitution", "Art. 199 Constitution"},
		{"citation", "PLD 2019 SC 123", "PLD 2019 SC 123"},
		{"rule", "rule 11 CPC", "Rule 11 CPC"},
		{"agency", "FIA investigation ongoing", "FIA investigation"},
	}

	n := NewNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := n.Normalize(tt.input)
			if len(res.References) == 0 {
				t.Fatalf("expected at least one reference, got none for %q", tt.input)
			}
			if !strings.Contains(res.ProcessedText, tt.wantCanon) {
				t.Errorf("processed text %q does not contain canonical form %q", res.ProcessedText, tt.wantCanon)
			}
		})
	}
}

func TestNormalizePriorityCitationBeforeSection(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize("Relying on PLD 2019 SC 123 and section 302 PPC, the court...")

	if len(res.References) < 2 {
		t.Fatalf("expected at least 2 references, got %d", len(res.References))
	}
	if res.References[0].Kind != KindCaseCitation {
		t.Errorf("expected citation to be emitted first, got %v", res.References[0].Kind)
	}
}

func TestNormalizeNoOverlappingSpans(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize("under section 302 PPC and sub-section 2 of section 497 of the code")

	for i := 0; i < len(res.References); i++ {
		for j := i + 1; j < len(res.References); j++ {
			a, b := res.References[i], res.References[j]
			ov := overlapLen(a.Start, a.End, b.Start, b.End)
			shorter := a.End - a.Start
			if b.End-b.Start < shorter {
				shorter = b.End - b.Start
			}
			if shorter > 0 && float64(ov) > 0.5*float64(shorter) {
				t.Errorf("references %+v and %+v overlap by more than 50%%", a, b)
			}
		}
	}
}

func TestNormalizeDuplicateKeysCollapse(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize("section 302 PPC ... later again section 302 PPC")

	count := 0
	for _, r := range res.References {
		if r.Kind == KindSection {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one deduplicated section reference, got %d", count)
	}
}

func TestNormalizeNeverPanics(t *testing.T) {
	n := NewNormalizer()
	res := n.Normalize("")
	if res.ProcessedText != "" {
		t.Errorf("expected empty processed text for empty input, got %q", res.ProcessedText)
	}
}
