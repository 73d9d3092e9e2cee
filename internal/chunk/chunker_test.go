package chunk

import (
	"strings"
	"testing"
)

func buildLongText(n int) string {
	var b strings.Builder
	sentence := "The court heard arguments regarding section 302 PPC and the accused was charged under criminal charges. "
	for b.Len() < n {
		b.WriteString(sentence)
	}
	return b.String()[:n]
}

func TestChunkRespectsMinAndForwardProgress(t *testing.T) {
	c := NewChunker(DefaultConfig())
	text := buildLongText(5000)

	chunks := c.Chunk(text, CaseContext{CaseNo: "T.A. 2/2023", Court: "Islamabad High Court"}, "judgment", "order")

	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	for _, ch := range chunks {
		if len(ch.Text) < DefaultConfig().MinChars {
			t.Errorf("chunk shorter than min_chunk_chars: %d", len(ch.Text))
		}
	}
}

func TestChunkTerminatesOnShortInput(t *testing.T) {
	c := NewChunker(DefaultConfig())
	chunks := c.Chunk("too short", CaseContext{}, "judgment", "order")
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for text under min_chunk_chars, got %d", len(chunks))
	}
}

func TestClassifyDomainCriminalTieBreak(t *testing.T) {
	text := "The plaintiff filed a suit but the accused was charged under section 302 ppc with criminal charges."
	if got := classifyDomain(text); got != "criminal" {
		t.Errorf("expected criminal tie-break, got %q", got)
	}
}

func TestClassifyDomainGeneralWhenNoKeywords(t *testing.T) {
	if got := classifyDomain("the weather was nice today"); got != "general" {
		t.Errorf("expected general, got %q", got)
	}
}

func TestAIContextScoreCapped(t *testing.T) {
	m := Metadata{LegalDomain: "criminal", Sections: []string{"s. 302 PPC"}, Court: "Islamabad High Court"}
	score := aiContextScore(strings.Repeat("x", 600), m)
	if score > 1.0 {
		t.Errorf("score exceeded cap: %f", score)
	}
}
