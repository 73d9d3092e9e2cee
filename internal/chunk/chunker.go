// Package chunk splits case and document text into token-budgeted,
// overlapping chunks with legal-domain classification and relevance
// scoring, the unit the retriever indexes and returns.
package chunk

import (
	"math"
	"strings"

	"github.com/faizrashid/nazeer/internal/legalref"
)

// Config holds the sliding-window chunking tunables (spec §4.2/§6 defaults).
type Config struct {
	TargetTokens  int
	OverlapTokens int
	MinChars      int
	MaxChars      int
	CharsPerToken float64
}

// DefaultConfig returns the spec-mandated default tunables.
func DefaultConfig() Config {
	return Config{
		TargetTokens:  700,
		OverlapTokens: 100,
		MinChars:      200,
		MaxChars:      1000,
		CharsPerToken: 0.75,
	}
}

// CaseContext carries the per-document metadata that is constant across
// all chunks produced from one document (as opposed to sections[], which
// is extracted per chunk by C1).
type CaseContext struct {
	CaseNo string
	Court  string
	Judges []string
	Year   string
}

// Metadata is the structured, per-chunk metadata spec §4.2 requires.
type Metadata struct {
	CaseNo         string
	Court          string
	Judges         []string
	Year           string
	Sections       []string
	ParagraphNo    int
	DocumentType   string
	ContentType    string
	LegalDomain    string
	AIContextScore float64
	QARelevance    float64
}

// Chunk is one token-budgeted slice of text plus its structured metadata.
type Chunk struct {
	Text     string
	Metadata Metadata
}

// Chunker splits text into overlapping chunks. Stateless aside from its
// injected Normalizer and Config, per the "data + pure functions" design
// note: the same (text, context) always produces the same chunks.
type Chunker struct {
	cfg        Config
	normalizer *legalref.Normalizer
}

// NewChunker builds a Chunker with the given config and an owned C1 normalizer.
func NewChunker(cfg Config) *Chunker {
	return &Chunker{cfg: cfg, normalizer: legalref.NewNormalizer()}
}

// Chunk runs C1 over text, then slides a token-budgeted window across the
// normalized text, emitting chunks with per-chunk classification and
// relevance scores (spec §4.2 algorithm).
func (c *Chunker) Chunk(text string, ctx CaseContext, documentType, contentType string) []Chunk {
	normalized := c.normalizer.Normalize(text)
	processed := normalized.ProcessedText

	targetChars := int(math.Floor(float64(c.cfg.TargetTokens) * c.cfg.CharsPerToken))
	overlapChars := int(math.Floor(float64(c.cfg.OverlapTokens) * c.cfg.CharsPerToken))
	lookback := 200

	var chunks []Chunk
	start := 0
	length := len(processed)

	for start < length {
		end := start + targetChars
		if end > length {
			end = length
		}

		if end < length {
			searchFrom := end - lookback
			if searchFrom < start {
				searchFrom = start
			}
			window := processed[searchFrom:end]
			if idx := strings.LastIndex(window, "."); idx >= 0 {
				candidateEnd := searchFrom + idx + 1
				if candidateEnd > start+c.cfg.MinChars {
					end = candidateEnd
				}
			}
		}

		segment := processed[start:end]
		if len(segment) >= c.cfg.MinChars {
			meta := c.buildMetadata(segment, ctx, len(chunks)+1, documentType, contentType)
			chunks = append(chunks, Chunk{Text: segment, Metadata: meta})
		}

		nextStart := end - overlapChars
		if nextStart <= start {
			// Forward-progress guarantee (spec §8 invariant): always
			// advance by at least one character so the loop terminates.
			nextStart = start + 1
		}
		start = nextStart
		if end >= length {
			break
		}
	}

	return chunks
}

func (c *Chunker) buildMetadata(segment string, ctx CaseContext, paragraphNo int, documentType, contentType string) Metadata {
	refs := c.normalizer.Normalize(segment)
	var sections []string
	for _, r := range refs.References {
		if r.Kind == legalref.KindSection || r.Kind == legalref.KindSubSection {
			sections = append(sections, r.Canonical)
		}
	}

	m := Metadata{
		CaseNo:       ctx.CaseNo,
		Court:        ctx.Court,
		Judges:       ctx.Judges,
		Year:         ctx.Year,
		Sections:     sections,
		ParagraphNo:  paragraphNo,
		DocumentType: documentType,
		ContentType:  contentType,
	}
	m.LegalDomain = classifyDomain(segment)
	m.AIContextScore = aiContextScore(segment, m)
	m.QARelevance = qaRelevanceScore(segment, m)
	return m
}
