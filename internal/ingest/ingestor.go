// Package ingest builds the comprehensive per-case text blob, drives C2
// chunking over it, and persists the resulting KBChunk rows — the
// Knowledge Ingestor (C3).
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/faizrashid/nazeer/internal/chunk"
	"github.com/faizrashid/nazeer/internal/observability"
	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

// RulesVersion identifies the current ingestion-rule generation for the
// idempotency check; bump it whenever chunking/scoring rules change.
const RulesVersion = "v1"

// boilerplateMarkers are stripped before concatenation (spec §6: "Text is
// UTF-8, may contain boilerplate ... which C3 strips before concatenation").
var boilerplateMarkers = []string{
	"ORDER SHEET",
	"IN THE ISLAMABAD HIGH COURT",
	"IN THE COURT OF",
}

// Result is one ProcessCaseForQA outcome.
type Result struct {
	CaseID        string
	ChunksWritten int
	Skipped       bool
	Success       bool
}

// ChunkIndexer pushes a persisted chunk into the vector index so C7's
// primary (non-fallback) path stays current with the KB store. Satisfied
// by *semantic.Retriever; kept as a narrow interface to avoid ingest
// depending on the vector-index client directly.
type ChunkIndexer interface {
	IndexChunk(ctx context.Context, chunk *models.KBChunk) error
}

// Ingestor is the Knowledge Ingestor (C3).
type Ingestor struct {
	cases   storage.CaseReadStore
	chunks  storage.KBChunkStore
	log     storage.ProcessingLogStore
	chunker *chunk.Chunker
	logger  *observability.Logger
	indexer ChunkIndexer
}

// NewIngestor wires C3's storage collaborators and chunker.
func NewIngestor(cases storage.CaseReadStore, chunks storage.KBChunkStore, log storage.ProcessingLogStore, chunker *chunk.Chunker, logger *observability.Logger) *Ingestor {
	return &Ingestor{cases: cases, chunks: chunks, log: log, chunker: chunker, logger: logger}
}

// WithIndexer attaches a ChunkIndexer so persisted chunks are also pushed
// to the vector index. Returns the receiver for chained construction.
func (ing *Ingestor) WithIndexer(indexer ChunkIndexer) *Ingestor {
	ing.indexer = indexer
	return ing
}

// ProcessCaseForQA builds the comprehensive text for caseID, chunks it,
// and persists the result (spec §4.3). force bypasses the idempotency
// check and deletes existing chunks for the case first.
func (ing *Ingestor) ProcessCaseForQA(ctx context.Context, caseID string, force bool) (Result, error) {
	start := time.Now()
	res := Result{CaseID: caseID}

	c, err := ing.cases.GetCase(ctx, caseID)
	if err != nil || c == nil {
		ing.recordFailure(ctx, caseID, "", start, fmt.Errorf("case not found: %w", err))
		return res, nil
	}

	text, err := ing.buildComprehensiveText(ctx, c)
	if err != nil {
		ing.recordFailure(ctx, caseID, "", start, err)
		return res, nil
	}

	hash := contentHash("case", caseID, text)

	if !force {
		if _, found, _ := ing.log.FindEntry(ctx, RulesVersion, hash, caseID, ""); found {
			res.Skipped = true
			res.Success = true
			return res, nil
		}
	}

	if force {
		_ = ing.chunks.DeleteByCase(ctx, caseID)
	}

	if strings.TrimSpace(text) == "" {
		ing.log.Append(ctx, &models.ProcessingLogEntry{
			CaseID: caseID, RulesVersion: RulesVersion, TextHash: hash,
			ProcessingTime: time.Since(start), IsSuccessful: true,
		})
		res.Success = true
		return res, nil
	}

	chunkCtx := chunk.CaseContext{CaseNo: c.CaseNumber, Court: c.Court, Judges: c.Judges, Year: yearOf(c)}
	chunks := ing.chunker.Chunk(text, chunkCtx, "judgment", "case_metadata")

	termsExtracted := 0
	for i, ch := range chunks {
		kc := ing.toKBChunk(caseID, i, ch, c)
		if err := ing.chunks.Upsert(ctx, kc); err != nil {
			ing.recordFailure(ctx, caseID, hash, start, err)
			return res, nil
		}
		if ing.indexer != nil {
			if err := ing.indexer.IndexChunk(ctx, kc); err != nil && ing.logger != nil {
				ing.logger.WithField("case_id", caseID).ErrorWithErr(err, "vector index upsert failed")
			}
		}
		termsExtracted += len(ch.Metadata.Sections)
	}

	ing.log.Append(ctx, &models.ProcessingLogEntry{
		CaseID: caseID, RulesVersion: RulesVersion, TextHash: hash,
		TermsExtracted: termsExtracted, ProcessingTime: time.Since(start), IsSuccessful: true,
	})

	res.ChunksWritten = len(chunks)
	res.Success = true
	return res, nil
}

func (ing *Ingestor) recordFailure(ctx context.Context, caseID, hash string, start time.Time, err error) {
	if ing.logger != nil {
		ing.logger.WithField("case_id", caseID).ErrorWithErr(err, "ingestion failed")
	}
	ing.log.Append(ctx, &models.ProcessingLogEntry{
		CaseID: caseID, RulesVersion: RulesVersion, TextHash: hash,
		ProcessingTime: time.Since(start), IsSuccessful: false,
	})
}

func yearOf(c *models.Case) string {
	if c.DecisionDate != nil {
		return fmt.Sprintf("%d", c.DecisionDate.Year())
	}
	return ""
}

// buildComprehensiveText concatenates labelled sections in the order
// spec §4.3 specifies: PDF content, basic case info, case detail fields,
// recent orders, recent comments, case CMs, parties.
func (ing *Ingestor) buildComprehensiveText(ctx context.Context, c *models.Case) (string, error) {
	var b strings.Builder

	docTexts, _ := ing.cases.ListDocumentTexts(ctx, c.ID)
	if len(docTexts) > 0 {
		b.WriteString("=== Document Text ===\n")
		for _, dt := range docTexts {
			b.WriteString(stripBoilerplate(dt.CleanText))
			b.WriteString("\n")
		}
	}

	b.WriteString("=== Case Information ===\n")
	fmt.Fprintf(&b, "Case Number: %s\n", orPlaceholder(c.CaseNumber))
	fmt.Fprintf(&b, "Case Title: %s\n", orPlaceholder(c.CaseName))
	fmt.Fprintf(&b, "Court: %s\n", orPlaceholder(c.Court))
	fmt.Fprintf(&b, "Status: %s\n", c.Status)

	if detail, _ := ing.cases.GetCaseDetail(ctx, c.ID); detail != nil {
		b.WriteString("=== Case Detail ===\n")
		if len(detail.AdvocatesPetitioner) > 0 {
			fmt.Fprintf(&b, "Advocates (Petitioner): %s\n", strings.Join(detail.AdvocatesPetitioner, ", "))
		}
		if len(detail.AdvocatesRespondent) > 0 {
			fmt.Fprintf(&b, "Advocates (Respondent): %s\n", strings.Join(detail.AdvocatesRespondent, ", "))
		}
		if detail.CaseDescription != "" {
			fmt.Fprintf(&b, "Description: %s\n", detail.CaseDescription)
		}
		if detail.CaseStage != "" {
			fmt.Fprintf(&b, "Stage: %s\n", detail.CaseStage)
		}
		if detail.ShortOrder != "" {
			fmt.Fprintf(&b, "Short Order: %s\n", detail.ShortOrder)
		}
		if detail.FIR != nil {
			fmt.Fprintf(&b, "FIR Number: %s, Police Station: %s, Under Section: %s\n",
				detail.FIR.Number, detail.FIR.PoliceStation, detail.FIR.UnderSection)
		}
	}

	if orders, _ := ing.cases.ListOrders(ctx, c.ID); len(orders) > 0 {
		b.WriteString("=== Orders ===\n")
		for _, o := range orders {
			fmt.Fprintf(&b, "[%s] %s\n", o.HearingDate.Format("2006-01-02"), o.ShortOrder)
		}
	}

	if comments, _ := ing.cases.ListComments(ctx, c.ID); len(comments) > 0 {
		b.WriteString("=== Comments / CMs ===\n")
		for _, cm := range comments {
			fmt.Fprintf(&b, "[%s] %s\n", cm.ComplianceDate.Format("2006-01-02"), cm.Description)
		}
	}

	if parties, _ := ing.cases.ListParties(ctx, c.ID); len(parties) > 0 {
		b.WriteString("=== Parties ===\n")
		for _, p := range parties {
			fmt.Fprintf(&b, "%d. %s (%s)\n", p.PartyNumber, p.Name, p.Side)
		}
	}

	return b.String(), nil
}

func stripBoilerplate(text string) string {
	for _, marker := range boilerplateMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}
	return strings.TrimSpace(text)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func (ing *Ingestor) toKBChunk(caseID string, idx int, ch chunk.Chunk, c *models.Case) *models.KBChunk {
	sourceID := fmt.Sprintf("%s-%d", caseID, idx)
	hash := contentHash(string(models.SourceTypeJudgment), sourceID, ch.Text)
	caseIDCopy := caseID

	return &models.KBChunk{
		ID:                  sourceID,
		SourceType:          models.SourceTypeJudgment,
		SourceID:            sourceID,
		SourceCaseID:        &caseIDCopy,
		ContentText:         ch.Text,
		Court:               ch.Metadata.Court,
		CaseNumber:          ch.Metadata.CaseNo,
		CaseTitle:           c.CaseName,
		LegalDomain:         ch.Metadata.LegalDomain,
		Citations:           ch.Metadata.Sections,
		ContentHash:         hash,
		IsProcessed:         true,
		LegalRelevanceScore: ch.Metadata.QARelevance,
		ContentQualityScore: ch.Metadata.AIContextScore,
		ParagraphNo:         ch.Metadata.ParagraphNo,
		DocumentType:        ch.Metadata.DocumentType,
		ContentType:         ch.Metadata.ContentType,
	}
}

func contentHash(sourceType, sourceID, text string) string {
	sum := sha256.Sum256([]byte(sourceType + ":" + sourceID + ":" + text))
	return hex.EncodeToString(sum[:])
}
