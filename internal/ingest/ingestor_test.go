package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/faizrashid/nazeer/internal/chunk"
	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

func seedCase(t *testing.T, caseStore *storage.MemoryCaseReadStore, id string) {
	t.Helper()
	now := time.Now()
	c := &models.Case{
		ID: id, CaseNumber: "W.P. 123/2023", CaseName: "Ali vs State",
		Court: "Islamabad High Court", Status: models.CaseStatusActive,
		Judges: []string{"Justice Khan"}, DecisionDate: &now,
		Language: "en", URL: "https://example.test/" + id,
		SourceDatabase: "test", ScrapedAt: now, LastUpdated: now,
	}
	detail := &models.CaseDetail{
		CaseID: id, CaseDescription: "The accused was charged under section 302 PPC with criminal charges following an FIR.",
		CaseStage: "hearing", ShortOrder: "Adjourned to next date.",
		FIR: &models.FIR{Number: "123/2023", PoliceStation: "Secretariat", UnderSection: "302 PPC"},
	}
	orders := []*models.Order{{CaseID: id, HearingDate: now, ShortOrder: "Notice issued to the respondent."}}
	comments := []*models.Comment{{CaseID: id, ComplianceDate: now, Description: "Compliance report filed by counsel."}}
	parties := []*models.CaseParty{{CaseID: id, PartyNumber: 1, Name: "Ali", Side: models.SidePetitioner}}
	caseStore.Seed(c, detail, orders, comments, parties, nil)
}

func newTestIngestor() (*Ingestor, *storage.MemoryCaseReadStore, *storage.MemoryKBChunkStore) {
	cases := storage.NewMemoryCaseReadStore()
	chunks := storage.NewMemoryKBChunkStore()
	logs := storage.NewMemoryProcessingLogStore()
	chunker := chunk.NewChunker(chunk.Config{TargetTokens: 50, OverlapTokens: 10, MinChars: 20, MaxChars: 200, CharsPerToken: 0.75})
	return NewIngestor(cases, chunks, logs, chunker, nil), cases, chunks
}

func TestProcessCaseForQAWritesChunks(t *testing.T) {
	ing, cases, chunks := newTestIngestor()
	seedCase(t, cases, "case-1")

	res, err := ing.ProcessCaseForQA(context.Background(), "case-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatal("expected success")
	}
	if res.ChunksWritten == 0 {
		t.Fatal("expected at least one chunk written")
	}

	found, _ := chunks.Find(context.Background(), storage.KBChunkFilter{SourceCaseID: "case-1"})
	if len(found) != res.ChunksWritten {
		t.Errorf("expected %d persisted chunks, got %d", res.ChunksWritten, len(found))
	}
	for _, c := range found {
		if !c.IsProcessed {
			t.Error("expected is_processed=true on every persisted chunk")
		}
		if c.ContentHash == "" {
			t.Error("expected non-empty content_hash")
		}
	}
}

func TestProcessCaseForQASkipsWhenAlreadyProcessed(t *testing.T) {
	ing, cases, _ := newTestIngestor()
	seedCase(t, cases, "case-2")

	first, _ := ing.ProcessCaseForQA(context.Background(), "case-2", false)
	if first.Skipped {
		t.Fatal("first run should not be skipped")
	}

	second, _ := ing.ProcessCaseForQA(context.Background(), "case-2", false)
	if !second.Skipped {
		t.Fatal("second run with identical content should be skipped")
	}
}

func TestProcessCaseForQAForceReprocesses(t *testing.T) {
	ing, cases, chunks := newTestIngestor()
	seedCase(t, cases, "case-3")

	ing.ProcessCaseForQA(context.Background(), "case-3", false)
	res, _ := ing.ProcessCaseForQA(context.Background(), "case-3", true)
	if res.Skipped {
		t.Fatal("forced run should not be skipped")
	}

	found, _ := chunks.Find(context.Background(), storage.KBChunkFilter{SourceCaseID: "case-3"})
	if len(found) == 0 {
		t.Fatal("expected chunks to survive a forced reprocess")
	}
}

func TestProcessCaseForQAMissingCaseIsNotFatal(t *testing.T) {
	ing, _, _ := newTestIngestor()
	res, err := ing.ProcessCaseForQA(context.Background(), "does-not-exist", false)
	if err != nil {
		t.Fatalf("expected never-raise behavior, got error: %v", err)
	}
	if res.Success {
		t.Error("expected success=false for a missing case")
	}
}
