package session

import (
	"context"
	"testing"

	"github.com/faizrashid/nazeer/internal/storage"
)

func TestBoundCaseEmptyWhenNoSession(t *testing.T) {
	b := NewBinder(storage.NewMemorySessionStore())
	caseID, err := b.BoundCase(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caseID != "" {
		t.Errorf("expected empty case id, got %q", caseID)
	}
}

func TestRecordTurnBindsOnResolvedCase(t *testing.T) {
	b := NewBinder(storage.NewMemorySessionStore())
	ctx := context.Background()
	if err := b.RecordTurn(ctx, "sess-1", "tell me about T.A. 2/2023", "T.A. 2/2023", "case-42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	caseID, _ := b.BoundCase(ctx, "sess-1")
	if caseID != "case-42" {
		t.Fatalf("expected session bound to case-42, got %q", caseID)
	}
}

func TestRecordTurnPreservesBindingWithoutFreshHint(t *testing.T) {
	b := NewBinder(storage.NewMemorySessionStore())
	ctx := context.Background()
	b.RecordTurn(ctx, "sess-1", "tell me about T.A. 2/2023", "T.A. 2/2023", "case-42")
	b.RecordTurn(ctx, "sess-1", "what happened next", "", "")
	caseID, _ := b.BoundCase(ctx, "sess-1")
	if caseID != "case-42" {
		t.Fatalf("expected binding to persist across follow-up turn, got %q", caseID)
	}
}

func TestRecordTurnRebindsOnFreshMatch(t *testing.T) {
	b := NewBinder(storage.NewMemorySessionStore())
	ctx := context.Background()
	b.RecordTurn(ctx, "sess-1", "q1", "hint1", "case-1")
	b.RecordTurn(ctx, "sess-1", "q2", "hint2", "case-2")
	caseID, _ := b.BoundCase(ctx, "sess-1")
	if caseID != "case-2" {
		t.Fatalf("expected rebinding to case-2, got %q", caseID)
	}
}
