// Package session implements the follow-up session lock C10 checks before
// running the full C4->C7->C8->C9 pipeline (spec §4.10, §9's
// case_metadata_cache design note): once a conversation is bound to a
// case, later turns with no fresh hint or entity stay scoped to it.
package session

import (
	"context"
	"time"

	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

// Binder tracks per-session case binding on top of a SessionStore.
type Binder struct {
	store storage.SessionStore
}

// NewBinder wires the session binder to its store.
func NewBinder(store storage.SessionStore) *Binder {
	return &Binder{store: store}
}

// BoundCase returns the case id a session is locked to, if any.
func (b *Binder) BoundCase(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}
	sess, err := b.store.Get(ctx, sessionID)
	if err != nil || sess == nil || sess.BoundCaseID == nil {
		return "", err
	}
	return *sess.BoundCaseID, nil
}

// RecordTurn appends a turn to the session's history and, when
// resolvedCaseID is non-empty, (re)binds the session to it — a fresh match
// always wins, so a conversation can move on to a different case.
func (b *Binder) RecordTurn(ctx context.Context, sessionID, query, caseHint, resolvedCaseID string) error {
	if sessionID == "" {
		return nil
	}
	sess, err := b.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		sess = &models.ActiveSession{SessionID: sessionID}
	}
	sess.History = append(sess.History, models.Turn{Query: query, CaseHint: caseHint, Timestamp: time.Now()})
	if resolvedCaseID != "" {
		boundID := resolvedCaseID
		sess.BoundCaseID = &boundID
	}
	return b.store.Save(ctx, sess)
}
