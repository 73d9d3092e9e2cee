package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/faizrashid/nazeer/pkg/models"
)

// CaseReadStore is the read-only view of the case/document store the
// retrieval core consumes (spec §6: "the core requires at minimum:
// get_case, find_cases_by_number, find_cases_by_title, and row-level
// iteration for ingestion"). The case store itself is owned and mutated
// by the external scraper/ingest pipeline.
type CaseReadStore interface {
	GetCase(ctx context.Context, id string) (*models.Case, error)
	GetCaseDetail(ctx context.Context, caseID string) (*models.CaseDetail, error)
	FindCasesByNumber(ctx context.Context, pattern string, limit int) ([]*models.Case, error)
	FindCasesByTitle(ctx context.Context, pattern string, limit int) ([]*models.Case, error)
	ListOrders(ctx context.Context, caseID string) ([]*models.Order, error)
	ListComments(ctx context.Context, caseID string) ([]*models.Comment, error)
	ListParties(ctx context.Context, caseID string) ([]*models.CaseParty, error)
	ListDocumentTexts(ctx context.Context, caseID string) ([]*models.DocumentText, error)
}

// KBChunkFilter filters KBChunk reads by {source_case_id, source_type,
// legal_domain, court} (spec §6).
type KBChunkFilter struct {
	SourceCaseID string
	SourceType   models.SourceType
	LegalDomain  string
	Court        string
	Limit        int
}

// KBChunkStore is the core-owned knowledge-base chunk store (spec §6):
// upsert keyed by (source_type, source_id), delete_by_case, filtered
// reads, and a lexical-match fallback read for C7's fallback chain.
type KBChunkStore interface {
	Upsert(ctx context.Context, chunk *models.KBChunk) error
	DeleteByCase(ctx context.Context, caseID string) error
	Find(ctx context.Context, filter KBChunkFilter) ([]*models.KBChunk, error)
	SearchByText(ctx context.Context, query string, limit int) ([]*models.KBChunk, error)
}

// ProcessingLogStore tracks C3's idempotency entries.
type ProcessingLogStore interface {
	FindEntry(ctx context.Context, rulesVersion, textHash, caseID, documentID string) (*models.ProcessingLogEntry, bool, error)
	Append(ctx context.Context, entry *models.ProcessingLogEntry) error
}

// StatuteStore is the core-owned corpus of StatuteEntry rows consumed by C5.
type StatuteStore interface {
	List(ctx context.Context) ([]*models.StatuteEntry, error)
	Upsert(ctx context.Context, entry *models.StatuteEntry) error
}

// SessionStore is the core-owned ActiveSession store consumed by C10's
// follow-up session lock.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.ActiveSession, error)
	Save(ctx context.Context, session *models.ActiveSession) error
}

// --- in-memory implementations, grounded on cache.MemoryCache's
// sync.RWMutex-guarded map idiom, used for tests and as the "memory"
// storage.driver option. ---

// MemoryKBChunkStore is an in-process KBChunkStore.
type MemoryKBChunkStore struct {
	mu     sync.RWMutex
	chunks map[string]*models.KBChunk // keyed by source_type:source_id
}

// NewMemoryKBChunkStore creates an empty in-memory KB chunk store.
func NewMemoryKBChunkStore() *MemoryKBChunkStore {
	return &MemoryKBChunkStore{chunks: make(map[string]*models.KBChunk)}
}

func chunkKey(sourceType models.SourceType, sourceID string) string {
	return string(sourceType) + ":" + sourceID
}

// Upsert implements KBChunkStore.
func (s *MemoryKBChunkStore) Upsert(ctx context.Context, chunk *models.KBChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chunk.UpdatedAt = time.Now()
	if chunk.CreatedAt.IsZero() {
		chunk.CreatedAt = chunk.UpdatedAt
	}
	s.chunks[chunkKey(chunk.SourceType, chunk.SourceID)] = chunk
	return nil
}

// DeleteByCase implements KBChunkStore.
func (s *MemoryKBChunkStore) DeleteByCase(ctx context.Context, caseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, c := range s.chunks {
		if c.SourceCaseID != nil && *c.SourceCaseID == caseID {
			delete(s.chunks, k)
		}
	}
	return nil
}

// Find implements KBChunkStore.
func (s *MemoryKBChunkStore) Find(ctx context.Context, filter KBChunkFilter) ([]*models.KBChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.KBChunk
	for _, c := range s.chunks {
		if filter.SourceCaseID != "" && (c.SourceCaseID == nil || *c.SourceCaseID != filter.SourceCaseID) {
			continue
		}
		if filter.SourceType != "" && c.SourceType != filter.SourceType {
			continue
		}
		if filter.LegalDomain != "" && c.LegalDomain != filter.LegalDomain {
			continue
		}
		if filter.Court != "" && c.Court != filter.Court {
			continue
		}
		out = append(out, c)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// SearchByText implements KBChunkStore's ILIKE-style fallback, ordered by
// legal_relevance_score desc (spec §4.7 fallback chain step (a)).
func (s *MemoryKBChunkStore) SearchByText(ctx context.Context, query string, limit int) ([]*models.KBChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var matches []*models.KBChunk
	for _, c := range s.chunks {
		if strings.Contains(strings.ToLower(c.ContentText), needle) {
			matches = append(matches, c)
		}
	}
	sortByRelevanceDesc(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func sortByRelevanceDesc(chunks []*models.KBChunk) {
	for i := 1; i < len(chunks); i++ {
		for j := i; j > 0 && chunks[j].LegalRelevanceScore > chunks[j-1].LegalRelevanceScore; j-- {
			chunks[j], chunks[j-1] = chunks[j-1], chunks[j]
		}
	}
}

// MemoryProcessingLogStore is an in-process ProcessingLogStore.
type MemoryProcessingLogStore struct {
	mu      sync.RWMutex
	entries []*models.ProcessingLogEntry
}

// NewMemoryProcessingLogStore creates an empty in-memory processing log.
func NewMemoryProcessingLogStore() *MemoryProcessingLogStore {
	return &MemoryProcessingLogStore{}
}

// FindEntry implements ProcessingLogStore.
func (s *MemoryProcessingLogStore) FindEntry(ctx context.Context, rulesVersion, textHash, caseID, documentID string) (*models.ProcessingLogEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.RulesVersion == rulesVersion && e.TextHash == textHash && e.CaseID == caseID && e.DocumentID == documentID {
			return e, true, nil
		}
	}
	return nil, false, nil
}

// Append implements ProcessingLogStore.
func (s *MemoryProcessingLogStore) Append(ctx context.Context, entry *models.ProcessingLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.CreatedAt = time.Now()
	s.entries = append(s.entries, entry)
	return nil
}

// MemoryStatuteStore is an in-process StatuteStore.
type MemoryStatuteStore struct {
	mu      sync.RWMutex
	entries map[string]*models.StatuteEntry
}

// NewMemoryStatuteStore creates an empty in-memory statute corpus.
func NewMemoryStatuteStore() *MemoryStatuteStore {
	return &MemoryStatuteStore{entries: make(map[string]*models.StatuteEntry)}
}

// List implements StatuteStore.
func (s *MemoryStatuteStore) List(ctx context.Context) ([]*models.StatuteEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.StatuteEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

// Upsert implements StatuteStore.
func (s *MemoryStatuteStore) Upsert(ctx context.Context, entry *models.StatuteEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Slug] = entry
	return nil
}

// MemorySessionStore is an in-process SessionStore: a map+mutex in the
// style of the teacher's case_metadata_cache design note (spec §9), used
// for session binding. The map has no size bound and entries are never
// evicted.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.ActiveSession
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*models.ActiveSession)}
}

// Get implements SessionStore.
func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*models.ActiveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return sess, nil
}

// Save implements SessionStore.
func (s *MemorySessionStore) Save(ctx context.Context, session *models.ActiveSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.UpdatedAt = time.Now()
	s.sessions[session.SessionID] = session
	return nil
}

// MemoryCaseReadStore is an in-process CaseReadStore, useful for tests and
// for fixtures loaded ahead of a real Postgres/SQLite-backed case store.
type MemoryCaseReadStore struct {
	mu       sync.RWMutex
	cases    map[string]*models.Case
	details  map[string]*models.CaseDetail
	orders   map[string][]*models.Order
	comments map[string][]*models.Comment
	parties  map[string][]*models.CaseParty
	docTexts map[string][]*models.DocumentText
}

// NewMemoryCaseReadStore creates an empty in-memory case store fixture.
func NewMemoryCaseReadStore() *MemoryCaseReadStore {
	return &MemoryCaseReadStore{
		cases:    make(map[string]*models.Case),
		details:  make(map[string]*models.CaseDetail),
		orders:   make(map[string][]*models.Order),
		comments: make(map[string][]*models.Comment),
		parties:  make(map[string][]*models.CaseParty),
		docTexts: make(map[string][]*models.DocumentText),
	}
}

// Seed loads fixture data; a convenience for tests, not part of the
// consumed interface.
func (s *MemoryCaseReadStore) Seed(c *models.Case, detail *models.CaseDetail, orders []*models.Order, comments []*models.Comment, parties []*models.CaseParty, docTexts []*models.DocumentText) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases[c.ID] = c
	if detail != nil {
		s.details[c.ID] = detail
	}
	s.orders[c.ID] = orders
	s.comments[c.ID] = comments
	s.parties[c.ID] = parties
	s.docTexts[c.ID] = docTexts
}

// GetCase implements CaseReadStore.
func (s *MemoryCaseReadStore) GetCase(ctx context.Context, id string) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

// GetCaseDetail implements CaseReadStore.
func (s *MemoryCaseReadStore) GetCaseDetail(ctx context.Context, caseID string) (*models.CaseDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.details[caseID], nil
}

// FindCasesByNumber implements CaseReadStore (case-insensitive substring match).
func (s *MemoryCaseReadStore) FindCasesByNumber(ctx context.Context, pattern string, limit int) ([]*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(pattern)
	var out []*models.Case
	for _, c := range s.cases {
		if strings.Contains(strings.ToLower(c.CaseNumber), needle) {
			out = append(out, c)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// FindCasesByTitle implements CaseReadStore (case-insensitive substring match).
func (s *MemoryCaseReadStore) FindCasesByTitle(ctx context.Context, pattern string, limit int) ([]*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(pattern)
	var out []*models.Case
	for _, c := range s.cases {
		if strings.Contains(strings.ToLower(c.CaseName), needle) {
			out = append(out, c)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// ListOrders implements CaseReadStore.
func (s *MemoryCaseReadStore) ListOrders(ctx context.Context, caseID string) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders[caseID], nil
}

// ListComments implements CaseReadStore.
func (s *MemoryCaseReadStore) ListComments(ctx context.Context, caseID string) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.comments[caseID], nil
}

// ListParties implements CaseReadStore.
func (s *MemoryCaseReadStore) ListParties(ctx context.Context, caseID string) ([]*models.CaseParty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parties[caseID], nil
}

// ListDocumentTexts implements CaseReadStore.
func (s *MemoryCaseReadStore) ListDocumentTexts(ctx context.Context, caseID string) ([]*models.DocumentText, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docTexts[caseID], nil
}
