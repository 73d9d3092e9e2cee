package semantic

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/faizrashid/nazeer/internal/observability"
	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

const defaultTopK = 30

// Filters is the caller-supplied metadata scope (spec §4.7 step 2).
type Filters struct {
	LegalDomain string
	CaseType    string
	Court       string
	Year        string
}

// Retriever is the Semantic Retriever (C7): query embedding with a
// file-backed cache, a vector-index primary path, and a three-stage
// fallback chain when the index is unavailable.
type Retriever struct {
	encoder Encoder
	cache   *EmbeddingCache
	index   VectorIndex
	chunks  storage.KBChunkStore
	cases   storage.CaseReadStore
	logger  *observability.Logger

	enrichMu sync.RWMutex
	enrich   map[string]map[string]string // case_id -> merged entity_* fields
}

// New wires C7 to its collaborators. index may be nil, in which case every
// query runs the fallback chain directly.
func New(encoder Encoder, cache *EmbeddingCache, index VectorIndex, chunks storage.KBChunkStore, cases storage.CaseReadStore, logger *observability.Logger) *Retriever {
	return &Retriever{
		encoder: encoder,
		cache:   cache,
		index:   index,
		chunks:  chunks,
		cases:   cases,
		logger:  logger,
		enrich:  make(map[string]map[string]string),
	}
}

// Retrieve runs dense recall for query, returning up to topK candidates.
// It never panics; on any stage failure it falls back, and only returns an
// error if every stage in the chain is unavailable.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, filters Filters) ([]models.RankedResult, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	if r.index != nil {
		results, err := r.retrieveFromIndex(ctx, query, topK, filters)
		if err == nil {
			return results, nil
		}
		if r.logger != nil {
			r.logger.WithField("query", query).Warnf("vector index unavailable, falling back: %v", err)
		}
	}

	return r.retrieveFallback(ctx, query, topK)
}

func (r *Retriever) embedOne(ctx context.Context, text string) ([]float32, error) {
	return r.embedBatch(ctx, []string{text})[0], nil
}

// embedBatch encodes texts in one call, consulting the on-disk cache first
// and writing back only the misses (spec §4.7 step 1).
func (r *Retriever) embedBatch(ctx context.Context, texts []string) [][]float32 {
	out := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string

	for i, t := range texts {
		if r.cache != nil {
			if vec, err := r.cache.Get(ctx, t); err == nil {
				out[i] = vec
				continue
			}
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}

	if len(missTexts) > 0 {
		vecs, err := r.encoder.Encode(ctx, missTexts)
		if err == nil {
			for j, idx := range missIdx {
				out[idx] = vecs[j]
				if r.cache != nil {
					_ = r.cache.Set(ctx, texts[idx], vecs[j])
				}
			}
		}
	}

	return out
}

func (r *Retriever) retrieveFromIndex(ctx context.Context, query string, topK int, filters Filters) ([]models.RankedResult, error) {
	vec, err := r.embedOne(ctx, query)
	if err != nil || vec == nil {
		return nil, fmt.Errorf("semantic: failed to embed query: %w", err)
	}

	indexFilter := IndexFilter{LegalDomain: filters.LegalDomain, CaseType: filters.CaseType, Court: filters.Court, Year: filters.Year}
	matches, dropped, err := r.index.Query(ctx, vec, topK, indexFilter)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 && r.logger != nil {
		r.logger.Warnf("semantic: dropped unsupported filter fields: %s", strings.Join(dropped, ", "))
	}

	out := make([]models.RankedResult, 0, len(matches))
	for _, m := range matches {
		metadata := r.enrichMetadata(ctx, m.Metadata)
		text := buildStructuredText(metadata, m.Text)
		out = append(out, models.RankedResult{
			ID:       m.ID,
			Score:    m.Score,
			Text:     text,
			CaseID:   metadata["case_id"],
			Metadata: metadata,
		})
	}
	return out, nil
}

// enrichMetadata implements step 4: when metadata lacks structured fields
// but carries case_id, issue a secondary lookup and merge entity_* fields,
// caching the merged result in-process keyed by case id.
func (r *Retriever) enrichMetadata(ctx context.Context, metadata map[string]string) map[string]string {
	caseID, ok := metadata["case_id"]
	if !ok || caseID == "" {
		return metadata
	}
	if hasStructuredFields(metadata) {
		return metadata
	}

	r.enrichMu.RLock()
	cached, hit := r.enrich[caseID]
	r.enrichMu.RUnlock()
	if hit {
		return mergeMetadata(metadata, cached)
	}

	if r.chunks == nil {
		return metadata
	}
	found, err := r.chunks.Find(ctx, storage.KBChunkFilter{SourceCaseID: caseID, SourceType: models.SourceTypeCaseMetadata, Limit: 1})
	if err != nil || len(found) == 0 {
		return metadata
	}

	entity := entityFieldsFrom(found[0])
	r.enrichMu.Lock()
	r.enrich[caseID] = entity
	r.enrichMu.Unlock()

	return mergeMetadata(metadata, entity)
}

func hasStructuredFields(metadata map[string]string) bool {
	for _, key := range []string{"advocates_petitioner", "bench", "short_order", "fir_number"} {
		if metadata[key] != "" {
			return true
		}
	}
	return false
}

func mergeMetadata(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		if merged[k] == "" {
			merged[k] = v
		}
	}
	return merged
}

func entityFieldsFrom(c *models.KBChunk) map[string]string {
	out := map[string]string{
		"court":       c.Court,
		"case_number": c.CaseNumber,
		"case_title":  c.CaseTitle,
	}
	for _, e := range c.LegalEntities {
		out["entity_"+e.Type] = e.Value
	}
	return out
}

// buildStructuredText implements step 5: synthesize a concise summary from
// advocate/bench/status fields and prepend it to the chunk text.
func buildStructuredText(metadata map[string]string, text string) string {
	var parts []string
	add := func(label, key string) {
		if v := metadata[key]; v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", label, v))
		}
	}
	add("Court", "court")
	add("Status", "status")
	add("Bench", "bench")
	add("Short Order", "short_order")
	add("Petitioner's Advocates", "advocates_petitioner")
	add("Respondent's Advocates", "advocates_respondent")
	add("FIR No.", "fir_number")

	if len(parts) == 0 {
		return text
	}
	return strings.Join(parts, "; ") + "\n\n" + text
}

// retrieveFallback implements spec §4.7 step 6's three-stage chain.
func (r *Retriever) retrieveFallback(ctx context.Context, query string, topK int) ([]models.RankedResult, error) {
	if r.chunks != nil {
		if results, err := r.fallbackKBEmbedding(ctx, query, topK); err == nil && len(results) > 0 {
			return results, nil
		}
	}

	if r.cases != nil {
		if results := r.fallbackDocumentText(ctx, query, topK); len(results) > 0 {
			return results, nil
		}
	}

	if r.chunks != nil {
		return r.fallbackSimpleLexical(ctx, query, topK), nil
	}

	return nil, fmt.Errorf("semantic: no retrieval backend available")
}

// fallbackKBEmbedding is chain stage (a): ILIKE against the KB store, then
// batch-embed the candidates and rank by cosine similarity.
func (r *Retriever) fallbackKBEmbedding(ctx context.Context, query string, topK int) ([]models.RankedResult, error) {
	candidates, err := r.chunks.SearchByText(ctx, query, topK*3)
	if err != nil || len(candidates) == 0 {
		return nil, err
	}

	queryVec, err := r.embedOne(ctx, query)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.ContentText
	}
	vecs := r.embedBatch(ctx, texts)

	type scored struct {
		chunk *models.KBChunk
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for i, c := range candidates {
		if vecs[i] == nil {
			continue
		}
		ranked = append(ranked, scored{chunk: c, score: cosineSimilarity(queryVec, vecs[i])})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	out := make([]models.RankedResult, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, kbChunkToResult(s.chunk, s.score, models.RetrievalMethodFallbackDBEmbedding))
	}
	return out, nil
}

// fallbackDocumentText is chain stage (b): same ILIKE idea scoped to raw
// case document text instead of pre-chunked KB entries.
func (r *Retriever) fallbackDocumentText(ctx context.Context, query string, topK int) []models.RankedResult {
	cases, err := r.cases.FindCasesByTitle(ctx, query, topK)
	if err != nil {
		return nil
	}
	out := make([]models.RankedResult, 0, len(cases))
	for _, c := range cases {
		texts, err := r.cases.ListDocumentTexts(ctx, c.ID)
		if err != nil {
			continue
		}
		for _, t := range texts {
			body := t.CleanText
			if body == "" {
				body = t.RawText
			}
			if strings.Contains(strings.ToLower(body), strings.ToLower(query)) {
				out = append(out, models.RankedResult{
					ID:     c.ID + ":" + t.DocumentID,
					Score:  lexicalScore(body, query),
					Text:   body,
					CaseID: c.ID,
				})
			}
		}
	}
	return out
}

// fallbackSimpleLexical is chain stage (c): normalized match-count scoring
// over the KB store, the cheapest and final fallback.
func (r *Retriever) fallbackSimpleLexical(ctx context.Context, query string, topK int) []models.RankedResult {
	candidates, err := r.chunks.SearchByText(ctx, query, topK)
	if err != nil {
		return nil
	}
	out := make([]models.RankedResult, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, kbChunkToResult(c, lexicalScore(c.ContentText, query), models.RetrievalMethodFallbackDBSimple))
	}
	return out
}

func kbChunkToResult(c *models.KBChunk, score float64, method models.RetrievalMethod) models.RankedResult {
	r := models.RankedResult{
		ID:              c.ID,
		Score:           score,
		Text:            c.ContentText,
		CaseNumber:      c.CaseNumber,
		CaseTitle:       c.CaseTitle,
		Court:           c.Court,
		RetrievalMethod: method,
	}
	if c.SourceCaseID != nil {
		r.CaseID = *c.SourceCaseID
	}
	return r
}

// lexicalScore implements the stage (c) scoring rule: normalized
// match-count / 10, capped at 1.0.
func lexicalScore(text, query string) float64 {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return 0
	}
	lowerText := strings.ToLower(text)
	count := 0
	for _, w := range words {
		count += strings.Count(lowerText, w)
	}
	score := float64(count) / 10.0
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
// MetadataFromChunk builds the filter string map the vector index stores
// alongside a point when a KBChunk is indexed, mirroring IndexFilter's
// field set so Query and Upsert stay in sync.
func MetadataFromChunk(chunk *models.KBChunk) map[string]string {
	meta := map[string]string{
		"legal_domain": chunk.LegalDomain,
		"court":        chunk.Court,
		"source_type":  string(chunk.SourceType),
	}
	if chunk.SourceCaseID != nil {
		meta["case_id"] = *chunk.SourceCaseID
	}
	if !chunk.CreatedAt.IsZero() {
		meta["year"] = strconv.Itoa(chunk.CreatedAt.Year())
	}
	return meta
}

// IndexChunk embeds and upserts one chunk into the vector index, the
// write-path counterpart to Retrieve's read path. Ingestion calls this
// after persisting a chunk so the index stays current with the KB store.
func (r *Retriever) IndexChunk(ctx context.Context, chunk *models.KBChunk) error {
	if r.index == nil {
		return nil
	}
	vec, err := r.embedOne(ctx, chunk.ContentText)
	if err != nil || vec == nil {
		return fmt.Errorf("semantic: failed to embed chunk %s: %w", chunk.ID, err)
	}
	return r.index.Upsert(ctx, chunk.ID, vec, chunk.ContentText, MetadataFromChunk(chunk))
}
