package semantic

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// IndexMatch is one hit from a VectorIndex query (spec §4.7 step 3:
// "{id, score, text, metadata, structured_data}").
type IndexMatch struct {
	ID       string
	Score    float64
	Text     string
	Metadata map[string]string
}

// IndexFilter is the optional metadata scoping a query can carry (spec
// §4.7 step 2). Fields left empty are not filtered on.
type IndexFilter struct {
	LegalDomain string
	CaseType    string
	Court       string
	Year        string
	SourceType  string
	CaseID      string
}

// VectorIndex is the dense-recall backend C7 queries. Implementations may
// drop filters the underlying store can't express; they must warn rather
// than fail (spec §4.7 step 2).
type VectorIndex interface {
	Query(ctx context.Context, vector []float32, topK int, filter IndexFilter) ([]IndexMatch, []string, error)
	Upsert(ctx context.Context, id string, vector []float32, text string, metadata map[string]string) error
}

const payloadTextKey = "__content_text__"

// QdrantIndex is a VectorIndex backed by a Qdrant collection, modeled on
// the provider's VectorStoreConfig/initialize/buildQueryPoints shape:
// validate config, lazily create the collection, convert payload values
// to/from the wire Value type.
type QdrantIndex struct {
	client           *qdrant.Client
	collectionName   string
	initializeSchema bool
}

// QdrantIndexConfig mirrors VectorStoreConfig's required-field validation.
type QdrantIndexConfig struct {
	Client           *qdrant.Client
	CollectionName   string
	InitializeSchema bool
}

func (c *QdrantIndexConfig) validate() error {
	if c.Client == nil {
		return fmt.Errorf("semantic: qdrant client is required")
	}
	if c.CollectionName == "" {
		return fmt.Errorf("semantic: collection name is required")
	}
	return nil
}

// NewQdrantIndex constructs a QdrantIndex, creating the collection with a
// 384-dim cosine vector config when InitializeSchema is set and the
// collection does not already exist.
func NewQdrantIndex(ctx context.Context, cfg *QdrantIndexConfig) (*QdrantIndex, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	idx := &QdrantIndex{
		client:           cfg.Client,
		collectionName:   cfg.CollectionName,
		initializeSchema: cfg.InitializeSchema,
	}

	if idx.initializeSchema {
		exists, err := idx.client.CollectionExists(ctx, idx.collectionName)
		if err != nil {
			return nil, fmt.Errorf("semantic: failed to check collection existence: %w", err)
		}
		if !exists {
			err = idx.client.CreateCollection(ctx, &qdrant.CreateCollection{
				CollectionName: idx.collectionName,
				VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
					Size:     uint64(EmbeddingDim),
					Distance: qdrant.Distance_Cosine,
				}),
			})
			if err != nil {
				return nil, fmt.Errorf("semantic: failed to create collection %s: %w", idx.collectionName, err)
			}
		}
	}

	return idx, nil
}

// Upsert writes one point to the collection.
func (idx *QdrantIndex) Upsert(ctx context.Context, id string, vector []float32, text string, metadata map[string]string) error {
	if id == "" {
		id = uuid.NewString()
	}

	payload := make(map[string]*qdrant.Value, len(metadata)+1)
	for k, v := range metadata {
		val, err := qdrant.NewValue(v)
		if err != nil {
			return fmt.Errorf("semantic: failed to encode metadata field %s: %w", k, err)
		}
		payload[k] = val
	}
	textVal, err := qdrant.NewValue(text)
	if err != nil {
		return fmt.Errorf("semantic: failed to encode content text: %w", err)
	}
	payload[payloadTextKey] = textVal

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(id),
		Vectors: qdrant.NewVectors(vector...),
		Payload: payload,
	}

	wait := true
	_, err = idx.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: idx.collectionName,
		Wait:           &wait,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("semantic: failed to upsert point to collection %s: %w", idx.collectionName, err)
	}
	return nil
}

// Query runs a top-k similarity search, applying whatever subset of filter
// the collection's payload schema supports. Dropped filter field names are
// returned so the caller can log a warning (spec §4.7 step 2).
func (idx *QdrantIndex) Query(ctx context.Context, vector []float32, topK int, filter IndexFilter) ([]IndexMatch, []string, error) {
	limit := uint64(topK)
	queryPoints := &qdrant.QueryPoints{
		CollectionName: idx.collectionName,
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Query:          qdrant.NewQuery(vector...),
	}

	must, dropped := buildConditions(filter)
	if len(must) > 0 {
		queryPoints.Filter = &qdrant.Filter{Must: must}
	}

	scored, err := idx.client.Query(ctx, queryPoints)
	if err != nil {
		return nil, dropped, fmt.Errorf("semantic: failed to query collection %s: %w", idx.collectionName, err)
	}

	matches := make([]IndexMatch, 0, len(scored))
	for _, point := range scored {
		m := IndexMatch{Score: float64(point.GetScore())}
		if pointID := point.GetId(); pointID != nil {
			m.ID = pointID.GetUuid()
		}
		payload := point.GetPayload()
		if payload != nil {
			metadata := make(map[string]string, len(payload))
			for k, v := range payload {
				if k == payloadTextKey {
					m.Text = v.GetStringValue()
					continue
				}
				metadata[k] = v.GetStringValue()
			}
			m.Metadata = metadata
		}
		matches = append(matches, m)
	}
	return matches, dropped, nil
}

// buildConditions converts the filters Qdrant's payload schema supports
// (everything except CaseID, which C7 applies as a secondary enrichment
// lookup rather than an index predicate) into Must conditions, reporting
// any field name it could not express.
func buildConditions(filter IndexFilter) ([]*qdrant.Condition, []string) {
	var must []*qdrant.Condition
	var dropped []string

	add := func(field, value string) {
		if value == "" {
			return
		}
		must = append(must, qdrant.NewMatchKeyword(field, value))
	}

	add("legal_domain", filter.LegalDomain)
	add("case_type", filter.CaseType)
	add("court", filter.Court)
	add("year", filter.Year)
	add("source_type", filter.SourceType)

	if filter.CaseID != "" {
		dropped = append(dropped, "case_id")
	}

	return must, dropped
}
