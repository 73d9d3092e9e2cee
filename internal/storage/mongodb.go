package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"github.com/faizrashid/nazeer/pkg/models"
)

// MongoStorage implements the Storage interface using MongoDB
type MongoStorage struct {
	client   *mongo.Client
	database *mongo.Database
	cases    *mongo.Collection
}

// NewMongoStorage creates a new MongoDB storage adapter
func NewMongoStorage(uri, dbName string) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(dbName)

	storage := &MongoStorage{
		client:   client,
		database: database,
		cases:    database.Collection("cases"),
	}

	// Create indexes
	if err := storage.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return storage, nil
}

// createIndexes creates necessary indexes
func (ms *MongoStorage) createIndexes(ctx context.Context) error {
	// Cases indexes
	caseIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "jurisdiction", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "court", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "decision_date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			// Text index for full-text search
			Keys: bson.D{
				{Key: "case_name", Value: "text"},
				{Key: "summary", Value: "text"},
				{Key: "full_text", Value: "text"},
			},
		},
	}

	_, err := ms.cases.Indexes().CreateMany(ctx, caseIndexes)
	if err != nil {
		return fmt.Errorf("failed to create case indexes: %w", err)
	}

	return nil
}

// Close closes the database connection
func (ms *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ms.client.Disconnect(ctx)
}

// SaveCase saves or updates a case
func (ms *MongoStorage) SaveCase(ctx context.Context, c *models.Case) error {
	filter := bson.M{"id": c.ID}
	update := bson.M{"$set": c}
	opts := options.Update().SetUpsert(true)

	_, err := ms.cases.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetCase retrieves a case by ID
func (ms *MongoStorage) GetCase(ctx context.Context, id string) (*models.Case, error) {
	filter := bson.M{"id": id}
	var c models.Case

	err := ms.cases.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("case not found: %s", id)
		}
		return nil, err
	}

	return &c, nil
}

// UpdateCase updates an existing case
func (ms *MongoStorage) UpdateCase(ctx context.Context, c *models.Case) error {
	c.LastUpdated = timePtr(time.Now())
	return ms.SaveCase(ctx, c)
}

// DeleteCase deletes a case by ID
func (ms *MongoStorage) DeleteCase(ctx context.Context, id string) error {
	filter := bson.M{"id": id}
	result, err := ms.cases.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("case not found: %s", id)
	}

	return nil
}

// ListCases lists cases with filtering
func (ms *MongoStorage) ListCases(ctx context.Context, filter CaseFilter) ([]*models.Case, error) {
	query := bson.M{}

	if filter.Jurisdiction != "" {
		query["jurisdiction"] = filter.Jurisdiction
	}
	if filter.Court != "" {
		query["court"] = filter.Court
	}
	if filter.CourtLevel != nil {
		query["court_level"] = *filter.CourtLevel
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		dateQuery := bson.M{}
		if filter.StartDate != nil {
			dateQuery["$gte"] = filter.StartDate
		}
		if filter.EndDate != nil {
			dateQuery["$lte"] = filter.EndDate
		}
		query["decision_date"] = dateQuery
	}

	// Options
	opts := options.Find()

	if filter.OrderBy != "" {
		sortOrder := 1
		if filter.OrderDesc {
			sortOrder = -1
		}
		opts.SetSort(bson.D{{Key: filter.OrderBy, Value: sortOrder}})
	} else {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cursor, err := ms.cases.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cases []*models.Case
	if err := cursor.All(ctx, &cases); err != nil {
		return nil, err
	}

	return cases, nil
}

// CountCases counts cases matching filter
func (ms *MongoStorage) CountCases(ctx context.Context, filter CaseFilter) (int64, error) {
	query := bson.M{}

	if filter.Jurisdiction != "" {
		query["jurisdiction"] = filter.Jurisdiction
	}
	if filter.Court != "" {
		query["court"] = filter.Court
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	return ms.cases.CountDocuments(ctx, query)
}

// SearchCases performs full-text search on cases
func (ms *MongoStorage) SearchCases(ctx context.Context, query SearchQuery) ([]*models.Case, error) {
	filter := bson.M{
		"$text": bson.M{
			"$search": query.Query,
		},
	}

	// Additional filters
	if query.Filters.Jurisdiction != "" {
		filter["jurisdiction"] = query.Filters.Jurisdiction
	}
	if query.Filters.Court != "" {
		filter["court"] = query.Filters.Court
	}

	opts := options.Find()

	// Sort by text score for relevance
	opts.SetProjection(bson.M{
		"score": bson.M{"$meta": "textScore"},
	})
	opts.SetSort(bson.M{
		"score": bson.M{"$meta": "textScore"},
	})

	if query.Limit > 0 {
		opts.SetLimit(int64(query.Limit))
	}
	if query.Offset > 0 {
		opts.SetSkip(int64(query.Offset))
	}

	cursor, err := ms.cases.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cases []*models.Case
	if err := cursor.All(ctx, &cases); err != nil {
		return nil, err
	}

	return cases, nil
}

// Ping checks database connectivity
func (ms *MongoStorage) Ping(ctx context.Context) error {
	return ms.client.Ping(ctx, nil)
}
