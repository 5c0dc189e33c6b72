package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoGateway implements Gateway using MongoDB.
type MongoGateway struct {
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoGateway creates a gateway over db and makes sure the query
// indexes exist.
func NewMongoGateway(db *mongo.Database, logger *zap.Logger) *MongoGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &MongoGateway{db: db, logger: logger}
	if err := g.ensureIndexes(); err != nil {
		logger.Warn("failed to create indexes", zap.Error(err))
	}
	return g
}

// ensureIndexes creates indexes for fields used in equality queries.
func (g *MongoGateway) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: IDField, Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "userType", Value: 1}}},
			{Keys: bson.D{{Key: "serviceType", Value: 1}}},
		},
		CollectionBookings: {
			{Keys: bson.D{{Key: IDField, Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "providerId", Value: 1}}},
		},
		CollectionServices: {
			{Keys: bson.D{{Key: IDField, Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := g.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (g *MongoGateway) collection(name string) (*mongo.Collection, error) {
	if err := validCollection(name); err != nil {
		return nil, err
	}
	return g.db.Collection(name), nil
}

func (g *MongoGateway) QueryByField(ctx context.Context, collection, field string, value any) ([]Record, error) {
	coll, err := g.collection(collection)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cursor, err := coll.Find(ctx, bson.M{field: value}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by %s: %w", collection, field, err)
	}
	defer cursor.Close(ctx)

	records := []Record{}
	for cursor.Next(ctx) {
		var rec Record
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", collection, err)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error on %s: %w", collection, err)
	}
	return records, nil
}

func (g *MongoGateway) Insert(ctx context.Context, collection string, record Record) (string, error) {
	coll, err := g.collection(collection)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	doc := make(Record, len(record)+1)
	for k, v := range record {
		doc[k] = v
	}
	doc[IDField] = id

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return id, nil
}

func (g *MongoGateway) Update(ctx context.Context, collection, id string, partial Record) (bool, error) {
	coll, err := g.collection(collection)
	if err != nil {
		return false, err
	}

	set := make(Record, len(partial))
	for k, v := range partial {
		if k == IDField {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		return false, fmt.Errorf("no updatable fields provided for %s %s", collection, id)
	}

	result, err := coll.UpdateOne(ctx, bson.M{IDField: id}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update %s with id %s: %w", collection, id, err)
	}
	return result.MatchedCount > 0, nil
}

func (g *MongoGateway) Delete(ctx context.Context, collection, id string) (bool, error) {
	coll, err := g.collection(collection)
	if err != nil {
		return false, err
	}

	result, err := coll.DeleteOne(ctx, bson.M{IDField: id})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s with id %s: %w", collection, id, err)
	}
	return result.DeletedCount > 0, nil
}

func (g *MongoGateway) DeleteAll(ctx context.Context, collection string) (bool, error) {
	coll, err := g.collection(collection)
	if err != nil {
		return false, err
	}

	result, err := coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return false, fmt.Errorf("failed to clear %s: %w", collection, err)
	}
	g.logger.Info("collection cleared", zap.String("collection", collection), zap.Int64("deleted", result.DeletedCount))
	return true, nil
}
