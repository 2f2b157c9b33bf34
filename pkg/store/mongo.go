package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
)

// PlansCollection is the collection plans are stored in.
const PlansCollection = "plans"

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "pinmap"

// MongoStore keeps plans in MongoDB.
type MongoStore struct {
	client *mongo.Client
	plans  *mongo.Collection
}

// NewMongoStore connects to uri and pings the primary.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "mongo uri is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMongoStoreFromClient(client, database), nil
}

// NewMongoStoreFromClient uses an existing client.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	if database == "" {
		database = DefaultDatabase
	}
	return &MongoStore{
		client: client,
		plans:  client.Database(database).Collection(PlansCollection),
	}
}

func (s *MongoStore) Save(ctx context.Context, plan *layout.Plan) (string, error) {
	rec, err := newRecord(plan)
	if err != nil {
		return "", err
	}
	if _, err := s.plans.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("insert plan: %w", err)
	}
	return rec.ID, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*layout.Plan, error) {
	if err := errors.ValidatePlanID(id); err != nil {
		return nil, err
	}
	var rec Record
	err := s.plans.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return rec.load()
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
