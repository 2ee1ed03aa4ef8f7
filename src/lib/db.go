package lib

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection    = "users"
	ProfilesCollection = "profiles"
	PostsCollection    = "posts"
)

// Store owns the process-wide MongoDB client. It is created once in main and
// closed on shutdown.
type Store struct {
	client *mongo.Client
	DB     *mongo.Database
}

// ConnectDB dials MongoDB and verifies the connection with a ping
func ConnectDB(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	slog.Info("Connected to MongoDB", slog.String("database", dbName))

	return &Store{
		client: client,
		DB:     client.Database(dbName),
	}, nil
}

// EnsureIndexes creates the unique indexes the data model relies on: one
// account per email and one profile per user.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ProfilesCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		PostsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.DB.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", name, err)
		}
	}

	slog.Info("Database indexes ensured")
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
