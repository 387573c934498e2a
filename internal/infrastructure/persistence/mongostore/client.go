package mongostore

import (
	"context"
	"fmt"
	"time"

	"founder-match/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	profilesCollection = "profiles"
	matchesCollection  = "matches"
)

func Connect(ctx context.Context, cfg config.StoreConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(cfg.MongoDatabase), nil
}

// EnsureIndexes creates the unique indexes the repositories rely on. The
// (user1_id, user2_id) index is what makes concurrent generation safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(profilesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("profiles index: %w", err)
	}

	_, err = db.Collection(matchesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user1_id", Value: 1}, {Key: "user2_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user2_id", Value: 1}}},
		{Keys: bson.D{{Key: "score", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("matches indexes: %w", err)
	}
	return nil
}
