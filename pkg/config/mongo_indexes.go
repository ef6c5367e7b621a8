package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureMongoIndexes creates the indexes the document collections rely on.
// Safe to run on every boot; Mongo treats existing indexes as a no-op.
func EnsureMongoIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	feedIndexes := []mongo.IndexModel{
		{
			// feed reads are (user, seq desc) range scans
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "seq", Value: -1}},
		},
		{
			// feed retraction deletes by post
			Keys: bson.D{{Key: "post_id", Value: 1}},
		},
	}
	if _, err := db.Collection("feed_entries").Indexes().CreateMany(ctx, feedIndexes); err != nil {
		return err
	}

	postIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection("posts").Indexes().CreateMany(ctx, postIndexes); err != nil {
		return err
	}

	conversationIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "participants", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}
	if _, err := db.Collection("conversations").Indexes().CreateMany(ctx, conversationIndexes); err != nil {
		return err
	}

	messageIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := db.Collection("messages").Indexes().CreateMany(ctx, messageIndexes)
	return err
}
