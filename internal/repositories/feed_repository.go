package repositories

import (
	"context"
	"time"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedRepository defines the interface for the fan-out feed log
type FeedRepository interface {
	AddEntries(ctx context.Context, userIDs []uint, postID primitive.ObjectID) error
	GetPage(ctx context.Context, userID uint, page, limit int64) ([]models.FeedEntry, int64, error)
	RemovePost(ctx context.Context, postID primitive.ObjectID) error
	RemovePosts(ctx context.Context, postIDs []primitive.ObjectID) error
	RemoveUser(ctx context.Context, userID uint) error
}

// MongoFeedRepository implements FeedRepository for MongoDB
type MongoFeedRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedRepository creates a new MongoFeedRepository
func NewMongoFeedRepository(db *mongo.Database) *MongoFeedRepository {
	return &MongoFeedRepository{collection: db.Collection("feed_entries")}
}

// AddEntries fans a post out to every recipient's feed log in one insert.
// The sequence number orders entries independently of document IDs.
func (r *MongoFeedRepository) AddEntries(ctx context.Context, userIDs []uint, postID primitive.ObjectID) error {
	if len(userIDs) == 0 {
		return nil
	}

	now := time.Now()
	seq := now.UnixNano()

	entries := make([]interface{}, 0, len(userIDs))
	for _, userID := range userIDs {
		entries = append(entries, models.FeedEntry{
			UserID:    userID,
			PostID:    postID,
			Seq:       seq,
			CreatedAt: now,
		})
	}
	_, err := r.collection.InsertMany(ctx, entries)
	return err
}

// GetPage reads one page of a user's feed log, newest first, plus the total
// number of entries.
func (r *MongoFeedRepository) GetPage(ctx context.Context, userID uint, page, limit int64) ([]models.FeedEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.FeedItemsPerPage
	}

	filter := bson.M{"user_id": userID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "seq", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []models.FeedEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// RemovePost retracts a deleted post from every feed that references it
func (r *MongoFeedRepository) RemovePost(ctx context.Context, postID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"post_id": postID})
	return err
}

func (r *MongoFeedRepository) RemovePosts(ctx context.Context, postIDs []primitive.ObjectID) error {
	if len(postIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"post_id": bson.M{"$in": postIDs}})
	return err
}

// RemoveUser drops the user's entire feed log
func (r *MongoFeedRepository) RemoveUser(ctx context.Context, userID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
