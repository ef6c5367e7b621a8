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

// MessageRepository defines the interface for direct-message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessagesByIDs(ctx context.Context, ids []primitive.ObjectID, page, limit int64) ([]models.Message, int64, error)
	GetLatestByIDs(ctx context.Context, ids []primitive.ObjectID) (*models.Message, error)
	DeleteBySender(ctx context.Context, userID uint) error
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

func (r *MongoMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// GetMessagesByIDs pages a conversation's messages newest first and returns
// the total count for page-math on the caller side.
func (r *MongoMessageRepository) GetMessagesByIDs(ctx context.Context, ids []primitive.ObjectID, page, limit int64) ([]models.Message, int64, error) {
	if len(ids) == 0 {
		return nil, 0, nil
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.MessagesPerPage
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// GetLatestByIDs returns the newest message among ids, or nil if none exist
func (r *MongoMessageRepository) GetLatestByIDs(ctx context.Context, ids []primitive.ObjectID) (*models.Message, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	findOptions := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var message models.Message
	err := r.collection.FindOne(ctx, bson.M{"_id": bson.M{"$in": ids}}, findOptions).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *MongoMessageRepository) DeleteBySender(ctx context.Context, userID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sender_id": userID})
	return err
}
