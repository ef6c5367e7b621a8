package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository defines the interface for conversation data operations
type ConversationRepository interface {
	FindByParticipants(ctx context.Context, a, b uint) (*models.Conversation, error)
	CreateConversation(ctx context.Context, a, b uint, firstMessageID primitive.ObjectID) (*models.Conversation, error)
	AppendMessage(ctx context.Context, conversationID, messageID primitive.ObjectID) error
	GetConversationByID(ctx context.Context, id string) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Conversation, error)
	DeleteByParticipant(ctx context.Context, userID uint) error
}

// MongoConversationRepository implements ConversationRepository for MongoDB
type MongoConversationRepository struct {
	collection *mongo.Collection
}

// NewMongoConversationRepository creates a new MongoConversationRepository
func NewMongoConversationRepository(db *mongo.Database) *MongoConversationRepository {
	return &MongoConversationRepository{collection: db.Collection("conversations")}
}

// FindByParticipants looks a conversation up by its unordered participant
// pair. Either ordering of a and b matches the same document. Returns
// mongo.ErrNoDocuments when the pair has no conversation yet.
func (r *MongoConversationRepository) FindByParticipants(ctx context.Context, a, b uint) (*models.Conversation, error) {
	filter := bson.M{"participants": bson.M{"$all": []uint{a, b}, "$size": 2}}

	var conversation models.Conversation
	if err := r.collection.FindOne(ctx, filter).Decode(&conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *MongoConversationRepository) CreateConversation(ctx context.Context, a, b uint, firstMessageID primitive.ObjectID) (*models.Conversation, error) {
	now := time.Now()
	conversation := models.Conversation{
		ID:           primitive.NewObjectID(),
		Participants: []uint{a, b},
		Messages:     []primitive.ObjectID{firstMessageID},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.collection.InsertOne(ctx, conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *MongoConversationRepository) AppendMessage(ctx context.Context, conversationID, messageID primitive.ObjectID) error {
	update := bson.M{
		"$push": bson.M{"messages": messageID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": conversationID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("conversation not found")
	}
	return nil
}

func (r *MongoConversationRepository) GetConversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid conversation ID format: %w", err)
	}

	var conversation models.Conversation
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&conversation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("conversation not found")
		}
		return nil, err
	}
	return &conversation, nil
}

// ListByUser returns the user's conversations, most recently active first
func (r *MongoConversationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Conversation, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"participants": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *MongoConversationRepository) DeleteByParticipant(ctx context.Context, userID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"participants": userID})
	return err
}
