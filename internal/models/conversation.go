package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessagesPerPage is the default message page size
const MessagesPerPage = 10

// Conversation is a direct-message thread stored in MongoDB. Its identity is
// the unordered pair of exactly two participants: lookups match participants
// in either order, and at most one conversation exists per pair.
type Conversation struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Participants []uint               `json:"participants" bson:"participants"`
	Messages     []primitive.ObjectID `json:"-" bson:"messages"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`
}

// Message is a single direct message stored in MongoDB
type Message struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID  uint               `json:"sender_id" bson:"sender_id"`
	Receiver  uint               `json:"receiver_id" bson:"receiver_id"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// ConversationSummary is one row of the conversation list: the other
// participant plus the most recent message.
type ConversationSummary struct {
	ConversationID primitive.ObjectID `json:"conversation_id"`
	Receiver       AuthorSummary      `json:"receiver"`
	LastMessage    *Message           `json:"last_message,omitempty"`
}

// MessagePage is a page of conversation messages, newest first
type MessagePage struct {
	Messages   []Message `json:"messages"`
	TotalPages int       `json:"total_pages"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=1,max=5000"`
}
