package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a publication stored in MongoDB
type Post struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID         uint               `json:"author_id" bson:"author_id"`
	Content          string             `json:"content" bson:"content"`
	Media            string             `json:"media,omitempty" bson:"media,omitempty"`
	MediaDescription string             `json:"media_description,omitempty" bson:"media_description,omitempty"`
	MediaObjectID    string             `json:"-" bson:"media_object_id,omitempty"` // remote storage identifier
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// EnrichedPost is a post hydrated with its author summary
type EnrichedPost struct {
	Post
	Author AuthorSummary `json:"author"`
}

// CreatePostRequest defines the multipart form fields for creating a post;
// the optional media file travels as the "media" form file.
type CreatePostRequest struct {
	Content          string `form:"content" validate:"required,min=1,max=3000"`
	MediaDescription string `form:"media_description,omitempty"`
}

// UpdatePostRequest defines the multipart form fields for editing a post
type UpdatePostRequest struct {
	Content          string `form:"content" validate:"required,min=1,max=3000"`
	MediaDescription string `form:"media_description,omitempty"`
	MediaRemoved     bool   `form:"media_removed"`
}
