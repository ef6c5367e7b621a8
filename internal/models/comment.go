package models

import "gorm.io/gorm"

// CommentsPerPage is the fixed comment page size
const CommentsPerPage = 5

// Comment represents a comment on a post
type Comment struct {
	gorm.Model
	PostID  string `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	UserID  uint   `json:"user_id" gorm:"index"`
	Content string `json:"content"`
}

// EnrichedComment is a comment hydrated with its author summary
type EnrichedComment struct {
	Comment
	Author AuthorSummary `json:"author"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID  string `json:"post_id" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// UpdateCommentRequest defines the request body for updating a comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
