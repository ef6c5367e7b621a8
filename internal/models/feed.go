package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedItemsPerPage is the fixed feed page size
const FeedItemsPerPage = 25

// FeedEntry is one row of a user's feed: an append-only log keyed by
// (user_id, seq) instead of an ever-growing embedded array, so reads are
// index-based and O(page-size).
type FeedEntry struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	PostID    primitive.ObjectID `json:"post_id" bson:"post_id"`
	Seq       int64              `json:"seq" bson:"seq"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// FeedPage is the response body of a feed read. IsRandom marks the cold-start
// fallback: a system-wide random sample served when the personal feed is empty.
type FeedPage struct {
	Posts    []EnrichedPost `json:"posts"`
	Total    int            `json:"total"`
	IsRandom bool           `json:"is_random"`
}
