package models

import "time"

// Follow is a directed edge of the social graph. The single uniquely-keyed
// row is the source of truth for both directions: "A follows B" and
// "B is followed by A" are two reads of the same edge, so the graph cannot
// become asymmetric.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
