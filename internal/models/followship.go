package models

import "time"

// Followship is a directed follow edge. The (FollowerID, FollowingID) pair is
// unique; the index backs up the service-level duplicate check.
type Followship struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateFollowshipRequest struct {
	ID uint `json:"id" validate:"required"`
}

// FollowResult is returned by a successful follow.
type FollowResult struct {
	FollowerID  uint `json:"follower_id"`
	FollowingID uint `json:"following_id"`
}
