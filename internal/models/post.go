package models

import "time"

// Post is a tweet. Like and reply counts are not stored.
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostView is a post joined with its author and enriched with counters.
type PostView struct {
	ID          uint        `json:"id"`
	UserID      uint        `json:"user_id"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Author      UserCompact `json:"author"`
	LikeCount   int64       `json:"like_count"`
	ReplyCount  int64       `json:"reply_count"`
}

// NewPostView builds the view without counters; callers fill them in.
func NewPostView(p *Post) PostView {
	return PostView{
		ID:          p.ID,
		UserID:      p.UserID,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Author:      p.User.ToCompact(),
	}
}

type CreatePostRequest struct {
	Description string `json:"description" validate:"required,max=140"`
}
