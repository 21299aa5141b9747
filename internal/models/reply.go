package models

import "time"

// Reply is a comment on a post.
type Reply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReplyPost is the target post of a reply together with its author.
type ReplyPost struct {
	ID          uint        `json:"id"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	Author      UserCompact `json:"author"`
}

// ReplyView is a reply joined with the replying user and the replied post.
type ReplyView struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	PostID    uint        `json:"post_id"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	User      UserCompact `json:"user"`
	Post      *ReplyPost  `json:"post,omitempty"`
}

func NewReplyView(r *Reply) ReplyView {
	v := ReplyView{
		ID:        r.ID,
		UserID:    r.UserID,
		PostID:    r.PostID,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		User:      r.User.ToCompact(),
	}
	if r.Post.ID != 0 {
		v.Post = &ReplyPost{
			ID:          r.Post.ID,
			Description: r.Post.Description,
			CreatedAt:   r.Post.CreatedAt,
			Author:      r.Post.User.ToCompact(),
		}
	}
	return v
}

type CreateReplyRequest struct {
	Comment string `json:"comment" validate:"required,max=140"`
}
