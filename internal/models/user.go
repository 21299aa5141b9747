package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the persisted account record. Password holds the bcrypt hash and never
// leaves the service layer; callers receive a Profile instead.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Account      string    `json:"account" gorm:"uniqueIndex;size:50"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255"`
	Password     string    `json:"-"`
	Name         string    `json:"name" gorm:"size:50"`
	Avatar       string    `json:"avatar"`
	Introduction string    `json:"introduction" gorm:"type:text"`
	Role         string    `json:"role" gorm:"size:20;default:user"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the caller-facing view of a User. It has no password field.
type Profile struct {
	ID           uint      `json:"id"`
	Account      string    `json:"account"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Introduction string    `json:"introduction"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCompact is the public author info joined into feed items.
type UserCompact struct {
	ID      uint   `json:"id"`
	Account string `json:"account"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
}

// TopUser is one entry of the follower ranking.
type TopUser struct {
	UserCompact
	FollowerCount int64 `json:"follower_count"`
	IsFollowed    bool  `json:"is_followed"`
}

func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:           u.ID,
		Account:      u.Account,
		Email:        u.Email,
		Name:         u.Name,
		Avatar:       u.Avatar,
		Introduction: u.Introduction,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Account: u.Account, Name: u.Name, Avatar: u.Avatar}
}

// CreateUserRequest is the signup payload. Account and email are optional and
// derived by the service when omitted.
type CreateUserRequest struct {
	Account       string `json:"account" validate:"omitempty,max=50"`
	Email         string `json:"email" validate:"omitempty,email"`
	Name          string `json:"name" validate:"max=50"`
	Password      string `json:"password" validate:"required"`
	CheckPassword string `json:"checkPassword"`
}

// UpdateUserRequest carries a partial profile update. Nil means the field was
// not sent.
type UpdateUserRequest struct {
	Account       *string `json:"account,omitempty" validate:"omitempty,max=50"`
	Name          *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Email         *string `json:"email,omitempty" validate:"omitempty,max=255"`
	Avatar        *string `json:"avatar,omitempty"`
	Introduction  *string `json:"introduction,omitempty" validate:"omitempty,max=160"`
	Password      *string `json:"password,omitempty"`
	CheckPassword *string `json:"checkPassword,omitempty"`
}

type SignInRequest struct {
	Account  string `json:"account" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID  uint   `json:"user_id"`
	Account string `json:"account"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}
