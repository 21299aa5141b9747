package handlers

import (
	"context"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/anonto42/simple-twitter/backend/internal/services"
)

// The interfaces below are what handlers need from the service layer.

type UserService interface {
	Register(ctx context.Context, req models.CreateUserRequest) (*models.Profile, error)
	Update(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.Profile, error)
	SignIn(ctx context.Context, req models.SignInRequest) (*services.SignInResult, error)
	FirebaseSignIn(ctx context.Context, idToken string) (*services.SignInResult, error)
}

type FeedService interface {
	GetProfile(ctx context.Context, userID uint) (*models.Profile, error)
	GetCurrentUser(ctx context.Context, userID uint) (*models.Profile, error)
	GetPostsByUser(ctx context.Context, userID uint) ([]models.PostView, error)
	GetLikedPostsByUser(ctx context.Context, userID uint) ([]models.LikeView, error)
	GetRepliesByUser(ctx context.Context, userID uint) ([]models.ReplyView, error)
	GetPosts(ctx context.Context) ([]models.PostView, error)
	GetPost(ctx context.Context, postID uint) (*models.PostView, error)
	GetPostReplies(ctx context.Context, postID uint) ([]models.ReplyView, error)
	GetFollowingFeed(ctx context.Context, userID uint) ([]models.PostView, error)
	GetTopUsers(ctx context.Context, viewerID uint, limit int) ([]models.TopUser, error)
}

type FollowService interface {
	Follow(ctx context.Context, followerID, followingID uint) (*models.FollowResult, error)
	UnfollowUser(ctx context.Context, followerID, followingID uint) error
	ListFollowing(ctx context.Context, userID uint) ([]models.Followship, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.Followship, error)
}

type PostService interface {
	CreatePost(ctx context.Context, userID uint, description string) (*models.PostView, error)
	CreateReply(ctx context.Context, userID, postID uint, comment string) (*models.ReplyView, error)
	AddLike(ctx context.Context, userID, postID uint) (*models.Like, error)
	Unlike(ctx context.Context, userID, postID uint) error
}

type NotificationService interface {
	List(ctx context.Context, recipientID uint, limit int64) ([]models.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
}
