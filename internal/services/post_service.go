package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/anonto42/simple-twitter/backend/internal/repositories"
)

const maxPostLength = 140

// PostService handles tweets, replies and likes.
type PostService struct {
	postRepository  repositories.PostRepository
	replyRepository repositories.ReplyRepository
	likeRepository  repositories.LikeRepository
	notifier        Notifier
}

// NewPostService creates a new PostService. notifier may be nil.
func NewPostService(postRepo repositories.PostRepository, replyRepo repositories.ReplyRepository, likeRepo repositories.LikeRepository, notifier Notifier) *PostService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &PostService{
		postRepository:  postRepo,
		replyRepository: replyRepo,
		likeRepository:  likeRepo,
		notifier:        notifier,
	}
}

func (s *PostService) CreatePost(ctx context.Context, userID uint, description string) (*models.PostView, error) {
	if err := checkText("description", description); err != nil {
		return nil, err
	}

	post := &models.Post{UserID: userID, Description: description}
	if err := s.postRepository.CreatePost(ctx, post); err != nil {
		return nil, storeError("create post", err)
	}
	view := models.NewPostView(post)
	return &view, nil
}

func (s *PostService) CreateReply(ctx context.Context, userID, postID uint, comment string) (*models.ReplyView, error) {
	if err := checkText("comment", comment); err != nil {
		return nil, err
	}

	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupError("get post", "post didn't exist", err)
	}

	reply := &models.Reply{UserID: userID, PostID: postID, Comment: comment}
	if err := s.replyRepository.CreateReply(ctx, reply); err != nil {
		return nil, storeError("create reply", err)
	}
	reply.Post = *post

	s.notifier.Notify(ctx, models.NotificationReply, userID, post.UserID, post.ID)

	view := models.NewReplyView(reply)
	return &view, nil
}

// AddLike records a like. Repeated likes by the same user are stored as-is.
func (s *PostService) AddLike(ctx context.Context, userID, postID uint) (*models.Like, error) {
	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupError("get post", "post didn't exist", err)
	}

	like := &models.Like{UserID: userID, PostID: postID}
	if err := s.likeRepository.CreateLike(ctx, like); err != nil {
		return nil, storeError("create like", err)
	}

	s.notifier.Notify(ctx, models.NotificationLike, userID, post.UserID, post.ID)
	return like, nil
}

// Unlike removes the caller's likes on the post.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepository.GetPostByID(ctx, postID); err != nil {
		return lookupError("get post", "post didn't exist", err)
	}

	n, err := s.likeRepository.DeleteLikes(ctx, postID, userID)
	if err != nil {
		return storeError("delete like", err)
	}
	if n == 0 {
		return notFoundError("like didn't exist")
	}
	return nil
}

func checkText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return validationError(field + " cannot be blank")
	}
	if utf8.RuneCountInString(text) > maxPostLength {
		return validationError(field + " is longer than 140 characters")
	}
	return nil
}
