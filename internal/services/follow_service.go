package services

import (
	"context"
	"errors"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/anonto42/simple-twitter/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// FollowService manages directed follow edges.
//
// Follow checks for an existing edge and then inserts. Two concurrent calls for
// the same pair can both pass the check; the unique index on
// (follower_id, following_id) rejects the second insert, which surfaces as a
// store error.
type FollowService struct {
	followshipRepository repositories.FollowshipRepository
	userRepository       repositories.UserRepository
	notifier             Notifier
}

// NewFollowService creates a new FollowService. notifier may be nil.
func NewFollowService(followshipRepo repositories.FollowshipRepository, userRepo repositories.UserRepository, notifier Notifier) *FollowService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &FollowService{
		followshipRepository: followshipRepo,
		userRepository:       userRepo,
		notifier:             notifier,
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followingID uint) (*models.FollowResult, error) {
	var (
		g        errgroup.Group
		existing *models.Followship
	)

	g.Go(func() error {
		if _, err := s.userRepository.GetUserByID(ctx, followingID); err != nil {
			return lookupError("get user", "user didn't exist", err)
		}
		return nil
	})
	g.Go(func() error {
		followship, err := s.followshipRepository.GetFollowship(ctx, followerID, followingID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return storeError("get followship", err)
		}
		existing = followship
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictError("you are already following this user")
	}

	followship := &models.Followship{FollowerID: followerID, FollowingID: followingID}
	if err := s.followshipRepository.CreateFollowship(ctx, followship); err != nil {
		return nil, storeError("create followship", err)
	}

	s.notifier.Notify(ctx, models.NotificationFollow, followerID, followingID, 0)

	return &models.FollowResult{FollowerID: followerID, FollowingID: followingID}, nil
}

// Unfollow removes the edge with the given id.
func (s *FollowService) Unfollow(ctx context.Context, followshipID uint) error {
	if err := s.followshipRepository.DeleteFollowship(ctx, followshipID); err != nil {
		return lookupError("delete followship", "followship didn't exist", err)
	}
	return nil
}

// UnfollowUser resolves the follower->following edge and removes it.
func (s *FollowService) UnfollowUser(ctx context.Context, followerID, followingID uint) error {
	followship, err := s.followshipRepository.GetFollowship(ctx, followerID, followingID)
	if err != nil {
		return lookupError("get followship", "you are not following this user", err)
	}
	return s.Unfollow(ctx, followship.ID)
}

func (s *FollowService) ListFollowing(ctx context.Context, userID uint) ([]models.Followship, error) {
	followships, err := s.followshipRepository.GetFollowings(ctx, userID)
	if err != nil {
		return nil, storeError("list followings", err)
	}
	if followships == nil {
		followships = []models.Followship{}
	}
	return followships, nil
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint) ([]models.Followship, error) {
	followships, err := s.followshipRepository.GetFollowers(ctx, userID)
	if err != nil {
		return nil, storeError("list followers", err)
	}
	if followships == nil {
		followships = []models.Followship{}
	}
	return followships, nil
}
