package services

import (
	"context"

	"github.com/anonto42/simple-twitter/backend/internal/metrics"
	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/anonto42/simple-twitter/backend/internal/repositories"
	"github.com/anonto42/simple-twitter/backend/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultTopUsersLimit = 10

// FeedService assembles the read-side views: profiles, post feeds with
// counters, liked posts, reply history and the follower ranking.
type FeedService struct {
	userRepository       repositories.UserRepository
	postRepository       repositories.PostRepository
	replyRepository      repositories.ReplyRepository
	likeRepository       repositories.LikeRepository
	followshipRepository repositories.FollowshipRepository
	topUsersCache        repositories.TopUsersCache
	fanoutLimit          int
}

// NewFeedService creates a new FeedService
func NewFeedService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	replyRepo repositories.ReplyRepository,
	likeRepo repositories.LikeRepository,
	followshipRepo repositories.FollowshipRepository,
) *FeedService {
	return &FeedService{
		userRepository:       userRepo,
		postRepository:       postRepo,
		replyRepository:      replyRepo,
		likeRepository:       likeRepo,
		followshipRepository: followshipRepo,
	}
}

// WithTopUsersCache enables caching of the follower ranking.
func (s *FeedService) WithTopUsersCache(cache repositories.TopUsersCache) *FeedService {
	s.topUsersCache = cache
	return s
}

// WithFanoutLimit bounds the number of count lookups in flight per call. Zero
// means unbounded.
func (s *FeedService) WithFanoutLimit(limit int) *FeedService {
	s.fanoutLimit = limit
	return s
}

func (s *FeedService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, lookupError("get user", "user didn't exist", err)
	}
	return user.ToProfile(), nil
}

// GetCurrentUser returns the profile of the authenticated caller.
func (s *FeedService) GetCurrentUser(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.GetProfile(ctx, userID)
}

// GetPostsByUser returns a user's posts, newest first, with author and counters.
func (s *FeedService) GetPostsByUser(ctx context.Context, userID uint) ([]models.PostView, error) {
	posts, err := s.postRepository.GetPostsByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("list posts by user", err)
	}
	return s.enrichPosts(ctx, "user_posts", posts)
}

// GetPosts returns every post, newest first.
func (s *FeedService) GetPosts(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.postRepository.GetAllPosts(ctx)
	if err != nil {
		return nil, storeError("list posts", err)
	}
	return s.enrichPosts(ctx, "all_posts", posts)
}

func (s *FeedService) GetPost(ctx context.Context, postID uint) (*models.PostView, error) {
	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupError("get post", "post didn't exist", err)
	}
	views, err := s.enrichPosts(ctx, "single_post", []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetFollowingFeed returns posts by the users userID follows plus userID's own.
func (s *FeedService) GetFollowingFeed(ctx context.Context, userID uint) ([]models.PostView, error) {
	ids, err := s.followshipRepository.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, storeError("list following ids", err)
	}
	ids = append(ids, userID)

	posts, err := s.postRepository.GetPostsByUserIDs(ctx, ids)
	if err != nil {
		return nil, storeError("list following posts", err)
	}
	return s.enrichPosts(ctx, "following_feed", posts)
}

// GetLikedPostsByUser returns a user's likes, newest first, each carrying the
// liked post with its author and counters.
func (s *FeedService) GetLikedPostsByUser(ctx context.Context, userID uint) ([]models.LikeView, error) {
	likes, err := s.likeRepository.GetLikesByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("list likes by user", err)
	}

	views := make([]models.LikeView, len(likes))
	targets := make([]*models.PostView, len(likes))
	for i := range likes {
		views[i] = models.LikeView{
			ID:        likes[i].ID,
			UserID:    likes[i].UserID,
			PostID:    likes[i].PostID,
			CreatedAt: likes[i].CreatedAt,
			Post:      models.NewPostView(&likes[i].Post),
		}
		targets[i] = &views[i].Post
	}

	if err := s.fillCounts(ctx, "liked_posts", targets); err != nil {
		return nil, err
	}
	return views, nil
}

// GetRepliesByUser returns a user's replies, newest first, with the replying
// user and the target post and its author. No counters.
func (s *FeedService) GetRepliesByUser(ctx context.Context, userID uint) ([]models.ReplyView, error) {
	replies, err := s.replyRepository.GetRepliesByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("list replies by user", err)
	}

	views := make([]models.ReplyView, len(replies))
	for i := range replies {
		views[i] = models.NewReplyView(&replies[i])
	}
	return views, nil
}

// GetPostReplies returns the replies to one post, newest first.
func (s *FeedService) GetPostReplies(ctx context.Context, postID uint) ([]models.ReplyView, error) {
	if _, err := s.postRepository.GetPostByID(ctx, postID); err != nil {
		return nil, lookupError("get post", "post didn't exist", err)
	}

	replies, err := s.replyRepository.GetRepliesByPostID(ctx, postID)
	if err != nil {
		return nil, storeError("list replies by post", err)
	}

	views := make([]models.ReplyView, len(replies))
	for i := range replies {
		views[i] = models.NewReplyView(&replies[i])
	}
	return views, nil
}

// GetTopUsers ranks users by follower count and flags the ones viewerID follows.
func (s *FeedService) GetTopUsers(ctx context.Context, viewerID uint, limit int) ([]models.TopUser, error) {
	if limit <= 0 {
		limit = DefaultTopUsersLimit
	}

	users, err := s.rankedUsers(ctx, limit)
	if err != nil {
		return nil, err
	}

	followingIDs, err := s.followshipRepository.GetFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, storeError("list following ids", err)
	}
	following := make(map[uint]struct{}, len(followingIDs))
	for _, id := range followingIDs {
		following[id] = struct{}{}
	}

	for i := range users {
		_, users[i].IsFollowed = following[users[i].ID]
	}
	return users, nil
}

func (s *FeedService) rankedUsers(ctx context.Context, limit int) ([]models.TopUser, error) {
	if s.topUsersCache != nil {
		users, ok, err := s.topUsersCache.Get(ctx, limit)
		if err != nil {
			logger.L.Warn("top users cache read failed", zap.Error(err))
		} else if ok {
			return users, nil
		}
	}

	users, err := s.userRepository.GetTopUsers(ctx, limit)
	if err != nil {
		return nil, storeError("rank users", err)
	}

	if s.topUsersCache != nil {
		if err := s.topUsersCache.Set(ctx, limit, users); err != nil {
			logger.L.Warn("top users cache write failed", zap.Error(err))
		}
	}
	return users, nil
}

func (s *FeedService) enrichPosts(ctx context.Context, view string, posts []models.Post) ([]models.PostView, error) {
	views := make([]models.PostView, len(posts))
	targets := make([]*models.PostView, len(posts))
	for i := range posts {
		views[i] = models.NewPostView(&posts[i])
		targets[i] = &views[i]
	}

	if err := s.fillCounts(ctx, view, targets); err != nil {
		return nil, err
	}
	return views, nil
}

// fillCounts runs the like and reply counts of every target concurrently and
// waits for all of them. Each task writes only its own slot, so the caller's
// ordering is untouched. The first failure fails the whole call.
func (s *FeedService) fillCounts(ctx context.Context, view string, targets []*models.PostView) error {
	if len(targets) == 0 {
		return nil
	}

	var g errgroup.Group
	if s.fanoutLimit > 0 {
		g.SetLimit(s.fanoutLimit)
	}

	for _, target := range targets {
		g.Go(func() error {
			count, err := s.likeRepository.CountByPostID(ctx, target.ID)
			if err != nil {
				return storeError("count likes", err)
			}
			target.LikeCount = count
			return nil
		})
		g.Go(func() error {
			count, err := s.replyRepository.CountByPostID(ctx, target.ID)
			if err != nil {
				return storeError("count replies", err)
			}
			target.ReplyCount = count
			return nil
		})
	}

	metrics.FanoutTasks.WithLabelValues(view).Observe(float64(2 * len(targets)))
	return g.Wait()
}
