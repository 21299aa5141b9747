package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// --- mocks ---

type mockUserRepo struct {
	getUserByIDFn func(ctx context.Context, id uint) (*models.User, error)
	getTopUsersFn func(ctx context.Context, limit int) ([]models.TopUser, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error { return nil }
func (m *mockUserRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) GetUserByAccount(ctx context.Context, account string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) UpdateUser(ctx context.Context, user *models.User, fields map[string]any) error {
	return nil
}
func (m *mockUserRepo) GetTopUsers(ctx context.Context, limit int) ([]models.TopUser, error) {
	if m.getTopUsersFn != nil {
		return m.getTopUsersFn(ctx, limit)
	}
	return nil, nil
}

type mockPostRepo struct {
	getPostByIDFn       func(ctx context.Context, id uint) (*models.Post, error)
	getPostsByUserIDFn  func(ctx context.Context, userID uint) ([]models.Post, error)
	getPostsByUserIDsFn func(ctx context.Context, userIDs []uint) ([]models.Post, error)
	getAllPostsFn       func(ctx context.Context) ([]models.Post, error)
}

func (m *mockPostRepo) CreatePost(ctx context.Context, post *models.Post) error { return nil }
func (m *mockPostRepo) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	if m.getPostByIDFn != nil {
		return m.getPostByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockPostRepo) GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	if m.getPostsByUserIDFn != nil {
		return m.getPostsByUserIDFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockPostRepo) GetPostsByUserIDs(ctx context.Context, userIDs []uint) ([]models.Post, error) {
	if m.getPostsByUserIDsFn != nil {
		return m.getPostsByUserIDsFn(ctx, userIDs)
	}
	return nil, nil
}
func (m *mockPostRepo) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	if m.getAllPostsFn != nil {
		return m.getAllPostsFn(ctx)
	}
	return nil, nil
}

type mockReplyRepo struct {
	countByPostIDFn func(ctx context.Context, postID uint) (int64, error)
}

func (m *mockReplyRepo) CreateReply(ctx context.Context, reply *models.Reply) error { return nil }
func (m *mockReplyRepo) GetRepliesByUserID(ctx context.Context, userID uint) ([]models.Reply, error) {
	return nil, nil
}
func (m *mockReplyRepo) GetRepliesByPostID(ctx context.Context, postID uint) ([]models.Reply, error) {
	return nil, nil
}
func (m *mockReplyRepo) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	if m.countByPostIDFn != nil {
		return m.countByPostIDFn(ctx, postID)
	}
	return 0, nil
}

type mockLikeRepo struct {
	getLikesByUserIDFn func(ctx context.Context, userID uint) ([]models.Like, error)
	countByPostIDFn    func(ctx context.Context, postID uint) (int64, error)
}

func (m *mockLikeRepo) CreateLike(ctx context.Context, like *models.Like) error { return nil }
func (m *mockLikeRepo) DeleteLikes(ctx context.Context, postID, userID uint) (int64, error) {
	return 0, nil
}
func (m *mockLikeRepo) GetLikesByUserID(ctx context.Context, userID uint) ([]models.Like, error) {
	if m.getLikesByUserIDFn != nil {
		return m.getLikesByUserIDFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockLikeRepo) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	if m.countByPostIDFn != nil {
		return m.countByPostIDFn(ctx, postID)
	}
	return 0, nil
}

type mockFollowshipRepo struct {
	getFollowingIDsFn func(ctx context.Context, userID uint) ([]uint, error)
}

func (m *mockFollowshipRepo) CreateFollowship(ctx context.Context, followship *models.Followship) error {
	return nil
}
func (m *mockFollowshipRepo) DeleteFollowship(ctx context.Context, id uint) error { return nil }
func (m *mockFollowshipRepo) GetFollowship(ctx context.Context, followerID, followingID uint) (*models.Followship, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockFollowshipRepo) GetFollowings(ctx context.Context, userID uint) ([]models.Followship, error) {
	return nil, nil
}
func (m *mockFollowshipRepo) GetFollowers(ctx context.Context, userID uint) ([]models.Followship, error) {
	return nil, nil
}
func (m *mockFollowshipRepo) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	if m.getFollowingIDsFn != nil {
		return m.getFollowingIDsFn(ctx, userID)
	}
	return nil, nil
}

type mockTopUsersCache struct {
	mu    sync.Mutex
	users map[int][]models.TopUser
	gets  int
	sets  int
}

func (m *mockTopUsersCache) Get(ctx context.Context, limit int) ([]models.TopUser, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	users, ok := m.users[limit]
	if !ok {
		return nil, false, nil
	}
	return append([]models.TopUser(nil), users...), true, nil
}

func (m *mockTopUsersCache) Set(ctx context.Context, limit int, users []models.TopUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users == nil {
		m.users = map[int][]models.TopUser{}
	}
	m.sets++
	m.users[limit] = append([]models.TopUser(nil), users...)
	return nil
}

type notification struct {
	kind                  string
	actor, recipient, tgt uint
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(ctx context.Context, kind string, actorID, recipientID, targetID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{kind, actorID, recipientID, targetID})
}

// --- helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reply{},
		&models.Like{},
		&models.Followship{},
	))
	return db
}

func newTestCredentials() *JWTCredentials {
	creds := NewJWTCredentials("test-secret", 0)
	creds.cost = bcrypt.MinCost
	return creds
}
