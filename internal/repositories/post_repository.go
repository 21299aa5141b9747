package repositories

import (
	"context"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error)
	GetPostsByUserIDs(ctx context.Context, userIDs []uint) ([]models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post and loads its author
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(post).Error; err != nil {
		return err
	}
	return db.Scopes(publicUserColumns).First(&post.User, post.UserID).Error
}

// GetPostByID retrieves a post with its author
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User", publicUserColumns).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID retrieves posts by a specific user, newest first
func (r *PostgresPostRepository) GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User", publicUserColumns).
		Where("user_id = ?", userID).
		Scopes(newestFirst).
		Find(&posts).Error
	return posts, err
}

// GetPostsByUserIDs retrieves posts authored by any of the given users, newest first
func (r *PostgresPostRepository) GetPostsByUserIDs(ctx context.Context, userIDs []uint) ([]models.Post, error) {
	var posts []models.Post
	if len(userIDs) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).
		Preload("User", publicUserColumns).
		Where("user_id IN ?", userIDs).
		Scopes(newestFirst).
		Find(&posts).Error
	return posts, err
}

// GetAllPosts retrieves every post, newest first
func (r *PostgresPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User", publicUserColumns).
		Scopes(newestFirst).
		Find(&posts).Error
	return posts, err
}
