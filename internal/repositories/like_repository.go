package repositories

import (
	"context"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLikes(ctx context.Context, postID, userID uint) (int64, error)
	GetLikesByUserID(ctx context.Context, userID uint) ([]models.Like, error)
	CountByPostID(ctx context.Context, postID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLikes removes every like the user placed on the post and reports how
// many rows went away.
func (r *PostgresLikeRepository) DeleteLikes(ctx context.Context, postID, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	return res.RowsAffected, res.Error
}

// GetLikesByUserID retrieves a user's likes with the liked post and its author, newest first
func (r *PostgresLikeRepository) GetLikesByUserID(ctx context.Context, userID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.User", publicUserColumns).
		Where("user_id = ?", userID).
		Scopes(newestFirst).
		Find(&likes).Error
	return likes, err
}

// CountByPostID counts the likes on a post
func (r *PostgresLikeRepository) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
