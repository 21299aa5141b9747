package repositories

import (
	"context"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"gorm.io/gorm"
)

// ReplyRepository defines the interface for reply data operations
type ReplyRepository interface {
	CreateReply(ctx context.Context, reply *models.Reply) error
	GetRepliesByUserID(ctx context.Context, userID uint) ([]models.Reply, error)
	GetRepliesByPostID(ctx context.Context, postID uint) ([]models.Reply, error)
	CountByPostID(ctx context.Context, postID uint) (int64, error)
}

// PostgresReplyRepository implements ReplyRepository for PostgreSQL
type PostgresReplyRepository struct {
	db *gorm.DB
}

// NewPostgresReplyRepository creates a new PostgresReplyRepository
func NewPostgresReplyRepository(db *gorm.DB) *PostgresReplyRepository {
	return &PostgresReplyRepository{db: db}
}

func (r *PostgresReplyRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(reply).Error; err != nil {
		return err
	}
	return db.Scopes(publicUserColumns).First(&reply.User, reply.UserID).Error
}

// GetRepliesByUserID loads a user's replies with the replying user, the target
// post and that post's author.
func (r *PostgresReplyRepository) GetRepliesByUserID(ctx context.Context, userID uint) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.WithContext(ctx).
		Preload("User", publicUserColumns).
		Preload("Post").
		Preload("Post.User", publicUserColumns).
		Where("user_id = ?", userID).
		Scopes(newestFirst).
		Find(&replies).Error
	return replies, err
}

func (r *PostgresReplyRepository) GetRepliesByPostID(ctx context.Context, postID uint) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.WithContext(ctx).
		Preload("User", publicUserColumns).
		Where("post_id = ?", postID).
		Scopes(newestFirst).
		Find(&replies).Error
	return replies, err
}

func (r *PostgresReplyRepository) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Reply{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
