package repositories

import (
	"context"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"gorm.io/gorm"
)

// FollowshipRepository defines the interface for follow data operations
type FollowshipRepository interface {
	CreateFollowship(ctx context.Context, followship *models.Followship) error
	DeleteFollowship(ctx context.Context, id uint) error
	GetFollowship(ctx context.Context, followerID, followingID uint) (*models.Followship, error)
	GetFollowings(ctx context.Context, userID uint) ([]models.Followship, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.Followship, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PostgresFollowshipRepository implements FollowshipRepository for PostgreSQL
type PostgresFollowshipRepository struct {
	db *gorm.DB
}

// NewPostgresFollowshipRepository creates a new PostgresFollowshipRepository
func NewPostgresFollowshipRepository(db *gorm.DB) *PostgresFollowshipRepository {
	return &PostgresFollowshipRepository{db: db}
}

func (r *PostgresFollowshipRepository) CreateFollowship(ctx context.Context, followship *models.Followship) error {
	return r.db.WithContext(ctx).Create(followship).Error
}

// DeleteFollowship returns gorm.ErrRecordNotFound when no edge had that id.
func (r *PostgresFollowshipRepository) DeleteFollowship(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Followship{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresFollowshipRepository) GetFollowship(ctx context.Context, followerID, followingID uint) (*models.Followship, error) {
	var followship models.Followship
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&followship).Error
	if err != nil {
		return nil, err
	}
	return &followship, nil
}

func (r *PostgresFollowshipRepository) GetFollowings(ctx context.Context, userID uint) ([]models.Followship, error) {
	var followships []models.Followship
	err := r.db.WithContext(ctx).Where("follower_id = ?", userID).Find(&followships).Error
	return followships, err
}

func (r *PostgresFollowshipRepository) GetFollowers(ctx context.Context, userID uint) ([]models.Followship, error) {
	var followships []models.Followship
	err := r.db.WithContext(ctx).Where("following_id = ?", userID).Find(&followships).Error
	return followships, err
}

func (r *PostgresFollowshipRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Followship{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}
