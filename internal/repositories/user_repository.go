package repositories

import (
	"context"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByAccount(ctx context.Context, account string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User, fields map[string]any) error
	GetTopUsers(ctx context.Context, limit int) ([]models.TopUser, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByAccount(ctx context.Context, account string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("account = ?", account).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser persists only the given columns and refreshes user in place.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(user).Updates(fields).Error
}

// GetTopUsers ranks non-admin users by follower count. Ties are broken by id so
// the ranking is stable across calls.
func (r *PostgresUserRepository) GetTopUsers(ctx context.Context, limit int) ([]models.TopUser, error) {
	type row struct {
		ID            uint
		Account       string
		Name          string
		Avatar        string
		FollowerCount int64
	}

	db := r.db.WithContext(ctx)
	followers := db.Model(&models.Followship{}).
		Select("COUNT(*)").
		Where("followships.following_id = users.id")

	var rows []row
	err := db.Model(&models.User{}).
		Select("users.id, users.account, users.name, users.avatar, (?) AS follower_count", followers).
		Where("users.role <> ?", models.RoleAdmin).
		Order("follower_count DESC").
		Order("users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]models.TopUser, len(rows))
	for i, rw := range rows {
		users[i] = models.TopUser{
			UserCompact:   models.UserCompact{ID: rw.ID, Account: rw.Account, Name: rw.Name, Avatar: rw.Avatar},
			FollowerCount: rw.FollowerCount,
		}
	}
	return users, nil
}
