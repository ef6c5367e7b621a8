package repositories

import (
	"fmt"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"gorm.io/gorm"
)

// NetworkQuery describes a network listing: which relation to walk, the page
// window and an optional case-insensitive name filter.
type NetworkQuery struct {
	UserID   uint
	Relation string // followers | following | all | not-following
	Page     int
	Limit    int
	Keyword  string
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByRefreshToken(token string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	CountUsers() (int64, error)
	ListNetwork(q NetworkQuery) ([]models.UserSummary, int64, error)
	ListRecentNotFollowing(userID uint, limit int) ([]models.UserSummary, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByRefreshToken(token string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("refresh_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser removes the user row permanently so the email can be reused
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Unscoped().Delete(&models.User{}, id).Error
}

func (r *PostgresUserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// summaryColumns projects a user row to counts instead of full follower lists
const summaryColumns = `users.id, users.name, users.avatar, users.headline,
	(SELECT COUNT(*) FROM follows f WHERE f.following_id = users.id) AS followers,
	(SELECT COUNT(*) FROM follows f WHERE f.follower_id = users.id) AS following`

// ListNetwork lists users related to q.UserID with keyword filtering and
// offset/limit pagination. Relations: followers, following, all users except
// the caller, or users the caller does not follow yet.
func (r *PostgresUserRepository) ListNetwork(q NetworkQuery) ([]models.UserSummary, int64, error) {
	tx := r.db.Model(&models.User{})

	followingSub := r.db.Table("follows").Select("following_id").Where("follower_id = ?", q.UserID)
	followerSub := r.db.Table("follows").Select("follower_id").Where("following_id = ?", q.UserID)

	switch q.Relation {
	case "followers":
		tx = tx.Where("users.id IN (?)", followerSub)
	case "following":
		tx = tx.Where("users.id IN (?)", followingSub)
	case "all":
		tx = tx.Where("users.id <> ?", q.UserID)
	case "not-following":
		tx = tx.Where("users.id <> ?", q.UserID).Where("users.id NOT IN (?)", followingSub)
	default:
		return nil, 0, fmt.Errorf("unknown relation: %s", q.Relation)
	}

	if q.Keyword != "" {
		tx = tx.Where("users.name ILIKE ?", "%"+q.Keyword+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	var rows []models.UserSummary
	err := tx.Select(summaryColumns).
		Order("users.created_at DESC, users.id DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListRecentNotFollowing returns the newest users the caller does not follow,
// used for the people-you-may-know suggestions.
func (r *PostgresUserRepository) ListRecentNotFollowing(userID uint, limit int) ([]models.UserSummary, error) {
	if limit < 1 {
		limit = 5
	}

	followingSub := r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID)

	var rows []models.UserSummary
	err := r.db.Model(&models.User{}).
		Select(summaryColumns).
		Where("users.id <> ?", userID).
		Where("users.id NOT IN (?)", followingSub).
		Order("users.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
