package repositories

import (
	"errors"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"gorm.io/gorm"
)

// ErrAlreadyRated is returned when a user rates the same community twice
var ErrAlreadyRated = errors.New("community already rated by user")

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	CreateCommunity(community *models.Community) error
	GetCommunityByID(id uint) (*models.Community, error)
	GetByFormattedLink(formattedLink string) (*models.Community, error)
	UpdateCommunity(community *models.Community) error
	ReplaceSkills(community *models.Community, skills []models.Skill) error
	DeleteCommunity(id uint) error
	ListCommunities(page, limit int, filters models.CommunityFilters, keyword string) ([]models.Community, int64, error)
	RateCommunity(communityID, userID uint, rating int) error
	DeleteByAuthor(authorID uint) error
}

// PostgresCommunityRepository implements CommunityRepository for PostgreSQL
type PostgresCommunityRepository struct {
	db *gorm.DB
}

// NewPostgresCommunityRepository creates a new PostgresCommunityRepository
func NewPostgresCommunityRepository(db *gorm.DB) *PostgresCommunityRepository {
	return &PostgresCommunityRepository{db: db}
}

func (r *PostgresCommunityRepository) CreateCommunity(community *models.Community) error {
	return r.db.Create(community).Error
}

func (r *PostgresCommunityRepository) GetCommunityByID(id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.Preload("Skills").First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *PostgresCommunityRepository) GetByFormattedLink(formattedLink string) (*models.Community, error) {
	var community models.Community
	err := r.db.Where("formatted_link = ?", formattedLink).First(&community).Error
	if err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *PostgresCommunityRepository) UpdateCommunity(community *models.Community) error {
	return r.db.Save(community).Error
}

func (r *PostgresCommunityRepository) ReplaceSkills(community *models.Community, skills []models.Skill) error {
	return r.db.Model(community).Association("Skills").Replace(skills)
}

func (r *PostgresCommunityRepository) DeleteCommunity(id uint) error {
	community := models.Community{}
	community.ID = id
	if err := r.db.Model(&community).Association("Skills").Clear(); err != nil {
		return err
	}
	if err := r.db.Unscoped().Where("community_id = ?", id).Delete(&models.CommunityRating{}).Error; err != nil {
		return err
	}
	result := r.db.Unscoped().Delete(&models.Community{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListCommunities pages communities with the optional filters. The
// "relevance" sort orders by average rating, otherwise newest first.
func (r *PostgresCommunityRepository) ListCommunities(page, limit int, filters models.CommunityFilters, keyword string) ([]models.Community, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.CommunitiesPerPage
	}

	tx := r.db.Model(&models.Community{})

	if filters.ProfessionalArea != 0 {
		tx = tx.Where("communities.professional_area_id = ?", filters.ProfessionalArea)
	}
	if len(filters.Platforms) > 0 {
		tx = tx.Where("communities.platform IN ?", filters.Platforms)
	}
	if len(filters.Skills) > 0 {
		tx = tx.Where("communities.id IN (?)",
			r.db.Table("community_skills").
				Select("community_id").
				Where("skill_id IN ?", filters.Skills))
	}
	if keyword != "" {
		tx = tx.Where("communities.name ILIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.SortType == "relevance" {
		tx = tx.Order("(communities.rating::numeric / NULLIF(communities.total_ratings, 0)) DESC NULLS LAST")
	}

	var communities []models.Community
	err := tx.Preload("Skills").
		Order("communities.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&communities).Error
	if err != nil {
		return nil, 0, err
	}
	return communities, total, nil
}

// RateCommunity records the rating and folds it into the running sum in one
// transaction. A second rating by the same user fails before the sum moves.
func (r *PostgresCommunityRepository) RateCommunity(communityID, userID uint, rating int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CommunityRating{}).
			Where("community_id = ? AND user_id = ?", communityID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyRated
		}

		record := models.CommunityRating{CommunityID: communityID, UserID: userID, Rating: rating}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Community{}).
			Where("id = ?", communityID).
			Updates(map[string]interface{}{
				"rating":        gorm.Expr("rating + ?", rating),
				"total_ratings": gorm.Expr("total_ratings + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *PostgresCommunityRepository) DeleteByAuthor(authorID uint) error {
	var communities []models.Community
	if err := r.db.Where("author_id = ?", authorID).Find(&communities).Error; err != nil {
		return err
	}
	for _, community := range communities {
		if err := r.DeleteCommunity(community.ID); err != nil {
			return err
		}
	}
	return nil
}
