package repositories

import (
	"github.com/conecta-social/conecta-server/backend/internal/models"
	"gorm.io/gorm"
)

// CatalogRepository defines the interface for the professional area and
// skill catalogs.
type CatalogRepository interface {
	CreateProfessionalArea(area *models.ProfessionalArea) error
	ListProfessionalAreas() ([]models.ProfessionalArea, error)
	GetProfessionalAreaByID(id uint) (*models.ProfessionalArea, error)
	CreateSkill(skill *models.Skill) error
	CreateSkills(skills []models.Skill) error
	ListSkillsByArea(areaID uint) ([]models.Skill, error)
	GetSkillsByIDs(ids []uint) ([]models.Skill, error)
}

// PostgresCatalogRepository implements CatalogRepository for PostgreSQL
type PostgresCatalogRepository struct {
	db *gorm.DB
}

// NewPostgresCatalogRepository creates a new PostgresCatalogRepository
func NewPostgresCatalogRepository(db *gorm.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) CreateProfessionalArea(area *models.ProfessionalArea) error {
	return r.db.Create(area).Error
}

func (r *PostgresCatalogRepository) ListProfessionalAreas() ([]models.ProfessionalArea, error) {
	var areas []models.ProfessionalArea
	err := r.db.Order("name ASC").Find(&areas).Error
	return areas, err
}

func (r *PostgresCatalogRepository) GetProfessionalAreaByID(id uint) (*models.ProfessionalArea, error) {
	var area models.ProfessionalArea
	if err := r.db.First(&area, id).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *PostgresCatalogRepository) CreateSkill(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

func (r *PostgresCatalogRepository) CreateSkills(skills []models.Skill) error {
	if len(skills) == 0 {
		return nil
	}
	return r.db.Create(&skills).Error
}

func (r *PostgresCatalogRepository) ListSkillsByArea(areaID uint) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.Where("professional_area_id = ?", areaID).Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *PostgresCatalogRepository) GetSkillsByIDs(ids []uint) ([]models.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var skills []models.Skill
	err := r.db.Where("id IN ?", ids).Find(&skills).Error
	return skills, err
}
