package repositories

import (
	"github.com/conecta-social/conecta-server/backend/internal/models"
	"gorm.io/gorm"
)

// VacancyRepository defines the interface for vacancy data operations
type VacancyRepository interface {
	CreateVacancy(vacancy *models.Vacancy) error
	GetVacancyByID(id uint) (*models.Vacancy, error)
	GetVacancyByExternalID(externalID string) (*models.Vacancy, error)
	UpdateVacancy(vacancy *models.Vacancy) error
	ReplaceSkills(vacancy *models.Vacancy, skills []models.Skill) error
	DeleteVacancy(id uint) error
	ListVacancies(page, limit int, filters models.VacancyFilters, keyword string) ([]models.Vacancy, int64, error)
	ListByAuthor(authorID uint, page, limit int) ([]models.Vacancy, int64, error)
	DeleteByAuthor(authorID uint) error
	DeleteExternalVacancies() (int64, error)
}

// PostgresVacancyRepository implements VacancyRepository for PostgreSQL
type PostgresVacancyRepository struct {
	db *gorm.DB
}

// NewPostgresVacancyRepository creates a new PostgresVacancyRepository
func NewPostgresVacancyRepository(db *gorm.DB) *PostgresVacancyRepository {
	return &PostgresVacancyRepository{db: db}
}

func (r *PostgresVacancyRepository) CreateVacancy(vacancy *models.Vacancy) error {
	return r.db.Create(vacancy).Error
}

func (r *PostgresVacancyRepository) GetVacancyByID(id uint) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	if err := r.db.Preload("Skills").First(&vacancy, id).Error; err != nil {
		return nil, err
	}
	return &vacancy, nil
}

func (r *PostgresVacancyRepository) GetVacancyByExternalID(externalID string) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	err := r.db.Where("external_vacancy_id = ?", externalID).First(&vacancy).Error
	if err != nil {
		return nil, err
	}
	return &vacancy, nil
}

func (r *PostgresVacancyRepository) UpdateVacancy(vacancy *models.Vacancy) error {
	// Save skips zero values on Updates but writes the full struct here,
	// which is what the edit endpoint needs (cleared location fields stick).
	return r.db.Session(&gorm.Session{FullSaveAssociations: false}).Save(vacancy).Error
}

func (r *PostgresVacancyRepository) ReplaceSkills(vacancy *models.Vacancy, skills []models.Skill) error {
	return r.db.Model(vacancy).Association("Skills").Replace(skills)
}

func (r *PostgresVacancyRepository) DeleteVacancy(id uint) error {
	vacancy := models.Vacancy{}
	vacancy.ID = id
	if err := r.db.Model(&vacancy).Association("Skills").Clear(); err != nil {
		return err
	}
	result := r.db.Unscoped().Delete(&models.Vacancy{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListVacancies pages the vacancy board newest first, applying the optional
// filters and a case-insensitive occupation/company keyword.
func (r *PostgresVacancyRepository) ListVacancies(page, limit int, filters models.VacancyFilters, keyword string) ([]models.Vacancy, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.VacanciesPerPage
	}

	tx := r.db.Model(&models.Vacancy{})

	if len(filters.TypeLocation) > 0 {
		tx = tx.Where("type_location IN ?", filters.TypeLocation)
	}
	if len(filters.ContractType) > 0 {
		tx = tx.Where("contract_type IN ?", filters.ContractType)
	}
	if filters.EmploymentType != "" {
		tx = tx.Where("employment_type = ?", filters.EmploymentType)
	}
	if filters.ProfessionalArea != 0 {
		tx = tx.Where("professional_area_id = ?", filters.ProfessionalArea)
	}
	if keyword != "" {
		tx = tx.Where("occupation ILIKE ? OR company ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vacancies []models.Vacancy
	err := tx.Preload("Skills").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&vacancies).Error
	if err != nil {
		return nil, 0, err
	}
	return vacancies, total, nil
}

func (r *PostgresVacancyRepository) ListByAuthor(authorID uint, page, limit int) ([]models.Vacancy, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.VacanciesPerPage
	}

	var total int64
	if err := r.db.Model(&models.Vacancy{}).Where("author_id = ?", authorID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vacancies []models.Vacancy
	err := r.db.Preload("Skills").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&vacancies).Error
	if err != nil {
		return nil, 0, err
	}
	return vacancies, total, nil
}

func (r *PostgresVacancyRepository) DeleteByAuthor(authorID uint) error {
	return r.db.Unscoped().Where("author_id = ?", authorID).Delete(&models.Vacancy{}).Error
}

// DeleteExternalVacancies purges every imported vacancy, returning how many
// rows went. External vacancies carry no skills or applications, so there is
// nothing to cascade.
func (r *PostgresVacancyRepository) DeleteExternalVacancies() (int64, error) {
	result := r.db.Unscoped().Where("external_vacancy = ?", true).Delete(&models.Vacancy{})
	return result.RowsAffected, result.Error
}
