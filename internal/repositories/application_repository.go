package repositories

import (
	"github.com/conecta-social/conecta-server/backend/internal/models"
	"gorm.io/gorm"
)

// ApplicationRepository defines the interface for vacancy application operations
type ApplicationRepository interface {
	CreateApplication(application *models.Application) error
	HasApplied(candidateID, vacancyID uint) (bool, error)
	ListByCandidate(candidateID uint, page, limit int) ([]models.Application, int64, error)
	ListByVacancy(vacancyID uint, page, limit int) ([]models.Application, int64, error)
	DeleteByVacancy(vacancyID uint) error
	DeleteByCandidate(candidateID uint) error
}

// PostgresApplicationRepository implements ApplicationRepository for PostgreSQL
type PostgresApplicationRepository struct {
	db *gorm.DB
}

// NewPostgresApplicationRepository creates a new PostgresApplicationRepository
func NewPostgresApplicationRepository(db *gorm.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) CreateApplication(application *models.Application) error {
	return r.db.Create(application).Error
}

func (r *PostgresApplicationRepository) HasApplied(candidateID, vacancyID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("candidate_id = ? AND vacancy_id = ?", candidateID, vacancyID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresApplicationRepository) ListByCandidate(candidateID uint, page, limit int) ([]models.Application, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.VacanciesPerPage
	}

	var total int64
	if err := r.db.Model(&models.Application{}).Where("candidate_id = ?", candidateID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.Application
	err := r.db.Preload("Vacancy").Preload("Vacancy.Skills").
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (r *PostgresApplicationRepository) ListByVacancy(vacancyID uint, page, limit int) ([]models.Application, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.CandidatesPerPage
	}

	var total int64
	if err := r.db.Model(&models.Application{}).Where("vacancy_id = ?", vacancyID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.Application
	err := r.db.Where("vacancy_id = ?", vacancyID).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (r *PostgresApplicationRepository) DeleteByVacancy(vacancyID uint) error {
	return r.db.Unscoped().Where("vacancy_id = ?", vacancyID).Delete(&models.Application{}).Error
}

func (r *PostgresApplicationRepository) DeleteByCandidate(candidateID uint) error {
	return r.db.Unscoped().Where("candidate_id = ?", candidateID).Delete(&models.Application{}).Error
}
