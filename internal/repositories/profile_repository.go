package repositories

import (
	"github.com/conecta-social/conecta-server/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile sub-collection operations
// (experiences, formation and certificates attached to a user).
type ProfileRepository interface {
	AddExperience(exp *models.Experience) error
	UpdateExperience(userID, id uint, exp *models.Experience) error
	DeleteExperience(userID, id uint) error
	ListExperiences(userID uint) ([]models.Experience, error)

	AddEducation(edu *models.Education) error
	UpdateEducation(userID, id uint, edu *models.Education) error
	DeleteEducation(userID, id uint) error
	ListEducations(userID uint) ([]models.Education, error)

	AddCertificate(cert *models.Certificate) error
	UpdateCertificate(userID, id uint, cert *models.Certificate) error
	DeleteCertificate(userID, id uint) error
	ListCertificates(userID uint) ([]models.Certificate, error)

	DeleteAllByUser(userID uint) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) AddExperience(exp *models.Experience) error {
	return r.db.Create(exp).Error
}

func (r *PostgresProfileRepository) UpdateExperience(userID, id uint, exp *models.Experience) error {
	result := r.db.Model(&models.Experience{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"occupation":       exp.Occupation,
			"company":          exp.Company,
			"start_date_month": exp.StartDateMonth,
			"start_date_year":  exp.StartDateYear,
			"end_date_month":   exp.EndDateMonth,
			"end_date_year":    exp.EndDateYear,
			"current":          exp.Current,
			"type":             exp.Type,
			"description":      exp.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) DeleteExperience(userID, id uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Experience{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListExperiences sorts current positions first, then newest entries
func (r *PostgresProfileRepository) ListExperiences(userID uint) ([]models.Experience, error) {
	var exps []models.Experience
	err := r.db.Where("user_id = ?", userID).
		Order("current DESC, created_at DESC").
		Find(&exps).Error
	return exps, err
}

func (r *PostgresProfileRepository) AddEducation(edu *models.Education) error {
	return r.db.Create(edu).Error
}

func (r *PostgresProfileRepository) UpdateEducation(userID, id uint, edu *models.Education) error {
	result := r.db.Model(&models.Education{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"name":             edu.Name,
			"institution":      edu.Institution,
			"degree":           edu.Degree,
			"start_date_month": edu.StartDateMonth,
			"start_date_year":  edu.StartDateYear,
			"end_date_month":   edu.EndDateMonth,
			"end_date_year":    edu.EndDateYear,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) DeleteEducation(userID, id uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Education{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) ListEducations(userID uint) ([]models.Education, error) {
	var edus []models.Education
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&edus).Error
	return edus, err
}

func (r *PostgresProfileRepository) AddCertificate(cert *models.Certificate) error {
	return r.db.Create(cert).Error
}

func (r *PostgresProfileRepository) UpdateCertificate(userID, id uint, cert *models.Certificate) error {
	result := r.db.Model(&models.Certificate{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"name":        cert.Name,
			"institution": cert.Institution,
			"issue_month": cert.IssueMonth,
			"issue_year":  cert.IssueYear,
			"url":         cert.URL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) DeleteCertificate(userID, id uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Certificate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) ListCertificates(userID uint) ([]models.Certificate, error) {
	var certs []models.Certificate
	err := r.db.Where("user_id = ?", userID).
		Order("issue_year DESC, issue_month DESC, created_at DESC").
		Find(&certs).Error
	return certs, err
}

func (r *PostgresProfileRepository) DeleteAllByUser(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.Experience{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("user_id = ?", userID).Delete(&models.Education{}).Error; err != nil {
		return err
	}
	return r.db.Where("user_id = ?", userID).Delete(&models.Certificate{}).Error
}
