package repository

import (
	"github.com/matchpro/platform/app/models"
	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(application *models.JobApplication) error {
	return r.db.Create(application).Error
}

func (r *applicationRepository) GetForUser(id, userID string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) ListByUserID(userID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

// UpdateStatusForUser moves the application to the given status. Returns
// false when no row matched, so a foreign or absent application reads as not
// found rather than silently succeeding.
func (r *applicationRepository) UpdateStatusForUser(id, userID string, status models.ApplicationStatus) (bool, error) {
	tx := r.db.Model(&models.JobApplication{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *applicationRepository) DeleteForUser(id, userID string) (bool, error) {
	tx := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.JobApplication{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
