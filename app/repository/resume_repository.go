package repository

import (
	"github.com/matchpro/platform/app/models"
	"gorm.io/gorm"
)

// resumeRepository implements ResumeRepository
type resumeRepository struct {
	db *gorm.DB
}

// NewResumeRepository creates a new resume repository
func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(resume *models.Resume) error {
	return r.db.Create(resume).Error
}

// GetForUser returns the resume only when it belongs to the user; a foreign
// resume is indistinguishable from an absent one.
func (r *resumeRepository) GetForUser(id, userID string) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// GetLatestByUserID returns the most recently updated resume for the user.
func (r *resumeRepository) GetLatestByUserID(userID string) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) ListByUserID(userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&resumes).Error
	return resumes, err
}

func (r *resumeRepository) DeleteForUser(id, userID string) (bool, error) {
	tx := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Resume{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
