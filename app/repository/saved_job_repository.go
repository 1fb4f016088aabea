package repository

import (
	"errors"

	"github.com/matchpro/platform/app/models"
	"gorm.io/gorm"
)

// savedJobRepository implements SavedJobRepository
type savedJobRepository struct {
	db *gorm.DB
}

// NewSavedJobRepository creates a new saved job repository
func NewSavedJobRepository(db *gorm.DB) SavedJobRepository {
	return &savedJobRepository{db: db}
}

// Save bookmarks a posting for the user. Saving the same posting twice is a
// no-op; the unique index on (user_id, job_id) absorbs the race.
func (r *savedJobRepository) Save(userID, jobID string) (bool, error) {
	saved := models.SavedJob{
		UserID: userID,
		JobID:  jobID,
	}
	err := r.db.Create(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Remove drops the bookmark. Returns false when nothing was saved.
func (r *savedJobRepository) Remove(userID, jobID string) (bool, error) {
	tx := r.db.Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *savedJobRepository) ListByUserID(userID string) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error
	return saved, err
}

func (r *savedJobRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.SavedJob{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
