package access

import (
	"time"

	"gorm.io/gorm"

	"github.com/matchpro/platform/app/models"
)

// Repository provides DB operations used by the access ledger.
type Repository interface {
	Insert(grant *models.UserAccess) error
	ListByUser(userID string) ([]models.UserAccess, error)
	// Expire marks one grant expired. Updating an already-expired or missing
	// grant affects zero rows and is not an error.
	Expire(userID string, accessID uint) error
	ExpireLapsed(now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a ledger repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Insert(grant *models.UserAccess) error {
	return r.db.Create(grant).Error
}

func (r *gormRepository) ListByUser(userID string) ([]models.UserAccess, error) {
	var grants []models.UserAccess
	err := r.db.Where("user_id = ?", userID).Order("access_end DESC, id DESC").Find(&grants).Error
	return grants, err
}

func (r *gormRepository) Expire(userID string, accessID uint) error {
	return r.db.Model(&models.UserAccess{}).
		Where("user_id = ? AND id = ?", userID, accessID).
		Update("status", models.AccessExpired).Error
}

func (r *gormRepository) ExpireLapsed(now time.Time) (int64, error) {
	tx := r.db.Model(&models.UserAccess{}).
		Where("status = ? AND access_end <= ?", models.AccessActive, now).
		Update("status", models.AccessExpired)
	return tx.RowsAffected, tx.Error
}
